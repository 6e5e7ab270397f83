// Package services содержит планировщик напоминаний: поиск пользователей
// с истекающими подписками и публикация заданий в очередь почтового воркера.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/lumi-library/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/lumi-library/internal/lib/sl"
	"github.com/magabrotheeeer/lumi-library/internal/models"
)

// EntitlementRepository определяет выборку истекающих подписок из хранилища.
type EntitlementRepository interface {
	FindEntitlementsExpiringTomorrow(ctx context.Context) ([]*models.ExpiringEntitlement, error)
}

// SchedulerService периодически находит истекающие подписки и публикует
// напоминания в обменник "mail".
type SchedulerService struct {
	repo EntitlementRepository
	log  *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo EntitlementRepository, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		log:  log,
	}
}

// FindEntitlementsExpiringTomorrow запускает цикл поиска подписок,
// истекающих завтра. Первый проход выполняется сразу, далее раз в сутки.
func (s *SchedulerService) FindEntitlementsExpiringTomorrow(ctx context.Context, channel *amqp.Channel) {
	s.runFindEntitlementsExpiringTomorrow(ctx, channel)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runFindEntitlementsExpiringTomorrow(ctx, channel)
		}
	}
}

func (s *SchedulerService) runFindEntitlementsExpiringTomorrow(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting service to find entitlements expiring tomorrow")
	entitlements, err := s.repo.FindEntitlementsExpiringTomorrow(ctx)
	if err != nil {
		s.log.Error("failed to find expiring entitlements", sl.Err(err))
		return
	}
	if len(entitlements) == 0 {
		s.log.Info("no expiring entitlements found")
		return
	}
	s.log.Info("found expiring entitlements", "count", len(entitlements))
	for _, entitlement := range entitlements {
		err = rabbitmq.PublishMessage(channel, "mail", "expiring", entitlement)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
