// Package services содержит бизнес-логику журнала подписок: покупку,
// вычисление текущего права доступа и административное удаление.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/lumi-library/internal/models"
	"github.com/magabrotheeeer/lumi-library/internal/storage/repository"
)

var (
	// ErrUnknownPlan возвращается при покупке несуществующего плана.
	ErrUnknownPlan = errors.New("unknown subscription plan")
	// ErrAmountMismatch возвращается, когда сумма платежа не равна цене плана.
	ErrAmountMismatch = errors.New("amount does not match plan price")
)

// SubscriptionRepository определяет методы для работы с журналом подписок в хранилище.
type SubscriptionRepository interface {
	// CreateSubscription добавляет запись о покупке и обновляет план владельца.
	CreateSubscription(ctx context.Context, sub models.Subscription) (int, error)
	// LatestSubscription возвращает последнюю запись пользователя.
	LatestSubscription(ctx context.Context, userUID string) (*models.Subscription, error)
	// ListSubscriptions возвращает подписки с данными владельцев по фильтру.
	ListSubscriptions(ctx context.Context, filter models.SubscriptionFilter) ([]*models.SubscriptionWithUser, error)
	// RemoveSubscriptionWithUserReset удаляет запись и сбрасывает план владельца.
	RemoveSubscriptionWithUserReset(ctx context.Context, id int) error
}

// SubscriptionService реализует бизнес-логику журнала подписок.
type SubscriptionService struct {
	repo SubscriptionRepository
	log  *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo: repo,
		log:  log,
	}
}

// Purchase проверяет план и сумму по таблице тарифов и создает запись
// подписки со сроком действия start + срок плана. Платеж симулируется:
// платежная ссылка генерируется локально.
func (s *SubscriptionService) Purchase(ctx context.Context, userUID, plan string, amount float64) (*models.Subscription, error) {
	p, ok := models.Plans[plan]
	if !ok {
		return nil, ErrUnknownPlan
	}
	if amount != p.Price {
		return nil, ErrAmountMismatch
	}

	now := time.Now().UTC()
	sub := models.Subscription{
		UserUID:    userUID,
		Plan:       plan,
		StartDate:  now,
		ExpiryDate: now.AddDate(0, 0, p.Days),
		IsActive:   true,
		Amount:     amount,
		PaymentID:  "payment_" + uuid.NewString(),
	}

	id, err := s.repo.CreateSubscription(ctx, sub)
	if err != nil {
		return nil, err
	}
	sub.ID = id
	sub.CreatedAt = now

	s.log.Info("created new subscription",
		slog.Int("id", id), slog.String("plan", plan))
	return &sub, nil
}

// Current возвращает последнюю запись подписки пользователя с признаком
// isActive, пересчитанным от expiry в момент чтения. Хранимому флагу
// записи доверять нельзя: он выставляется один раз при создании.
// Второе значение false означает отсутствие записей.
func (s *SubscriptionService) Current(ctx context.Context, userUID string) (*models.Subscription, bool, error) {
	sub, err := s.repo.LatestSubscription(ctx, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	sub.IsActive = !time.Now().After(sub.ExpiryDate)
	return sub, true, nil
}

// ListAll возвращает подписки для административного списка.
// Признак isActive каждой записи пересчитывается от expiry.
func (s *SubscriptionService) ListAll(ctx context.Context, filter models.SubscriptionFilter) ([]*models.SubscriptionWithUser, error) {
	subs, err := s.repo.ListSubscriptions(ctx, filter)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for _, sub := range subs {
		sub.IsActive = !now.After(sub.ExpiryDate)
	}
	return subs, nil
}

// Remove удаляет запись подписки и сбрасывает план владельца.
func (s *SubscriptionService) Remove(ctx context.Context, id int) error {
	if err := s.repo.RemoveSubscriptionWithUserReset(ctx, id); err != nil {
		return err
	}
	s.log.Info("removed subscription and reset owner entitlement", slog.Int("id", id))
	return nil
}
