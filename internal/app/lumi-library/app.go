// Package lumilibrary собирает HTTP-приложение библиотеки: хранилище,
// миграции, кеш, очередь обратной связи, сервисы и маршруты.
package lumilibrary

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/lumi-library/internal/cache"
	"github.com/magabrotheeeer/lumi-library/internal/config"
	"github.com/magabrotheeeer/lumi-library/internal/lib/jwt"
	"github.com/magabrotheeeer/lumi-library/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/lumi-library/internal/migrations"
	authservice "github.com/magabrotheeeer/lumi-library/internal/services/auth"
	bookservice "github.com/magabrotheeeer/lumi-library/internal/services/book"
	contactservice "github.com/magabrotheeeer/lumi-library/internal/services/contact"
	subservice "github.com/magabrotheeeer/lumi-library/internal/services/subscription"
	userservice "github.com/magabrotheeeer/lumi-library/internal/services/user"
	"github.com/magabrotheeeer/lumi-library/internal/storage/repository"
)

// devJWTSecret используется, когда секрет не задан в конфигурации.
// Годится только для локальной разработки.
const devJWTSecret = "lumi-dev-secret"

// App представляет HTTP-приложение библиотеки.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *repository.Storage
	rabbitConn *amqp.Connection
	rabbitCh   *amqp.Channel
}

// New собирает приложение из конфигурации: подключает базу, применяет
// миграции, инициализирует кеш и очередь, регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	rabbitConn, err := rabbitmq.Connect(cfg.RabbitURL, cfg.RabbitMaxRetries, cfg.RabbitRetryDelay)
	if err != nil {
		return nil, err
	}
	rabbitCh, err := rabbitmq.SetupChannel(rabbitConn, rabbitmq.GetMailQueues())
	if err != nil {
		return nil, err
	}

	secretKey := cfg.JWTSecretKey
	if secretKey == "" {
		logger.Warn("JWT secret is not configured, using built-in development key")
		secretKey = devJWTSecret
	}
	jwtMaker := jwt.NewJWTMaker(secretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	bookService := bookservice.NewBookService(db, cacheRedis, logger)
	userService := userservice.NewUserService(db, logger)
	subscriptionService := subservice.NewSubscriptionService(db, logger)
	contactPublisher := contactservice.NewContactPublisher(rabbitCh, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db, authService, bookService, userService, subscriptionService, contactPublisher)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		logger:     logger,
		db:         db,
		rabbitConn: rabbitConn,
		rabbitCh:   rabbitCh,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if closeErr := a.rabbitCh.Close(); closeErr != nil {
			a.logger.Error("failed to close rabbitmq channel", slog.Any("err", closeErr))
		}
		if closeErr := a.rabbitConn.Close(); closeErr != nil {
			a.logger.Error("failed to close rabbitmq connection", slog.Any("err", closeErr))
		}
		if closeErr := a.db.DB.Close(); closeErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", closeErr))
		}
		return err
	}
}
