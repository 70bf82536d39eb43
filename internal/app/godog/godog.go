// Package godog собирает приложение целиком: подключения к базе, redis и
// rabbitmq, доменные сервисы и HTTP-сервер с graceful shutdown.
package godog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/godogapp/godog/internal/cache"
	"github.com/godogapp/godog/internal/config"
	"github.com/godogapp/godog/internal/lib/clock"
	"github.com/godogapp/godog/internal/lib/ident"
	"github.com/godogapp/godog/internal/lib/jwt"
	"github.com/godogapp/godog/internal/lifecycle"
	"github.com/godogapp/godog/internal/migrations"
	"github.com/godogapp/godog/internal/policy"
	"github.com/godogapp/godog/internal/rabbitmq"
	adviceservice "github.com/godogapp/godog/internal/services/advice"
	authservice "github.com/godogapp/godog/internal/services/auth"
	bookingservice "github.com/godogapp/godog/internal/services/booking"
	dealservice "github.com/godogapp/godog/internal/services/deal"
	dogservice "github.com/godogapp/godog/internal/services/dog"
	profileservice "github.com/godogapp/godog/internal/services/profile"
	revenueservice "github.com/godogapp/godog/internal/services/revenue"
	"github.com/godogapp/godog/internal/storage/repository"
)

// App хранит собранный HTTP-сервер и ресурсы, требующие закрытия.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	amqp   io.Closer
}

// New создает приложение: подключается к инфраструктуре, прогоняет миграции
// и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	amqpConn, err := rabbitmq.Connect(cfg.RabbitMQConnection, 5, 3*time.Second)
	if err != nil {
		return nil, err
	}
	amqpChannel, err := rabbitmq.SetupChannel(amqpConn, rabbitmq.DefaultQueues)
	if err != nil {
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(amqpChannel)

	clk := clock.System{}
	ids := ident.UUID{}
	jwtMaker := jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL)
	tierPolicy := policy.New(cfg.Billing)
	subscriptionLifecycle := lifecycle.New(tierPolicy)

	authService := authservice.New(db, db, jwtMaker, ids, clk, logger)
	profileService := profileservice.New(db, cacheRedis, publisher, tierPolicy, subscriptionLifecycle, clk, logger)
	dogService := dogservice.New(db, cacheRedis, ids, clk, logger)
	bookingService := bookingservice.New(db, publisher, ids, cfg.Billing.CommissionRate, logger)
	dealService := dealservice.New(db, ids, cfg.Billing.MaxDealsPerBusiness, logger)
	revenueService := revenueservice.New(db, cfg.Billing, logger)
	adviceClient := adviceservice.NewClient(cfg.AdviceAPIURL, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:    authService,
		Profile: profileService,
		Dog:     dogService,
		Booking: bookingService,
		Deal:    dealService,
		Revenue: revenueService,
		Advice:  adviceClient,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		amqp:   amqpConn,
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
		if cerr := a.amqp.Close(); cerr != nil {
			a.logger.Error("failed to close rabbitmq connection", slog.Any("err", cerr))
		}
		if cerr := a.db.DB.Close(); cerr != nil {
			a.logger.Error("failed to close database", slog.Any("err", cerr))
		}
		return err
	}
}
