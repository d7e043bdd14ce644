package chefai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/chef-ai/internal/cache"
	"github.com/magabrotheeeer/chef-ai/internal/config"
	"github.com/magabrotheeeer/chef-ai/internal/http/middlewarectx"
	"github.com/magabrotheeeer/chef-ai/internal/identity"
	"github.com/magabrotheeeer/chef-ai/internal/lib/jwt"
	"github.com/magabrotheeeer/chef-ai/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/chef-ai/internal/lib/sl"
	"github.com/magabrotheeeer/chef-ai/internal/metrics"
	"github.com/magabrotheeeer/chef-ai/internal/migrations"
	"github.com/magabrotheeeer/chef-ai/internal/paymentprovider"
	subservice "github.com/magabrotheeeer/chef-ai/internal/services/subscription"
	usageservice "github.com/magabrotheeeer/chef-ai/internal/services/usage"
	"github.com/magabrotheeeer/chef-ai/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

// App HTTP-сервер сервиса и его внешние соединения.
type App struct {
	server    *http.Server
	handler   http.Handler
	logger    *slog.Logger
	db        *repository.Storage
	cache     *cache.Cache
	amqpConn  *amqp.Connection
	publisher *rabbitmq.Publisher
}

// New подключает хранилище, применяет миграции и собирает маршруты.
//
// Redis и RabbitMQ необязательны: без адреса или при ошибке подключения сервис
// работает без кэша и без публикации событий.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.chefai.New"

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if cfg.MigrationsPath != "" {
		if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	app := &App{logger: logger, db: db}

	var subCache subservice.Cache = cache.Noop{}
	if cfg.AddressRedis != "" {
		redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			logger.Warn("redis unavailable, caching disabled", sl.Err(err))
		} else {
			app.cache = redisCache
			subCache = redisCache
		}
	}

	var publisher usageservice.Publisher
	if cfg.RabbitMQ.URL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.Retries, cfg.RetryDelay)
		if err != nil {
			logger.Warn("rabbitmq unavailable, usage events disabled", sl.Err(err))
		} else {
			ch, err := rabbitmq.SetupExchange(conn, cfg.Exchange)
			if err != nil {
				logger.Warn("failed to declare exchange, usage events disabled", sl.Err(err))
				_ = conn.Close()
			} else {
				app.amqpConn = conn
				app.publisher = rabbitmq.NewPublisher(ch, cfg.Exchange)
				publisher = app.publisher
			}
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	usageService := usageservice.NewService(db, cfg.DailyLimit, logger,
		usageservice.WithPublisher(publisher),
		usageservice.WithMetrics(m),
	)

	billing := paymentprovider.NewClient(cfg.SecretKey, paymentprovider.Prices{
		Weekly:  cfg.PriceWeekly,
		Monthly: cfg.PriceMonthly,
	}, cfg.FrontendURL, nil)
	subscriptionService := subservice.NewService(billing, db, subCache, cfg.CacheTTL, m, logger)

	app.handler = NewRouter(logger, Deps{
		Usage:        usageService,
		Subscription: subscriptionService,
		Identity:     newIdentityProvider(cfg.Supabase),
		Health:       db,
		Limiter:      middlewarectx.NewRateLimiter(cfg.RPS, cfg.Burst, cfg.MaxClients),
		TrustProxy:   cfg.TrustProxy,
		Metrics:      m,
		Gatherer:     reg,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      app.handler,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

func newIdentityProvider(cfg config.Supabase) middlewarectx.UserProvider {
	if cfg.VerifyRemote {
		return identity.NewRemoteProvider(cfg.URL, cfg.ServiceRoleKey)
	}
	return identity.NewJWTProvider(jwt.NewJWTMaker(cfg.JWTSecret, 0))
}

// Handler возвращает корневой HTTP-обработчик приложения.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Run запускает HTTP-сервер и останавливает его по отмене ctx.
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
		a.Close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.Close()
		return err
	}
}

// Close закрывает соединения с хранилищем, Redis и RabbitMQ.
func (a *App) Close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq channel", sl.Err(err))
		}
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close redis", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", sl.Err(err))
	}
}
