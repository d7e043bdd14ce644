// Package chefai собирает HTTP-приложение сервиса квот и подписок.
package chefai

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/chef-ai/internal/http/handlers/health"
	"github.com/magabrotheeeer/chef-ai/internal/http/handlers/subscription/checkout"
	"github.com/magabrotheeeer/chef-ai/internal/http/handlers/subscription/portal"
	"github.com/magabrotheeeer/chef-ai/internal/http/handlers/subscription/subscriptioncheck"
	"github.com/magabrotheeeer/chef-ai/internal/http/handlers/usage/usagecheck"
	"github.com/magabrotheeeer/chef-ai/internal/http/handlers/usage/usageincrement"
	"github.com/magabrotheeeer/chef-ai/internal/http/middlewarectx"
	"github.com/magabrotheeeer/chef-ai/internal/metrics"
)

// Пути функций относительно /functions/v1.
const (
	PathCheckUsage        = "/check-usage"
	PathIncrementUsage    = "/increment-usage"
	PathCheckSubscription = "/check-subscription"
	PathCreateCheckout    = "/create-checkout"
	PathCustomerPortal    = "/customer-portal"
)

// UsageService операции дневной квоты.
type UsageService interface {
	usagecheck.Service
	usageincrement.Service
}

// SubscriptionService операции подписки.
type SubscriptionService interface {
	subscriptioncheck.Service
	checkout.Service
	portal.Service
}

// Deps зависимости маршрутов.
type Deps struct {
	Usage        UsageService
	Subscription SubscriptionService
	Identity     middlewarectx.UserProvider
	Health       health.Checker
	Limiter      *middlewarectx.RateLimiter
	Metrics      *metrics.Metrics
	Gatherer     prometheus.Gatherer
	// TrustProxy включает middleware.RealIP: адрес клиента берётся из заголовков прокси.
	TrustProxy bool
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	// Глобальные middleware
	r.Use(middleware.RequestID)
	if deps.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.CORS(),
		middlewarectx.Metrics(deps.Metrics),
	)

	r.Get("/health", health.New(logger, deps.Health).ServeHTTP)

	r.Route("/functions/v1", func(r chi.Router) {
		// OPTIONS отвечает без аутентификации
		for _, p := range []string{PathCheckUsage, PathIncrementUsage, PathCheckSubscription, PathCreateCheckout, PathCustomerPortal} {
			r.Options(p, middlewarectx.Preflight)
		}

		r.Group(func(r chi.Router) {
			if deps.Limiter != nil {
				r.Use(deps.Limiter.Middleware(logger))
			}
			r.Use(middlewarectx.AuthMiddleware(deps.Identity, logger))

			r.Post(PathCheckUsage, usagecheck.New(logger, deps.Usage).ServeHTTP)
			r.Post(PathIncrementUsage, usageincrement.New(logger, deps.Usage).ServeHTTP)
			r.Post(PathCheckSubscription, subscriptioncheck.New(logger, deps.Subscription).ServeHTTP)
			r.Post(PathCreateCheckout, checkout.New(logger, deps.Subscription).ServeHTTP)
			r.Post(PathCustomerPortal, portal.New(logger, deps.Subscription).ServeHTTP)
		})
	})

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

// NewRouter создаёт chi-роутер с зарегистрированными маршрутами.
func NewRouter(logger *slog.Logger, deps Deps) http.Handler {
	router := chi.NewRouter()
	RegisterRoutes(router, logger, deps)
	return router
}
