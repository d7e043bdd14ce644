// Package subscription содержит бизнес-логику подписки: проверку состояния у платёжного
// провайдера, создание сессии оплаты и клиентского портала.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/chef-ai/internal/cache"
	"github.com/magabrotheeeer/chef-ai/internal/lib/sl"
	"github.com/magabrotheeeer/chef-ai/internal/metrics"
	"github.com/magabrotheeeer/chef-ai/internal/models"
	"github.com/magabrotheeeer/chef-ai/internal/paymentprovider"
)

// Billing определяет методы платёжного провайдера.
type Billing interface {
	FindCustomerByEmail(ctx context.Context, email string) (string, error)
	ActiveSubscription(ctx context.Context, customerID string) (*paymentprovider.ActiveSubscription, error)
	CreateCheckoutSession(ctx context.Context, req paymentprovider.CheckoutRequest) (string, error)
	CreatePortalSession(ctx context.Context, customerID string) (string, error)
	Prices() paymentprovider.Prices
}

// Repository определяет методы хранилища состояния подписок.
type Repository interface {
	GetSubscriber(ctx context.Context, userID string) (*models.Subscriber, error)
	UpsertSubscriber(ctx context.Context, sub models.Subscriber) error
}

// Cache описывает методы для кэширования состояния подписки.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service реализует операции с подпиской пользователя.
type Service struct {
	billing  Billing
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
	metrics  *metrics.Metrics
	log      *slog.Logger
}

// NewService создает новый экземпляр Service. c == nil отключает кэширование.
func NewService(billing Billing, repo Repository, c Cache, cacheTTL time.Duration, m *metrics.Metrics, log *slog.Logger) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{
		billing:  billing,
		repo:     repo,
		cache:    c,
		cacheTTL: cacheTTL,
		metrics:  m,
		log:      log,
	}
}

// Check возвращает состояние подписки пользователя и сохраняет его в subscribers.
func (s *Service) Check(ctx context.Context, user *models.User) (state models.SubscriptionState, err error) {
	const op = "services.subscription.Check"
	defer func() { s.metrics.ObserveSubscription("check", err) }()

	key := cache.SubscriptionKey(user.UUID)
	var cached models.SubscriptionState
	found, cacheErr := s.cache.Get(ctx, key, &cached)
	if cacheErr != nil {
		s.log.Warn("failed to read subscription from cache", slog.String("key", key), sl.Err(cacheErr))
	}
	if found {
		return cached, nil
	}

	state = models.FreeSubscription()
	var customerID *string

	id, err := s.billing.FindCustomerByEmail(ctx, user.Email)
	switch {
	case errors.Is(err, models.ErrCustomerNotFound):
		s.log.Debug("no customer for user", slog.String("user_id", user.UUID))
	case err != nil:
		return models.SubscriptionState{}, fmt.Errorf("%s: %w", op, err)
	default:
		customerID = &id
		sub, err := s.billing.ActiveSubscription(ctx, id)
		if err != nil {
			return models.SubscriptionState{}, fmt.Errorf("%s: %w", op, err)
		}
		if sub != nil {
			end := sub.CurrentPeriodEnd
			state = models.SubscriptionState{
				Subscribed:      true,
				Plan:            s.billing.Prices().PlanFor(*sub),
				SubscriptionEnd: &end,
			}
		}
	}

	record := models.Subscriber{
		UserID:           user.UUID,
		Email:            user.Email,
		StripeCustomerID: customerID,
		Subscribed:       state.Subscribed,
		Plan:             state.Plan,
		SubscriptionEnd:  state.SubscriptionEnd,
	}
	if err := s.repo.UpsertSubscriber(ctx, record); err != nil {
		s.log.Warn("failed to store subscriber", slog.String("user_id", user.UUID), sl.Err(err))
	}

	if s.cacheTTL > 0 {
		if err := s.cache.Set(ctx, key, state, s.cacheTTL); err != nil {
			s.log.Warn("failed to cache subscription", slog.String("key", key), sl.Err(err))
		}
	}

	s.log.Info("subscription checked",
		slog.String("user_id", user.UUID),
		slog.Bool("subscribed", state.Subscribed),
		slog.String("plan", string(state.Plan)),
	)
	return state, nil
}

// CreateCheckout создаёт сессию оплаты тарифа и возвращает её URL.
func (s *Service) CreateCheckout(ctx context.Context, user *models.User, plan models.Plan) (url string, err error) {
	const op = "services.subscription.CreateCheckout"
	defer func() { s.metrics.ObserveSubscription("checkout", err) }()

	customerID, err := s.customerID(ctx, user)
	if err != nil && !errors.Is(err, models.ErrCustomerNotFound) {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	url, err = s.billing.CreateCheckoutSession(ctx, paymentprovider.CheckoutRequest{
		UserID:     user.UUID,
		Email:      user.Email,
		CustomerID: customerID,
		Plan:       plan,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	key := cache.SubscriptionKey(user.UUID)
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("failed to invalidate subscription cache", slog.String("key", key), sl.Err(err))
	}
	return url, nil
}

// CustomerPortal создаёт сессию клиентского портала и возвращает её URL.
func (s *Service) CustomerPortal(ctx context.Context, user *models.User) (url string, err error) {
	const op = "services.subscription.CustomerPortal"
	defer func() { s.metrics.ObserveSubscription("portal", err) }()

	customerID, err := s.customerID(ctx, user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	url, err = s.billing.CreatePortalSession(ctx, customerID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	key := cache.SubscriptionKey(user.UUID)
	if err := s.cache.Invalidate(ctx, key); err != nil {
		s.log.Warn("failed to invalidate subscription cache", slog.String("key", key), sl.Err(err))
	}
	return url, nil
}

// customerID берёт идентификатор клиента из subscribers, иначе ищет его у провайдера по почте.
func (s *Service) customerID(ctx context.Context, user *models.User) (string, error) {
	stored, err := s.repo.GetSubscriber(ctx, user.UUID)
	if err != nil {
		s.log.Warn("failed to read subscriber", slog.String("user_id", user.UUID), sl.Err(err))
	}
	if stored != nil && stored.StripeCustomerID != nil && *stored.StripeCustomerID != "" {
		return *stored.StripeCustomerID, nil
	}
	return s.billing.FindCustomerByEmail(ctx, user.Email)
}
