// Package usage содержит бизнес-логику дневной квоты бесплатных запросов.
package usage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/chef-ai/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/chef-ai/internal/lib/sl"
	"github.com/magabrotheeeer/chef-ai/internal/metrics"
	"github.com/magabrotheeeer/chef-ai/internal/models"
)

// Repository определяет методы хранилища учёта запросов.
type Repository interface {
	// GetUsage возвращает запись за дату или nil, если её нет.
	GetUsage(ctx context.Context, userID, date string) (*models.UsageRecord, error)
	// IncrementUsage атомарно увеличивает счётчик за дату и возвращает новое значение.
	IncrementUsage(ctx context.Context, userID, date string) (int, error)
}

// Publisher публикует события учёта.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, any) error { return nil }

// Service реализует проверку и учёт дневной квоты.
type Service struct {
	repo       Repository
	publisher  Publisher
	metrics    *metrics.Metrics
	log        *slog.Logger
	now        func() time.Time
	dailyLimit int
}

// Option настраивает Service.
type Option func(*Service)

// WithPublisher включает публикацию событий учёта.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithMetrics включает метрики.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService создает новый экземпляр Service. Лимит <= 0 заменяется значением по умолчанию.
func NewService(repo Repository, dailyLimit int, log *slog.Logger, opts ...Option) *Service {
	if dailyLimit <= 0 {
		dailyLimit = models.DefaultDailyLimit
	}
	s := &Service{
		repo:       repo,
		publisher:  noopPublisher{},
		log:        log,
		now:        time.Now,
		dailyLimit: dailyLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DailyLimit возвращает действующий дневной лимит.
func (s *Service) DailyLimit() int {
	return s.dailyLimit
}

// Check возвращает статус квоты пользователя на сегодня. Ничего не записывает в хранилище.
//
// Статус не кэшируется и всегда читается из хранилища.
func (s *Service) Check(ctx context.Context, userID string) (status models.UsageStatus, err error) {
	const op = "services.usage.Check"
	defer func() { s.metrics.ObserveCheck(status.CanQuery, err) }()

	date := models.UsageDate(s.now())
	rec, err := s.repo.GetUsage(ctx, userID, date)
	if err != nil {
		return models.UsageStatus{}, fmt.Errorf("%s: %w", op, err)
	}
	count := 0
	if rec != nil {
		count = rec.QueryCount
	}
	status = models.NewUsageStatus(count, s.dailyLimit)
	return status, nil
}

// Increment учитывает один запрос пользователя за сегодня.
//
// Лимит здесь не проверяется: решение о допуске принимает вызывающая сторона по Check.
func (s *Service) Increment(ctx context.Context, userID string) (err error) {
	const op = "services.usage.Increment"
	defer func() { s.metrics.ObserveIncrement(err) }()

	now := s.now()
	date := models.UsageDate(now)
	count, err := s.repo.IncrementUsage(ctx, userID, date)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	event := models.UsageEvent{
		UserID:     userID,
		Date:       date,
		QueryCount: count,
		OccurredAt: now.UTC(),
	}
	if err := s.publisher.Publish(ctx, rabbitmq.RoutingKeyUsageIncremented, event); err != nil {
		s.log.Warn("failed to publish usage event", slog.String("user_id", userID), sl.Err(err))
	}

	s.log.Debug("usage incremented", slog.String("user_id", userID), slog.Int("query_count", count))
	return nil
}
