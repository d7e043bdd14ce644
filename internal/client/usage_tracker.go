package client

import (
	"context"
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/chef-ai/internal/lib/sl"
	"github.com/magabrotheeeer/chef-ai/internal/models"
)

// UsageState снимок состояния трекера.
type UsageState struct {
	models.UsageStatus
	Loading bool
}

// UsageTracker хранит последнее известное состояние дневной квоты пользователя.
//
// Increment обновляет состояние сразу, не дожидаясь ответа сервера, и не откатывает
// его при ошибке: до следующей проверки показания могут расходиться с сервером.
type UsageTracker struct {
	fn       FunctionsInvoker
	sessions SessionSource
	log      *slog.Logger

	mu      sync.Mutex
	status  models.UsageStatus
	loading bool

	inflight sync.WaitGroup
}

// NewUsageTracker создаёт трекер с состоянием по умолчанию {0, 10, 10, true}.
func NewUsageTracker(fn FunctionsInvoker, sessions SessionSource, log *slog.Logger) *UsageTracker {
	return &UsageTracker{
		fn:       fn,
		sessions: sessions,
		log:      log,
		status:   models.DefaultUsageStatus(),
		loading:  true,
	}
}

// Start запускает первую проверку в фоне.
func (t *UsageTracker) Start(ctx context.Context) {
	t.inflight.Add(1)
	go func() {
		defer t.inflight.Done()
		t.Refresh(ctx)
	}()
}

// Refresh запрашивает актуальное состояние квоты. Без сессии запрос не выполняется.
func (t *UsageTracker) Refresh(ctx context.Context) {
	const op = "client.UsageTracker.Refresh"
	log := t.log.With(sl.Op(op))

	token, err := t.sessions.AccessToken(ctx)
	if err != nil || token == "" {
		if err != nil {
			log.Warn("failed to read session", sl.Err(err))
		}
		t.setLoaded(nil)
		return
	}

	var status models.UsageStatus
	if err := t.fn.Invoke(ctx, FnCheckUsage, token, nil, &status); err != nil {
		log.Error("error checking usage", sl.Err(err))
		t.setLoaded(nil)
		return
	}
	t.setLoaded(&status)
}

// Increment учитывает запрос: отправляет вызов в фоне и сразу применяет оптимистичное обновление.
func (t *UsageTracker) Increment(ctx context.Context) {
	const op = "client.UsageTracker.Increment"
	log := t.log.With(sl.Op(op))

	token, err := t.sessions.AccessToken(ctx)
	if err != nil || token == "" {
		log.Warn("increment skipped, no session", sl.Err(err))
		return
	}

	t.inflight.Add(1)
	go func() {
		defer t.inflight.Done()
		if err := t.fn.Invoke(ctx, FnIncrementUsage, token, nil, nil); err != nil {
			log.Error("error incrementing usage", sl.Err(err))
		}
	}()

	t.mu.Lock()
	prevRemaining := t.status.Remaining
	t.status.CurrentCount++
	t.status.Remaining = max(0, prevRemaining-1)
	t.status.CanQuery = prevRemaining-1 > 0
	t.mu.Unlock()
}

// State возвращает снимок состояния.
func (t *UsageTracker) State() UsageState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return UsageState{UsageStatus: t.status, Loading: t.loading}
}

// Wait ждёт завершения фоновых вызовов.
func (t *UsageTracker) Wait() {
	t.inflight.Wait()
}

func (t *UsageTracker) setLoaded(status *models.UsageStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if status != nil {
		t.status = *status
	}
	t.loading = false
}
