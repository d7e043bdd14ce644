package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/magabrotheeeer/chef-ai/internal/lib/sl"
	"github.com/magabrotheeeer/chef-ai/internal/models"
)

// DefaultPollInterval период опроса состояния подписки.
const DefaultPollInterval = 60 * time.Second

// URLOpener открывает ссылку страницы оплаты или портала у пользователя.
type URLOpener interface {
	Open(url string) error
}

// URLOpenerFunc адаптер функции к URLOpener.
type URLOpenerFunc func(url string) error

// Open вызывает f(url).
func (f URLOpenerFunc) Open(url string) error { return f(url) }

// SubscriptionState снимок состояния наблюдателя.
type SubscriptionState struct {
	models.SubscriptionState
	Loading bool
}

// SubscriptionWatcher периодически опрашивает состояние подписки пользователя.
type SubscriptionWatcher struct {
	fn       FunctionsInvoker
	sessions SessionSource
	opener   URLOpener
	log      *slog.Logger
	interval time.Duration

	mu      sync.Mutex
	state   models.SubscriptionState
	loading bool
}

// NewSubscriptionWatcher создаёт наблюдателя. interval <= 0 заменяется DefaultPollInterval.
func NewSubscriptionWatcher(fn FunctionsInvoker, sessions SessionSource, opener URLOpener, log *slog.Logger, interval time.Duration) *SubscriptionWatcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &SubscriptionWatcher{
		fn:       fn,
		sessions: sessions,
		opener:   opener,
		log:      log,
		interval: interval,
		state:    models.FreeSubscription(),
		loading:  true,
	}
}

// Run проверяет подписку сразу и затем раз в interval, пока ctx не отменён.
func (w *SubscriptionWatcher) Run(ctx context.Context) error {
	w.Refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Refresh(ctx)
		}
	}
}

// Refresh запрашивает состояние подписки. Ошибки только логируются.
func (w *SubscriptionWatcher) Refresh(ctx context.Context) {
	const op = "client.SubscriptionWatcher.Refresh"
	log := w.log.With(sl.Op(op))

	token, err := w.sessions.AccessToken(ctx)
	if err != nil || token == "" {
		if err != nil {
			log.Warn("failed to read session", sl.Err(err))
		}
		w.set(nil)
		return
	}

	var state models.SubscriptionState
	if err := w.fn.Invoke(ctx, FnCheckSubscription, token, nil, &state); err != nil {
		log.Error("error checking subscription", sl.Err(err))
		w.set(nil)
		return
	}
	w.set(&state)
}

// CreateCheckout создаёт сессию оплаты тарифа и открывает её страницу.
func (w *SubscriptionWatcher) CreateCheckout(ctx context.Context, plan models.Plan) error {
	const op = "client.SubscriptionWatcher.CreateCheckout"
	body := map[string]string{"plan": string(plan)}
	if err := w.openFunctionURL(ctx, FnCreateCheckout, body); err != nil {
		w.log.Error("error creating checkout", sl.Op(op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// OpenCustomerPortal создаёт сессию клиентского портала и открывает её страницу.
func (w *SubscriptionWatcher) OpenCustomerPortal(ctx context.Context) error {
	const op = "client.SubscriptionWatcher.OpenCustomerPortal"
	if err := w.openFunctionURL(ctx, FnCustomerPortal, nil); err != nil {
		w.log.Error("error opening customer portal", sl.Op(op), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// State возвращает снимок состояния.
func (w *SubscriptionWatcher) State() SubscriptionState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return SubscriptionState{SubscriptionState: w.state, Loading: w.loading}
}

func (w *SubscriptionWatcher) openFunctionURL(ctx context.Context, name string, body any) error {
	token, err := w.sessions.AccessToken(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		return ErrNoSession
	}

	var resp struct {
		URL string `json:"url"`
	}
	if err := w.fn.Invoke(ctx, name, token, body, &resp); err != nil {
		return err
	}
	if resp.URL == "" {
		return fmt.Errorf("%s returned empty url", name)
	}
	return w.opener.Open(resp.URL)
}

func (w *SubscriptionWatcher) set(state *models.SubscriptionState) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if state != nil {
		w.state = *state
	}
	w.loading = false
}
