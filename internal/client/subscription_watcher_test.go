package client

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/chef-ai/internal/models"
)

func TestSubscriptionWatcher_RunPollsUntilCancelled(t *testing.T) {
	var calls atomic.Int32
	fn := new(InvokerMock)
	fn.On("Invoke", mock.Anything, FnCheckSubscription, "tok", nil).
		Run(func(mock.Arguments) { calls.Add(1) }).
		Return(nil, models.SubscriptionState{Subscribed: true, Plan: models.PlanWeekly})

	w := NewSubscriptionWatcher(fn, StaticSession("tok"), nil, noopLogger(), 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}

	st := w.State()
	assert.False(t, st.Loading)
	assert.True(t, st.Subscribed)
	assert.Equal(t, models.PlanWeekly, st.Plan)
}

func TestSubscriptionWatcher_DefaultInterval(t *testing.T) {
	w := NewSubscriptionWatcher(new(InvokerMock), StaticSession(""), nil, noopLogger(), 0)
	assert.Equal(t, DefaultPollInterval, w.interval)
}

func TestSubscriptionWatcher_RefreshErrorKeepsState(t *testing.T) {
	fn := new(InvokerMock)
	fn.On("Invoke", mock.Anything, FnCheckSubscription, "tok", nil).Return(errors.New("boom"), nil)

	w := NewSubscriptionWatcher(fn, StaticSession("tok"), nil, noopLogger(), time.Minute)
	w.Refresh(context.Background())

	st := w.State()
	assert.False(t, st.Loading)
	assert.Equal(t, models.FreeSubscription(), st.SubscriptionState)
}

func TestSubscriptionWatcher_CreateCheckout(t *testing.T) {
	fn := new(InvokerMock)
	fn.On("Invoke", mock.Anything, FnCreateCheckout, "tok", map[string]string{"plan": "monthly"}).
		Return(nil, map[string]string{"url": "https://checkout.example/cs_1"})

	var opened string
	opener := URLOpenerFunc(func(url string) error {
		opened = url
		return nil
	})

	w := NewSubscriptionWatcher(fn, StaticSession("tok"), opener, noopLogger(), time.Minute)
	require.NoError(t, w.CreateCheckout(context.Background(), models.PlanMonthly))
	assert.Equal(t, "https://checkout.example/cs_1", opened)
}

func TestSubscriptionWatcher_OpenCustomerPortal(t *testing.T) {
	t.Run("opens url", func(t *testing.T) {
		fn := new(InvokerMock)
		fn.On("Invoke", mock.Anything, FnCustomerPortal, "tok", nil).
			Return(nil, map[string]string{"url": "https://billing.example/p/1"})

		var opened string
		w := NewSubscriptionWatcher(fn, StaticSession("tok"), URLOpenerFunc(func(url string) error {
			opened = url
			return nil
		}), noopLogger(), time.Minute)

		require.NoError(t, w.OpenCustomerPortal(context.Background()))
		assert.Equal(t, "https://billing.example/p/1", opened)
	})

	t.Run("function error is returned", func(t *testing.T) {
		fn := new(InvokerMock)
		fn.On("Invoke", mock.Anything, FnCustomerPortal, "tok", nil).
			Return(&FunctionError{Status: 500, Message: "no customer found for this user"}, nil)

		w := NewSubscriptionWatcher(fn, StaticSession("tok"), URLOpenerFunc(func(string) error {
			t.Fatal("opener must not be called")
			return nil
		}), noopLogger(), time.Minute)

		err := w.OpenCustomerPortal(context.Background())
		var fe *FunctionError
		require.True(t, errors.As(err, &fe))
	})

	t.Run("no session", func(t *testing.T) {
		w := NewSubscriptionWatcher(new(InvokerMock), StaticSession(""), nil, noopLogger(), time.Minute)
		assert.ErrorIs(t, w.OpenCustomerPortal(context.Background()), ErrNoSession)
	})
}
