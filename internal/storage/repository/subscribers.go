package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/chef-ai/internal/models"
)

// GetSubscriber возвращает сохранённое состояние подписки пользователя или nil.
func (s *Storage) GetSubscriber(ctx context.Context, userID string) (*models.Subscriber, error) {
	const op = "storage.GetSubscriber"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_id, email, stripe_customer_id, subscribed, plan, subscription_end, updated_at
			  FROM subscribers
			  WHERE user_id = $1`
	var (
		sub        models.Subscriber
		customerID sql.NullString
		end        sql.NullTime
		plan       string
	)
	err := s.DB.QueryRowContext(ctx, query, userID).Scan(&sub.UserID, &sub.Email, &customerID,
		&sub.Subscribed, &plan, &end, &sub.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, models.ErrDataStore, err)
	}

	sub.Plan = models.Plan(plan)
	if customerID.Valid {
		sub.StripeCustomerID = &customerID.String
	}
	if end.Valid {
		sub.SubscriptionEnd = &end.Time
	}
	return &sub, nil
}

// UpsertSubscriber сохраняет состояние подписки пользователя.
// Пустой StripeCustomerID не затирает уже сохранённый идентификатор клиента.
func (s *Storage) UpsertSubscriber(ctx context.Context, sub models.Subscriber) error {
	const op = "storage.UpsertSubscriber"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscribers (user_id, email, stripe_customer_id, subscribed, plan, subscription_end, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW())
			  ON CONFLICT (user_id) DO UPDATE SET
			      email = EXCLUDED.email,
			      stripe_customer_id = COALESCE(EXCLUDED.stripe_customer_id, subscribers.stripe_customer_id),
			      subscribed = EXCLUDED.subscribed,
			      plan = EXCLUDED.plan,
			      subscription_end = EXCLUDED.subscription_end,
			      updated_at = NOW()`
	_, err := s.DB.ExecContext(ctx, query, sub.UserID, sub.Email, sub.StripeCustomerID,
		sub.Subscribed, string(sub.Plan), sub.SubscriptionEnd)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, models.ErrDataStore, err)
	}
	return nil
}
