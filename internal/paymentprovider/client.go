// Package paymentprovider обращается к Stripe: поиск клиента, активная подписка,
// сессии оплаты и клиентского портала.
package paymentprovider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"github.com/magabrotheeeer/chef-ai/internal/models"
)

// Client клиент Stripe с настроенными ценами тарифов.
type Client struct {
	api         *client.API
	prices      Prices
	frontendURL string
}

// NewClient создаёт клиент Stripe. backends == nil означает боевой API.
func NewClient(secretKey string, prices Prices, frontendURL string, backends *stripe.Backends) *Client {
	api := &client.API{}
	api.Init(secretKey, backends)
	return &Client{
		api:         api,
		prices:      prices,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// Prices возвращает настроенные цены тарифов.
func (c *Client) Prices() Prices {
	return c.prices
}

// FindCustomerByEmail возвращает идентификатор клиента по почте или models.ErrCustomerNotFound.
func (c *Client) FindCustomerByEmail(ctx context.Context, email string) (string, error) {
	const op = "paymentprovider.FindCustomerByEmail"
	if email == "" {
		return "", fmt.Errorf("%s: %w", op, models.ErrCustomerNotFound)
	}
	params := &stripe.CustomerListParams{Email: stripe.String(email)}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	iter := c.api.Customers.List(params)
	if iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return "", fmt.Errorf("%s: %w", op, models.ErrCustomerNotFound)
}

// ActiveSubscription возвращает первую активную подписку клиента или nil.
func (c *Client) ActiveSubscription(ctx context.Context, customerID string) (*ActiveSubscription, error) {
	const op = "paymentprovider.ActiveSubscription"
	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String(string(stripe.SubscriptionStatusActive)),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	iter := c.api.Subscriptions.List(params)
	if !iter.Next() {
		if err := iter.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return nil, nil
	}

	sub := iter.Subscription()
	res := &ActiveSubscription{
		ID:               sub.ID,
		CurrentPeriodEnd: time.Unix(sub.CurrentPeriodEnd, 0).UTC(),
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		price := sub.Items.Data[0].Price
		res.PriceID = price.ID
		if price.Recurring != nil {
			res.Interval = string(price.Recurring.Interval)
		}
	}
	return res, nil
}

// CreateCheckoutSession создаёт сессию оплаты подписки и возвращает её URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error) {
	const op = "paymentprovider.CreateCheckoutSession"
	priceID := c.prices.PriceFor(req.Plan)
	if priceID == "" {
		return "", fmt.Errorf("%s: %w: %s", op, models.ErrUnknownPlan, req.Plan)
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(c.frontendURL + "/success"),
		CancelURL:         stripe.String(c.frontendURL + "/"),
		ClientReferenceID: stripe.String(req.UserID),
	}
	if req.CustomerID != "" {
		params.Customer = stripe.String(req.CustomerID)
	} else {
		params.CustomerEmail = stripe.String(req.Email)
	}
	params.Context = ctx
	params.AddMetadata("user_id", req.UserID)
	params.AddMetadata("plan", string(req.Plan))

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return sess.URL, nil
}

// CreatePortalSession создаёт сессию клиентского портала и возвращает её URL.
func (c *Client) CreatePortalSession(ctx context.Context, customerID string) (string, error) {
	const op = "paymentprovider.CreatePortalSession"
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(c.frontendURL + "/"),
	}
	params.Context = ctx

	sess, err := c.api.BillingPortalSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return sess.URL, nil
}
