package models

import "time"

// Plan тарифный план пользователя.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanWeekly  Plan = "weekly"
	PlanMonthly Plan = "monthly"
)

// SubscriptionState состояние подписки, которое клиент использует для допуска к функциям
// наравне с дневной квотой.
type SubscriptionState struct {
	Subscribed      bool       `json:"subscribed" example:"true"`
	Plan            Plan       `json:"plan" example:"monthly"`
	SubscriptionEnd *time.Time `json:"subscription_end"`
}

// FreeSubscription состояние пользователя без оплаченной подписки.
func FreeSubscription() SubscriptionState {
	return SubscriptionState{Subscribed: false, Plan: PlanFree}
}

// Subscriber зеркало состояния подписки в таблице subscribers.
type Subscriber struct {
	UserID           string
	Email            string
	StripeCustomerID *string
	Subscribed       bool
	Plan             Plan
	SubscriptionEnd  *time.Time
	UpdatedAt        time.Time
}

// State возвращает клиентское представление подписки.
func (s Subscriber) State() SubscriptionState {
	return SubscriptionState{
		Subscribed:      s.Subscribed,
		Plan:            s.Plan,
		SubscriptionEnd: s.SubscriptionEnd,
	}
}
