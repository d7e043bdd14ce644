package paymentprovider

import (
	"time"

	"github.com/magabrotheeeer/chef-ai/internal/models"
)

// Prices идентификаторы цен Stripe для платных тарифов.
type Prices struct {
	Weekly  string
	Monthly string
}

// PriceFor возвращает идентификатор цены тарифа или пустую строку.
func (p Prices) PriceFor(plan models.Plan) string {
	switch plan {
	case models.PlanWeekly:
		return p.Weekly
	case models.PlanMonthly:
		return p.Monthly
	default:
		return ""
	}
}

// ActiveSubscription активная подписка клиента у провайдера.
type ActiveSubscription struct {
	ID               string
	PriceID          string
	Interval         string // week, month
	CurrentPeriodEnd time.Time
}

// CheckoutRequest параметры создания сессии оплаты.
type CheckoutRequest struct {
	UserID     string
	Email      string
	CustomerID string // пустой, если клиента ещё нет
	Plan       models.Plan
}

// PlanFor определяет тариф подписки: сначала по настроенной цене, затем по интервалу списания.
func (p Prices) PlanFor(sub ActiveSubscription) models.Plan {
	switch {
	case sub.PriceID != "" && sub.PriceID == p.Weekly:
		return models.PlanWeekly
	case sub.PriceID != "" && sub.PriceID == p.Monthly:
		return models.PlanMonthly
	case sub.Interval == "week":
		return models.PlanWeekly
	case sub.Interval == "month":
		return models.PlanMonthly
	default:
		return models.PlanFree
	}
}
