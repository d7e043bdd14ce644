package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewUsageStatus(t *testing.T) {
	tests := []struct {
		name  string
		count int
		limit int
		want  UsageStatus
	}{
		{"fresh day", 0, 10, UsageStatus{0, 10, 10, true}},
		{"partial", 3, 10, UsageStatus{3, 10, 7, true}},
		{"one left", 9, 10, UsageStatus{9, 10, 1, true}},
		{"exhausted", 10, 10, UsageStatus{10, 10, 0, false}},
		{"over limit", 14, 10, UsageStatus{14, 10, 0, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewUsageStatus(tt.count, tt.limit))
		})
	}
}

func TestUsageDate_UsesUTC(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*3600)
	assert.Equal(t, "2026-10-14", UsageDate(time.Date(2026, 10, 15, 1, 0, 0, 0, moscow)))
	assert.Equal(t, "2026-10-15", UsageDate(time.Date(2026, 10, 15, 3, 0, 0, 0, moscow)))
}

func TestSubscriberState(t *testing.T) {
	end := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	s := Subscriber{UserID: "u1", Subscribed: true, Plan: PlanMonthly, SubscriptionEnd: &end}
	assert.Equal(t, SubscriptionState{Subscribed: true, Plan: PlanMonthly, SubscriptionEnd: &end}, s.State())
	assert.Equal(t, SubscriptionState{Plan: PlanFree}, FreeSubscription())
}
