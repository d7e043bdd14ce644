package models

import "time"

// DateLayout формат календарной даты в таблице usage_tracking.
const DateLayout = "2006-01-02"

// DefaultDailyLimit дневной лимит бесплатных запросов по умолчанию.
const DefaultDailyLimit = 10

// UsageRecord одна строка учёта запросов пользователя за календарный день.
type UsageRecord struct {
	ID         string
	UserID     string
	Date       string
	QueryCount int
}

// UsageStatus ответ проверки квоты на текущий день.
type UsageStatus struct {
	CurrentCount int  `json:"current_count" example:"3"`
	DailyLimit   int  `json:"daily_limit" example:"10"`
	Remaining    int  `json:"remaining" example:"7"`
	CanQuery     bool `json:"can_query" example:"true"`
}

// NewUsageStatus вычисляет статус квоты по текущему счётчику и лимиту.
func NewUsageStatus(currentCount, dailyLimit int) UsageStatus {
	remaining := max(0, dailyLimit-currentCount)
	return UsageStatus{
		CurrentCount: currentCount,
		DailyLimit:   dailyLimit,
		Remaining:    remaining,
		CanQuery:     remaining > 0,
	}
}

// DefaultUsageStatus состояние до первой проверки: ни одного запроса за день.
func DefaultUsageStatus() UsageStatus {
	return NewUsageStatus(0, DefaultDailyLimit)
}

// UsageDate возвращает дату квотного окна для момента t: UTC-дата серверных часов.
func UsageDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// UsageEvent публикуется после каждого учтённого запроса.
type UsageEvent struct {
	UserID     string    `json:"user_id"`
	Date       string    `json:"date"`
	QueryCount int       `json:"query_count"`
	OccurredAt time.Time `json:"occurred_at"`
}
