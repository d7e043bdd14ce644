// Package metrics регистрирует метрики Prometheus сервиса квот.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "chefai"

// Metrics набор метрик сервиса. Методы безопасно вызывать на nil.
type Metrics struct {
	usageChecks     *prometheus.CounterVec
	usageIncrements *prometheus.CounterVec
	quotaExhausted  prometheus.Counter
	subscription    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// New создаёт метрики и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		usageChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "usage_checks_total",
			Help:      "Number of daily quota checks by result.",
		}, []string{"result"}),
		usageIncrements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "usage_increments_total",
			Help:      "Number of recorded queries by result.",
		}, []string{"result"}),
		quotaExhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "usage_quota_exhausted_total",
			Help:      "Number of checks that found the daily quota used up.",
		}),
		subscription: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subscription_operations_total",
			Help:      "Number of subscription operations by kind and result.",
		}, []string{"operation", "result"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
	reg.MustRegister(m.usageChecks, m.usageIncrements, m.quotaExhausted, m.subscription, m.httpDuration)
	return m
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveCheck учитывает проверку квоты.
func (m *Metrics) ObserveCheck(canQuery bool, err error) {
	if m == nil {
		return
	}
	m.usageChecks.WithLabelValues(result(err)).Inc()
	if err == nil && !canQuery {
		m.quotaExhausted.Inc()
	}
}

// ObserveIncrement учитывает попытку записать запрос.
func (m *Metrics) ObserveIncrement(err error) {
	if m == nil {
		return
	}
	m.usageIncrements.WithLabelValues(result(err)).Inc()
}

// ObserveSubscription учитывает операцию с подпиской: check, checkout или portal.
func (m *Metrics) ObserveSubscription(operation string, err error) {
	if m == nil {
		return
	}
	m.subscription.WithLabelValues(operation, result(err)).Inc()
}

// ObserveHTTP учитывает длительность HTTP-запроса.
func (m *Metrics) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(route, method, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
