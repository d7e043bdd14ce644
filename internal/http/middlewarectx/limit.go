package middlewarectx

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/chef-ai/internal/http/response"
)

const (
	limiterIdleTTL    = 10 * time.Minute
	limiterSweepEvery = 1024
	// DefaultMaxVisitors число отслеживаемых адресов по умолчанию.
	DefaultMaxVisitors = 10000
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов с одного IP.
type RateLimiter struct {
	mu          sync.Mutex
	visitors    map[string]*visitor
	overflow    *rate.Limiter
	maxVisitors int
	rps         rate.Limit
	burst       int
	calls       int
	now         func() time.Time
}

// NewRateLimiter создаёт ограничитель на rps запросов в секунду с запасом burst.
//
// Отслеживается не более maxVisitors адресов (<= 0 означает DefaultMaxVisitors);
// новые адреса сверх этого делят один общий лимит.
func NewRateLimiter(rps float64, burst, maxVisitors int) *RateLimiter {
	if maxVisitors <= 0 {
		maxVisitors = DefaultMaxVisitors
	}
	return &RateLimiter{
		visitors:    make(map[string]*visitor),
		overflow:    rate.NewLimiter(rate.Limit(rps), burst),
		maxVisitors: maxVisitors,
		rps:         rate.Limit(rps),
		burst:       burst,
		now:         time.Now,
	}
}

// Allow сообщает, можно ли обслужить ещё один запрос с ip.
func (l *RateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.calls++
	if l.calls%limiterSweepEvery == 0 {
		l.sweep(now)
	}

	v, ok := l.visitors[ip]
	if !ok {
		if len(l.visitors) >= l.maxVisitors {
			l.sweep(now)
		}
		if len(l.visitors) >= l.maxVisitors {
			return l.overflow.AllowN(now, 1)
		}
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (l *RateLimiter) sweep(now time.Time) {
	for k, v := range l.visitors {
		if now.Sub(v.lastSeen) > limiterIdleTTL {
			delete(l.visitors, k)
		}
	}
}

// Middleware возвращает HTTP middleware, отвечающий 429 при превышении лимита.
func (l *RateLimiter) Middleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !l.Allow(ip) {
				log.Warn("too many requests", slog.String("ip", ip))
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP берёт адрес из RemoteAddr. X-Forwarded-For учитывается, только если
// перед limiter подключён middleware.RealIP.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
