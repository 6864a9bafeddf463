package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

type clientInfo struct {
	count   int
	resetAt time.Time
}

// limiter - счётчик запросов по IP в окне фиксированной длины.
type limiter struct {
	mtx       sync.Mutex
	rpm       int
	window    time.Duration
	clients   map[string]*clientInfo
	lastSweep time.Time
}

func newLimiter(rpm int, window time.Duration) *limiter {
	return &limiter{
		rpm:     rpm,
		window:  window,
		clients: make(map[string]*clientInfo),
	}
}

// allow учитывает запрос и возвращает остаток и время сброса окна.
func (l *limiter) allow(ip string, now time.Time) (bool, int, time.Time) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	l.sweep(now)

	info, exists := l.clients[ip]
	switch {
	case !exists:
		info = &clientInfo{count: 1, resetAt: now.Add(l.window)}
		l.clients[ip] = info
	case now.After(info.resetAt):
		info.count = 1
		info.resetAt = now.Add(l.window)
	case info.count >= l.rpm:
		return false, 0, info.resetAt
	default:
		info.count++
	}

	remaining := l.rpm - info.count
	if remaining < 0 {
		remaining = 0
	}
	return true, remaining, info.resetAt
}

// sweep раз в окно выбрасывает клиентов с истёкшим окном.
func (l *limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now
	for ip, info := range l.clients {
		if now.After(info.resetAt) {
			delete(l.clients, ip)
		}
	}
}

func RateLimit(rpm int) func(http.Handler) http.Handler {
	l := newLimiter(rpm, time.Minute)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now()
			ok, remaining, resetAt := l.allow(getIp(r), now)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rpm))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)

				_ = json.NewEncoder(w).Encode(map[string]any{
					"error":       "rate_limit_exceeded",
					"message":     "Слишком много запросов. Попробуйте позже.",
					"retry_after": int(resetAt.Sub(now).Seconds()),
					"request_id":  GetRequestID(r.Context()),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func getIp(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
