package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter ограничивает число запросов с одного ключа (IP) в фиксированном окне.
// Неактивные окна удаляются при обращениях, фоновых goroutine нет.
type RateLimiter struct {
	lastSweep time.Time
	windows   map[string]*window
	now       func() time.Time
	rate      int
	period    time.Duration
	mu        sync.Mutex
}

// window счетчик запросов ключа с момента start
type window struct {
	start time.Time
	count int
}

// NewRateLimiter создает limiter: не больше rate запросов за period
func NewRateLimiter(rate int, period time.Duration) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		now:     time.Now,
		rate:    rate,
		period:  period,
	}
}

// Allow учитывает запрос ключа. Если лимит исчерпан, возвращает false
// и время до открытия следующего окна.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	w, ok := rl.windows[key]
	if !ok || now.Sub(w.start) >= rl.period {
		w = &window{start: now}
		rl.windows[key] = w
	}

	if w.count >= rl.rate {
		return false, w.start.Add(rl.period).Sub(now)
	}
	w.count++
	return true, 0
}

// sweep удаляет окна, истекшие больше period назад. Вызывается под mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.period {
		return
	}
	rl.lastSweep = now

	for key, w := range rl.windows {
		if now.Sub(w.start) >= 2*rl.period {
			delete(rl.windows, key)
		}
	}
}

// size число отслеживаемых ключей
func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.windows)
}

// PathRateLimit лимит для конкретного пути
type PathRateLimit struct {
	Path   string
	Rate   int
	Window time.Duration
}

// RateLimitByPathMiddleware ограничивает запросы к перечисленным путям по IP клиента.
// Каждый путь считается отдельно; остальные пути не ограничены.
// Лимит с Rate <= 0 пропускается.
func RateLimitByPathMiddleware(limits []PathRateLimit, logger *slog.Logger) func(http.Handler) http.Handler {
	limiters := make(map[string]*RateLimiter, len(limits))
	for _, limit := range limits {
		if limit.Rate <= 0 {
			continue
		}
		limiters[limit.Path] = NewRateLimiter(limit.Rate, limit.Window)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiter, ok := limiters[r.URL.Path]
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ip := getClientIP(r)
			allowed, retryAfter := limiter.Allow(ip)
			if !allowed {
				logger.WarnContext(r.Context(), "rate limit exceeded",
					slog.String("ip", ip),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
				writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP извлекает IP адрес клиента из запроса
// Проверяет заголовки X-Forwarded-For и X-Real-IP для прокси
func getClientIP(r *http.Request) string {
	// Первый адрес списка: реальный клиент
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// RemoteAddr содержит порт, который меняется от соединения к соединению
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
