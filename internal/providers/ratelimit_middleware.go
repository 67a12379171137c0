package providers

import (
	"luckypick/internal/structures"
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

const maxTrackedClients = 10_000

type RateLimiterInterface interface {
	Wrap(next http.Handler) http.Handler
}

// RateLimiter keeps one token bucket per client address.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
	logger   Logger
}

func NewRateLimiter(conf *structures.Config, logger Logger) RateLimiterInterface {
	if !conf.RateLimit.Enabled || conf.RateLimit.RequestsPerSecond <= 0 {
		return &noopLimiter{}
	}
	burst := conf.RateLimit.Burst
	if burst <= 0 {
		burst = 1
	}
	logger.Infof(TypeApp, "Rate limit: %.2f req/s, burst %d", conf.RateLimit.RequestsPerSecond, burst)
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(conf.RateLimit.RequestsPerSecond),
		burst:    burst,
		logger:   logger,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	l, ok := rl.limiters[key]
	if !ok {
		if len(rl.limiters) >= maxTrackedClients {
			rl.limiters = make(map[string]*rate.Limiter)
		}
		l = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[key] = l
	}
	return l
}

func (rl *RateLimiter) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			key = r.RemoteAddr
		}
		if !rl.limiter(key).Allow() {
			rl.logger.Warnf(GetLogTypeByRequestType(r.Method), "Rate limit exceeded for %s on %s", key, r.URL.Path)
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type noopLimiter struct{}

func (n *noopLimiter) Wrap(next http.Handler) http.Handler { return next }
