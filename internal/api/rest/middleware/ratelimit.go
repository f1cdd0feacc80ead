package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/dtroode/clinic-server/internal/api/rest/response"
	"github.com/dtroode/clinic-server/internal/logger"
	"github.com/dtroode/clinic-server/internal/metrics"
)

const limiterIdleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit throttles requests per client address with a token bucket.
type RateLimit struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
	metrics   *metrics.Metrics
	logger    *logger.Logger
}

// NewRateLimit allows perMinute requests per client with the given burst.
func NewRateLimit(perMinute, burst int, m *metrics.Metrics, logger *logger.Logger) *RateLimit {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}

	return &RateLimit{
		visitors: make(map[string]*visitor),
		limit:    limit,
		burst:    burst,
		now:      time.Now,
		metrics:  m,
		logger:   logger,
	}
}

// Handle answers 429 once a client exhausts its bucket.
func (l *RateLimit) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientAddress(r)
		if !l.allow(client) {
			route := routePattern(r)
			l.metrics.ObserveRateLimited(route)
			l.logger.Warn("RateLimit middleware: request throttled",
				"client", client,
				"route", route)

			w.Header().Set("Retry-After", "60")
			response.JSON(w, http.StatusTooManyRequests, response.Message{Message: "Too many requests. Please try again later."})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *RateLimit) allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	v, ok := l.visitors[client]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[client] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// sweep drops visitors idle for longer than limiterIdleTTL.
func (l *RateLimit) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < time.Minute {
		return
	}
	l.lastSweep = now

	for client, v := range l.visitors {
		if now.Sub(v.lastSeen) > limiterIdleTTL {
			delete(l.visitors, client)
		}
	}
}

// clientAddress strips the port from RemoteAddr. chi's RealIP middleware
// rewrites RemoteAddr from proxy headers before this runs.
func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
