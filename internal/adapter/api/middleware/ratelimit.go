package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterIdleEviction = 3 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit enforces a per-client token bucket, keyed by API key when
// present and by remote address otherwise. Idle client entries are evicted
// lazily on later requests.
func RateLimit(rps float64, burst int, logger *slog.Logger) func(http.Handler) http.Handler {
	var (
		mu      sync.Mutex
		clients = make(map[string]*clientLimiter)
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(APIKeyHeader)
			if key == "" {
				key = r.RemoteAddr
			}

			mu.Lock()
			client, ok := clients[key]
			if !ok {
				client = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
				clients[key] = client
			}
			client.lastSeen = time.Now()
			if len(clients) > 1024 {
				for k, c := range clients {
					if time.Since(c.lastSeen) > limiterIdleEviction {
						delete(clients, k)
					}
				}
			}
			mu.Unlock()

			if !client.limiter.Allow() {
				logger.Warn("rate limit exceeded", "remote_addr", r.RemoteAddr)
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
