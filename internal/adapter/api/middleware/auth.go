package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/propstack/revenue-summary/internal/domain"
)

const APIKeyHeader = "X-API-Key"

type contextKey string

const identityContextKey contextKey = "identity"

// Auth is a middleware factory that returns a new authentication
// middleware. It resolves the X-API-Key header to a caller identity and
// stores it in the request context. It does not require the identity to
// carry a tenant; that decision belongs to the handlers.
func Auth(repo domain.IdentityRepository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get(APIKeyHeader)
			if apiKey == "" {
				logger.Warn("API key missing from request", "remote_addr", r.RemoteAddr)
				http.Error(w, "Unauthorized: API key required", http.StatusUnauthorized)
				return
			}

			identity, ok, err := repo.Lookup(r.Context(), apiKey)
			if err != nil {
				logger.Error("failed to look up API key", "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			if !ok {
				logger.Warn("invalid API key provided", "remote_addr", r.RemoteAddr)
				http.Error(w, "Unauthorized: Invalid API key", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the authenticated caller identity stored by
// the Auth middleware.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(domain.Identity)
	return identity, ok
}
