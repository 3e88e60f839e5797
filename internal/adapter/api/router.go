package api

import (
	"log/slog"
	"net/http"

	"github.com/propstack/revenue-summary/internal/adapter/api/handler"
	"github.com/propstack/revenue-summary/internal/adapter/api/middleware"
	"github.com/propstack/revenue-summary/internal/adapter/metrics"
	"github.com/propstack/revenue-summary/internal/domain"
	"github.com/propstack/revenue-summary/internal/pkg/config"
	"github.com/propstack/revenue-summary/internal/usecase"
)

// NewRouter creates and configures the main HTTP router for the summary
// service.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	identityRepo domain.IdentityRepository,
	service *usecase.SummaryService,
	m *metrics.RevenueMetrics,
) http.Handler {
	mux := http.NewServeMux()

	summaryHandler := handler.NewSummaryHandler(service, logger, m)

	// Middleware
	authMiddleware := middleware.Auth(identityRepo, logger)
	rateLimitMiddleware := middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)

	// Routes
	mux.Handle("GET /v1/dashboard/summary", rateLimitMiddleware(authMiddleware(summaryHandler)))

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return mux
}
