package api

import (
	"log/slog"
	"net/http"

	"github.com/propstack/revenue-summary/internal/adapter/api/handler"
	"github.com/propstack/revenue-summary/internal/usecase"
)

// NewAdminRouter creates the router for the administrative API, served on
// the internal admin port next to the Prometheus metrics.
func NewAdminRouter(service *usecase.SummaryService, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	adminHandler := handler.NewAdminHandler(service, logger)

	mux.HandleFunc("GET /admin/health", adminHandler.HealthCheck)
	mux.HandleFunc("POST /admin/tenants/{tenantID}/cache/invalidate", adminHandler.InvalidateTenantCache)

	return mux
}
