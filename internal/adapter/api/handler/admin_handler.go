package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/propstack/revenue-summary/internal/domain"
	"github.com/propstack/revenue-summary/internal/usecase"
)

// AdminHandler handles HTTP requests for cache administration.
type AdminHandler struct {
	service *usecase.SummaryService
	logger  *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service *usecase.SummaryService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{service: service, logger: logger}
}

// HealthCheck is a simple health check endpoint.
func (h *AdminHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// InvalidateTenantCache handles requests to drop every cached summary for
// a tenant. Called by upstream systems when a tenant's underlying
// reservation data changes.
// POST /admin/tenants/{tenantID}/cache/invalidate
func (h *AdminHandler) InvalidateTenantCache(w http.ResponseWriter, r *http.Request) {
	tenantID := r.PathValue("tenantID")

	removed, err := h.service.InvalidateTenant(r.Context(), tenantID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTenant) {
			http.Error(w, "tenantID is required", http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to invalidate tenant cache", "tenant_id", tenantID, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

func (h *AdminHandler) respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode admin response", "error", err)
	}
}
