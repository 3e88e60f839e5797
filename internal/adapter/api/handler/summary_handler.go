package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/propstack/revenue-summary/internal/adapter/api/middleware"
	"github.com/propstack/revenue-summary/internal/adapter/metrics"
	"github.com/propstack/revenue-summary/internal/domain"
	"github.com/propstack/revenue-summary/internal/usecase"
)

// summaryResponse is the wire shape of a revenue summary. The total is a
// decimal string; it is never re-encoded as a JSON number.
type summaryResponse struct {
	PropertyID        string `json:"property_id"`
	TotalRevenue      string `json:"total_revenue"`
	Currency          string `json:"currency"`
	ReservationsCount int    `json:"reservations_count"`
}

// SummaryHandler handles HTTP requests for the revenue summary endpoint.
type SummaryHandler struct {
	service *usecase.SummaryService
	logger  *slog.Logger
	metrics *metrics.RevenueMetrics
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(service *usecase.SummaryService, logger *slog.Logger, m *metrics.RevenueMetrics) *SummaryHandler {
	return &SummaryHandler{
		service: service,
		logger:  logger,
		metrics: m,
	}
}

// ServeHTTP processes GET requests for a property's revenue summary.
// Validation faults carry caller-actionable detail; security and integrity
// faults are answered with an opaque internal error while the detail stays
// in the server logs.
func (h *SummaryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	propertyID := r.URL.Query().Get("property_id")

	summary, err := h.service.GetSummary(r.Context(), propertyID, identity.TenantID)
	if err != nil {
		h.respondError(w, r, identity, propertyID, err)
		return
	}

	h.countRequest("ok")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(summaryResponse{
		PropertyID:        summary.PropertyID,
		TotalRevenue:      summary.Total.String(),
		Currency:          summary.Currency,
		ReservationsCount: summary.Count,
	})
}

func (h *SummaryHandler) respondError(w http.ResponseWriter, r *http.Request, identity domain.Identity, propertyID string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidPropertyID):
		h.countRequest("invalid_property")
		http.Error(w, "Invalid property_id format", http.StatusBadRequest)
	case errors.Is(err, domain.ErrNoTenant):
		h.countRequest("no_tenant")
		h.logger.Warn("caller has no tenant", "email", identity.Email,
			"request_id", middleware.RequestIDFromContext(r.Context()))
		http.Error(w, "User not associated with a tenant", http.StatusForbidden)
	case errors.Is(err, domain.ErrInvalidTenant), errors.Is(err, domain.ErrTenantMismatch):
		// Security or integrity fault. Full detail is already in the server
		// logs; the caller gets nothing to work with.
		h.countRequest("internal_error")
		h.logger.Error("refused summary request", "property_id", propertyID, "error", err,
			"request_id", middleware.RequestIDFromContext(r.Context()))
		http.Error(w, "Internal error", http.StatusInternalServerError)
	case errors.Is(err, domain.ErrDataSourceUnavailable):
		h.countRequest("internal_error")
		h.logger.Error("data source unavailable", "property_id", propertyID, "error", err)
		http.Error(w, "Failed to retrieve data", http.StatusInternalServerError)
	default:
		h.countRequest("internal_error")
		h.logger.Error("failed to get revenue summary", "property_id", propertyID, "error", err)
		http.Error(w, "Failed to retrieve data", http.StatusInternalServerError)
	}
}

func (h *SummaryHandler) countRequest(status string) {
	if h.metrics != nil {
		h.metrics.RequestsTotal.WithLabelValues(status).Inc()
	}
}
