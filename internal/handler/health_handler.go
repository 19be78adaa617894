package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/freerider/customer-registry/internal/repository"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	customerRepo repository.CustomerRepository
	logger       *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(customerRepo repository.CustomerRepository, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:   "healthy",
		Services: make(map[string]string),
	}

	// A cheap read proves the store is reachable
	if _, err := h.customerRepo.Count(ctx); err != nil {
		h.logger.Error("store health check failed", slog.String("error", err.Error()))
		response.Status = "unhealthy"
		response.Services["store"] = "unhealthy"
	} else {
		response.Services["store"] = "healthy"
	}

	if response.Status == "healthy" {
		respondSuccess(w, response)
	} else {
		respondJSON(w, http.StatusServiceUnavailable, response)
	}
}
