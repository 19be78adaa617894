package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/freerider/customer-registry/internal/service"
)

// CustomerHandler handles customer HTTP requests
type CustomerHandler struct {
	customerService service.CustomerService
	logger          *slog.Logger
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService service.CustomerService, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		logger:          logger,
	}
}

// ListCustomers handles GET /customers
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	views, err := h.customerService.List(r.Context())
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, views)
}

// GetCustomer handles GET /customers/{id}
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := extractIDFromPath(r.URL.Path, "/customers/")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid customer ID")
		return
	}

	view, err := h.customerService.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, view)
}

// CreateCustomers handles POST /customers.
// The body is an array of raw customer objects. The whole batch is
// rejected with 400 (carrying the malformed entries) or 409 (carrying
// the conflicting entries); a clean batch is saved and answered with
// 201 and an empty array.
func (h *CustomerHandler) CreateCustomers(w http.ResponseWriter, r *http.Request) {
	var payloads []service.Payload
	if err := json.NewDecoder(r.Body).Decode(&payloads); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON format")
		return
	}
	if payloads == nil {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "Request body must be a JSON array")
		return
	}

	result, err := h.customerService.CreateBatch(r.Context(), payloads)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	if len(result.Malformed) > 0 {
		respondJSON(w, http.StatusBadRequest, result.Malformed)
		return
	}
	if len(result.Conflicts) > 0 {
		respondJSON(w, http.StatusConflict, result.Conflicts)
		return
	}

	respondCreated(w, []service.Payload{})
}

// UpdateCustomers handles PUT /customers. Updates are currently accepted
// without being applied.
func (h *CustomerHandler) UpdateCustomers(w http.ResponseWriter, r *http.Request) {
	var payloads []service.Payload
	if err := json.NewDecoder(r.Body).Decode(&payloads); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON format")
		return
	}

	if err := h.customerService.UpdateBatch(r.Context(), payloads); err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondAccepted(w)
}

// DeleteCustomer handles DELETE /customers/{id}
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := extractIDFromPath(r.URL.Path, "/customers/")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid customer ID")
		return
	}

	if err := h.customerService.Delete(r.Context(), id); err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondAccepted(w)
}

// extractIDFromPath extracts numeric ID from URL path
func extractIDFromPath(path, prefix string) (int64, error) {
	// Remove prefix to get ID part
	idPart := path[len(prefix):]

	// Find the end of the ID (before any slash)
	for i, c := range idPart {
		if c == '/' {
			idPart = idPart[:i]
			break
		}
	}

	return strconv.ParseInt(idPart, 10, 64)
}
