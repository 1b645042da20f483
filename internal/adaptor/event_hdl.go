package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"arena-hub/internal/dto/request"
	"arena-hub/internal/usecase"
	"arena-hub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type EventHandler struct {
	service usecase.EventService
	log     *zap.Logger
}

func NewEventHandler(service usecase.EventService, log *zap.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		log:     log.With(zap.String("handler", "event")),
	}
}

// ListEvents handles GET /api/events (public)
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.ListEvents(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list events")
		return
	}

	utils.ResponseSuccess(w, "success", events)
}

// GetAvailability handles GET /api/events/{id}/availability (public)
func (h *EventHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	availability, err := h.service.GetAvailability(r.Context(), eventID)
	if err != nil {
		h.handleServiceError(w, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// Register handles POST /api/events/{id}/register (public)
func (h *EventHandler) Register(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	var req request.RegisterEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	registration, err := h.service.Register(r.Context(), eventID, &req)
	if err != nil {
		h.handleServiceError(w, err, "register for event")
		return
	}

	utils.ResponseCreated(w, "success", registration)
}

// ConfirmRegistration handles POST /api/registrations/{registrationId}/confirm (public)
func (h *EventHandler) ConfirmRegistration(w http.ResponseWriter, r *http.Request) {
	registrationID := chi.URLParam(r, "registrationId")
	if registrationID == "" {
		utils.ResponseBadRequest(w, "Registration ID is required", nil)
		return
	}

	var req request.ConfirmRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	registration, err := h.service.ConfirmRegistration(r.Context(), registrationID, &req)
	if err != nil {
		h.handleServiceError(w, err, "confirm registration")
		return
	}

	utils.ResponseSuccess(w, "success", registration)
}

// ==================== ADMIN METHODS ====================

// ListRegistrations handles GET /api/admin/registrations (admin only)
func (h *EventHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	registrations, err := h.service.ListRegistrations(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "list registrations")
		return
	}

	utils.ResponseSuccess(w, "success", registrations)
}

// handleServiceError handles errors untuk event operations
func (h *EventHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, usecase.ErrCapacityExceeded):
		h.log.Warn(operation+" failed - capacity exceeded", zap.Error(err))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, usecase.ErrAllocationContention),
		errors.Is(err, usecase.ErrPaymentDeclined):
		h.log.Warn(operation+" failed - transient", zap.Error(err))
		utils.ResponseRetryable(w, errMsg)

	case errors.Is(err, usecase.ErrUnknownEvent),
		errors.Is(err, usecase.ErrRegistrationNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, usecase.ErrRegistrationClosed),
		errors.Is(err, usecase.ErrHoldExpired):
		h.log.Warn(operation+" failed - "+errMsg, zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"):
		h.log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
