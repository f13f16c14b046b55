package handler

import (
	"encoding/json"
	"net/http"

	"stagetime/internal/availability/service"
	apperrors "stagetime/pkg/errors"
	httputil "stagetime/pkg/http"
	"stagetime/pkg/logger"
	"stagetime/pkg/middleware"
	"stagetime/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type AvailabilityHandler struct {
	service service.AvailabilityService
	log     *logger.Logger
}

func NewAvailabilityHandler(service service.AvailabilityService, log *logger.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
		log:     log,
	}
}

// requireOwner ensures the caller acting via X-Actor-ID is the owner of the
// schedule being written. Reads are open.
func (h *AvailabilityHandler) requireOwner(w http.ResponseWriter, r *http.Request, ownerID string) bool {
	actor := r.Header.Get(middleware.ActorHeader)
	if actor == "" || actor != ownerID {
		if writeErr := httputil.WriteError(w, apperrors.Forbidden("Only the schedule owner may modify unavailability")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "requireOwner", "operation", "WriteError", "error", writeErr)
		}
		return false
	}
	return true
}

func (h *AvailabilityHandler) Set(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ownerID := ps.ByName("owner_id")
	date := ps.ByName("date")

	if !h.requireOwner(w, r, ownerID) {
		return
	}

	var spec model.UnavailabilitySpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Set", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	entries, err := h.service.SetUnavailability(r.Context(), ownerID, date, &spec)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Set", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, entries); err != nil {
		h.log.Error("failed to write success response", "handler", "Set", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) Clear(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ownerID := ps.ByName("owner_id")
	date := ps.ByName("date")

	if !h.requireOwner(w, r, ownerID) {
		return
	}

	if _, err := h.service.ClearDate(r.Context(), ownerID, date); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Clear", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *AvailabilityHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ownerID := ps.ByName("owner_id")
	date := ps.ByName("date")

	day, err := h.service.GetUnavailability(r.Context(), ownerID, date)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Get", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, day); err != nil {
		h.log.Error("failed to write success response", "handler", "Get", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) ListDates(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ownerID := ps.ByName("owner_id")
	query := r.URL.Query()
	from := query.Get("from")
	to := query.Get("to")

	if from == "" || to == "" {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Both 'from' and 'to' query parameters are required",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "ListDates", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	dates, err := h.service.ListUnavailableDates(r.Context(), ownerID, from, to)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListDates", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, dates); err != nil {
		h.log.Error("failed to write success response", "handler", "ListDates", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) Check(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ownerID := ps.ByName("owner_id")
	date := ps.ByName("date")
	query := r.URL.Query()

	check, err := h.service.CheckAvailability(r.Context(), ownerID, date, query.Get("start_time"), query.Get("end_time"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Check", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, check); err != nil {
		h.log.Error("failed to write success response", "handler", "Check", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AvailabilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.PUT("/api/v1/owners/:owner_id/unavailability/:date", h.Set)
	router.DELETE("/api/v1/owners/:owner_id/unavailability/:date", h.Clear)
	router.GET("/api/v1/owners/:owner_id/unavailability/:date", h.Get)
	router.GET("/api/v1/owners/:owner_id/unavailability", h.ListDates)
	router.GET("/api/v1/owners/:owner_id/availability/:date", h.Check)
}
