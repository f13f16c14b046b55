package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"stagetime/internal/bookings/service"
	httputil "stagetime/pkg/http"
	"stagetime/pkg/logger"
	"stagetime/pkg/middleware"
	"stagetime/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

// SubmissionResponse pairs the stored pending booking with the advisory
// availability verdict computed at submission time.
type SubmissionResponse struct {
	Booking  *model.Booking           `json:"booking"`
	Advisory *model.AvailabilityCheck `json:"advisory"`
}

func (h *BookingHandler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Submit", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	advisory, err := h.service.Submit(r.Context(), &booking)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Submit", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, SubmissionResponse{Booking: &booking, Advisory: advisory}); err != nil {
		h.log.Error("failed to write created response", "handler", "Submit", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	booking, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	bookings, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *BookingHandler) ListByOwner(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ownerID := ps.ByName("owner_id")

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListByOwner", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	var statuses []model.BookingStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			statuses = append(statuses, model.BookingStatus(strings.TrimSpace(s)))
		}
	}

	bookings, total, err := h.service.ListByOwner(r.Context(), ownerID, statuses, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListByOwner", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "ListByOwner", "operation", "WritePaginated", "error", err)
	}
}

func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	actor := r.Header.Get(middleware.ActorHeader)

	booking, err := h.service.Confirm(r.Context(), id, actor)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Confirm", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Confirm", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Decline(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	actor := r.Header.Get(middleware.ActorHeader)

	booking, err := h.service.Decline(r.Context(), id, actor)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Decline", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Decline", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	actor := r.Header.Get(middleware.ActorHeader)

	booking, err := h.service.Complete(r.Context(), id, actor)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Complete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Complete", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Submit)
	router.GET("/api/v1/bookings", h.GetAll)
	router.GET("/api/v1/bookings/id/:id", h.GetByID)
	router.POST("/api/v1/bookings/id/:id/confirm", h.Confirm)
	router.POST("/api/v1/bookings/id/:id/decline", h.Decline)
	router.POST("/api/v1/bookings/id/:id/complete", h.Complete)
	router.GET("/api/v1/owners/:owner_id/bookings", h.ListByOwner)
}
