package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"roost/internal/bookings/service"
	apperrors "roost/pkg/errors"
	httputil "roost/pkg/http"
	"roost/pkg/logger"
	"roost/pkg/model"

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

// createRequest is the wire form of a booking request. Dates arrive as
// RFC3339 strings and are parsed here so a malformed timestamp is rejected
// before the service ever sees it.
type createRequest struct {
	PropertyID string   `json:"property_id"`
	GuestID    string   `json:"guest_id"`
	CheckIn    string   `json:"check_in"`
	CheckOut   string   `json:"check_out"`
	Guests     int      `json:"guests"`
	Extras     []string `json:"extras"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	checkIn, err := time.Parse(time.RFC3339, req.CheckIn)
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("check_in must be a valid RFC3339 timestamp")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}
	checkOut, err := time.Parse(time.RFC3339, req.CheckOut)
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("check_out must be a valid RFC3339 timestamp")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	booking, err := h.service.Create(r.Context(), &model.BookingRequest{
		PropertyID: req.PropertyID,
		GuestID:    req.GuestID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     req.Guests,
		Extras:     req.Extras,
	})
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
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

func (h *BookingHandler) GetByGuest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	guestID := ps.ByName("guestId")

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByGuest", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	bookings, total, err := h.service.GetByGuest(r.Context(), guestID, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByGuest", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetByGuest", "operation", "WritePaginated", "error", err)
	}
}

func (h *BookingHandler) GetByHost(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	hostID := ps.ByName("hostId")

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByHost", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	bookings, total, err := h.service.GetByHost(r.Context(), hostID, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByHost", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetByHost", "operation", "WritePaginated", "error", err)
	}
}

func (h *BookingHandler) GetPastByGuest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	guestID := ps.ByName("guestId")

	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetPastByGuest", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	bookings, err := h.service.GetPastByGuest(r.Context(), guestID, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetPastByGuest", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "GetPastByGuest", "operation", "WriteSuccess", "error", err)
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *BookingHandler) SetStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	hostID := r.Header.Get("X-Host-ID")
	if hostID == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("X-Host-ID header is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SetStatus", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "SetStatus", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	booking, err := h.service.SetStatus(r.Context(), id, hostID, req.Status)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SetStatus", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "SetStatus", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) MarkReviewed(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	guestID := r.Header.Get("X-Guest-ID")
	if guestID == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("X-Guest-ID header is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "MarkReviewed", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := h.service.MarkReviewed(r.Context(), id, guestID); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "MarkReviewed", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Create)
	router.GET("/api/v1/bookings/id/:id", h.GetByID)
	router.PATCH("/api/v1/bookings/id/:id/status", h.SetStatus)
	router.PATCH("/api/v1/bookings/id/:id/reviewed", h.MarkReviewed)
	router.GET("/api/v1/bookings/guest/:guestId", h.GetByGuest)
	router.GET("/api/v1/bookings/guest/:guestId/past", h.GetPastByGuest)
	router.GET("/api/v1/bookings/host/:hostId", h.GetByHost)
}
