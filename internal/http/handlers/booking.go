package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/servicehub-backend/internal/http/response"
	"github.com/yungbote/servicehub-backend/internal/platform/dbctx"
	"github.com/yungbote/servicehub-backend/internal/platform/logger"
	"github.com/yungbote/servicehub-backend/internal/services"
)

type BookingHandler struct {
	log      *logger.Logger
	bookings services.BookingService
}

func NewBookingHandler(log *logger.Logger, bookings services.BookingService) *BookingHandler {
	return &BookingHandler{log: log.With("handler", "BookingHandler"), bookings: bookings}
}

type createBookingRequest struct {
	ServiceID   FlexID `json:"service_id" binding:"required"`
	UserID      FlexID `json:"user_id" binding:"required"`
	BookingDate string `json:"booking_date"`
}

type updateBookingStatusRequest struct {
	Status string `json:"status"`
}

// POST /bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	b, err := h.bookings.Create(dbctx.Context{Ctx: c.Request.Context()}, req.ServiceID.Int64(), req.UserID.Int64(), req.BookingDate)
	if err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	response.RespondCreated(c, gin.H{"id": b.ID, "message": "Booking created"})
}

// PUT /bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	bookingID, err := pathID(c, "id")
	if err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	var req updateBookingStatusRequest
	if err := bindJSON(c, &req); err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	view, err := h.bookings.UpdateStatus(dbctx.Context{Ctx: c.Request.Context()}, bookingID, req.Status)
	if err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	response.RespondOK(c, view)
}

// GET /bookings/user/:user_id
func (h *BookingHandler) ListByUser(c *gin.Context) {
	userID, err := pathID(c, "user_id")
	if err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	views, err := h.bookings.ListByUser(dbctx.Context{Ctx: c.Request.Context()}, userID)
	if err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	response.RespondOK(c, views)
}

// GET /bookings/provider/:provider_id
func (h *BookingHandler) ListByProvider(c *gin.Context) {
	providerID, err := pathID(c, "provider_id")
	if err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	views, err := h.bookings.ListByProvider(dbctx.Context{Ctx: c.Request.Context()}, providerID)
	if err != nil {
		response.RespondFromError(c, h.log, err)
		return
	}
	response.RespondOK(c, views)
}
