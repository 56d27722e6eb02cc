package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/glowbook/salon-api/internal/domain/booking"
	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/httpresp"
	"github.com/glowbook/salon-api/internal/middleware"
	ucBooking "github.com/glowbook/salon-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC *ucBooking.CreateBooking
	listUC   *ucBooking.ListBookings
	cancelUC *ucBooking.CancelBooking
	statusUC *ucBooking.UpdateBookingStatus
	deleteUC *ucBooking.DeleteBooking
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	listUC *ucBooking.ListBookings,
	cancelUC *ucBooking.CancelBooking,
	statusUC *ucBooking.UpdateBookingStatus,
	deleteUC *ucBooking.DeleteBooking,
) *BookingHandler {
	return &BookingHandler{
		createUC: createUC,
		listUC:   listUC,
		cancelUC: cancelUC,
		statusUC: statusUC,
		deleteUC: deleteUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ServiceID       uint   `json:"service_id" binding:"required"`
	AestheticianID  uint   `json:"aesthetician_id" binding:"required"`
	AppointmentDate string `json:"appointment_date" binding:"required"`
	AppointmentTime string `json:"appointment_time" binding:"required"`
	ClientNote      string `json:"client_note"`
}

type UpdateBookingStatusRequest struct {
	Status           string  `json:"status" binding:"required"`
	AestheticianNote *string `json:"aesthetician_note"`
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	f := domain.ListFilters{
		Status:   c.Query("status"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}
	if id, ok := queryUint(c, "client_id"); ok {
		f.ClientID = &id
	}
	if id, ok := queryUint(c, "aesthetician_id"); ok {
		f.AestheticianID = &id
	}

	bookings, err := h.listUC.Execute(c.Request.Context(), actor, f)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.Items(c, bookings)
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "invalid_request", "Invalid booking payload.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), actor, ucBooking.CreateBookingInput{
		ServiceID:       req.ServiceID,
		AestheticianID:  req.AestheticianID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		ClientNote:      req.ClientNote,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(201, gin.H{"booking": b})
}

// ======================================================
// CANCEL (client, own pending booking)
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	id, ok := paramUint(c, "id")
	if !ok {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	b, err := h.cancelUC.Execute(c.Request.Context(), actor, id)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(200, gin.H{"booking": b})
}

// ======================================================
// UPDATE STATUS (admin / aesthetician)
// ======================================================

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	id, ok := paramUint(c, "id")
	if !ok {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "invalid_request", "Invalid status payload.")
		return
	}

	b, err := h.statusUC.Execute(c.Request.Context(), actor, ucBooking.UpdateBookingStatusInput{
		BookingID:        id,
		Status:           req.Status,
		AestheticianNote: req.AestheticianNote,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(200, gin.H{"booking": b})
}

// ======================================================
// DELETE (admin, unconditional)
// ======================================================

func (h *BookingHandler) Delete(c *gin.Context) {
	actor := middleware.ActorFrom(c)

	id, ok := paramUint(c, "id")
	if !ok {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), actor, id); err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(200, gin.H{"message": "Booking deleted."})
}

// ======================================================
// ERROR MAPPING
// ======================================================

var bookingErrorMessages = map[string]string{
	"only_clients_can_book":            "Only clients can create bookings.",
	"service_not_found":                "Selected service does not exist or is not active.",
	"aesthetician_not_found":           "Selected aesthetician does not exist.",
	"invalid_date":                     "Appointment date must be a valid date (YYYY-MM-DD).",
	"same_day_not_allowed":             "Booking must be for tomorrow or later. Same-day bookings are not allowed.",
	"invalid_time":                     "Appointment time must be in HH:MM format.",
	"client_slot_taken":                "You already have a booking at this date & time.",
	"aesthetician_slot_taken":          "This aesthetician already has an approved or completed appointment at this date & time. Please select a different time slot or aesthetician.",
	"cannot_cancel_booking":            "You cannot cancel this booking.",
	"only_pending_cancellable":         "Only pending bookings can be cancelled.",
	"status_change_forbidden":          "Only admin or aesthetician can change status.",
	"not_your_booking":                 "You can only manage your own bookings.",
	"invalid_status":                   "Unknown booking status.",
	"booking_locked":                   "This booking can no longer be changed.",
	"must_be_approved_first":           "Pending bookings must be approved before completion.",
	"expired_is_automatic":             "Expired is set automatically when the date passes.",
	"approved_only_complete_or_cancel": "Approved bookings can only be completed or cancelled.",
	"only_admin_can_delete":            "Only admin can delete bookings.",
	"booking_not_found":                "Booking not found.",
}

func writeBookingError(c *gin.Context, err error) {
	code := httperr.BusinessCode(err)
	msg, known := bookingErrorMessages[code]
	if !known {
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	switch code {
	case "only_clients_can_book", "cannot_cancel_booking", "status_change_forbidden",
		"not_your_booking", "only_admin_can_delete":
		httperr.Forbidden(c, code, msg)
	case "booking_not_found":
		httperr.NotFound(c, code, msg)
	default:
		httperr.Unprocessable(c, code, msg)
	}
}

// ======================================================
// PARAM HELPERS
// ======================================================

func paramUint(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

func queryUint(c *gin.Context, name string) (uint, bool) {
	v := c.Query(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}
