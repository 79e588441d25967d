// controllers/booking_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"resort-backend/models"
	"resort-backend/services"
	"resort-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingPayload struct {
	PrimaryID   uint                     `json:"primaryId" binding:"required"`
	RoomID      uint                     `json:"roomId" binding:"required"`
	ArrivalDate string                   `json:"arrivalDate" binding:"required"`
	DepartDate  string                   `json:"departDate" binding:"required"`
	Status      string                   `json:"status,omitempty"`
	TotalAmount *float64                 `json:"totalAmount,omitempty"`
	Notes       string                   `json:"notes,omitempty"`
	Companions  []map[string]interface{} `json:"companions,omitempty"`
	SendEmail   bool                     `json:"sendEmail,omitempty"`
}

type UpdateBookingPayload struct {
	RoomID      *uint    `json:"roomId,omitempty"`
	ArrivalDate *string  `json:"arrivalDate,omitempty"`
	DepartDate  *string  `json:"departDate,omitempty"`
	Status      *string  `json:"status,omitempty"`
	TotalAmount *float64 `json:"totalAmount,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc      *services.BookingService
	AvailabilitySvc *services.AvailabilityService
}

func NewBookingController(bookingSvc *services.BookingService, availabilitySvc *services.AvailabilityService) *BookingController {
	return &BookingController{BookingSvc: bookingSvc, AvailabilitySvc: availabilitySvc}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidId", "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// respondBookingError maps service errors onto the taxonomy: 404 for missing
// records, 409 for availability conflicts, 422 for business-rule violations.
func respondBookingError(c *gin.Context, err error) {
	var transition *models.InvalidTransitionError

	switch {
	case errors.Is(err, services.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.bookingNotFound", "booking not found")
	case errors.Is(err, services.ErrRoomNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.roomNotFound", "room not found")
	case errors.Is(err, services.ErrGuestNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.guestNotFound", "guest not found")
	case errors.Is(err, services.ErrRoomUnavailable):
		utils.JSONError(c, http.StatusConflict, "error.roomUnavailable", "room is not available for the requested dates")
	case errors.Is(err, services.ErrInvalidDateRange):
		utils.JSONError(c, http.StatusUnprocessableEntity, "error.invalidDateRange", "arrival date must be before departure date")
	case errors.Is(err, services.ErrArrivalInPast):
		utils.JSONError(c, http.StatusUnprocessableEntity, "error.arrivalInPast", "arrival date must not be in the past")
	case errors.Is(err, services.ErrCompanionCannotBook):
		utils.JSONError(c, http.StatusUnprocessableEntity, "error.companionCannotBook", "companion guests cannot hold bookings")
	case errors.Is(err, services.ErrRoomInactive):
		utils.JSONError(c, http.StatusUnprocessableEntity, "error.roomInactive", "room is deactivated")
	case errors.Is(err, services.ErrOperationNotAllowed):
		utils.JSONError(c, http.StatusUnprocessableEntity, "error.operationNotAllowed", "operation not allowed for this booking state")
	case errors.As(err, &transition):
		utils.JSONError(c, http.StatusUnprocessableEntity, "error.invalidStatusTransition", transition.Error())
	default:
		log.Printf("booking handler error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "internal server error")
	}
}

// parseStayWindow reads checkIn/checkOut query params as calendar dates.
func parseStayWindow(c *gin.Context) (time.Time, time.Time, bool) {
	checkIn, err := utils.ParseDate(c.Query("checkIn"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidCheckIn", "checkIn must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	checkOut, err := utils.ParseDate(c.Query("checkOut"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidCheckOut", "checkOut must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	return checkIn, checkOut, true
}

// ---------------------------
// CRUD
// ---------------------------

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var payload CreateBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "primaryId, roomId, arrivalDate and departDate are required")
		return
	}

	arrival, err := utils.ParseDate(payload.ArrivalDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidArrivalDate", "arrivalDate must be YYYY-MM-DD")
		return
	}
	departure, err := utils.ParseDate(payload.DepartDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDepartDate", "departDate must be YYYY-MM-DD")
		return
	}

	var status models.BookingStatus
	if payload.Status != "" {
		parsed, ok := models.ParseBookingStatus(payload.Status)
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidStatus", "unknown booking status")
			return
		}
		status = parsed
	}

	booking, err := ctrl.BookingSvc.Create(services.CreateBookingInput{
		GuestID:       payload.PrimaryID,
		RoomID:        payload.RoomID,
		ArrivalDate:   arrival,
		DepartureDate: departure,
		Status:        status,
		TotalAmount:   payload.TotalAmount,
		Notes:         payload.Notes,
		Companions:    payload.Companions,
		SendEmail:     payload.SendEmail,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, "booking created", booking)
}

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	bookings, total, err := ctrl.BookingSvc.List(services.ListParams{
		Page:      page,
		Limit:     limit,
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "bookings retrieved", gin.H{
		"bookings": bookings,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

func (ctrl *BookingController) GetBookingByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.GetByID(id)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "booking retrieved", booking)
}

func (ctrl *BookingController) UpdateBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload UpdateBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidPayload", "invalid update payload")
		return
	}

	input := services.UpdateBookingInput{
		RoomID:      payload.RoomID,
		TotalAmount: payload.TotalAmount,
		Notes:       payload.Notes,
	}
	if payload.ArrivalDate != nil {
		arrival, err := utils.ParseDate(*payload.ArrivalDate)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidArrivalDate", "arrivalDate must be YYYY-MM-DD")
			return
		}
		input.ArrivalDate = &arrival
	}
	if payload.DepartDate != nil {
		departure, err := utils.ParseDate(*payload.DepartDate)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidDepartDate", "departDate must be YYYY-MM-DD")
			return
		}
		input.DepartureDate = &departure
	}
	if payload.Status != nil {
		status, ok := models.ParseBookingStatus(*payload.Status)
		if !ok {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidStatus", "unknown booking status")
			return
		}
		input.Status = &status
	}

	booking, err := ctrl.BookingSvc.Update(id, input)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "booking updated", booking)
}

// DeleteBooking cancels by default; ?hard=true removes the record. Both are
// refused for checked-out bookings.
func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if c.Query("hard") == "true" {
		if err := ctrl.BookingSvc.Delete(id); err != nil {
			respondBookingError(c, err)
			return
		}
		utils.JSONSuccess(c, http.StatusOK, "booking deleted", nil)
		return
	}

	booking, err := ctrl.BookingSvc.Cancel(id)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "booking cancelled", booking)
}

// ---------------------------
// Lifecycle transitions
// ---------------------------

func (ctrl *BookingController) transitionHandler(op func(uint) (*models.Booking, error), message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		booking, err := op(id)
		if err != nil {
			respondBookingError(c, err)
			return
		}
		utils.JSONSuccess(c, http.StatusOK, message, booking)
	}
}

func (ctrl *BookingController) ConfirmBooking() gin.HandlerFunc {
	return ctrl.transitionHandler(ctrl.BookingSvc.Confirm, "booking confirmed")
}

func (ctrl *BookingController) CheckInBooking() gin.HandlerFunc {
	return ctrl.transitionHandler(ctrl.BookingSvc.CheckIn, "guest checked in")
}

func (ctrl *BookingController) CheckOutBooking() gin.HandlerFunc {
	return ctrl.transitionHandler(ctrl.BookingSvc.CheckOut, "guest checked out")
}

func (ctrl *BookingController) CancelBooking() gin.HandlerFunc {
	return ctrl.transitionHandler(ctrl.BookingSvc.Cancel, "booking cancelled")
}

func (ctrl *BookingController) MarkNoShow() gin.HandlerFunc {
	return ctrl.transitionHandler(ctrl.BookingSvc.MarkNoShow, "booking marked as no-show")
}

// ---------------------------
// Availability
// ---------------------------

func (ctrl *BookingController) FleetAvailability(c *gin.Context) {
	checkIn, checkOut, ok := parseStayWindow(c)
	if !ok {
		return
	}
	report, err := ctrl.AvailabilitySvc.FindAvailableRooms(checkIn, checkOut)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "availability computed", report)
}

func (ctrl *BookingController) RoomAvailability(c *gin.Context) {
	roomID, ok := parseIDParam(c, "roomId")
	if !ok {
		return
	}
	checkIn, checkOut, ok := parseStayWindow(c)
	if !ok {
		return
	}

	var available bool
	var err error
	if raw := c.Query("excludeBookingId"); raw != "" {
		exclude, parseErr := strconv.ParseUint(raw, 10, 64)
		if parseErr != nil {
			utils.JSONError(c, http.StatusBadRequest, "error.invalidId", "excludeBookingId must be a positive integer")
			return
		}
		available, err = ctrl.AvailabilitySvc.IsRoomAvailableExcluding(roomID, checkIn, checkOut, uint(exclude))
	} else {
		available, err = ctrl.AvailabilitySvc.IsRoomAvailable(roomID, checkIn, checkOut)
	}
	if err != nil {
		respondBookingError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, "availability computed", gin.H{
		"roomId":    roomID,
		"checkIn":   utils.FormatDate(checkIn),
		"checkOut":  utils.FormatDate(checkOut),
		"available": available,
	})
}

// ---------------------------
// Derived listings
// ---------------------------

func (ctrl *BookingController) ActiveBookings(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.Active()
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "active bookings retrieved", bookings)
}

func (ctrl *BookingController) UpcomingBookings(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.Upcoming()
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "upcoming bookings retrieved", bookings)
}

func (ctrl *BookingController) PastBookings(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.Past()
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "past bookings retrieved", bookings)
}

func (ctrl *BookingController) BookingsByStatus(c *gin.Context) {
	status, ok := models.ParseBookingStatus(c.Param("status"))
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidStatus", "unknown booking status")
		return
	}
	bookings, err := ctrl.BookingSvc.ByStatus(status)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "bookings retrieved", bookings)
}
