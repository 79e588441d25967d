package services

import "errors"

// Sentinel errors surfaced to controllers, which map them to HTTP status
// codes. Tokens are stable and snake_case.
var (
	ErrBookingNotFound = errors.New("booking_not_found")
	ErrRoomNotFound    = errors.New("room_not_found")
	ErrGuestNotFound   = errors.New("guest_not_found")

	ErrInvalidDateRange = errors.New("invalid_date_range")
	ErrArrivalInPast    = errors.New("arrival_in_past")
	ErrRoomUnavailable  = errors.New("room_unavailable")

	ErrCompanionCannotBook = errors.New("companion_cannot_book")
	ErrRoomInactive        = errors.New("room_inactive")
	ErrRoomNeedsBeds       = errors.New("room_needs_beds")
	ErrOperationNotAllowed = errors.New("operation_not_allowed")

	ErrGuestHasBookings   = errors.New("guest_has_bookings")
	ErrGuestHasCompanions = errors.New("guest_has_companions")
	ErrCompanionDepth     = errors.New("companion_of_companion")
)
