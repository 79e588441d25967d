package models

import (
	"fmt"
	"strings"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending    BookingStatus = "PENDING"
	StatusConfirmed  BookingStatus = "CONFIRMED"
	StatusCheckedIn  BookingStatus = "CHECKED_IN"
	StatusCheckedOut BookingStatus = "CHECKED_OUT"
	StatusCancelled  BookingStatus = "CANCELLED"
	StatusNoShow     BookingStatus = "NO_SHOW"
)

// legalTransitions is the full transition table. A status missing from the
// map is terminal.
var legalTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn: {StatusCheckedOut},
}

// InvalidTransitionError reports an attempted illegal status change.
type InvalidTransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid_status_transition: %s -> %s", e.From, e.To)
}

// ParseBookingStatus normalizes a wire value ("checked-in", "checked_in",
// "Checked In") to a known status.
func ParseBookingStatus(raw string) (BookingStatus, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusCheckedOut, StatusCancelled, StatusNoShow:
		return BookingStatus(s), true
	}
	return "", false
}

// CanTransitionTo reports whether moving to next is legal from s.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range legalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition returns next if the change is legal, otherwise an
// *InvalidTransitionError carrying both states.
func (s BookingStatus) Transition(next BookingStatus) (BookingStatus, error) {
	if !s.CanTransitionTo(next) {
		return s, &InvalidTransitionError{From: s, To: next}
	}
	return next, nil
}

// IsTerminal reports whether no further transitions exist.
func (s BookingStatus) IsTerminal() bool {
	return len(legalTransitions[s]) == 0
}

// Occupies reports whether a booking in this status still holds its room,
// i.e. must be counted by availability checks. Only cancelled bookings
// release their dates.
func (s BookingStatus) Occupies() bool {
	return s != StatusCancelled
}
