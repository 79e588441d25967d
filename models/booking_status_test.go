package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCheckedIn, false},
		{StatusConfirmed, StatusCheckedIn, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusCheckedOut, false},
		{StatusCheckedIn, StatusCheckedOut, true},
		{StatusCheckedIn, StatusCancelled, false},
		{StatusCheckedOut, StatusCheckedIn, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusNoShow, StatusConfirmed, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"_to_"+string(tc.to), func(t *testing.T) {
			got, err := tc.from.Transition(tc.to)
			if tc.allowed {
				require.NoError(t, err)
				assert.Equal(t, tc.to, got)
				return
			}
			require.Error(t, err)
			var transition *InvalidTransitionError
			require.True(t, errors.As(err, &transition))
			assert.Equal(t, tc.from, transition.From)
			assert.Equal(t, tc.to, transition.To)
			assert.Equal(t, tc.from, got)
		})
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusCheckedIn.IsTerminal())
	assert.True(t, StatusCheckedOut.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
}

func TestParseBookingStatus(t *testing.T) {
	for raw, want := range map[string]BookingStatus{
		"CONFIRMED":   StatusConfirmed,
		"confirmed":   StatusConfirmed,
		"checked-in":  StatusCheckedIn,
		"checked_in":  StatusCheckedIn,
		"Checked Out": StatusCheckedOut,
		"no-show":     StatusNoShow,
		" pending ":   StatusPending,
	} {
		got, ok := ParseBookingStatus(raw)
		require.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}

	_, ok := ParseBookingStatus("checked")
	assert.False(t, ok)
	_, ok = ParseBookingStatus("")
	assert.False(t, ok)
}

func TestOccupies(t *testing.T) {
	assert.True(t, StatusPending.Occupies())
	assert.True(t, StatusConfirmed.Occupies())
	assert.True(t, StatusCheckedIn.Occupies())
	assert.True(t, StatusCheckedOut.Occupies())
	assert.True(t, StatusNoShow.Occupies())
	assert.False(t, StatusCancelled.Occupies())
}
