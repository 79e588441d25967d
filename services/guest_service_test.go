package services

import (
	"testing"

	"resort-backend/models"
	"resort-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestCreateCompanion(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)
	primary := seedGuest(t, db, "ana")

	companion := &models.Guest{FullName: "bruno", ParentID: &primary.ID}
	require.NoError(t, svc.Create(companion))
	assert.False(t, companion.IsPrimary())

	// companion chains are rejected
	grandchild := &models.Guest{FullName: "caio", ParentID: &companion.ID}
	assert.ErrorIs(t, svc.Create(grandchild), ErrCompanionDepth)

	missing := uint(9999)
	orphan := &models.Guest{FullName: "dora", ParentID: &missing}
	assert.ErrorIs(t, svc.Create(orphan), ErrGuestNotFound)
}

func TestGuestCompanionsListing(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)
	primary := seedGuest(t, db, "ana")
	require.NoError(t, svc.Create(&models.Guest{FullName: "bruno", ParentID: &primary.ID}))
	require.NoError(t, svc.Create(&models.Guest{FullName: "caio", ParentID: &primary.ID}))

	companions, err := svc.Companions(primary.ID)
	require.NoError(t, err)
	assert.Len(t, companions, 2)

	_, err = svc.Companions(9999)
	assert.ErrorIs(t, err, ErrGuestNotFound)
}

func TestGuestDeletePreconditions(t *testing.T) {
	db := newTestDB(t)
	svc := NewGuestService(db)
	room := seedRoom(t, db, "101")
	primary := seedGuest(t, db, "ana")

	companion := &models.Guest{FullName: "bruno", ParentID: &primary.ID}
	require.NoError(t, svc.Create(companion))

	assert.ErrorIs(t, svc.Delete(primary.ID), ErrGuestHasCompanions)
	require.NoError(t, svc.Delete(companion.ID))

	// upcoming booking blocks deletion
	seedBooking(t, db, primary, room,
		utils.Today().AddDate(0, 0, 3), utils.Today().AddDate(0, 0, 6), models.StatusConfirmed)
	assert.ErrorIs(t, svc.Delete(primary.ID), ErrGuestHasBookings)

	// a finished stay does not
	require.NoError(t, db.Model(&models.Booking{}).Where("guest_id = ?", primary.ID).
		Updates(map[string]interface{}{"status": models.StatusCheckedOut}).Error)
	require.NoError(t, svc.Delete(primary.ID))
}
