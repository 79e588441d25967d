package services

import (
	"testing"

	"resort-backend/models"
	"resort-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomCreateRequiresBeds(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	err := svc.Create(&models.Room{Designation: "101"})
	assert.ErrorIs(t, err, ErrRoomNeedsBeds)

	require.NoError(t, svc.Create(&models.Room{Designation: "101", DoubleBeds: 1, Active: true}))
}

func TestRoomUpdateKeepsBedInvariant(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	room := &models.Room{Designation: "101", SingleBeds: 1, Active: true}
	require.NoError(t, svc.Create(room))

	err := svc.Update(room.ID, map[string]interface{}{"single_beds": float64(0)})
	assert.ErrorIs(t, err, ErrRoomNeedsBeds)

	require.NoError(t, svc.Update(room.ID, map[string]interface{}{
		"single_beds": float64(0),
		"double_beds": float64(2),
	}))

	reloaded, err := svc.GetByID(room.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.DoubleBeds)
	assert.Equal(t, 0, reloaded.SingleBeds)
}

func TestRoomDeleteWithoutHistory(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	room := &models.Room{Designation: "101", SingleBeds: 1, Active: true}
	require.NoError(t, svc.Create(room))

	deactivated, err := svc.Delete(room.ID)
	require.NoError(t, err)
	assert.False(t, deactivated)

	_, err = svc.GetByID(room.ID)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRoomDeleteWithHistoryDeactivates(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)
	room := seedRoom(t, db, "101")
	guest := seedGuest(t, db, "ana")
	seedBooking(t, db, guest, room,
		utils.Today().AddDate(0, 0, -5), utils.Today().AddDate(0, 0, -2), models.StatusCheckedOut)

	deactivated, err := svc.Delete(room.ID)
	require.NoError(t, err)
	assert.True(t, deactivated)

	reloaded, err := svc.GetByID(room.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.Active)
}

func TestTotalBeds(t *testing.T) {
	room := models.Room{SingleBeds: 2, DoubleBeds: 1}
	assert.Equal(t, 3, room.TotalBeds())
}
