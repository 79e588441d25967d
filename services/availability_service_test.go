package services

import (
	"fmt"
	"testing"
	"time"

	"resort-backend/models"
	"resort-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Admin{},
		&models.Room{},
		&models.Guest{},
		&models.Booking{},
	))
	return db
}

func seedRoom(t *testing.T, db *gorm.DB, designation string) *models.Room {
	t.Helper()
	room := &models.Room{Designation: designation, SingleBeds: 2, Bathrooms: 1, Active: true}
	require.NoError(t, db.Create(room).Error)
	return room
}

func seedGuest(t *testing.T, db *gorm.DB, name string) *models.Guest {
	t.Helper()
	guest := &models.Guest{FullName: name, Email: name + "@example.com"}
	require.NoError(t, db.Create(guest).Error)
	return guest
}

func seedBooking(t *testing.T, db *gorm.DB, guest *models.Guest, room *models.Room, arrival, departure time.Time, status models.BookingStatus) *models.Booking {
	t.Helper()
	booking := &models.Booking{
		GuestID:       guest.ID,
		RoomID:        room.ID,
		ReferenceCode: newReferenceCode(),
		Status:        status,
		ArrivalDate:   utils.Day(arrival),
		DepartureDate: utils.Day(departure),
	}
	require.NoError(t, db.Create(booking).Error)
	return booking
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDatesOverlapSymmetry(t *testing.T) {
	windows := [][2]time.Time{
		{date(2025, 1, 1), date(2025, 1, 5)},
		{date(2025, 1, 3), date(2025, 1, 8)},
		{date(2025, 1, 5), date(2025, 1, 10)},
		{date(2025, 2, 1), date(2025, 2, 2)},
	}
	for _, a := range windows {
		for _, b := range windows {
			assert.Equal(t,
				DatesOverlap(a[0], a[1], b[0], b[1]),
				DatesOverlap(b[0], b[1], a[0], a[1]),
				"overlap must be symmetric for %v vs %v", a, b,
			)
		}
	}
}

func TestDatesOverlapAdjacencyIsNotOverlap(t *testing.T) {
	// checkout on Jan 5, check-in on Jan 5: legal back-to-back turnover
	assert.False(t, DatesOverlap(
		date(2025, 1, 1), date(2025, 1, 5),
		date(2025, 1, 5), date(2025, 1, 10),
	))
	assert.False(t, DatesOverlap(
		date(2025, 1, 5), date(2025, 1, 10),
		date(2025, 1, 1), date(2025, 1, 5),
	))
}

func TestDatesOverlapContainment(t *testing.T) {
	assert.True(t, DatesOverlap(
		date(2025, 1, 1), date(2025, 1, 10),
		date(2025, 1, 3), date(2025, 1, 5),
	))
}

func TestDatesOverlapPartial(t *testing.T) {
	assert.True(t, DatesOverlap(
		date(2025, 1, 1), date(2025, 1, 5),
		date(2025, 1, 4), date(2025, 1, 8),
	))
	assert.False(t, DatesOverlap(
		date(2025, 1, 1), date(2025, 1, 5),
		date(2025, 1, 6), date(2025, 1, 8),
	))
}

func TestDatesOverlapIgnoresWallClock(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	aStart := time.Date(2025, 1, 5, 23, 0, 0, 0, loc)
	// same calendar day as the departure below; still adjacency, not overlap
	assert.False(t, DatesOverlap(
		aStart, date(2025, 1, 10),
		date(2025, 1, 1), date(2025, 1, 5),
	))
}

func TestIsRoomAvailable(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)
	room := seedRoom(t, db, "101")
	guest := seedGuest(t, db, "ana")

	seedBooking(t, db, guest, room, date(2025, 6, 1), date(2025, 6, 5), models.StatusConfirmed)

	free, err := svc.IsRoomAvailable(room.ID, date(2025, 6, 4), date(2025, 6, 8))
	require.NoError(t, err)
	assert.False(t, free)

	free, err = svc.IsRoomAvailable(room.ID, date(2025, 6, 5), date(2025, 6, 8))
	require.NoError(t, err)
	assert.True(t, free)
}

func TestIsRoomAvailableIgnoresCancelled(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)
	room := seedRoom(t, db, "101")
	guest := seedGuest(t, db, "ana")

	seedBooking(t, db, guest, room, date(2025, 6, 1), date(2025, 6, 5), models.StatusCancelled)

	free, err := svc.IsRoomAvailable(room.ID, date(2025, 6, 2), date(2025, 6, 4))
	require.NoError(t, err)
	assert.True(t, free)
}

func TestIsRoomAvailableIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)
	room := seedRoom(t, db, "101")
	guest := seedGuest(t, db, "ana")
	seedBooking(t, db, guest, room, date(2025, 6, 1), date(2025, 6, 5), models.StatusConfirmed)

	first, err := svc.IsRoomAvailable(room.ID, date(2025, 6, 3), date(2025, 6, 6))
	require.NoError(t, err)
	second, err := svc.IsRoomAvailable(room.ID, date(2025, 6, 3), date(2025, 6, 6))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestIsRoomAvailableExclusion(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)
	room := seedRoom(t, db, "101")
	guest := seedGuest(t, db, "ana")
	booking := seedBooking(t, db, guest, room, date(2025, 6, 1), date(2025, 6, 5), models.StatusConfirmed)

	// the booking's own reservation must not count against its update
	free, err := svc.IsRoomAvailableExcluding(room.ID, date(2025, 6, 2), date(2025, 6, 6), booking.ID)
	require.NoError(t, err)
	assert.True(t, free)

	free, err = svc.IsRoomAvailable(room.ID, date(2025, 6, 2), date(2025, 6, 6))
	require.NoError(t, err)
	assert.False(t, free)
}

func TestIsRoomAvailableErrors(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)
	room := seedRoom(t, db, "101")

	_, err := svc.IsRoomAvailable(9999, date(2025, 6, 1), date(2025, 6, 5))
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = svc.IsRoomAvailable(room.ID, date(2025, 6, 5), date(2025, 6, 5))
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.IsRoomAvailable(room.ID, date(2025, 6, 6), date(2025, 6, 5))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestFindAvailableRoomsPartition(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)
	guest := seedGuest(t, db, "ana")

	rooms := make([]*models.Room, 0, 5)
	for i := 1; i <= 5; i++ {
		rooms = append(rooms, seedRoom(t, db, fmt.Sprintf("10%d", i)))
	}

	// two rooms with overlapping bookings for the candidate window
	seedBooking(t, db, guest, rooms[0], date(2025, 7, 1), date(2025, 7, 4), models.StatusConfirmed)
	seedBooking(t, db, guest, rooms[1], date(2025, 6, 30), date(2025, 7, 2), models.StatusCheckedIn)
	// adjacent booking on a third room must not block it
	seedBooking(t, db, guest, rooms[2], date(2025, 7, 3), date(2025, 7, 6), models.StatusConfirmed)

	report, err := svc.FindAvailableRooms(date(2025, 7, 1), date(2025, 7, 3))
	require.NoError(t, err)

	assert.Len(t, report.Available, 3)
	assert.Len(t, report.Unavailable, 2)
	assert.Equal(t, 5, report.Total)
	assert.Equal(t, report.Total, len(report.Available)+len(report.Unavailable))
}

func TestFindAvailableRoomsSkipsInactive(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)
	seedRoom(t, db, "101")
	inactive := seedRoom(t, db, "102")
	require.NoError(t, db.Model(inactive).Update("active", false).Error)

	report, err := svc.FindAvailableRooms(date(2025, 7, 1), date(2025, 7, 3))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Total)
	assert.Len(t, report.Available, 1)
	assert.Equal(t, "101", report.Available[0].Designation)
}

func TestFindAvailableRoomsRejectsBadRange(t *testing.T) {
	db := newTestDB(t)
	svc := NewAvailabilityService(db)

	_, err := svc.FindAvailableRooms(date(2025, 7, 3), date(2025, 7, 1))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}
