package services

import (
	"errors"
	"fmt"
	"time"

	"resort-backend/models"
	"resort-backend/utils"

	"gorm.io/gorm"
)

// DatesOverlap reports whether two half-open stay windows [aStart, aEnd) and
// [bStart, bEnd) share at least one night. A departure on day D never
// conflicts with an arrival on day D, so back-to-back turnover is legal.
// Inputs are normalized to calendar dates before comparison; wall-clock or
// timezone components never influence the result.
func DatesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	aS, aE := utils.Day(aStart), utils.Day(aEnd)
	bS, bE := utils.Day(bStart), utils.Day(bEnd)
	return aS.Before(bE) && bS.Before(aE)
}

// AvailabilityReport partitions the active fleet for a candidate stay window.
type AvailabilityReport struct {
	Available   []models.Room `json:"available"`
	Unavailable []models.Room `json:"unavailable"`
	Total       int           `json:"total"`
}

// AvailabilityService answers "is this room free" and "which rooms are free"
// questions. All operations are read-only.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// roomAvailable runs the availability scan on the given handle so the booking
// guard can reuse it inside its transaction. excludeBookingID = 0 means no
// exclusion; a non-zero id removes that booking from consideration, which is
// how updates avoid conflicting with their own prior reservation.
func roomAvailable(tx *gorm.DB, roomID uint, arrival, departure time.Time, excludeBookingID uint) (bool, error) {
	arrival, departure = utils.Day(arrival), utils.Day(departure)
	if !arrival.Before(departure) {
		return false, ErrInvalidDateRange
	}

	var room models.Room
	if err := tx.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrRoomNotFound
		}
		return false, fmt.Errorf("db error checking room %d: %w", roomID, err)
	}

	q := tx.Where("room_id = ? AND status <> ?", roomID, models.StatusCancelled)
	if excludeBookingID != 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}

	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return false, fmt.Errorf("failed to load bookings for room %d: %w", roomID, err)
	}

	for _, bk := range bookings {
		if DatesOverlap(arrival, departure, bk.ArrivalDate, bk.DepartureDate) {
			return false, nil
		}
	}
	return true, nil
}

// IsRoomAvailable reports whether the room is free for the candidate window.
func (s *AvailabilityService) IsRoomAvailable(roomID uint, arrival, departure time.Time) (bool, error) {
	return roomAvailable(s.DB, roomID, arrival, departure, 0)
}

// IsRoomAvailableExcluding is the update-time variant: the given booking's
// own reservation is ignored during the scan.
func (s *AvailabilityService) IsRoomAvailableExcluding(roomID uint, arrival, departure time.Time, excludeBookingID uint) (bool, error) {
	return roomAvailable(s.DB, roomID, arrival, departure, excludeBookingID)
}

// FindAvailableRooms partitions every active room into available and
// unavailable sets for the candidate window.
//
// This scans per room, O(rooms x bookings-per-room). For larger fleets the
// overlap test belongs in a single indexed range query; same answer, fewer
// round trips.
func (s *AvailabilityService) FindAvailableRooms(arrival, departure time.Time) (*AvailabilityReport, error) {
	arrival, departure = utils.Day(arrival), utils.Day(departure)
	if !arrival.Before(departure) {
		return nil, ErrInvalidDateRange
	}

	var rooms []models.Room
	if err := s.DB.Where("active = ?", true).Order("designation ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}

	report := &AvailabilityReport{
		Available:   []models.Room{},
		Unavailable: []models.Room{},
		Total:       len(rooms),
	}
	for _, room := range rooms {
		free, err := roomAvailable(s.DB, room.ID, arrival, departure, 0)
		if err != nil {
			return nil, err
		}
		if free {
			report.Available = append(report.Available, room)
		} else {
			report.Unavailable = append(report.Unavailable, room)
		}
	}
	return report, nil
}
