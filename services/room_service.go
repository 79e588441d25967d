package services

import (
	"errors"
	"fmt"
	"strings"

	"resort-backend/models"

	"gorm.io/gorm"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func (s *RoomService) Create(room *models.Room) error {
	room.Designation = strings.TrimSpace(room.Designation)
	if room.TotalBeds() < 1 {
		return ErrRoomNeedsBeds
	}
	return s.DB.Create(room).Error
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Order("designation ASC").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (s *RoomService) Update(id uint, updates map[string]interface{}) error {
	room, err := s.GetByID(id)
	if err != nil {
		return err
	}

	// keep the bed invariant when either count changes
	single, double := room.SingleBeds, room.DoubleBeds
	if v, ok := intField(updates, "singleBeds", "single_beds"); ok {
		single = v
	}
	if v, ok := intField(updates, "doubleBeds", "double_beds"); ok {
		double = v
	}
	if single+double < 1 {
		return ErrRoomNeedsBeds
	}

	return s.DB.Model(&models.Room{}).Where("id = ?", id).Updates(updates).Error
}

// Delete removes a room without booking history; with history it deactivates
// instead, so past stays keep a valid room reference.
func (s *RoomService) Delete(id uint) (deactivated bool, err error) {
	if _, err := s.GetByID(id); err != nil {
		return false, err
	}

	var bookingCount int64
	if err := s.DB.Model(&models.Booking{}).Where("room_id = ?", id).Count(&bookingCount).Error; err != nil {
		return false, fmt.Errorf("failed to count bookings for room %d: %w", id, err)
	}

	if bookingCount > 0 {
		if err := s.DB.Model(&models.Room{}).Where("id = ?", id).Update("active", false).Error; err != nil {
			return false, fmt.Errorf("failed to deactivate room %d: %w", id, err)
		}
		return true, nil
	}

	if err := s.DB.Delete(&models.Room{}, id).Error; err != nil {
		return false, fmt.Errorf("failed to delete room %d: %w", id, err)
	}
	return false, nil
}

func intField(m map[string]interface{}, keys ...string) (int, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			switch n := v.(type) {
			case float64:
				return int(n), true
			case int:
				return n, true
			}
		}
	}
	return 0, false
}
