package services

import (
	"errors"
	"fmt"

	"resort-backend/models"
	"resort-backend/utils"

	"gorm.io/gorm"
)

type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

// Create inserts a guest. Companions must reference an existing primary
// guest; chains of companions are not allowed.
func (s *GuestService) Create(guest *models.Guest) error {
	if guest.ParentID != nil {
		var parent models.Guest
		if err := s.DB.First(&parent, *guest.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGuestNotFound
			}
			return fmt.Errorf("db error checking parent guest: %w", err)
		}
		if !parent.IsPrimary() {
			return ErrCompanionDepth
		}
	}
	return s.DB.Create(guest).Error
}

func (s *GuestService) GetAll() ([]models.Guest, error) {
	var guests []models.Guest
	err := s.DB.Preload("Companions").Order("id DESC").Find(&guests).Error
	return guests, err
}

func (s *GuestService) GetByID(id uint) (*models.Guest, error) {
	var guest models.Guest
	if err := s.DB.Preload("Companions").First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return &guest, nil
}

func (s *GuestService) Companions(id uint) ([]models.Guest, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}
	var companions []models.Guest
	err := s.DB.Where("parent_id = ?", id).Order("id ASC").Find(&companions).Error
	return companions, err
}

func (s *GuestService) Update(guest *models.Guest) error {
	if _, err := s.GetByID(guest.ID); err != nil {
		return err
	}
	return s.DB.Model(&models.Guest{}).Where("id = ?", guest.ID).Updates(guest).Error
}

// Delete enforces explicit preconditions instead of cascading: a guest with
// companions, or with bookings that are still active or upcoming, is not
// deletable.
func (s *GuestService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	var companionCount int64
	if err := s.DB.Model(&models.Guest{}).Where("parent_id = ?", id).Count(&companionCount).Error; err != nil {
		return fmt.Errorf("failed to count companions: %w", err)
	}
	if companionCount > 0 {
		return ErrGuestHasCompanions
	}

	today := utils.Today()
	var liveBookings int64
	err := s.DB.Model(&models.Booking{}).
		Where("guest_id = ?", id).
		Where(
			s.DB.Where("status = ? AND arrival_date <= ? AND departure_date >= ?",
				models.StatusCheckedIn, today, today).
				Or("arrival_date > ? AND status IN ?", today,
					[]models.BookingStatus{models.StatusPending, models.StatusConfirmed}),
		).
		Count(&liveBookings).Error
	if err != nil {
		return fmt.Errorf("failed to count bookings for guest %d: %w", id, err)
	}
	if liveBookings > 0 {
		return ErrGuestHasBookings
	}

	return s.DB.Delete(&models.Guest{}, id).Error
}
