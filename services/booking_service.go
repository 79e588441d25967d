// services/booking_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"resort-backend/models"
	"resort-backend/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService guards every mutation of the booking store: creation and
// date/room changes re-validate availability, status changes go through the
// lifecycle transition table, and nothing is written before all
// preconditions pass.
type BookingService struct {
	DB           *gorm.DB
	Availability *AvailabilityService
}

func NewBookingService(db *gorm.DB, availability *AvailabilityService) *BookingService {
	return &BookingService{DB: db, Availability: availability}
}

// CreateBookingInput carries the already-parsed payload of POST /bookings.
type CreateBookingInput struct {
	GuestID       uint
	RoomID        uint
	ArrivalDate   time.Time
	DepartureDate time.Time
	Status        models.BookingStatus // empty means CONFIRMED
	TotalAmount   *float64
	Notes         string
	Companions    []map[string]interface{}
	SendEmail     bool
}

// UpdateBookingInput carries the partial payload of PUT /bookings/:id.
// Nil fields keep their current values.
type UpdateBookingInput struct {
	RoomID        *uint
	ArrivalDate   *time.Time
	DepartureDate *time.Time
	Status        *models.BookingStatus
	TotalAmount   *float64
	Notes         *string
}

// ListParams controls pagination and ordering of booking listings.
type ListParams struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}

var sortableColumns = map[string]string{
	"created_at":     "bookings.created_at",
	"arrival_date":   "bookings.arrival_date",
	"departure_date": "bookings.departure_date",
	"status":         "bookings.status",
	"reference_code": "bookings.reference_code",
}

func newReferenceCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "BK-" + strings.ToUpper(raw[:8])
}

// lockRoomRow loads the room inside the transaction, holding a row lock on
// dialects that support it so the check-then-write pair for one room is a
// single critical section. Different rooms lock independently. The sqlite
// test dialect has a single writer and needs no lock clause.
func lockRoomRow(tx *gorm.DB, roomID uint) (*models.Room, error) {
	q := tx
	if tx.Dialector.Name() == "mysql" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var room models.Room
	if err := q.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("db error locking room %d: %w", roomID, err)
	}
	return &room, nil
}

// Create validates every precondition, then checks availability and writes
// the booking inside one per-room critical section.
func (s *BookingService) Create(input CreateBookingInput) (*models.Booking, error) {
	var guest models.Guest
	if err := s.DB.First(&guest, input.GuestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, fmt.Errorf("db error checking guest %d: %w", input.GuestID, err)
	}
	if !guest.IsPrimary() {
		return nil, ErrCompanionCannotBook
	}

	arrival := utils.Day(input.ArrivalDate)
	departure := utils.Day(input.DepartureDate)
	if !arrival.Before(departure) {
		return nil, ErrInvalidDateRange
	}
	if arrival.Before(utils.Today()) {
		return nil, ErrArrivalInPast
	}

	status := input.Status
	if status == "" {
		status = models.StatusConfirmed
	}
	if status != models.StatusConfirmed && status != models.StatusPending {
		return nil, ErrOperationNotAllowed
	}

	var companionJSON datatypes.JSON
	if len(input.Companions) > 0 {
		raw, err := json.Marshal(input.Companions)
		if err != nil {
			return nil, fmt.Errorf("failed to encode companion list: %w", err)
		}
		companionJSON = datatypes.JSON(raw)
	}

	var booking models.Booking
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		room, err := lockRoomRow(tx, input.RoomID)
		if err != nil {
			return err
		}
		if !room.Active {
			return ErrRoomInactive
		}

		free, err := roomAvailable(tx, room.ID, arrival, departure, 0)
		if err != nil {
			return err
		}
		if !free {
			return ErrRoomUnavailable
		}

		booking = models.Booking{
			GuestID:        guest.ID,
			RoomID:         room.ID,
			ReferenceCode:  newReferenceCode(),
			Status:         status,
			ArrivalDate:    arrival,
			DepartureDate:  departure,
			TotalAmount:    input.TotalAmount,
			Notes:          input.Notes,
			CompanionDraft: companionJSON,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if input.SendEmail && strings.TrimSpace(guest.Email) != "" {
		var room models.Room
		_ = s.DB.First(&room, booking.RoomID).Error
		if mailErr := utils.SendBookingConfirmationEmail(
			guest.Email,
			guest.FullName,
			booking.ReferenceCode,
			room.Designation,
			utils.FormatDate(arrival),
			utils.FormatDate(departure),
		); mailErr != nil {
			log.Printf("warning: confirmation email for booking %d failed: %v", booking.ID, mailErr)
		}
	}

	if err := s.DB.Preload("Guest").Preload("Room").First(&booking, booking.ID).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// Update applies a partial update. A room or date change re-runs the
// availability check excluding the booking's own reservation, inside the
// same per-room critical section used by Create.
func (s *BookingService) Update(id uint, input UpdateBookingInput) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking %d: %w", id, err)
	}

	if booking.Status.IsTerminal() {
		return nil, ErrOperationNotAllowed
	}

	effRoom := booking.RoomID
	if input.RoomID != nil {
		effRoom = *input.RoomID
	}
	effArrival := utils.Day(booking.ArrivalDate)
	if input.ArrivalDate != nil {
		effArrival = utils.Day(*input.ArrivalDate)
	}
	effDeparture := utils.Day(booking.DepartureDate)
	if input.DepartureDate != nil {
		effDeparture = utils.Day(*input.DepartureDate)
	}
	if !effArrival.Before(effDeparture) {
		return nil, ErrInvalidDateRange
	}

	placementChanged := effRoom != booking.RoomID ||
		!effArrival.Equal(utils.Day(booking.ArrivalDate)) ||
		!effDeparture.Equal(utils.Day(booking.DepartureDate))

	updates := map[string]interface{}{}
	if input.RoomID != nil {
		updates["room_id"] = *input.RoomID
	}
	if input.ArrivalDate != nil {
		updates["arrival_date"] = effArrival
	}
	if input.DepartureDate != nil {
		updates["departure_date"] = effDeparture
	}
	if input.TotalAmount != nil {
		updates["total_amount"] = *input.TotalAmount
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if input.Status != nil && *input.Status != booking.Status {
		next, err := booking.Status.Transition(*input.Status)
		if err != nil {
			return nil, err
		}
		updates["status"] = next
		now := time.Now().UTC()
		switch next {
		case models.StatusCheckedIn:
			updates["checked_in_at"] = now
		case models.StatusCheckedOut:
			updates["checked_out_at"] = now
		}
	}

	if len(updates) == 0 {
		return s.GetByID(id)
	}

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if placementChanged {
			room, err := lockRoomRow(tx, effRoom)
			if err != nil {
				return err
			}
			if effRoom != booking.RoomID && !room.Active {
				return ErrRoomInactive
			}
			free, err := roomAvailable(tx, effRoom, effArrival, effDeparture, booking.ID)
			if err != nil {
				return err
			}
			if !free {
				return ErrRoomUnavailable
			}
		}
		if err := tx.Model(&booking).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update booking %d: %w", id, err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.GetByID(id)
}

// transition loads the booking and applies one guarded status change.
func (s *BookingService) transition(id uint, target models.BookingStatus) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking %d: %w", id, err)
	}

	next, err := booking.Status.Transition(target)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"status": next}
	now := time.Now().UTC()
	switch next {
	case models.StatusCheckedIn:
		updates["checked_in_at"] = now
	case models.StatusCheckedOut:
		updates["checked_out_at"] = now
	}

	if err := s.DB.Model(&booking).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to persist status change: %w", err)
	}
	return s.GetByID(id)
}

func (s *BookingService) Confirm(id uint) (*models.Booking, error) {
	return s.transition(id, models.StatusConfirmed)
}

func (s *BookingService) CheckIn(id uint) (*models.Booking, error) {
	return s.transition(id, models.StatusCheckedIn)
}

func (s *BookingService) CheckOut(id uint) (*models.Booking, error) {
	return s.transition(id, models.StatusCheckedOut)
}

func (s *BookingService) MarkNoShow(id uint) (*models.Booking, error) {
	return s.transition(id, models.StatusNoShow)
}

// Cancel transitions to CANCELLED. Checked-out bookings are refused outright;
// other illegal sources surface the transition error.
func (s *BookingService) Cancel(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking %d: %w", id, err)
	}
	if booking.Status == models.StatusCheckedOut {
		return nil, ErrOperationNotAllowed
	}
	return s.transition(id, models.StatusCancelled)
}

// Delete removes the record. Checked-out bookings hold audit history and
// cannot be deleted.
func (s *BookingService) Delete(id uint) error {
	var booking models.Booking
	if err := s.DB.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to load booking %d: %w", id, err)
	}
	if booking.Status == models.StatusCheckedOut {
		return ErrOperationNotAllowed
	}
	if err := s.DB.Delete(&booking).Error; err != nil {
		return fmt.Errorf("failed to delete booking %d: %w", id, err)
	}
	return nil
}

func (s *BookingService) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Guest").Preload("Room").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to retrieve booking %d: %w", id, err)
	}
	return &booking, nil
}

// List returns one page of bookings plus the unpaged total.
func (s *BookingService) List(params ListParams) ([]models.Booking, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 20
	}
	if params.Limit > 100 {
		params.Limit = 100
	}

	q := s.DB.Model(&models.Booking{})

	if search := strings.TrimSpace(params.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Joins("JOIN guests ON guests.id = bookings.guest_id").
			Where("LOWER(bookings.reference_code) LIKE ? OR LOWER(guests.full_name) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	column, ok := sortableColumns[strings.TrimSpace(params.SortBy)]
	if !ok {
		column = "bookings.created_at"
	}
	direction := "DESC"
	if strings.EqualFold(params.SortOrder, "asc") {
		direction = "ASC"
	}

	var bookings []models.Booking
	err := q.
		Preload("Guest").
		Preload("Room").
		Order(column + " " + direction).
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return bookings, total, nil
}

// Active lists bookings currently occupying a room: checked in and inside
// the stay window. This definition is applied everywhere "active" appears.
func (s *BookingService) Active() ([]models.Booking, error) {
	today := utils.Today()
	var bookings []models.Booking
	err := s.DB.
		Preload("Guest").Preload("Room").
		Where("status = ? AND arrival_date <= ? AND departure_date >= ?", models.StatusCheckedIn, today, today).
		Order("arrival_date ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve active bookings: %w", err)
	}
	return bookings, nil
}

// Upcoming lists not-yet-started stays still expected to happen.
func (s *BookingService) Upcoming() ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.
		Preload("Guest").Preload("Room").
		Where("arrival_date > ? AND status IN ?", utils.Today(),
			[]models.BookingStatus{models.StatusPending, models.StatusConfirmed}).
		Order("arrival_date ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve upcoming bookings: %w", err)
	}
	return bookings, nil
}

// Past lists stays that have ended, by window or by checkout.
func (s *BookingService) Past() ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.
		Preload("Guest").Preload("Room").
		Where("departure_date < ? OR status = ?", utils.Today(), models.StatusCheckedOut).
		Order("departure_date DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve past bookings: %w", err)
	}
	return bookings, nil
}

// ByStatus filters on one lifecycle state.
func (s *BookingService) ByStatus(status models.BookingStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.
		Preload("Guest").Preload("Room").
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings by status: %w", err)
	}
	return bookings, nil
}
