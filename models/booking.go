package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	GuestID uint `gorm:"index;column:guest_id" json:"guest_id"`
	RoomID  uint `gorm:"index;column:room_id" json:"room_id"`

	ReferenceCode string        `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code,omitempty"`
	Status        BookingStatus `gorm:"column:status;size:32;index" json:"status"`

	// Whole-day values, half-open stay [ArrivalDate, DepartureDate).
	ArrivalDate   time.Time `gorm:"column:arrival_date" json:"arrival_date"`
	DepartureDate time.Time `gorm:"column:departure_date" json:"departure_date"`

	TotalAmount *float64 `gorm:"column:total_amount" json:"total_amount,omitempty"`
	Notes       string   `gorm:"column:notes;type:text" json:"notes,omitempty"`

	CheckedInAt  *time.Time `gorm:"column:checked_in_at" json:"checked_in_at,omitempty"`
	CheckedOutAt *time.Time `gorm:"column:checked_out_at" json:"checked_out_at,omitempty"`

	// Draft list of accompanying companions as supplied at booking time,
	// kept as JSON until check-in collects the real guest records.
	CompanionDraft datatypes.JSON `gorm:"column:companion_draft" json:"companion_draft,omitempty"`

	Guest Guest `gorm:"foreignKey:GuestID;references:ID" json:"guest,omitempty"`
	Room  Room  `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}

// Nights is the length of the half-open stay window in whole days.
func (b *Booking) Nights() int {
	n := int(b.DepartureDate.Sub(b.ArrivalDate).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}

// IsActiveOn reports whether the booking occupies its room on the given day
// under the canonical definition: checked in and inside the stay window.
func (b *Booking) IsActiveOn(day time.Time) bool {
	return b.Status == StatusCheckedIn &&
		!day.Before(b.ArrivalDate) && !day.After(b.DepartureDate)
}
