package models

import (
	"time"

	"gorm.io/gorm"
)

type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Companions reference the primary guest they travel with. A guest
	// without a parent is a primary guest and may hold bookings.
	ParentID *uint  `gorm:"index;column:parent_id" json:"parent_id,omitempty"`
	Parent   *Guest `gorm:"foreignKey:ParentID" json:"-"`

	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`

	DateOfBirth *time.Time `json:"dateOfBirth"`
	Gender      string     `json:"gender"`
	Nationality string     `json:"nationality"`
	Address     string     `json:"address"`

	IDType   string `json:"idType"`
	IDNumber string `json:"idNumber"`

	Companions []Guest `gorm:"foreignKey:ParentID" json:"companions,omitempty"`
}

// IsPrimary reports whether this guest may hold bookings.
func (g *Guest) IsPrimary() bool {
	return g.ParentID == nil
}
