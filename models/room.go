package models

import (
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	Designation string `json:"designation" gorm:"column:designation;uniqueIndex;type:varchar(100)"`

	SingleBeds int `json:"singleBeds" gorm:"column:single_beds;default:0"`
	DoubleBeds int `json:"doubleBeds" gorm:"column:double_beds;default:0"`
	Bathrooms  int `json:"bathrooms" gorm:"column:bathrooms;default:1"`

	AirConditioning bool `json:"airConditioning" gorm:"column:air_conditioning;default:false"`
	ParkingSpaces   int  `json:"parkingSpaces" gorm:"column:parking_spaces;default:0"`

	// Rooms with booking history are deactivated, never deleted.
	Active bool `json:"active" gorm:"column:active;default:true"`

	Floor       string  `json:"floor" gorm:"type:varchar(10)"`
	Price       float64 `json:"price"`
	Description string  `json:"description" gorm:"type:text"`
}

// TotalBeds counts every bed in the room. Every bookable room has at least one.
func (r *Room) TotalBeds() int {
	return r.SingleBeds + r.DoubleBeds
}
