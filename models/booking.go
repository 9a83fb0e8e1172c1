package models

import (
	"time"

	"github.com/rizfc/restaurant-site/schema"
)

// Booking is a reservation request as stored. Rows are only ever inserted.
type Booking struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);not null" json:"email"`
	Phone     string    `gorm:"type:varchar(50);not null" json:"phone"`
	Date      string    `gorm:"type:varchar(10);not null" json:"date"`
	Time      string    `gorm:"type:varchar(5);not null" json:"time"`
	Guests    int       `gorm:"not null" json:"guests"`
	Message   *string   `gorm:"type:text" json:"message"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Booking) TableName() string {
	return "bookings"
}

// NewBooking maps a draft onto an unsaved row.
func NewBooking(d schema.Draft) Booking {
	return Booking{
		Name:    d.Name,
		Email:   d.Email,
		Phone:   d.Phone,
		Date:    d.Date,
		Time:    d.Time,
		Guests:  d.Guests,
		Message: d.Message,
	}
}

// Draft returns the submitted fields of a stored booking.
func (b Booking) Draft() schema.Draft {
	return schema.Draft{
		Name:    b.Name,
		Email:   b.Email,
		Phone:   b.Phone,
		Date:    b.Date,
		Time:    b.Time,
		Guests:  b.Guests,
		Message: b.Message,
	}
}
