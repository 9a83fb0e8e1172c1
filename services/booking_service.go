package services

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/rizfc/restaurant-site/models"
	"github.com/rizfc/restaurant-site/schema"
	"gorm.io/gorm"
)

// DefaultFailureMessage is shown when a store error has no better description.
const DefaultFailureMessage = "Failed to create booking"

// BookingService is the only writer of the bookings table.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// CreateBooking inserts one row for the draft and returns it with the
// generated id and createdAt. The draft is expected to be validated already.
func (s *BookingService) CreateBooking(ctx context.Context, d schema.Draft) (models.Booking, error) {
	booking := models.NewBooking(d)
	if err := s.DB.WithContext(ctx).Create(&booking).Error; err != nil {
		return models.Booking{}, fmt.Errorf("failed to create booking: %w", err)
	}
	return booking, nil
}

// Describe turns a store error into a message that is safe to show a visitor.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var myErr *mysql.MySQLError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "The booking service took too long to respond, please try again"
	case errors.Is(err, context.Canceled):
		return "The booking request was cancelled"
	case errors.Is(err, mysql.ErrInvalidConn), errors.Is(err, driver.ErrBadConn):
		return "Could not reach the booking store, please try again"
	case errors.As(err, &myErr):
		switch myErr.Number {
		case 1406:
			return "One of the booking fields is too long"
		case 1048:
			return "A required booking field is missing"
		case 1040, 1203:
			return "The booking service is busy, please try again"
		}
	}
	return DefaultFailureMessage
}
