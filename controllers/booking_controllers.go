package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/rizfc/restaurant-site/metrics"
	"github.com/rizfc/restaurant-site/middlewares"
	"github.com/rizfc/restaurant-site/models"
	"github.com/rizfc/restaurant-site/schema"
	"github.com/rizfc/restaurant-site/services"
	"github.com/rizfc/restaurant-site/utils"
)

// BookingCreator stores one booking per call.
type BookingCreator interface {
	CreateBooking(ctx context.Context, d schema.Draft) (models.Booking, error)
}

type BookingController struct {
	Bookings BookingCreator
	Metrics  *metrics.Metrics
}

func NewBookingController(bookings BookingCreator, m *metrics.Metrics) *BookingController {
	return &BookingController{Bookings: bookings, Metrics: m}
}

// CreateBooking -> POST /api/bookings
// Every valid submission is stored as a new row, identical resubmissions included.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var draft schema.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		bc.reject(c, metrics.ReasonInvalid, schema.FromDecodeError(err))
		return
	}

	draft = schema.Normalize(draft)
	if err := schema.Validate(draft); err != nil {
		bc.reject(c, metrics.ReasonInvalid, err)
		return
	}

	booking, err := bc.Bookings.CreateBooking(c.Request.Context(), draft)
	if err != nil {
		utils.ErrorLogger.WithFields(logrus.Fields{
			"request_id": middlewares.GetRequestID(c),
		}).Errorf("Failed to store booking: %v", err)
		bc.Metrics.BookingsRejected.WithLabelValues(metrics.ReasonStore).Inc()
		utils.RespondMessage(c, http.StatusBadRequest, services.Describe(err))
		return
	}

	bc.Metrics.BookingsCreated.Inc()
	utils.InfoLogger.WithFields(logrus.Fields{
		"request_id": middlewares.GetRequestID(c),
		"booking_id": booking.ID,
		"date":       booking.Date,
		"time":       booking.Time,
		"guests":     booking.Guests,
	}).Info("New booking created")

	c.JSON(http.StatusCreated, booking)
}

func (bc *BookingController) reject(c *gin.Context, reason string, err error) {
	bc.Metrics.BookingsRejected.WithLabelValues(reason).Inc()
	utils.InfoLogger.WithFields(logrus.Fields{
		"request_id": middlewares.GetRequestID(c),
	}).Infof("Booking rejected: %v", err)
	utils.RespondError(c, http.StatusBadRequest, err)
}
