package events

import (
	"context"
	"time"

	"rentwheels/pkg/kafka"
	"rentwheels/pkg/logger"
	"rentwheels/pkg/model"
)

const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"

	eventSource = "rentwheels-api"
)

// BookingCreatedEvent is the payload published after a booking is stored.
type BookingCreatedEvent struct {
	BookingID   string    `json:"bookingId"`
	Email       string    `json:"email"`
	CarID       string    `json:"carId"`
	CarModel    string    `json:"carModel,omitempty"`
	Status      string    `json:"status"`
	BookingDate time.Time `json:"bookingDate"`
}

// BookingStatusChangedEvent is the payload published after a status update.
type BookingStatusChangedEvent struct {
	BookingID string `json:"bookingId"`
	Email     string `json:"email"`
	Status    string `json:"status"`
}

// Publisher emits booking lifecycle events. A nil Publisher is valid and
// drops every event, so callers never branch on whether eventing is enabled.
type Publisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewPublisher(producer *kafka.Producer, log *logger.Logger) *Publisher {
	if producer == nil {
		return nil
	}
	return &Publisher{
		producer: producer,
		log:      log,
	}
}

func (p *Publisher) BookingCreated(ctx context.Context, booking *model.Booking) {
	if p == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(booking.Email).
		WithEventType(EventBookingCreated).
		WithSource(eventSource).
		WithValue(BookingCreatedEvent{
			BookingID:   booking.ID.Hex(),
			Email:       booking.Email,
			CarID:       booking.BookID,
			CarModel:    booking.CarModel,
			Status:      booking.Status,
			BookingDate: booking.BookingDate,
		}).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Warn("Failed to publish booking created event",
			"booking_id", booking.ID.Hex(),
			"error", err,
		)
	}
}

func (p *Publisher) BookingStatusChanged(ctx context.Context, booking *model.Booking) {
	if p == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(booking.Email).
		WithEventType(EventBookingStatusChanged).
		WithSource(eventSource).
		WithValue(BookingStatusChangedEvent{
			BookingID: booking.ID.Hex(),
			Email:     booking.Email,
			Status:    booking.Status,
		}).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Warn("Failed to publish booking status event",
			"booking_id", booking.ID.Hex(),
			"error", err,
		)
	}
}
