package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking records one user's reservation against one car. At most one
// booking may exist per (email, bookId) pair; the bookings collection
// carries a unique compound index enforcing this.
type Booking struct {
	ID     primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Email  string             `json:"email" bson:"email" validate:"required,email"`
	BookID string             `json:"bookId" bson:"bookId" validate:"required,mongodb"`
	// Status is free-form; no transition rules are enforced.
	Status string `json:"status" bson:"status" validate:"omitempty,max=50"`

	// Denormalized listing details for display.
	CarModel    string    `json:"carModel,omitempty" bson:"carModel,omitempty" validate:"omitempty,max=100"`
	Location    string    `json:"location,omitempty" bson:"location,omitempty" validate:"omitempty,max=100"`
	RentalPrice float64   `json:"rentalPrice,omitempty" bson:"rentalPrice,omitempty" validate:"omitempty,gte=0"`
	BookingDate time.Time `json:"bookingDate" bson:"bookingDate"`
}

// StatusUpdate is the payload for the status mutation endpoint.
type StatusUpdate struct {
	Status string `json:"status" validate:"required,max=50"`
}
