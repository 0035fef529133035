package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CarOwner identifies the user who published a listing. The email is the
// identity compared by the ownership guard.
type CarOwner struct {
	Name  string `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,max=100"`
	Email string `json:"email" bson:"email" validate:"required,email"`
}

type Car struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Model        string             `json:"model" bson:"model" validate:"required,min=1,max=100"`
	Location     string             `json:"location" bson:"location" validate:"required,min=1,max=100"`
	RentalPrice  float64            `json:"rentalPrice" bson:"rentalPrice" validate:"required,gt=0"`
	Description  string             `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=2000"`
	ImageURL     string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty" validate:"omitempty,url"`
	Availability string             `json:"availability,omitempty" bson:"availability,omitempty" validate:"omitempty,max=50"`
	Date         time.Time          `json:"date" bson:"date"`
	UserDetails  CarOwner           `json:"userDetails" bson:"userDetails"`
	// BookingCount tracks bookings made against this car. It is only ever
	// incremented; cancellations do not decrement it.
	BookingCount int64 `json:"booking_count" bson:"booking_count" validate:"omitempty,gte=0"`
}
