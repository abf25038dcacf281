package model

import (
	"time"
)

type Booking struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"idUser" bson:"user_id" validate:"required,max=100"`
	Username  string    `json:"username" bson:"username" validate:"omitempty,max=50"`
	Price     float64   `json:"price" bson:"price" validate:"min=0"`
	Phone     string    `json:"wa" bson:"wa" validate:"omitempty,max=50"`
	TimeSlot  int       `json:"time" bson:"time_slot" validate:"min=0"`
	Date      time.Time `json:"date" bson:"date" validate:"required"`
	IsPaid    bool      `json:"isBayar" bson:"is_paid"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

// CreateBookingRequest is the body of POST /bookings. Numeric and boolean
// fields are read permissively.
type CreateBookingRequest struct {
	UserID   string     `json:"idUser"`
	Username string     `json:"username"`
	Price    FlexNumber `json:"price"`
	Phone    string     `json:"wa"`
	TimeSlot FlexNumber `json:"time"`
	Date     string     `json:"date"`
	IsPaid   FlexBool   `json:"isBayar"`
}

// BookingFilter is a conjunction of optional predicates. A nil Date or an
// empty UserID matches everything.
type BookingFilter struct {
	Date   *time.Time
	UserID string
}
