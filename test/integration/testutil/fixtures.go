//go:build integration

package testutil

import (
	"fmt"
	"sync/atomic"
	"time"
)

var sequence atomic.Int64

// UserBuilder builds POST /users bodies with a unique username and phone.
type UserBuilder struct {
	body map[string]any
}

func NewUserBuilder() *UserBuilder {
	n := sequence.Add(1)
	return &UserBuilder{
		body: map[string]any{
			"username":     fmt.Sprintf("player%d", n),
			"password":     "secret123",
			"wa":           fmt.Sprintf("0812%08d", n),
			"namaLapangan": "Lapangan Garuda",
		},
	}
}

func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.body["username"] = username
	return b
}

func (b *UserBuilder) WithPhone(phone string) *UserBuilder {
	b.body["wa"] = phone
	return b
}

func (b *UserBuilder) WithRole(role string) *UserBuilder {
	b.body["role"] = role
	return b
}

func (b *UserBuilder) Build() map[string]any {
	return b.body
}

// BookingBuilder builds POST /bookings bodies. Values are sent the way the
// web client sends them, as strings.
type BookingBuilder struct {
	body map[string]any
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		body: map[string]any{
			"price":   "150000",
			"time":    "19",
			"date":    time.Now().AddDate(0, 0, 1).Format(time.DateOnly),
			"isBayar": "false",
		},
	}
}

func (b *BookingBuilder) WithUser(id, username string) *BookingBuilder {
	b.body["idUser"] = id
	b.body["username"] = username
	return b
}

func (b *BookingBuilder) WithDate(date string) *BookingBuilder {
	b.body["date"] = date
	return b
}

func (b *BookingBuilder) WithTimeSlot(slot string) *BookingBuilder {
	b.body["time"] = slot
	return b
}

func (b *BookingBuilder) Build() map[string]any {
	return b.body
}
