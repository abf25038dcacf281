package validator

import (
	"errors"
	"strings"
	"testing"
	"time"

	"futsal/pkg/calendar"
	"futsal/pkg/logger"
	"futsal/pkg/model"
	"futsal/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(t *testing.T, err error) []string {
	t.Helper()
	var fieldErrs validation.FieldErrors
	require.True(t, errors.As(err, &fieldErrs), "expected FieldErrors, got %v", err)
	var out []string
	for _, fe := range fieldErrs {
		out = append(out, fe.Field)
	}
	return out
}

func TestValidateRequest(t *testing.T) {
	v := NewBookingValidator(logger.Discard())

	tests := []struct {
		name       string
		req        model.CreateBookingRequest
		wantFields []string
	}{
		{
			name: "complete",
			req: model.CreateBookingRequest{
				Price:    model.FlexNumber{Value: 150000, Set: true},
				TimeSlot: model.FlexNumber{Value: 19, Set: true},
			},
		},
		{
			name:       "missing price and time",
			req:        model.CreateBookingRequest{},
			wantFields: []string{"price", "time"},
		},
		{
			name: "fractional time",
			req: model.CreateBookingRequest{
				Price:    model.FlexNumber{Value: 1, Set: true},
				TimeSlot: model.FlexNumber{Value: 19.5, Set: true},
			},
			wantFields: []string{"time"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateRequest(&tt.req)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantFields, fields(t, err))
		})
	}
}

func TestValidate(t *testing.T) {
	v := NewBookingValidator(logger.Discard())
	valid := func() *model.Booking {
		return &model.Booking{
			UserID:   "u-1",
			Username: "budi",
			Price:    150000,
			Phone:    "+6281234567890",
			TimeSlot: 19,
			Date:     calendar.Day(2025, time.February, 19),
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, v.Validate(valid()))
	})

	t.Run("unparseable phone kept as sent", func(t *testing.T) {
		b := valid()
		b.Phone = "wa: 0812-xx"
		assert.NoError(t, v.Validate(b))
	})

	t.Run("phone is optional", func(t *testing.T) {
		b := valid()
		b.Phone = ""
		assert.NoError(t, v.Validate(b))
	})

	tests := []struct {
		name   string
		mutate func(b *model.Booking)
		field  string
	}{
		{"missing user", func(b *model.Booking) { b.UserID = "" }, "idUser"},
		{"negative price", func(b *model.Booking) { b.Price = -1 }, "price"},
		{"negative time", func(b *model.Booking) { b.TimeSlot = -3 }, "time"},
		{"phone too long", func(b *model.Booking) { b.Phone = strings.Repeat("9", 51) }, "wa"},
		{"zero date", func(b *model.Booking) { b.Date = time.Time{} }, "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := valid()
			tt.mutate(b)
			assert.Equal(t, []string{tt.field}, fields(t, v.Validate(b)))
		})
	}
}
