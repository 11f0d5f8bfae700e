// Package bookings manages booking history and checkout. Bookings live in
// an in-memory store seeded with sample data; checkout simulates the
// payment step with a configurable delay before confirming.
package bookings

import (
	"errors"
	"time"
)

// Sentinel errors returned by the service. Handlers translate them to
// HTTP statuses.
var (
	ErrNotFound       = errors.New("booking not found")
	ErrInvalidInput   = errors.New("invalid booking request")
	ErrNotCancellable = errors.New("booking cannot be cancelled")
)

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusConfirmed Status = "Confirmed"
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// dateLayout is the wire format for check-in and check-out dates.
const dateLayout = "2006-01-02"

// Booking is one reservation belonging to a user.
type Booking struct {
	ID        string    `json:"id"`
	HotelID   int       `json:"hotel_id"`
	Hotel     string    `json:"hotel"`
	Location  string    `json:"location"`
	Room      string    `json:"room"`
	CheckIn   string    `json:"check_in"`
	CheckOut  string    `json:"check_out"`
	Guests    int       `json:"guests"`
	Nights    int       `json:"nights"`
	Subtotal  float64   `json:"subtotal"`
	Tax       float64   `json:"tax"`
	Total     float64   `json:"total"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
