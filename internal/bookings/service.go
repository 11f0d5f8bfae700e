package bookings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stayfinder/stayfinder/internal/config"
	"github.com/stayfinder/stayfinder/internal/hotels"
	"github.com/stayfinder/stayfinder/internal/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// taxRate is applied to the room subtotal at checkout.
const taxRate = 0.20

// CheckoutRequest is the payload for creating a booking.
type CheckoutRequest struct {
	HotelID  int    `json:"hotel_id"`
	RoomID   int    `json:"room_id"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Guests   int    `json:"guests"`
}

// Service owns the booking lifecycle for all users.
type Service struct {
	store        *Store
	catalog      *hotels.Catalog
	paymentDelay time.Duration
	now          func() time.Time
}

func NewService(cfg *config.Config, catalog *hotels.Catalog) *Service {
	return &Service{
		store:        NewStore(),
		catalog:      catalog,
		paymentDelay: cfg.Bookings.PaymentDelay,
		now:          time.Now,
	}
}

// List returns the user's bookings, optionally narrowed to one status.
func (s *Service) List(_ context.Context, sub string, status Status) ([]Booking, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	all := s.store.List(sub)
	if status == "" {
		return all, nil
	}
	out := make([]Booking, 0, len(all))
	for _, b := range all {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

// Get returns one booking of the user.
func (s *Service) Get(_ context.Context, sub, id string) (Booking, error) {
	return s.store.Get(sub, id)
}

// Checkout validates the request, simulates the payment step and stores a
// confirmed booking. A cancelled context aborts before anything is stored.
func (s *Service) Checkout(ctx context.Context, sub string, req CheckoutRequest) (Booking, error) {
	hotel, err := s.catalog.Get(req.HotelID)
	if err != nil {
		return Booking{}, fmt.Errorf("%w: unknown hotel %d", ErrInvalidInput, req.HotelID)
	}
	room, err := s.catalog.Room(req.HotelID, req.RoomID)
	if err != nil {
		return Booking{}, fmt.Errorf("%w: unknown room %d", ErrInvalidInput, req.RoomID)
	}

	nights, err := nightsBetween(req.CheckIn, req.CheckOut)
	if err != nil {
		return Booking{}, err
	}
	if req.Guests < 1 || req.Guests > room.Capacity {
		return Booking{}, fmt.Errorf("%w: room sleeps at most %d guests", ErrInvalidInput, room.Capacity)
	}

	if err := s.processPayment(ctx); err != nil {
		return Booking{}, err
	}

	subtotal := float64(nights * room.PricePerNight)
	tax := subtotal * taxRate
	booking := Booking{
		ID:        newBookingID(),
		HotelID:   hotel.ID,
		Hotel:     hotel.Name,
		Location:  hotel.Location,
		Room:      room.Name,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Guests:    req.Guests,
		Nights:    nights,
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     subtotal + tax,
		Status:    StatusConfirmed,
		CreatedAt: s.now(),
	}
	s.store.Put(sub, booking)

	logger.Info("Booking confirmed",
		zap.String("booking_id", booking.ID),
		zap.String("hotel", booking.Hotel),
		zap.Int("nights", booking.Nights),
	)
	return booking, nil
}

// Cancel transitions a Confirmed or Pending booking to Cancelled.
func (s *Service) Cancel(_ context.Context, sub, id string) (Booking, error) {
	b, err := s.store.Get(sub, id)
	if err != nil {
		return Booking{}, err
	}
	if b.Status != StatusConfirmed && b.Status != StatusPending {
		return Booking{}, fmt.Errorf("%w: status is %s", ErrNotCancellable, b.Status)
	}
	return s.store.SetStatus(sub, id, StatusCancelled)
}

// processPayment stands in for a payment gateway: it only waits, honouring
// request cancellation.
func (s *Service) processPayment(ctx context.Context) error {
	if s.paymentDelay <= 0 {
		return nil
	}
	select {
	case <-time.After(s.paymentDelay):
		return nil
	case <-ctx.Done():
		return fmt.Errorf("payment aborted: %w", ctx.Err())
	}
}

func nightsBetween(checkIn, checkOut string) (int, error) {
	in, err := time.Parse(dateLayout, checkIn)
	if err != nil {
		return 0, fmt.Errorf("%w: check_in must be formatted %s", ErrInvalidInput, dateLayout)
	}
	out, err := time.Parse(dateLayout, checkOut)
	if err != nil {
		return 0, fmt.Errorf("%w: check_out must be formatted %s", ErrInvalidInput, dateLayout)
	}
	nights := int(out.Sub(in).Hours() / 24)
	if nights < 1 {
		return 0, fmt.Errorf("%w: check_out must be after check_in", ErrInvalidInput)
	}
	return nights, nil
}

func newBookingID() string {
	return "BK-" + strings.ToUpper(uuid.NewString()[:8])
}

// Module provides the booking dependencies
var Module = fx.Module("bookings",
	fx.Provide(
		NewService,
		NewHandler,
	),
)
