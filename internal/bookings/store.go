package bookings

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Store keeps bookings in memory, keyed by user subject. First-seen users
// are seeded with the sample history so the app has content without
// persistent storage.
type Store struct {
	mu     sync.RWMutex
	byUser map[string]map[string]*Booking
}

func NewStore() *Store {
	return &Store{byUser: make(map[string]map[string]*Booking)}
}

// List returns copies of the user's bookings, newest first.
func (s *Store) List(sub string) []Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	bookings := s.ensure(sub)

	out := make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, *b)
	}
	sortByCreatedDesc(out)
	return out
}

// Get returns a copy of one booking of the user.
func (s *Store) Get(sub, id string) (Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.ensure(sub)[id]
	if !ok {
		return Booking{}, fmt.Errorf("booking %s: %w", id, ErrNotFound)
	}
	return *b, nil
}

// Put inserts or replaces a booking of the user.
func (s *Store) Put(sub string, b Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensure(sub)[b.ID] = &b
}

// SetStatus transitions a booking of the user to the given status.
func (s *Store) SetStatus(sub, id string, status Status) (Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.ensure(sub)[id]
	if !ok {
		return Booking{}, fmt.Errorf("booking %s: %w", id, ErrNotFound)
	}
	b.Status = status
	return *b, nil
}

// ensure returns the user's booking map, seeding samples on first access.
// Callers must hold the write lock.
func (s *Store) ensure(sub string) map[string]*Booking {
	if m, ok := s.byUser[sub]; ok {
		return m
	}
	m := make(map[string]*Booking, len(sampleBookings))
	for _, b := range sampleBookings {
		seeded := b
		m[seeded.ID] = &seeded
	}
	s.byUser[sub] = m
	return m
}

func sortByCreatedDesc(bookings []Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
}

// sampleBookings mirrors the demo history every new user starts with.
var sampleBookings = []Booking{
	{
		ID:        "BK001",
		HotelID:   1,
		Hotel:     "The Savoy London",
		Location:  "London, England",
		Room:      "Deluxe Room",
		CheckIn:   "2025-12-20",
		CheckOut:  "2025-12-23",
		Guests:    2,
		Nights:    3,
		Subtotal:  747,
		Tax:       149.4,
		Total:     896.4,
		Status:    StatusConfirmed,
		CreatedAt: time.Date(2025, time.November, 2, 10, 15, 0, 0, time.UTC),
	},
	{
		ID:        "BK002",
		HotelID:   3,
		Hotel:     "Llyod House Country Resort",
		Location:  "Cotswolds, England",
		Room:      "Executive Suite",
		CheckIn:   "2026-01-10",
		CheckOut:  "2026-01-12",
		Guests:    3,
		Nights:    2,
		Subtotal:  898,
		Tax:       179.6,
		Total:     1077.6,
		Status:    StatusPending,
		CreatedAt: time.Date(2025, time.October, 18, 16, 40, 0, 0, time.UTC),
	},
	{
		ID:        "BK003",
		HotelID:   5,
		Hotel:     "Portmeirion Hotel",
		Location:  "North Wales, Wales",
		Room:      "Standard Room",
		CheckIn:   "2025-03-15",
		CheckOut:  "2025-03-22",
		Guests:    2,
		Nights:    7,
		Subtotal:  1043,
		Tax:       208.6,
		Total:     1251.6,
		Status:    StatusCompleted,
		CreatedAt: time.Date(2025, time.February, 1, 9, 5, 0, 0, time.UTC),
	},
	{
		ID:        "BK004",
		HotelID:   4,
		Hotel:     "The Peninsula Manchester",
		Location:  "Manchester, England",
		Room:      "Deluxe Room",
		CheckIn:   "2025-02-01",
		CheckOut:  "2025-02-03",
		Guests:    1,
		Nights:    2,
		Subtotal:  498,
		Tax:       99.6,
		Total:     597.6,
		Status:    StatusCancelled,
		CreatedAt: time.Date(2025, time.January, 12, 20, 30, 0, 0, time.UTC),
	},
}
