// Package hotels serves the read-only hotel and room catalog. The data is a
// compiled-in fixture set: nothing here is created, mutated or destroyed at
// runtime.
package hotels

import (
	"errors"
	"fmt"
	"strings"

	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var rawCatalog []byte

// ErrNotFound indicates an unknown hotel or room id
var ErrNotFound = errors.New("not found")

type Hotel struct {
	ID            int      `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Location      string   `json:"location" yaml:"location"`
	Description   string   `json:"description" yaml:"description"`
	Rating        float64  `json:"rating" yaml:"rating"`
	Reviews       int      `json:"reviews" yaml:"reviews"`
	PricePerNight int      `json:"price_per_night" yaml:"price_per_night"`
	Image         string   `json:"image" yaml:"image"`
	Amenities     []string `json:"amenities" yaml:"amenities"`
	RoomCount     int      `json:"room_count" yaml:"room_count"`
}

type Room struct {
	ID            int      `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Capacity      int      `json:"capacity" yaml:"capacity"`
	Beds          string   `json:"beds" yaml:"beds"`
	SizeSqFt      int      `json:"size_sqft" yaml:"size_sqft"`
	PricePerNight int      `json:"price_per_night" yaml:"price_per_night"`
	Amenities     []string `json:"amenities" yaml:"amenities"`
	Available     int      `json:"available" yaml:"available"`
}

// Filter narrows the hotel listing.
type Filter struct {
	Location  string
	Guests    int
	MinRating float64
}

// Catalog answers hotel and room lookups from the embedded fixture set.
// Every hotel offers the same room types, as the sample data does.
type Catalog struct {
	hotels []Hotel
	rooms  []Room
	byID   map[int]Hotel
	maxCap int
}

func NewCatalog() (*Catalog, error) {
	var doc struct {
		Hotels []Hotel `yaml:"hotels"`
		Rooms  []Room  `yaml:"rooms"`
	}
	if err := yaml.Unmarshal(rawCatalog, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(doc.Hotels) == 0 || len(doc.Rooms) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	c := &Catalog{
		hotels: doc.Hotels,
		rooms:  doc.Rooms,
		byID:   make(map[int]Hotel, len(doc.Hotels)),
	}
	for _, h := range doc.Hotels {
		c.byID[h.ID] = h
	}
	for _, r := range doc.Rooms {
		if r.Capacity > c.maxCap {
			c.maxCap = r.Capacity
		}
	}
	return c, nil
}

// List returns the hotels matching the filter, in catalog order.
func (c *Catalog) List(f Filter) []Hotel {
	out := make([]Hotel, 0, len(c.hotels))
	for _, h := range c.hotels {
		if f.Location != "" && !strings.Contains(strings.ToLower(h.Location), strings.ToLower(f.Location)) {
			continue
		}
		if f.Guests > c.maxCap {
			continue
		}
		if h.Rating < f.MinRating {
			continue
		}
		out = append(out, h)
	}
	return out
}

func (c *Catalog) Get(id int) (Hotel, error) {
	h, ok := c.byID[id]
	if !ok {
		return Hotel{}, fmt.Errorf("hotel %d: %w", id, ErrNotFound)
	}
	return h, nil
}

// Rooms returns the room types offered by the hotel.
func (c *Catalog) Rooms(hotelID int) ([]Room, error) {
	if _, err := c.Get(hotelID); err != nil {
		return nil, err
	}
	out := make([]Room, len(c.rooms))
	copy(out, c.rooms)
	return out, nil
}

// Room returns one room type of the hotel.
func (c *Catalog) Room(hotelID, roomID int) (Room, error) {
	if _, err := c.Get(hotelID); err != nil {
		return Room{}, err
	}
	for _, r := range c.rooms {
		if r.ID == roomID {
			return r, nil
		}
	}
	return Room{}, fmt.Errorf("room %d: %w", roomID, ErrNotFound)
}
