package hotels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogParsesFixtures(t *testing.T) {
	c, err := NewCatalog()
	require.NoError(t, err)

	assert.Len(t, c.hotels, 6)
	assert.Len(t, c.rooms, 4)
}

func TestList(t *testing.T) {
	c, err := NewCatalog()
	require.NoError(t, err)

	tests := []struct {
		name      string
		filter    Filter
		wantNames []string
	}{
		{
			name:   "no filter returns all",
			filter: Filter{},
			wantNames: []string{
				"The Savoy London", "The Balmoral Hotel", "Llyod House Country Resort",
				"The Peninsula Manchester", "Portmeirion Hotel", "The Goring Hotel",
			},
		},
		{
			name:      "location is case-insensitive substring",
			filter:    Filter{Location: "london"},
			wantNames: []string{"The Savoy London", "The Goring Hotel"},
		},
		{
			name:      "rating floor",
			filter:    Filter{MinRating: 4.8},
			wantNames: []string{"The Savoy London", "Llyod House Country Resort", "Portmeirion Hotel"},
		},
		{
			name:      "party too large for any room",
			filter:    Filter{Guests: 8},
			wantNames: []string{},
		},
		{
			name:      "combined filters",
			filter:    Filter{Location: "england", MinRating: 4.8, Guests: 4},
			wantNames: []string{"The Savoy London", "Llyod House Country Resort"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.List(tt.filter)
			names := make([]string, 0, len(got))
			for _, h := range got {
				names = append(names, h.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestGet(t *testing.T) {
	c, err := NewCatalog()
	require.NoError(t, err)

	hotel, err := c.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "The Savoy London", hotel.Name)
	assert.Equal(t, "London, England", hotel.Location)

	_, err = c.Get(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRooms(t *testing.T) {
	c, err := NewCatalog()
	require.NoError(t, err)

	rooms, err := c.Rooms(2)
	require.NoError(t, err)
	require.Len(t, rooms, 4)
	assert.Equal(t, "Standard Room", rooms[0].Name)
	assert.Equal(t, 149, rooms[0].PricePerNight)

	_, err = c.Rooms(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRoom(t *testing.T) {
	c, err := NewCatalog()
	require.NoError(t, err)

	room, err := c.Room(1, 3)
	require.NoError(t, err)
	assert.Equal(t, "Executive Suite", room.Name)
	assert.Equal(t, 4, room.Capacity)

	_, err = c.Room(1, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.Room(99, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
