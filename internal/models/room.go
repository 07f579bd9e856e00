package models

import (
	"strings"

	mapset "github.com/deckarep/golang-set"
)

// DefaultRooms are the meeting rooms of the hospital, in display order
var DefaultRooms = []string{
	"Aula Edelweiss",
	"Aula Zoom Cempaka",
	"Aula Rawat Jalan",
}

// RoomCatalog is the fixed, ordered set of bookable rooms.
// It is built once at startup and never changes afterwards.
type RoomCatalog struct {
	names []string
	set   mapset.Set
}

// NewRoomCatalog builds a catalog from the given names, keeping the first
// occurrence of each name and dropping blank entries
func NewRoomCatalog(names []string) *RoomCatalog {
	c := &RoomCatalog{
		names: make([]string, 0, len(names)),
		set:   mapset.NewThreadUnsafeSet(),
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if c.set.Add(name) {
			c.names = append(c.names, name)
		}
	}
	return c
}

// Names returns the room names in display order
func (c *RoomCatalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Contains reports whether name is a room of the catalog
func (c *RoomCatalog) Contains(name string) bool {
	return c.set.Contains(name)
}

// RoomSchedule holds the chronologically ordered bookings of one room
type RoomSchedule struct {
	Room     string    `json:"room"`
	Bookings []Booking `json:"bookings"`
}

// IsEmpty returns true if the room has nothing scheduled
func (s RoomSchedule) IsEmpty() bool {
	return len(s.Bookings) == 0
}
