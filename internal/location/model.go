package location

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("location not found")
	ErrNameRequired = errors.New("location name is required")
)

// Location is a physical storage spot equipment lives in when not booked
// (a room, a cupboard, a van shelf).
type Location struct {
	ID          string
	Name        string
	Building    string
	Description string
	CreatedAt   time.Time
}

// Filter defines parameters for listing locations.
type Filter struct {
	Keyword  string // matched against name and building
	Page     int
	PageSize int
}
