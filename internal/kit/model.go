package kit

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("kit not found")
	ErrNameRequired = errors.New("kit name is required")
	ErrInvalidAsset = errors.New("kit member references an unknown asset")
	ErrNoMembers    = errors.New("kit must contain at least one asset")
)

// Kit is a predefined bundle of assets booked as a single unit
// (e.g. "Sunday PA rig": mixer, two speakers, cabling).
type Kit struct {
	ID          string
	Name        string
	Description string
	AssetCount  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines parameters for listing kits.
type Filter struct {
	Keyword  string
	Page     int
	PageSize int
}
