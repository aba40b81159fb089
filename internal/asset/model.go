package asset

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("asset not found")
	ErrNameRequired    = errors.New("asset name is required")
	ErrBarcodeRequired = errors.New("asset barcode is required")
	ErrBarcodeTaken    = errors.New("barcode already assigned to another asset")
	ErrInvalidLocation = errors.New("invalid location_id")
	ErrInvalidStatus   = errors.New("invalid asset status")
)

// Status describes an asset's physical condition, independent of bookings.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusMaintenance Status = "maintenance"
	StatusRetired     Status = "retired"
)

// ValidStatuses lists every accepted asset status.
var ValidStatuses = []Status{StatusAvailable, StatusMaintenance, StatusRetired}

// IsValid reports whether s is a known asset status.
func (s Status) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Asset represents a single bookable piece of equipment. The barcode is what
// the scanner UI reads off the physical label.
type Asset struct {
	ID            string
	Name          string
	Barcode       string
	Category      string
	LocationID    string
	LocationName  string
	Status        Status
	Description   string
	PhotoPath     string
	ThumbnailPath string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Filter defines parameters for listing assets.
type Filter struct {
	LocationID string
	Category   string
	Status     string
	Keyword    string // matched against name and barcode
	Page       int
	PageSize   int
}
