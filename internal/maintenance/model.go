package maintenance

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("maintenance entry not found")
	ErrIssueRequired   = errors.New("issue description is required")
	ErrAssetRequired   = errors.New("asset_id is required")
	ErrAlreadyResolved = errors.New("maintenance entry already resolved")
)

// Entry is one maintenance log record for an asset: a reported fault and,
// once fixed, how it was resolved.
type Entry struct {
	ID             string
	AssetID        string
	AssetName      string
	ReportedByID   string
	ReportedByName string
	Issue          string
	Resolution     string
	ResolvedAt     *time.Time
	CreatedAt      time.Time
}

// Filter defines parameters for listing maintenance entries.
type Filter struct {
	AssetID  string
	Open     *bool // true: unresolved only, false: resolved only, nil: all
	Page     int
	PageSize int
}
