package booking

import (
	"net/http"
	"time"

	"github.com/parishtools/equipment-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrStartDateOrder    = apperror.New(http.StatusBadRequest, "Start date must be before end date")
	ErrStartTimeOrder    = apperror.New(http.StatusBadRequest, "Start time must be before end time")
	ErrDateRequired      = apperror.New(http.StatusBadRequest, "booking has no resolvable date")
	ErrInvalidMode       = apperror.New(http.StatusBadRequest, "invalid booking mode")
	ErrUnparsableDate    = apperror.New(http.StatusBadRequest, "invalid date or time value")
	ErrResourceRequired  = apperror.New(http.StatusBadRequest, "booking must target exactly one asset or kit")
	ErrAssetNotFound     = apperror.New(http.StatusNotFound, "asset not found")
	ErrKitNotFound       = apperror.New(http.StatusNotFound, "kit not found")
	ErrAssigneeNotFound  = apperror.New(http.StatusBadRequest, "assigned user not found")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrInvalidTransition = apperror.New(http.StatusConflict, "booking status transition not allowed")
	ErrNotEditable       = apperror.New(http.StatusConflict, "booking is no longer editable")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
)

// Status is the booking lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
	StatusDeclined  Status = "declined"
)

// ValidStatuses lists every accepted booking status.
var ValidStatuses = []Status{
	StatusPending, StatusApproved, StatusActive,
	StatusCompleted, StatusOverdue, StatusCancelled, StatusDeclined,
}

// IsValid reports whether s is a known booking status.
func (s Status) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsLive reports whether a booking in this status holds (or will hold) the
// resource and therefore participates in conflict checks. Terminal statuses
// never conflict with anything.
func (s Status) IsLive() bool {
	return s == StatusPending || s == StatusApproved || s == StatusActive
}

// allowedTransitions encodes the booking lifecycle:
// pending -> approved/declined/cancelled, approved -> active (check-out) or
// cancelled, active -> completed (check-in) or overdue, overdue -> completed.
var allowedTransitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusDeclined, StatusCancelled},
	StatusApproved: {StatusActive, StatusCancelled},
	StatusActive:   {StatusCompleted, StatusOverdue},
	StatusOverdue:  {StatusCompleted},
}

// CanTransitionTo reports whether a booking may move from s to target.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range allowedTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Booking is a reservation of one resource (a single asset or a kit) for a
// time window. Exactly one of AssetID / KitID is set.
type Booking struct {
	ID      string
	AssetID string
	KitID   string

	// Denormalized names for display, filled by repository joins.
	AssetName string
	KitName   string

	// RequestedByID submitted the booking; AssignedToID is who the equipment
	// is booked for. They differ when booking on someone's behalf.
	RequestedByID   string
	RequestedByName string
	AssignedToID    string
	AssignedToName  string

	Window  Window
	Purpose string
	Notes   string
	Status  Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ResourceID returns whichever resource reference the booking targets.
func (b *Booking) ResourceID() string {
	if b.AssetID != "" {
		return b.AssetID
	}
	return b.KitID
}

// Filter defines parameters for listing bookings. DateFrom/DateTo narrow the
// list to bookings whose calendar span touches the given day range
// ("2006-01-02", inclusive on both ends).
type Filter struct {
	RequestedByID string
	AssignedToID  string
	AssetID       string
	KitID         string
	Status        string
	DateFrom      string
	DateTo        string
	Page          int
	PageSize      int
}
