package http

import (
	"time"

	assetHttp "github.com/parishtools/equipment-booking-backend/internal/asset/http"
	"github.com/parishtools/equipment-booking-backend/internal/booking"
	kitHttp "github.com/parishtools/equipment-booking-backend/internal/kit/http"
	"github.com/parishtools/equipment-booking-backend/internal/pkg/request"
	userHttp "github.com/parishtools/equipment-booking-backend/internal/user/http"
)

type BookingResponse struct {
	ID          string             `json:"id"`
	Asset       *assetHttp.AssetTag `json:"asset,omitempty"`
	Kit         *kitHttp.KitTag     `json:"kit,omitempty"`
	RequestedBy userHttp.UserTag    `json:"requested_by"`
	AssignedTo  userHttp.UserTag    `json:"assigned_to"`

	BookingMode string `json:"booking_mode"`
	Date        string `json:"date,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`

	Purpose   string    `json:"purpose,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	resp := BookingResponse{
		ID:          b.ID,
		RequestedBy: userHttp.UserTag{ID: b.RequestedByID, Name: b.RequestedByName},
		AssignedTo:  userHttp.UserTag{ID: b.AssignedToID, Name: b.AssignedToName},
		BookingMode: string(b.Window.Mode),
		Date:        b.Window.Date,
		StartDate:   b.Window.StartDate,
		EndDate:     b.Window.EndDate,
		StartTime:   b.Window.StartTime,
		EndTime:     b.Window.EndTime,
		Purpose:     b.Purpose,
		Notes:       b.Notes,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if b.AssetID != "" {
		resp.Asset = &assetHttp.AssetTag{ID: b.AssetID, Name: b.AssetName}
	}
	if b.KitID != "" {
		resp.Kit = &kitHttp.KitTag{ID: b.KitID, Name: b.KitName}
	}
	return resp
}

type ListBookingsRequest struct {
	request.ListParams
	RequestedByID string `form:"requested_by_id" binding:"omitempty,uuid"`
	AssignedToID  string `form:"assigned_to_id" binding:"omitempty,uuid"`
	AssetID       string `form:"asset_id" binding:"omitempty,uuid"`
	KitID         string `form:"kit_id" binding:"omitempty,uuid"`
	Status        string `form:"status" binding:"omitempty,oneof=pending approved active completed overdue cancelled declined"`
	DateFrom      string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo        string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
}

type CreateBookingRequest struct {
	AssetID      string `json:"asset_id" binding:"omitempty,uuid"`
	KitID        string `json:"kit_id" binding:"omitempty,uuid"`
	AssignedToID string `json:"assigned_to_id" binding:"omitempty,uuid"`

	BookingMode string `json:"booking_mode" binding:"required,oneof=single-day date-range"`
	Date        string `json:"date"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`

	Purpose string `json:"purpose"`
	Notes   string `json:"notes"`

	// Immediate creates the booking already checked out (walk-up use).
	Immediate bool `json:"immediate"`
}

func (r CreateBookingRequest) window() booking.Window {
	return booking.Window{
		Mode:      booking.Mode(r.BookingMode),
		Date:      r.Date,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

type UpdateBookingRequest struct {
	AssignedToID *string `json:"assigned_to_id" binding:"omitempty,uuid"`

	BookingMode *string `json:"booking_mode" binding:"omitempty,oneof=single-day date-range"`
	Date        *string `json:"date"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`

	Purpose *string `json:"purpose"`
	Notes   *string `json:"notes"`
}

// window returns the replacement window, or nil when no temporal field was
// sent. A reschedule replaces the whole window, so partial updates of
// individual date fields are not supported.
func (r UpdateBookingRequest) window() *booking.Window {
	if r.BookingMode == nil {
		return nil
	}
	w := booking.Window{Mode: booking.Mode(*r.BookingMode)}
	if r.Date != nil {
		w.Date = *r.Date
	}
	if r.StartDate != nil {
		w.StartDate = *r.StartDate
	}
	if r.EndDate != nil {
		w.EndDate = *r.EndDate
	}
	if r.StartTime != nil {
		w.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		w.EndTime = *r.EndTime
	}
	return &w
}

type CheckConflictsRequest struct {
	AssetID          string `json:"asset_id" binding:"omitempty,uuid"`
	KitID            string `json:"kit_id" binding:"omitempty,uuid"`
	ExcludeBookingID string `json:"exclude_booking_id" binding:"omitempty,uuid"`

	BookingMode string `json:"booking_mode" binding:"required,oneof=single-day date-range"`
	Date        string `json:"date"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

func (r CheckConflictsRequest) toModel() booking.CheckConflictsRequest {
	return booking.CheckConflictsRequest{
		AssetID:          r.AssetID,
		KitID:            r.KitID,
		ExcludeBookingID: r.ExcludeBookingID,
		Window: booking.Window{
			Mode:      booking.Mode(r.BookingMode),
			Date:      r.Date,
			StartDate: r.StartDate,
			EndDate:   r.EndDate,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
		},
	}
}

// ConflictResponse describes one overlapping booking in the advisory report.
// Start and end are the other booking's own normalized span.
type ConflictResponse struct {
	BookingID   string           `json:"booking_id"`
	AssetID     string           `json:"asset_id,omitempty"`
	KitID       string           `json:"kit_id,omitempty"`
	Start       time.Time        `json:"start"`
	End         time.Time        `json:"end"`
	RequestedBy userHttp.UserTag `json:"requested_by"`
	AssignedTo  userHttp.UserTag `json:"assigned_to"`
	Status      string           `json:"status"`
}

type CheckConflictsResponse struct {
	HasConflicts     bool               `json:"has_conflicts"`
	Conflicts        []ConflictResponse `json:"conflicts"`
	IsBookable       bool               `json:"is_bookable"`
	UnbookableReason string             `json:"unbookable_reason,omitempty"`
}

func NewCheckConflictsResponse(r booking.CheckConflictsResponse) CheckConflictsResponse {
	conflicts := make([]ConflictResponse, len(r.Conflicts))
	for i, c := range r.Conflicts {
		conflicts[i] = ConflictResponse{
			BookingID:   c.BookingID,
			AssetID:     c.AssetID,
			KitID:       c.KitID,
			Start:       c.Range.Start,
			End:         c.Range.End,
			RequestedBy: userHttp.UserTag{ID: c.RequestedByID, Name: c.RequestedByName},
			AssignedTo:  userHttp.UserTag{ID: c.AssignedToID, Name: c.AssignedToName},
			Status:      string(c.Status),
		}
	}
	return CheckConflictsResponse{
		HasConflicts:     r.HasConflicts,
		Conflicts:        conflicts,
		IsBookable:       r.IsBookable,
		UnbookableReason: r.UnbookableReason,
	}
}
