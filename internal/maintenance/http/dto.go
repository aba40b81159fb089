package http

import (
	"time"

	assHttp "github.com/parishtools/equipment-booking-backend/internal/asset/http"
	"github.com/parishtools/equipment-booking-backend/internal/maintenance"
	"github.com/parishtools/equipment-booking-backend/internal/pkg/request"
	userHttp "github.com/parishtools/equipment-booking-backend/internal/user/http"
)

type EntryResponse struct {
	ID         string           `json:"id"`
	Asset      assHttp.AssetTag `json:"asset"`
	ReportedBy userHttp.UserTag `json:"reported_by"`
	Issue      string           `json:"issue"`
	Resolution string           `json:"resolution,omitempty"`
	ResolvedAt *time.Time       `json:"resolved_at,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

func NewEntryResponse(e *maintenance.Entry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		Asset:      assHttp.AssetTag{ID: e.AssetID, Name: e.AssetName},
		ReportedBy: userHttp.UserTag{ID: e.ReportedByID, Name: e.ReportedByName},
		Issue:      e.Issue,
		Resolution: e.Resolution,
		ResolvedAt: e.ResolvedAt,
		CreatedAt:  e.CreatedAt,
	}
}

type ListEntriesRequest struct {
	request.ListParams
	AssetID string `form:"asset_id" binding:"omitempty,uuid"`
	Open    *bool  `form:"open"`
}

type CreateEntryRequest struct {
	AssetID string `json:"asset_id" binding:"required,uuid"`
	Issue   string `json:"issue" binding:"required"`
}

type ResolveEntryRequest struct {
	Resolution string `json:"resolution" binding:"required"`
}
