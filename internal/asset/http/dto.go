package http

import (
	"time"

	"github.com/parishtools/equipment-booking-backend/internal/asset"
	locHttp "github.com/parishtools/equipment-booking-backend/internal/location/http"
	"github.com/parishtools/equipment-booking-backend/internal/pkg/request"
)

type AssetResponse struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Barcode       string              `json:"barcode"`
	Category      string              `json:"category,omitempty"`
	Location      locHttp.LocationTag `json:"location"`
	Status        string              `json:"status"`
	Description   string              `json:"description,omitempty"`
	PhotoPath     string              `json:"photo_path,omitempty"`
	ThumbnailPath string              `json:"thumbnail_path,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func NewAssetResponse(a *asset.Asset) AssetResponse {
	return AssetResponse{
		ID:            a.ID,
		Name:          a.Name,
		Barcode:       a.Barcode,
		Category:      a.Category,
		Location:      locHttp.LocationTag{ID: a.LocationID, Name: a.LocationName},
		Status:        string(a.Status),
		Description:   a.Description,
		PhotoPath:     a.PhotoPath,
		ThumbnailPath: a.ThumbnailPath,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// AssetTag is the minimal asset reference embedded in other responses.
type AssetTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ListAssetsRequest struct {
	request.ListParams
	LocationID string `form:"location_id" binding:"omitempty,uuid"`
	Category   string `form:"category"`
	Status     string `form:"status" binding:"omitempty,oneof=available maintenance retired"`
	Keyword    string `form:"keyword"`
}

type CreateAssetRequest struct {
	Name        string `json:"name" binding:"required"`
	Barcode     string `json:"barcode" binding:"required"`
	Category    string `json:"category"`
	LocationID  string `json:"location_id" binding:"required,uuid"`
	Description string `json:"description"`
}

type UpdateAssetRequest struct {
	Name        *string `json:"name"`
	Barcode     *string `json:"barcode"`
	Category    *string `json:"category"`
	LocationID  *string `json:"location_id" binding:"omitempty,uuid"`
	Status      *string `json:"status" binding:"omitempty,oneof=available maintenance retired"`
	Description *string `json:"description"`
}

// LookupByBarcodeRequest is the query for the scanner lookup endpoint.
type LookupByBarcodeRequest struct {
	Barcode string `form:"barcode" binding:"required"`
}
