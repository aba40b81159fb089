package http

import (
	"time"

	assHttp "github.com/parishtools/equipment-booking-backend/internal/asset/http"
	"github.com/parishtools/equipment-booking-backend/internal/kit"
	"github.com/parishtools/equipment-booking-backend/internal/pkg/request"
)

type KitResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	AssetCount  int       `json:"asset_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewKitResponse(k *kit.Kit) KitResponse {
	return KitResponse{
		ID:          k.ID,
		Name:        k.Name,
		Description: k.Description,
		AssetCount:  k.AssetCount,
		CreatedAt:   k.CreatedAt,
		UpdatedAt:   k.UpdatedAt,
	}
}

// KitTag is the minimal kit reference embedded in other responses.
type KitTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ListKitsRequest struct {
	request.ListParams
	Keyword string `form:"keyword"`
}

type CreateKitRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	AssetIDs    []string `json:"asset_ids" binding:"required,min=1,dive,uuid"`
}

type UpdateKitRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type SetKitMembersRequest struct {
	AssetIDs []string `json:"asset_ids" binding:"required,min=1,dive,uuid"`
}

// KitMembersResponse lists the assets that make up a kit.
type KitMembersResponse struct {
	Items []assHttp.AssetResponse `json:"items"`
}
