package http

import (
	"time"

	"github.com/parishtools/equipment-booking-backend/internal/location"
	"github.com/parishtools/equipment-booking-backend/internal/pkg/request"
)

type LocationResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Building    string    `json:"building,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewLocationResponse(loc *location.Location) LocationResponse {
	return LocationResponse{
		ID:          loc.ID,
		Name:        loc.Name,
		Building:    loc.Building,
		Description: loc.Description,
		CreatedAt:   loc.CreatedAt,
	}
}

// LocationTag is the minimal location reference embedded in other responses.
type LocationTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ListLocationsRequest struct {
	request.ListParams
	Keyword string `form:"keyword"`
}

type CreateLocationRequest struct {
	Name        string `json:"name" binding:"required"`
	Building    string `json:"building"`
	Description string `json:"description"`
}

type UpdateLocationRequest struct {
	Name        *string `json:"name"`
	Building    *string `json:"building"`
	Description *string `json:"description"`
}
