package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	assHttp "github.com/parishtools/equipment-booking-backend/internal/asset/http"
	"github.com/parishtools/equipment-booking-backend/internal/kit"
	"github.com/parishtools/equipment-booking-backend/internal/pkg/request"
	"github.com/parishtools/equipment-booking-backend/internal/pkg/response"
)

type Handler struct {
	service kit.Service
}

func NewHandler(service kit.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListKitsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	kits, total, err := h.service.List(c.Request.Context(), kit.Filter{
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]KitResponse, len(kits))
	for i, k := range kits {
		items[i] = NewKitResponse(k)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	k, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, kit.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "kit not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewKitResponse(k))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateKitRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	k, err := h.service.Create(c.Request.Context(), kit.CreateRequest{
		Name:        body.Name,
		Description: body.Description,
		AssetIDs:    body.AssetIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, kit.ErrNameRequired),
			errors.Is(err, kit.ErrInvalidAsset),
			errors.Is(err, kit.ErrNoMembers):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, NewKitResponse(k))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateKitRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	k, err := h.service.Update(c.Request.Context(), uri.ID, kit.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, kit.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "kit not found"})
		case errors.Is(err, kit.ErrNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, NewKitResponse(k))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		if errors.Is(err, kit.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "kit not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) SetMembers(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body SetKitMembersRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.SetMembers(c.Request.Context(), uri.ID, body.AssetIDs); err != nil {
		switch {
		case errors.Is(err, kit.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "kit not found"})
		case errors.Is(err, kit.ErrInvalidAsset), errors.Is(err, kit.ErrNoMembers):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListMembers(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	members, err := h.service.ListMembers(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, kit.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "kit not found"})
			return
		}
		response.Error(c, err)
		return
	}

	items := make([]assHttp.AssetResponse, len(members))
	for i, a := range members {
		items[i] = assHttp.NewAssetResponse(a)
	}

	c.JSON(http.StatusOK, KitMembersResponse{Items: items})
}
