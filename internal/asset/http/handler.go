package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parishtools/equipment-booking-backend/internal/asset"
	"github.com/parishtools/equipment-booking-backend/internal/pkg/request"
	"github.com/parishtools/equipment-booking-backend/internal/pkg/response"
)

// Uploaded photos larger than this are rejected before decoding.
const maxPhotoSizeBytes = 10 << 20

type Handler struct {
	service asset.Service
}

func NewHandler(service asset.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListAssetsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	assets, total, err := h.service.List(c.Request.Context(), asset.Filter{
		LocationID: req.LocationID,
		Category:   req.Category,
		Status:     req.Status,
		Keyword:    req.Keyword,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]AssetResponse, len(assets))
	for i, a := range assets {
		items[i] = NewAssetResponse(a)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, asset.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAssetResponse(a))
}

// Lookup resolves an asset by its barcode; the scanner UI calls this after a scan.
func (h *Handler) Lookup(c *gin.Context) {
	var req LookupByBarcodeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "barcode is required"})
		return
	}

	a, err := h.service.GetByBarcode(c.Request.Context(), req.Barcode)
	if err != nil {
		if errors.Is(err, asset.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAssetResponse(a))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateAssetRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	a, err := h.service.Create(c.Request.Context(), asset.CreateRequest{
		Name:        body.Name,
		Barcode:     body.Barcode,
		Category:    body.Category,
		LocationID:  body.LocationID,
		Description: body.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, asset.ErrBarcodeTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, asset.ErrNameRequired),
			errors.Is(err, asset.ErrBarcodeRequired),
			errors.Is(err, asset.ErrInvalidLocation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, NewAssetResponse(a))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateAssetRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	a, err := h.service.Update(c.Request.Context(), uri.ID, asset.UpdateRequest{
		Name:        body.Name,
		Barcode:     body.Barcode,
		Category:    body.Category,
		LocationID:  body.LocationID,
		Status:      body.Status,
		Description: body.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, asset.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
		case errors.Is(err, asset.ErrBarcodeTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, asset.ErrNameRequired),
			errors.Is(err, asset.ErrBarcodeRequired),
			errors.Is(err, asset.ErrInvalidLocation),
			errors.Is(err, asset.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, NewAssetResponse(a))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		if errors.Is(err, asset.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadPhoto accepts a multipart "photo" file and stores it with a thumbnail.
func (h *Handler) UploadPhoto(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	if fileHeader.Size > maxPhotoSizeBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "photo too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read photo"})
		return
	}
	defer file.Close()

	a, err := h.service.UploadPhoto(c.Request.Context(), uri.ID, file)
	if err != nil {
		if errors.Is(err, asset.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewAssetResponse(a))
}
