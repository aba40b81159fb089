package asset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/parishtools/equipment-booking-backend/internal/location"
	"github.com/parishtools/equipment-booking-backend/internal/pkg/storage"
)

type CreateRequest struct {
	Name        string
	Barcode     string
	Category    string
	LocationID  string
	Description string
}

type UpdateRequest struct {
	Name        *string
	Barcode     *string
	Category    *string
	LocationID  *string
	Status      *string
	Description *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Asset, error)
	GetByID(ctx context.Context, id string) (*Asset, error)
	GetByBarcode(ctx context.Context, barcode string) (*Asset, error)
	List(ctx context.Context, filter Filter) ([]*Asset, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Asset, error)
	Delete(ctx context.Context, id string) error
	UploadPhoto(ctx context.Context, id string, content io.Reader) (*Asset, error)
}

const (
	thumbnailMaxWidth  = 320
	thumbnailMaxHeight = 320
)

type service struct {
	repo       Repository
	locService location.Service
	files      storage.Storage
	images     *storage.ImageProcessor
}

func NewService(repo Repository, locService location.Service, files storage.Storage, images *storage.ImageProcessor) Service {
	return &service{
		repo:       repo,
		locService: locService,
		files:      files,
		images:     images,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Asset, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(req.Barcode) == "" {
		return nil, ErrBarcodeRequired
	}
	if req.LocationID == "" {
		return nil, ErrInvalidLocation
	}

	// Validation: the storage location must exist.
	if _, err := s.locService.GetByID(ctx, req.LocationID); err != nil {
		return nil, ErrInvalidLocation
	}

	a := &Asset{
		Name:        strings.TrimSpace(req.Name),
		Barcode:     strings.TrimSpace(req.Barcode),
		Category:    req.Category,
		LocationID:  req.LocationID,
		Status:      StatusAvailable,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Asset, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByBarcode(ctx context.Context, barcode string) (*Asset, error) {
	return s.repo.GetByBarcode(ctx, strings.TrimSpace(barcode))
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Asset, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Asset, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		a.Name = strings.TrimSpace(*req.Name)
	}
	if req.Barcode != nil {
		if strings.TrimSpace(*req.Barcode) == "" {
			return nil, ErrBarcodeRequired
		}
		a.Barcode = strings.TrimSpace(*req.Barcode)
	}
	if req.Category != nil {
		a.Category = *req.Category
	}
	if req.LocationID != nil {
		if _, err := s.locService.GetByID(ctx, *req.LocationID); err != nil {
			return nil, ErrInvalidLocation
		}
		a.LocationID = *req.LocationID
	}
	if req.Status != nil {
		st := Status(*req.Status)
		if !st.IsValid() {
			return nil, ErrInvalidStatus
		}
		a.Status = st
	}
	if req.Description != nil {
		a.Description = *req.Description
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Photo cleanup is best effort; the record is already gone.
	if a.PhotoPath != "" {
		_ = s.files.Delete(ctx, a.PhotoPath)
	}
	if a.ThumbnailPath != "" {
		_ = s.files.Delete(ctx, a.ThumbnailPath)
	}
	return nil
}

func (s *service) UploadPhoto(ctx context.Context, id string, content io.Reader) (*Asset, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The upload is read twice (original + thumbnail), so buffer it.
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("failed to read photo upload: %w", err)
	}

	// A fresh name per upload so stale copies of a replaced photo are never
	// served by path.
	name := uuid.NewString()
	photoPath := fmt.Sprintf("assets/%s/%s.jpg", a.ID, name)
	thumbPath := fmt.Sprintf("assets/%s/%s_thumb.jpg", a.ID, name)

	thumb, err := s.images.GenerateThumbnail(bytes.NewReader(data), thumbnailMaxWidth, thumbnailMaxHeight)
	if err != nil {
		return nil, err
	}

	if err := s.files.Save(ctx, photoPath, bytes.NewReader(data)); err != nil {
		return nil, err
	}
	if err := s.files.Save(ctx, thumbPath, thumb); err != nil {
		return nil, err
	}

	// Replacing a photo leaves the old files behind; remove them best effort.
	if a.PhotoPath != "" {
		_ = s.files.Delete(ctx, a.PhotoPath)
	}
	if a.ThumbnailPath != "" {
		_ = s.files.Delete(ctx, a.ThumbnailPath)
	}

	a.PhotoPath = photoPath
	a.ThumbnailPath = thumbPath

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
