package kit

import (
	"context"
	"strings"

	"github.com/parishtools/equipment-booking-backend/internal/asset"
)

type CreateRequest struct {
	Name        string
	Description string
	AssetIDs    []string
}

type UpdateRequest struct {
	Name        *string
	Description *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Kit, error)
	GetByID(ctx context.Context, id string) (*Kit, error)
	List(ctx context.Context, filter Filter) ([]*Kit, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Kit, error)
	Delete(ctx context.Context, id string) error

	// SetMembers replaces the kit's member list wholesale.
	SetMembers(ctx context.Context, id string, assetIDs []string) error
	ListMembers(ctx context.Context, id string) ([]*asset.Asset, error)
}

type service struct {
	repo       Repository
	assService asset.Service
}

func NewService(repo Repository, assService asset.Service) Service {
	return &service{repo: repo, assService: assService}
}

func (s *service) validateMembers(ctx context.Context, assetIDs []string) error {
	if len(assetIDs) == 0 {
		return ErrNoMembers
	}
	for _, id := range assetIDs {
		if _, err := s.assService.GetByID(ctx, id); err != nil {
			return ErrInvalidAsset
		}
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Kit, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	if err := s.validateMembers(ctx, req.AssetIDs); err != nil {
		return nil, err
	}

	k := &Kit{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, k); err != nil {
		return nil, err
	}

	if err := s.repo.SetMembers(ctx, k.ID, req.AssetIDs); err != nil {
		return nil, err
	}
	k.AssetCount = len(req.AssetIDs)

	return k, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Kit, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Kit, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Kit, error) {
	k, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		k.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		k.Description = *req.Description
	}

	if err := s.repo.Update(ctx, k); err != nil {
		return nil, err
	}
	return k, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) SetMembers(ctx context.Context, id string, assetIDs []string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.validateMembers(ctx, assetIDs); err != nil {
		return err
	}
	return s.repo.SetMembers(ctx, id, assetIDs)
}

func (s *service) ListMembers(ctx context.Context, id string) ([]*asset.Asset, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, id)
}
