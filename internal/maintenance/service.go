package maintenance

import (
	"context"
	"strings"

	"github.com/parishtools/equipment-booking-backend/internal/asset"
)

type CreateRequest struct {
	AssetID      string
	ReportedByID string
	Issue        string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Entry, error)
	GetByID(ctx context.Context, id string) (*Entry, error)
	List(ctx context.Context, filter Filter) ([]*Entry, int, error)
	Resolve(ctx context.Context, id string, resolution string) (*Entry, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo       Repository
	assService asset.Service
}

func NewService(repo Repository, assService asset.Service) Service {
	return &service{repo: repo, assService: assService}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Entry, error) {
	if req.AssetID == "" {
		return nil, ErrAssetRequired
	}
	if strings.TrimSpace(req.Issue) == "" {
		return nil, ErrIssueRequired
	}

	// Validation: the asset must exist.
	if _, err := s.assService.GetByID(ctx, req.AssetID); err != nil {
		return nil, ErrAssetRequired
	}

	e := &Entry{
		AssetID:      req.AssetID,
		ReportedByID: req.ReportedByID,
		Issue:        strings.TrimSpace(req.Issue),
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Entry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Entry, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Resolve(ctx context.Context, id string, resolution string) (*Entry, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.ResolvedAt != nil {
		return nil, ErrAlreadyResolved
	}

	if err := s.repo.Resolve(ctx, id, strings.TrimSpace(resolution)); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
