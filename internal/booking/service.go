package booking

import (
	"context"
	"errors"
	"time"

	"github.com/parishtools/equipment-booking-backend/internal/asset"
	"github.com/parishtools/equipment-booking-backend/internal/kit"
	"github.com/parishtools/equipment-booking-backend/internal/user"
)

type CreateRequest struct {
	RequestedByID string
	AssetID       string
	KitID         string
	AssignedToID  string // defaults to the requester
	Window        Window
	Purpose       string
	Notes         string

	// Immediate marks a walk-up booking: the equipment leaves the shelf right
	// now, so the booking starts active instead of pending.
	Immediate bool
}

type UpdateRequest struct {
	Window       *Window
	AssignedToID *string
	Purpose      *string
	Notes        *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorID string, isAdmin bool) (*Booking, error)
	Delete(ctx context.Context, id string, actorID string, isAdmin bool) error

	// CheckConflicts is advisory: it reports overlapping live bookings for the
	// requested resource but never blocks a write. Callers display the report
	// and let the operator decide.
	CheckConflicts(ctx context.Context, req CheckConflictsRequest) (CheckConflictsResponse, error)

	// Transition moves a booking through its lifecycle (approve, decline,
	// cancel, check-out, check-in).
	Transition(ctx context.Context, id string, target Status, actorID string, isAdmin bool) (*Booking, error)

	// SweepOverdue flags active bookings whose window has ended. Returns the
	// number of bookings flagged.
	SweepOverdue(ctx context.Context) (int, error)
}

type service struct {
	repo        Repository
	assService  asset.Service
	kitService  kit.Service
	userService user.Service

	now func() time.Time
}

func NewService(repo Repository, assService asset.Service, kitService kit.Service, userService user.Service) Service {
	return &service{
		repo:        repo,
		assService:  assService,
		kitService:  kitService,
		userService: userService,
		now:         time.Now,
	}
}

// validateResource checks the asset-xor-kit rule and that the referenced
// resource exists.
func (s *service) validateResource(ctx context.Context, assetID, kitID string) error {
	if (assetID == "") == (kitID == "") {
		return ErrResourceRequired
	}

	if assetID != "" {
		if _, err := s.assService.GetByID(ctx, assetID); err != nil {
			if errors.Is(err, asset.ErrNotFound) {
				return ErrAssetNotFound
			}
			return err
		}
		return nil
	}

	if _, err := s.kitService.GetByID(ctx, kitID); err != nil {
		if errors.Is(err, kit.ErrNotFound) {
			return ErrKitNotFound
		}
		return err
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if err := s.validateResource(ctx, req.AssetID, req.KitID); err != nil {
		return nil, err
	}

	// Structural validation is a hard gate; scheduling conflicts are not.
	if err := req.Window.Validate(); err != nil {
		return nil, err
	}
	if _, err := req.Window.Normalize(); err != nil {
		return nil, err
	}

	assignedTo := req.AssignedToID
	if assignedTo == "" {
		assignedTo = req.RequestedByID
	} else if assignedTo != req.RequestedByID {
		if _, err := s.userService.GetByID(ctx, assignedTo); err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return nil, ErrAssigneeNotFound
			}
			return nil, err
		}
	}

	status := StatusPending
	if req.Immediate {
		status = StatusActive
	}

	b := &Booking{
		AssetID:       req.AssetID,
		KitID:         req.KitID,
		RequestedByID: req.RequestedByID,
		AssignedToID:  assignedTo,
		Window:        req.Window,
		Purpose:       req.Purpose,
		Notes:         req.Notes,
		Status:        status,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actorID string, isAdmin bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && b.RequestedByID != actorID {
		return nil, ErrPermissionDenied
	}
	if !b.Status.IsLive() {
		return nil, ErrNotEditable
	}

	if req.Window != nil {
		if err := req.Window.Validate(); err != nil {
			return nil, err
		}
		if _, err := req.Window.Normalize(); err != nil {
			return nil, err
		}
		b.Window = *req.Window
	}

	if req.AssignedToID != nil {
		if *req.AssignedToID != b.RequestedByID {
			if _, err := s.userService.GetByID(ctx, *req.AssignedToID); err != nil {
				if errors.Is(err, user.ErrNotFound) {
					return nil, ErrAssigneeNotFound
				}
				return nil, err
			}
		}
		b.AssignedToID = *req.AssignedToID
	}

	if req.Purpose != nil {
		b.Purpose = *req.Purpose
	}
	if req.Notes != nil {
		b.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) Delete(ctx context.Context, id string, actorID string, isAdmin bool) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !isAdmin && b.RequestedByID != actorID {
		return ErrPermissionDenied
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) CheckConflicts(ctx context.Context, req CheckConflictsRequest) (CheckConflictsResponse, error) {
	if (req.AssetID == "") == (req.KitID == "") {
		return CheckConflictsResponse{}, ErrResourceRequired
	}

	// Point-in-time snapshot of the resource's live bookings. Another session
	// may write between this read and the caller's submit; that race is
	// accepted (last write wins) and not detectable here.
	existing, err := s.repo.ListForResource(ctx, req.AssetID, req.KitID)
	if err != nil {
		return CheckConflictsResponse{}, err
	}

	resp, err := CheckConflicts(req, existing)
	if err != nil {
		return CheckConflictsResponse{}, err
	}

	// Resource-level veto, independent of scheduling conflicts.
	if req.AssetID != "" {
		a, err := s.assService.GetByID(ctx, req.AssetID)
		if err != nil {
			if errors.Is(err, asset.ErrNotFound) {
				return CheckConflictsResponse{}, ErrAssetNotFound
			}
			return CheckConflictsResponse{}, err
		}
		switch a.Status {
		case asset.StatusRetired:
			resp.IsBookable = false
			resp.UnbookableReason = "asset is retired"
		case asset.StatusMaintenance:
			resp.IsBookable = false
			resp.UnbookableReason = "asset is under maintenance"
		}
	} else {
		if _, err := s.kitService.GetByID(ctx, req.KitID); err != nil {
			if errors.Is(err, kit.ErrNotFound) {
				return CheckConflictsResponse{}, ErrKitNotFound
			}
			return CheckConflictsResponse{}, err
		}
	}

	return resp, nil
}

func (s *service) Transition(ctx context.Context, id string, target Status, actorID string, isAdmin bool) (*Booking, error) {
	if !target.IsValid() {
		return nil, ErrInvalidStatus
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Requesters may only cancel their own bookings; everything else
	// (approve, decline, check-out, check-in) is an admin action.
	if !isAdmin {
		if target != StatusCancelled || b.RequestedByID != actorID {
			return nil, ErrPermissionDenied
		}
	}

	if !b.Status.CanTransitionTo(target) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}
	b.Status = target

	return b, nil
}

func (s *service) SweepOverdue(ctx context.Context) (int, error) {
	active, err := s.repo.ListByStatus(ctx, StatusActive)
	if err != nil {
		return 0, err
	}

	now := s.now()
	flagged := 0

	for _, b := range active {
		r, err := b.Window.Normalize()
		if err != nil {
			continue
		}
		if r.End.Before(now) {
			if err := s.repo.UpdateStatus(ctx, b.ID, StatusOverdue); err != nil {
				return flagged, err
			}
			flagged++
		}
	}

	return flagged, nil
}
