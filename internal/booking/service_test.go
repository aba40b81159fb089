package booking

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parishtools/equipment-booking-backend/internal/asset"
	"github.com/parishtools/equipment-booking-backend/internal/kit"
	"github.com/parishtools/equipment-booking-backend/internal/user"
)

var errNotImplemented = errors.New("not implemented in test fake")

// fakeRepo is an in-memory Repository that preserves insertion order.
type fakeRepo struct {
	bookings map[string]*Booking
	order    []string
	seq      int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: map[string]*Booking{}}
}

func (r *fakeRepo) add(b *Booking) *Booking {
	if b.ID == "" {
		r.seq++
		b.ID = fmt.Sprintf("booking-%d", r.seq)
	}
	cp := *b
	r.bookings[cp.ID] = &cp
	r.order = append(r.order, cp.ID)
	return &cp
}

func (r *fakeRepo) Create(_ context.Context, b *Booking) error {
	r.add(b)
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) List(_ context.Context, _ Filter) ([]*Booking, int, error) {
	var out []*Booking
	for _, id := range r.order {
		cp := *r.bookings[id]
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(_ context.Context, b *Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return ErrNotFound
	}
	cp := *b
	r.bookings[cp.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id string, status Status) error {
	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *fakeRepo) ListForResource(_ context.Context, assetID, kitID string) ([]*Booking, error) {
	var out []*Booking
	for _, id := range r.order {
		b, ok := r.bookings[id]
		if !ok || !b.Status.IsLive() {
			continue
		}
		if (assetID != "" && b.AssetID == assetID) || (kitID != "" && b.KitID == kitID) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListByStatus(_ context.Context, status Status) ([]*Booking, error) {
	var out []*Booking
	for _, id := range r.order {
		if b, ok := r.bookings[id]; ok && b.Status == status {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeAssetService struct {
	assets map[string]*asset.Asset
}

func (f *fakeAssetService) GetByID(_ context.Context, id string) (*asset.Asset, error) {
	if a, ok := f.assets[id]; ok {
		return a, nil
	}
	return nil, asset.ErrNotFound
}

func (f *fakeAssetService) Create(context.Context, asset.CreateRequest) (*asset.Asset, error) {
	return nil, errNotImplemented
}
func (f *fakeAssetService) GetByBarcode(context.Context, string) (*asset.Asset, error) {
	return nil, errNotImplemented
}
func (f *fakeAssetService) List(context.Context, asset.Filter) ([]*asset.Asset, int, error) {
	return nil, 0, errNotImplemented
}
func (f *fakeAssetService) Update(context.Context, string, asset.UpdateRequest) (*asset.Asset, error) {
	return nil, errNotImplemented
}
func (f *fakeAssetService) Delete(context.Context, string) error { return errNotImplemented }
func (f *fakeAssetService) UploadPhoto(context.Context, string, io.Reader) (*asset.Asset, error) {
	return nil, errNotImplemented
}

type fakeKitService struct {
	kits map[string]*kit.Kit
}

func (f *fakeKitService) GetByID(_ context.Context, id string) (*kit.Kit, error) {
	if k, ok := f.kits[id]; ok {
		return k, nil
	}
	return nil, kit.ErrNotFound
}

func (f *fakeKitService) Create(context.Context, kit.CreateRequest) (*kit.Kit, error) {
	return nil, errNotImplemented
}
func (f *fakeKitService) List(context.Context, kit.Filter) ([]*kit.Kit, int, error) {
	return nil, 0, errNotImplemented
}
func (f *fakeKitService) Update(context.Context, string, kit.UpdateRequest) (*kit.Kit, error) {
	return nil, errNotImplemented
}
func (f *fakeKitService) Delete(context.Context, string) error { return errNotImplemented }
func (f *fakeKitService) SetMembers(context.Context, string, []string) error {
	return errNotImplemented
}
func (f *fakeKitService) ListMembers(context.Context, string) ([]*asset.Asset, error) {
	return nil, errNotImplemented
}

type fakeUserService struct {
	users map[string]*user.User
}

func (f *fakeUserService) GetByID(_ context.Context, id string) (*user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

func (f *fakeUserService) Register(context.Context, string, string, string) (*user.User, error) {
	return nil, errNotImplemented
}
func (f *fakeUserService) Login(context.Context, string, string) (*user.User, error) {
	return nil, errNotImplemented
}
func (f *fakeUserService) List(context.Context, user.Filter) ([]*user.User, int, error) {
	return nil, 0, errNotImplemented
}
func (f *fakeUserService) Update(context.Context, string, user.UpdateRequest) (*user.User, error) {
	return nil, errNotImplemented
}

type testEnv struct {
	repo    *fakeRepo
	assets  *fakeAssetService
	kits    *fakeKitService
	users   *fakeUserService
	service *service
}

func newTestEnv() *testEnv {
	env := &testEnv{
		repo: newFakeRepo(),
		assets: &fakeAssetService{assets: map[string]*asset.Asset{
			"asset-1": {ID: "asset-1", Name: "Projector", Status: asset.StatusAvailable},
		}},
		kits: &fakeKitService{kits: map[string]*kit.Kit{
			"kit-1": {ID: "kit-1", Name: "PA Rig"},
		}},
		users: &fakeUserService{users: map[string]*user.User{
			"user-1": {ID: "user-1", Email: "a@parish.org", IsActive: true},
			"user-2": {ID: "user-2", Email: "b@parish.org", IsActive: true},
		}},
	}
	env.service = NewService(env.repo, env.assets, env.kits, env.users).(*service)
	return env
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending booking", func(t *testing.T) {
		env := newTestEnv()

		b, err := env.service.Create(ctx, CreateRequest{
			RequestedByID: "user-1",
			AssetID:       "asset-1",
			Window:        singleDay("2026-03-01", "09:00", "12:00"),
			Purpose:       "Youth night",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, b.ID)
		assert.Equal(t, StatusPending, b.Status)
		assert.Equal(t, "user-1", b.AssignedToID, "assignee defaults to the requester")
	})

	t.Run("immediate booking starts active", func(t *testing.T) {
		env := newTestEnv()

		b, err := env.service.Create(ctx, CreateRequest{
			RequestedByID: "user-1",
			AssetID:       "asset-1",
			Window:        singleDay("2026-03-01", "", ""),
			Immediate:     true,
		})
		require.NoError(t, err)
		assert.Equal(t, StatusActive, b.Status)
	})

	t.Run("conflicting booking still persists", func(t *testing.T) {
		// Conflict detection is advisory; the write path never consults it.
		env := newTestEnv()
		env.repo.add(existingBooking("", "asset-1", StatusApproved, singleDay("2026-03-01", "09:00", "12:00")))

		_, err := env.service.Create(ctx, CreateRequest{
			RequestedByID: "user-2",
			AssetID:       "asset-1",
			Window:        singleDay("2026-03-01", "10:00", "11:00"),
		})
		require.NoError(t, err)
		assert.Len(t, env.repo.bookings, 2)
	})

	t.Run("validates the assignee when booking for someone else", func(t *testing.T) {
		env := newTestEnv()

		b, err := env.service.Create(ctx, CreateRequest{
			RequestedByID: "user-1",
			AssetID:       "asset-1",
			AssignedToID:  "user-2",
			Window:        singleDay("2026-03-01", "", ""),
		})
		require.NoError(t, err)
		assert.Equal(t, "user-2", b.AssignedToID)

		_, err = env.service.Create(ctx, CreateRequest{
			RequestedByID: "user-1",
			AssetID:       "asset-1",
			AssignedToID:  "00000000-0000-0000-0000-000000000000",
			Window:        singleDay("2026-03-01", "", ""),
		})
		assert.ErrorIs(t, err, ErrAssigneeNotFound)
	})

	t.Run("rejections", func(t *testing.T) {
		env := newTestEnv()

		cases := []struct {
			name string
			req  CreateRequest
			want error
		}{
			{
				"no resource",
				CreateRequest{RequestedByID: "user-1", Window: singleDay("2026-03-01", "", "")},
				ErrResourceRequired,
			},
			{
				"both resources",
				CreateRequest{RequestedByID: "user-1", AssetID: "asset-1", KitID: "kit-1", Window: singleDay("2026-03-01", "", "")},
				ErrResourceRequired,
			},
			{
				"unknown asset",
				CreateRequest{RequestedByID: "user-1", AssetID: "asset-missing", Window: singleDay("2026-03-01", "", "")},
				ErrAssetNotFound,
			},
			{
				"unknown kit",
				CreateRequest{RequestedByID: "user-1", KitID: "kit-missing", Window: singleDay("2026-03-01", "", "")},
				ErrKitNotFound,
			},
			{
				"reversed date range",
				CreateRequest{RequestedByID: "user-1", AssetID: "asset-1", Window: dateRange("2025-06-10", "2025-06-05")},
				ErrStartDateOrder,
			},
			{
				"reversed single-day times",
				CreateRequest{RequestedByID: "user-1", AssetID: "asset-1", Window: singleDay("2026-03-01", "14:00", "10:00")},
				ErrStartTimeOrder,
			},
			{
				"unresolvable window",
				CreateRequest{RequestedByID: "user-1", AssetID: "asset-1", Window: Window{Mode: ModeSingleDay}},
				ErrDateRequired,
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := env.service.Create(ctx, tc.req)
				assert.ErrorIs(t, err, tc.want)
			})
		}
	})
}

func TestServiceCheckConflicts(t *testing.T) {
	ctx := context.Background()

	t.Run("reports overlaps from the stored snapshot", func(t *testing.T) {
		env := newTestEnv()
		seeded := env.repo.add(existingBooking("", "asset-1", StatusApproved, singleDay("2026-03-01", "09:00", "12:00")))
		env.repo.add(existingBooking("", "asset-1", StatusCompleted, singleDay("2026-03-01", "09:00", "12:00")))

		resp, err := env.service.CheckConflicts(ctx, CheckConflictsRequest{
			AssetID: "asset-1",
			Window:  singleDay("2026-03-01", "11:00", "13:00"),
		})
		require.NoError(t, err)

		assert.True(t, resp.HasConflicts)
		require.Len(t, resp.Conflicts, 1)
		assert.Equal(t, seeded.ID, resp.Conflicts[0].BookingID)
		assert.True(t, resp.IsBookable)
	})

	t.Run("retired asset is flagged unbookable", func(t *testing.T) {
		env := newTestEnv()
		env.assets.assets["asset-1"].Status = asset.StatusRetired

		resp, err := env.service.CheckConflicts(ctx, CheckConflictsRequest{
			AssetID: "asset-1",
			Window:  singleDay("2026-03-01", "09:00", "12:00"),
		})
		require.NoError(t, err)

		assert.False(t, resp.IsBookable)
		assert.Equal(t, "asset is retired", resp.UnbookableReason)
		assert.False(t, resp.HasConflicts, "bookability veto is independent of conflicts")
	})

	t.Run("asset under maintenance is flagged unbookable", func(t *testing.T) {
		env := newTestEnv()
		env.assets.assets["asset-1"].Status = asset.StatusMaintenance

		resp, err := env.service.CheckConflicts(ctx, CheckConflictsRequest{
			AssetID: "asset-1",
			Window:  singleDay("2026-03-01", "09:00", "12:00"),
		})
		require.NoError(t, err)

		assert.False(t, resp.IsBookable)
		assert.Equal(t, "asset is under maintenance", resp.UnbookableReason)
	})

	t.Run("unknown resources error", func(t *testing.T) {
		env := newTestEnv()

		_, err := env.service.CheckConflicts(ctx, CheckConflictsRequest{
			AssetID: "asset-missing",
			Window:  singleDay("2026-03-01", "", ""),
		})
		assert.ErrorIs(t, err, ErrAssetNotFound)

		_, err = env.service.CheckConflicts(ctx, CheckConflictsRequest{
			KitID:  "kit-missing",
			Window: singleDay("2026-03-01", "", ""),
		})
		assert.ErrorIs(t, err, ErrKitNotFound)
	})

	t.Run("excluding the edited booking", func(t *testing.T) {
		env := newTestEnv()
		seeded := env.repo.add(existingBooking("", "asset-1", StatusApproved, singleDay("2026-03-01", "09:00", "12:00")))

		resp, err := env.service.CheckConflicts(ctx, CheckConflictsRequest{
			AssetID:          "asset-1",
			Window:           singleDay("2026-03-01", "09:00", "12:00"),
			ExcludeBookingID: seeded.ID,
		})
		require.NoError(t, err)
		assert.False(t, resp.HasConflicts)
	})
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()

	seed := func(env *testEnv, status Status) *Booking {
		b := existingBooking("", "asset-1", status, singleDay("2026-03-01", "09:00", "12:00"))
		b.RequestedByID = "user-1"
		b.AssignedToID = "user-1"
		return env.repo.add(b)
	}

	t.Run("owner can reschedule", func(t *testing.T) {
		env := newTestEnv()
		b := seed(env, StatusPending)

		w := singleDay("2026-03-02", "10:00", "12:00")
		updated, err := env.service.Update(ctx, b.ID, UpdateRequest{Window: &w}, "user-1", false)
		require.NoError(t, err)
		assert.Equal(t, "2026-03-02", updated.Window.Date)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		env := newTestEnv()
		b := seed(env, StatusPending)

		_, err := env.service.Update(ctx, b.ID, UpdateRequest{}, "user-2", false)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("admin can edit anyone's booking", func(t *testing.T) {
		env := newTestEnv()
		b := seed(env, StatusApproved)

		notes := "approved for the retreat"
		updated, err := env.service.Update(ctx, b.ID, UpdateRequest{Notes: &notes}, "user-2", true)
		require.NoError(t, err)
		assert.Equal(t, notes, updated.Notes)
	})

	t.Run("finished bookings are immutable", func(t *testing.T) {
		env := newTestEnv()
		b := seed(env, StatusCompleted)

		_, err := env.service.Update(ctx, b.ID, UpdateRequest{}, "user-1", false)
		assert.ErrorIs(t, err, ErrNotEditable)
	})

	t.Run("rejects an invalid replacement window", func(t *testing.T) {
		env := newTestEnv()
		b := seed(env, StatusPending)

		w := dateRange("2025-06-10", "2025-06-05")
		_, err := env.service.Update(ctx, b.ID, UpdateRequest{Window: &w}, "user-1", false)
		assert.ErrorIs(t, err, ErrStartDateOrder)
	})
}

func TestServiceTransition(t *testing.T) {
	ctx := context.Background()

	seed := func(env *testEnv, status Status) *Booking {
		b := existingBooking("", "asset-1", status, singleDay("2026-03-01", "09:00", "12:00"))
		b.RequestedByID = "user-1"
		return env.repo.add(b)
	}

	t.Run("lifecycle happy path", func(t *testing.T) {
		env := newTestEnv()
		b := seed(env, StatusPending)

		steps := []Status{StatusApproved, StatusActive, StatusCompleted}
		for _, target := range steps {
			updated, err := env.service.Transition(ctx, b.ID, target, "admin-1", true)
			require.NoError(t, err, "transition to %s", target)
			assert.Equal(t, target, updated.Status)
		}
	})

	t.Run("owner may cancel, others may not", func(t *testing.T) {
		env := newTestEnv()
		b := seed(env, StatusPending)

		_, err := env.service.Transition(ctx, b.ID, StatusCancelled, "user-2", false)
		assert.ErrorIs(t, err, ErrPermissionDenied)

		updated, err := env.service.Transition(ctx, b.ID, StatusCancelled, "user-1", false)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, updated.Status)
	})

	t.Run("non-admin cannot approve", func(t *testing.T) {
		env := newTestEnv()
		b := seed(env, StatusPending)

		_, err := env.service.Transition(ctx, b.ID, StatusApproved, "user-1", false)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("illegal transitions are rejected", func(t *testing.T) {
		env := newTestEnv()
		b := seed(env, StatusPending)

		_, err := env.service.Transition(ctx, b.ID, StatusCompleted, "admin-1", true)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		env := newTestEnv()
		b := seed(env, StatusPending)

		_, err := env.service.Transition(ctx, b.ID, Status("archived"), "admin-1", true)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestServiceSweepOverdue(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv()
	env.service.now = func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	}

	ended := env.repo.add(existingBooking("", "asset-1", StatusActive, singleDay("2026-03-01", "09:00", "12:00")))
	running := env.repo.add(existingBooking("", "asset-1", StatusActive, dateRange("2026-03-09", "2026-03-20")))
	pastPending := env.repo.add(existingBooking("", "asset-1", StatusPending, singleDay("2026-03-01", "", "")))

	flagged, err := env.service.SweepOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, flagged)

	assert.Equal(t, StatusOverdue, env.repo.bookings[ended.ID].Status)
	assert.Equal(t, StatusActive, env.repo.bookings[running.ID].Status)
	assert.Equal(t, StatusPending, env.repo.bookings[pastPending.ID].Status, "only active bookings are swept")
}
