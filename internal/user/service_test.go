package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parishtools/equipment-booking-backend/internal/auth"
)

type fakeUserRepo struct {
	byEmail map[string]*User
	byID    map[string]*User
	seq     int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*User{}, byID: map[string]*User{}}
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	if u, ok := r.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*User, error) {
	if u, ok := r.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, u *User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailAlreadyUsed
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	u.CreatedAt = time.Now()
	cp := *u
	r.byEmail[cp.Email] = &cp
	r.byID[cp.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, id string, t time.Time) error {
	if u, ok := r.byID[id]; ok {
		u.LastLoginAt = &t
		return nil
	}
	return ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context, _ Filter) ([]*User, int, error) {
	var out []*User
	for _, u := range r.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return ErrNotFound
	}
	cp := *u
	r.byID[cp.ID] = &cp
	r.byEmail[cp.Email] = &cp
	return nil
}

func newTestService() (Service, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewService(repo, auth.NewBcryptPasswordHasherWithCost(4)), repo
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc, _ := newTestService()

		u, err := svc.Register(ctx, "Pat@Parish.ORG ", "longenough", "Pat")
		require.NoError(t, err)

		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "pat@parish.org", u.Email, "email is normalized")
		require.NotNil(t, u.DisplayName)
		assert.Equal(t, "Pat", *u.DisplayName)
		assert.True(t, u.IsActive)
		assert.False(t, u.IsSystemAdmin)
		assert.NotEqual(t, "longenough", u.PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Register(ctx, "pat@parish.org", "longenough", "")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "PAT@parish.org", "longenough", "")
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("short password", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Register(ctx, "pat@parish.org", "short", "")
		assert.Error(t, err)
	})

	t.Run("blank display name stays nil", func(t *testing.T) {
		svc, _ := newTestService()

		u, err := svc.Register(ctx, "pat@parish.org", "longenough", "   ")
		require.NoError(t, err)
		assert.Nil(t, u.DisplayName)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success records last login", func(t *testing.T) {
		svc, repo := newTestService()
		registered, err := svc.Register(ctx, "pat@parish.org", "longenough", "Pat")
		require.NoError(t, err)

		u, err := svc.Login(ctx, "pat@parish.org", "longenough")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)
		assert.NotNil(t, repo.byID[u.ID].LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Register(ctx, "pat@parish.org", "longenough", "")
		require.NoError(t, err)

		_, err = svc.Login(ctx, "pat@parish.org", "wrongpassword")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Login(ctx, "nobody@parish.org", "longenough")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		svc, repo := newTestService()
		u, err := svc.Register(ctx, "pat@parish.org", "longenough", "")
		require.NoError(t, err)

		repo.byID[u.ID].IsActive = false
		repo.byEmail[u.Email].IsActive = false

		_, err = svc.Login(ctx, "pat@parish.org", "longenough")
		assert.ErrorIs(t, err, ErrInactiveUser)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	u, err := svc.Register(ctx, "pat@parish.org", "longenough", "Pat")
	require.NoError(t, err)

	name := "  Pat M.  "
	active := false
	admin := true
	updated, err := svc.Update(ctx, u.ID, UpdateRequest{
		DisplayName:   &name,
		IsActive:      &active,
		IsSystemAdmin: &admin,
	})
	require.NoError(t, err)

	require.NotNil(t, updated.DisplayName)
	assert.Equal(t, "Pat M.", *updated.DisplayName)
	assert.False(t, updated.IsActive)
	assert.True(t, updated.IsSystemAdmin)

	blank := ""
	updated, err = svc.Update(ctx, u.ID, UpdateRequest{DisplayName: &blank})
	require.NoError(t, err)
	assert.Nil(t, updated.DisplayName)
}
