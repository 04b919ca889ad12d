package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"seatflow/internal/shared/apperrors"
	"seatflow/internal/shared/identity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	mu     sync.Mutex
	admins map[uuid.UUID]*Admin
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{admins: map[uuid.UUID]*Admin{}}
}

func (r *memoryRepo) Create(_ context.Context, admin *Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.Username == admin.Username {
			return apperrors.NewConflict("admin username", admin.Username)
		}
	}
	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	copied := *admin
	r.admins[admin.ID] = &copied
	return nil
}

func (r *memoryRepo) Save(_ context.Context, admin *Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *admin
	r.admins[admin.ID] = &copied
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.admins[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, ErrAdminNotFound
}

func (r *memoryRepo) GetByUsername(_ context.Context, username string) (*Admin, error) {
	return r.find(func(a *Admin) bool { return a.Username == username })
}

func (r *memoryRepo) GetByEvent(_ context.Context, eventID uuid.UUID) (*Admin, error) {
	return r.find(func(a *Admin) bool {
		return a.Role == identity.RoleEventAdmin && a.EventID != nil && *a.EventID == eventID
	})
}

func (r *memoryRepo) find(match func(*Admin) bool) (*Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if match(a) {
			copied := *a
			return &copied, nil
		}
	}
	return nil, ErrAdminNotFound
}

func newTestService() (*service, *memoryRepo, *identity.TokenIssuer) {
	repo := newMemoryRepo()
	issuer := identity.NewTokenIssuer("secret", "seatflow", time.Hour, 24*time.Hour)
	return NewService(repo, issuer).(*service), repo, issuer
}

func TestUpsertEventAdminThenLogin(t *testing.T) {
	svc, repo, issuer := newTestService()
	ctx := context.Background()
	eventID := uuid.New()

	require.NoError(t, svc.UpsertEventAdmin(ctx, eventID, "giros", "secret123", "", "Giros Indoor"))

	stored, err := repo.GetByEvent(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, "giros@event.local", stored.Email)
	assert.Equal(t, "Admin - Giros Indoor", stored.FullName)
	assert.NotEqual(t, "secret123", stored.PasswordHash)

	resp, err := svc.Login(ctx, &LoginRequest{Username: "giros", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "event_admin", resp.Admin.Role)
	assert.Equal(t, eventID.String(), resp.Admin.EventID)

	p, err := issuer.Parse(resp.AccessToken, identity.TokenTypeAccess)
	require.NoError(t, err)
	assert.True(t, p.CanManageEvent(eventID))
	assert.False(t, p.CanManageEvent(uuid.New()))
}

func TestUpsertEventAdminUpdatesExisting(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	eventID := uuid.New()

	require.NoError(t, svc.UpsertEventAdmin(ctx, eventID, "giros", "secret123", "a@b.com", "Giros"))
	first, _ := repo.GetByEvent(ctx, eventID)

	// empty password keeps the hash
	require.NoError(t, svc.UpsertEventAdmin(ctx, eventID, "giros2", "", "a@b.com", "Giros Renamed"))
	second, _ := repo.GetByEvent(ctx, eventID)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "giros2", second.Username)
	assert.Equal(t, "Admin - Giros Renamed", second.FullName)
	assert.Equal(t, first.PasswordHash, second.PasswordHash)
	assert.Len(t, repo.admins, 1)
}

func TestUpsertEventAdminRequiresPasswordOnCreate(t *testing.T) {
	svc, _, _ := newTestService()
	err := svc.UpsertEventAdmin(context.Background(), uuid.New(), "giros", "", "", "Giros")
	assert.True(t, apperrors.IsValidation(err))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	_, err := svc.EnsureSuperAdmin(ctx, "root", "rootpass", "root@seatflow.local")
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginRequest{Username: "root", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginRequest{Username: "nobody", Password: "rootpass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshTokenReissuesFromStoredAccount(t *testing.T) {
	svc, _, issuer := newTestService()
	ctx := context.Background()
	_, err := svc.EnsureSuperAdmin(ctx, "root", "rootpass", "")
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &LoginRequest{Username: "root", Password: "rootpass"})
	require.NoError(t, err)

	_, err = svc.RefreshToken(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	pair, err := svc.RefreshToken(ctx, resp.RefreshToken)
	require.NoError(t, err)
	p, err := issuer.Parse(pair.AccessToken, identity.TokenTypeAccess)
	require.NoError(t, err)
	assert.True(t, p.IsSuperAdmin())
}

func TestEnsureSuperAdminIsIdempotent(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	a, err := svc.EnsureSuperAdmin(ctx, "root", "rootpass", "")
	require.NoError(t, err)
	b, err := svc.EnsureSuperAdmin(ctx, "root", "other-pass", "")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)
	assert.Len(t, repo.admins, 1)
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	admin, err := svc.EnsureSuperAdmin(ctx, "root", "rootpass", "")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, admin.Principal(), &ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "newpass1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, admin.Principal(), &ChangePasswordRequest{CurrentPassword: "rootpass", NewPassword: "newpass1"}))
	_, err = svc.Login(ctx, &LoginRequest{Username: "root", Password: "newpass1"})
	assert.NoError(t, err)
}
