package events

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"seatflow/internal/sessions"
	"seatflow/internal/shared/apperrors"
	"seatflow/internal/shared/config"
	"seatflow/internal/shared/database"
	"seatflow/internal/shared/identity"
	"seatflow/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	mu     sync.Mutex
	events map[uuid.UUID]*Event
	order  []uuid.UUID
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{events: make(map[uuid.UUID]*Event)}
}

func (r *memoryRepo) Create(_ context.Context, e *Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.events {
		if existing.Slug == e.Slug {
			return database.ErrDuplicate
		}
	}
	e.ID = uuid.New()
	e.CreatedAt = time.Now().Add(time.Duration(len(r.order)) * time.Second)
	copied := *e
	r.events[e.ID] = &copied
	r.order = append(r.order, e.ID)
	return nil
}

func (r *memoryRepo) Save(_ context.Context, e *Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *e
	r.events[e.ID] = &copied
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return apperrors.NewNotFound("event", id.String())
	}
	delete(r.events, id)
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return nil, apperrors.NewNotFound("event", id.String())
	}
	copied := *e
	return &copied, nil
}

func (r *memoryRepo) GetActiveBySlug(_ context.Context, slug string) (*Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.Slug == slug && e.IsActive {
			copied := *e
			return &copied, nil
		}
	}
	return nil, apperrors.NewNotFound("event", slug)
}

func (r *memoryRepo) GetMostRecentActive(_ context.Context) (*Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var active []*Event
	for _, e := range r.events {
		if e.IsActive {
			active = append(active, e)
		}
	}
	if len(active) == 0 {
		return nil, apperrors.NewNotFound("event", "active")
	}
	sort.Slice(active, func(i, j int) bool { return active[i].CreatedAt.After(active[j].CreatedAt) })
	copied := *active[0]
	return &copied, nil
}

func (r *memoryRepo) List(_ context.Context, _ EventListQuery, onlyID *uuid.UUID) ([]Event, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, id := range r.order {
		e, ok := r.events[id]
		if !ok || (onlyID != nil && *onlyID != id) {
			continue
		}
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (r *memoryRepo) SlugTaken(_ context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.events {
		if e.Slug == slug && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepo) DeactivateExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, e := range r.events {
		if e.IsActive && e.AutoDeactivate && e.IsExpired(now) {
			e.IsActive = false
			n++
		}
	}
	return n, nil
}

type mockSeats struct {
	mock.Mock
}

func (m *mockSeats) GenerateForEvent(ctx context.Context, eventID uuid.UUID, list []sessions.Session, vip int) (int, error) {
	args := m.Called(ctx, eventID, list, vip)
	return args.Int(0), args.Error(1)
}

func (m *mockSeats) InvalidateSeatMap(ctx context.Context, eventID uuid.UUID) {
	m.Called(ctx, eventID)
}

type mockAdmins struct {
	mock.Mock
}

func (m *mockAdmins) UpsertEventAdmin(ctx context.Context, eventID uuid.UUID, username, password, email, eventName string) error {
	return m.Called(ctx, eventID, username, password, email, eventName).Error(0)
}

func testConfig() *config.Config {
	return &config.Config{Auction: config.AuctionConfig{MinimumBid: 13, DefaultVIPSeatNum: 27}}
}

var superAdmin = &identity.Principal{AdminID: uuid.New(), Role: identity.RoleSuperAdmin}

func TestCreateEventGeneratesSeatsAndAdmin(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	seatGen := new(mockSeats)
	admins := new(mockAdmins)
	svc := NewService(repo, seatGen, admins, cache.NewMemory(), testConfig())

	seatGen.On("GenerateForEvent", ctx, mock.Anything, mock.Anything, 27).Return(27, nil).Once()
	admins.On("UpsertEventAdmin", ctx, mock.Anything, "giros", "secret1", "", "Giros Indoor").Return(nil).Once()

	req := validRequest()
	req.Features.AuctionEnabled = true
	req.Admin = &EventAdminRequest{Username: "giros", Password: "secret1"}

	event, err := svc.CreateEvent(ctx, superAdmin, req)
	require.NoError(t, err)
	assert.Equal(t, "giros-indoor", event.Slug)
	assert.True(t, event.IsActive)
	assert.Equal(t, "session1", event.Config.Sessions[0].ID)

	seatGen.AssertExpectations(t)
	admins.AssertExpectations(t)
}

func TestCreateEventAllocatesUniqueSlug(t *testing.T) {
	ctx := context.Background()
	seatGen := new(mockSeats)
	seatGen.On("GenerateForEvent", mock.Anything, mock.Anything, mock.Anything, 0).Return(27, nil)
	svc := NewService(newMemoryRepo(), seatGen, nil, cache.NewMemory(), testConfig())

	first, err := svc.CreateEvent(ctx, superAdmin, validRequest())
	require.NoError(t, err)
	second, err := svc.CreateEvent(ctx, superAdmin, validRequest())
	require.NoError(t, err)
	third, err := svc.CreateEvent(ctx, superAdmin, validRequest())
	require.NoError(t, err)

	assert.Equal(t, "giros-indoor", first.Slug)
	assert.Equal(t, "giros-indoor-1", second.Slug)
	assert.Equal(t, "giros-indoor-2", third.Slug)
}

func TestCreateEventRollsBackWhenSeatGenerationFails(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	seatGen := new(mockSeats)
	seatGen.On("GenerateForEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(0, apperrors.NewExternal("replace seats", errors.New("connection reset")))
	svc := NewService(repo, seatGen, nil, cache.NewMemory(), testConfig())

	_, err := svc.CreateEvent(ctx, superAdmin, validRequest())
	require.Error(t, err)
	assert.True(t, apperrors.IsExternal(err))

	list, total, _ := repo.List(ctx, EventListQuery{}, nil)
	assert.Zero(t, total)
	assert.Empty(t, list)
}

func TestCreateEventRequiresSuperAdmin(t *testing.T) {
	eventID := uuid.New()
	scoped := &identity.Principal{AdminID: uuid.New(), Role: identity.RoleEventAdmin, EventID: &eventID}
	svc := NewService(newMemoryRepo(), new(mockSeats), nil, cache.NewMemory(), testConfig())

	_, err := svc.CreateEvent(context.Background(), scoped, validRequest())
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestUpdateEventRegeneratesOnlyOnLayoutChange(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	seatGen := new(mockSeats)
	svc := NewService(repo, seatGen, nil, cache.NewMemory(), testConfig())

	seatGen.On("GenerateForEvent", mock.Anything, mock.Anything, mock.Anything, 0).Return(27, nil).Once()
	event, err := svc.CreateEvent(ctx, superAdmin, validRequest())
	require.NoError(t, err)

	scoped := &identity.Principal{AdminID: uuid.New(), Role: identity.RoleEventAdmin, EventID: &event.ID}

	// same rows: only the seat map cache is dropped
	seatGen.On("InvalidateSeatMap", mock.Anything, event.ID).Once()
	req := validRequest()
	req.Room = "Sala 2"
	updated, err := svc.UpdateEvent(ctx, scoped, event.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Sala 2", updated.Room)
	assert.Equal(t, event.Slug, updated.Slug)

	// new rows: the layout is rebuilt
	seatGen.On("GenerateForEvent", mock.Anything, event.ID, mock.Anything, 0).Return(20, nil).Once()
	req = validRequest()
	req.Name = "Giros Renovado"
	req.Sessions[0].SeatCount = 20
	req.Sessions[0].RowConfiguration = []int{5, 5, 5, 5}
	req.Sessions[1].SeatCount = 20
	updated, err = svc.UpdateEvent(ctx, scoped, event.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "giros-renovado", updated.Slug)

	seatGen.AssertExpectations(t)

	other := uuid.New()
	outsider := &identity.Principal{AdminID: uuid.New(), Role: identity.RoleEventAdmin, EventID: &other}
	_, err = svc.UpdateEvent(ctx, outsider, event.ID, validRequest())
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestGetBySlugFallsBackToMostRecentActive(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	seatGen := new(mockSeats)
	seatGen.On("GenerateForEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(27, nil)
	svc := NewService(repo, seatGen, nil, cache.NewMemory(), testConfig())

	older, err := svc.CreateEvent(ctx, superAdmin, validRequest())
	require.NoError(t, err)
	req := validRequest()
	req.Name = "Segundo Evento"
	newer, err := svc.CreateEvent(ctx, superAdmin, req)
	require.NoError(t, err)

	got, fallback, err := svc.GetBySlug(ctx, older.Slug)
	require.NoError(t, err)
	assert.False(t, fallback)
	assert.Equal(t, older.ID, got.ID)

	got, fallback, err = svc.GetBySlug(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.True(t, fallback)
	assert.Equal(t, newer.ID, got.ID)
}

func TestDeactivateExpired(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	seatGen := new(mockSeats)
	seatGen.On("GenerateForEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(27, nil)
	svc := NewService(repo, seatGen, nil, cache.NewMemory(), testConfig())

	past := time.Now().Add(-time.Hour)
	req := validRequest()
	req.ExpirationDate = &past
	req.AutoDeactivate = true
	expired, err := svc.CreateEvent(ctx, superAdmin, req)
	require.NoError(t, err)

	req = validRequest()
	req.Name = "Sin Vencimiento"
	req.ExpirationDate = &past
	kept, err := svc.CreateEvent(ctx, superAdmin, req)
	require.NoError(t, err)

	n, err := svc.DeactivateExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	e, _ := repo.GetByID(ctx, expired.ID)
	assert.False(t, e.IsActive)
	e, _ = repo.GetByID(ctx, kept.ID)
	assert.True(t, e.IsActive)
}

func TestToResponseResolvesAuctionDefaults(t *testing.T) {
	override := 5
	e := &Event{
		ID:   uuid.New(),
		Name: "Giros",
		Config: EventConfig{
			Sessions: []sessions.Session{
				{ID: "session1", Name: "Mañana", Time: "08:00", SeatCount: 27},
				{ID: "session2", Name: "Tarde", Time: "18:30", SeatCount: 27, VIPSeatNumber: &override},
			},
			Features: Features{AuctionEnabled: true},
		},
	}

	resp := e.ToResponse(27, 13)
	assert.Equal(t, 13.0, resp.MinimumBid)
	assert.Equal(t, 27, resp.SeatCount)
	assert.Equal(t, 27, resp.Sessions[0].VIPSeat)
	assert.Equal(t, 5, resp.Sessions[1].VIPSeat)
	assert.Equal(t, "Tarde - 6:30 PM", resp.Sessions[1].DisplayName)
}
