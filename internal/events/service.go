package events

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"seatflow/internal/sessions"
	"seatflow/internal/shared/apperrors"
	"seatflow/internal/shared/config"
	"seatflow/internal/shared/constants"
	"seatflow/internal/shared/database"
	"seatflow/internal/shared/identity"
	"seatflow/pkg/cache"
	"seatflow/pkg/logger"

	"github.com/google/uuid"
)

// SeatGenerator is the part of the seats service events drive
type SeatGenerator interface {
	GenerateForEvent(ctx context.Context, eventID uuid.UUID, list []sessions.Session, vipSeatNumber int) (int, error)
	InvalidateSeatMap(ctx context.Context, eventID uuid.UUID)
}

// AdminProvisioner creates or updates the admin account scoped to an event
type AdminProvisioner interface {
	UpsertEventAdmin(ctx context.Context, eventID uuid.UUID, username, password, email, eventName string) error
}

type Service interface {
	CreateEvent(ctx context.Context, p *identity.Principal, req EventRequest) (*Event, error)
	UpdateEvent(ctx context.Context, p *identity.Principal, id uuid.UUID, req EventRequest) (*Event, error)
	DeleteEvent(ctx context.Context, p *identity.Principal, id uuid.UUID) error
	GetEvent(ctx context.Context, id uuid.UUID) (*Event, error)
	GetManagedEvent(ctx context.Context, p *identity.Principal, id uuid.UUID) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, bool, error)
	GetActive(ctx context.Context) (*Event, error)
	ListEvents(ctx context.Context, p *identity.Principal, query EventListQuery) (*PaginatedEvents, error)
	DeactivateExpired(ctx context.Context) (int64, error)
}

type service struct {
	repo   Repository
	seats  SeatGenerator
	admins AdminProvisioner
	cache  cache.Service
	config *config.Config
	now    func() time.Time
}

func NewService(repo Repository, seatGenerator SeatGenerator, admins AdminProvisioner, cacheService cache.Service, cfg *config.Config) Service {
	return &service{
		repo:   repo,
		seats:  seatGenerator,
		admins: admins,
		cache:  cacheService,
		config: cfg,
		now:    time.Now,
	}
}

func (s *service) CreateEvent(ctx context.Context, p *identity.Principal, req EventRequest) (*Event, error) {
	if !p.IsSuperAdmin() {
		return nil, apperrors.ErrForbidden
	}
	if err := ValidateEvent(&req, s.config.Auction.DefaultVIPSeatNum); err != nil {
		return nil, err
	}

	event := &Event{CreatedBy: &p.AdminID}
	s.apply(event, req)
	if req.IsActive == nil {
		event.IsActive = true
	}

	if err := s.insertWithUniqueSlug(ctx, event); err != nil {
		return nil, err
	}

	seatCount, err := s.seats.GenerateForEvent(ctx, event.ID, event.Sessions(), s.vipSeatToMark(event))
	if err != nil {
		s.rollback(ctx, event.ID, err)
		return nil, fmt.Errorf("failed to generate seats: %w", err)
	}

	if req.Admin != nil {
		if err := s.provisionAdmin(ctx, event, req.Admin); err != nil {
			s.rollback(ctx, event.ID, err)
			return nil, err
		}
	}

	s.invalidate(ctx)
	logger.GetDefault().LogEventSaved(ctx, event.ID.String(), p.AdminID.String(), seatCount)
	return event, nil
}

func (s *service) UpdateEvent(ctx context.Context, p *identity.Principal, id uuid.UUID, req EventRequest) (*Event, error) {
	event, err := s.GetManagedEvent(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if err := ValidateEvent(&req, s.config.Auction.DefaultVIPSeatNum); err != nil {
		return nil, err
	}

	previousVIP := s.vipSeatToMark(event)
	previousRows := firstRows(event.Sessions())
	previousName := event.Name

	s.apply(event, req)

	if event.Name != previousName {
		slug, err := s.uniqueSlug(ctx, Slugify(event.Name), event.ID)
		if err != nil {
			return nil, err
		}
		event.Slug = slug
	}

	if err := s.repo.Save(ctx, event); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, apperrors.NewConflict("event slug", event.Slug)
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	// A changed layout regenerates every seat and drops the event's
	// reservations with them.
	seatCount := 0
	if !slices.Equal(previousRows, firstRows(event.Sessions())) || previousVIP != s.vipSeatToMark(event) {
		seatCount, err = s.seats.GenerateForEvent(ctx, event.ID, event.Sessions(), s.vipSeatToMark(event))
		if err != nil {
			return nil, fmt.Errorf("failed to regenerate seats: %w", err)
		}
	} else {
		s.seats.InvalidateSeatMap(ctx, event.ID)
	}

	if req.Admin != nil {
		if err := s.provisionAdmin(ctx, event, req.Admin); err != nil {
			return nil, err
		}
	}

	s.invalidate(ctx)
	logger.GetDefault().LogEventSaved(ctx, event.ID.String(), p.AdminID.String(), seatCount)
	return event, nil
}

func (s *service) DeleteEvent(ctx context.Context, p *identity.Principal, id uuid.UUID) error {
	if !p.IsSuperAdmin() {
		return apperrors.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.seats.InvalidateSeatMap(ctx, id)
	s.invalidate(ctx)
	return nil
}

func (s *service) GetEvent(ctx context.Context, id uuid.UUID) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

// GetManagedEvent loads an event the principal is allowed to administer
func (s *service) GetManagedEvent(ctx context.Context, p *identity.Principal, id uuid.UUID) (*Event, error) {
	if !p.CanManageEvent(id) {
		return nil, apperrors.ErrForbidden
	}
	return s.repo.GetByID(ctx, id)
}

// GetBySlug returns the active event with the slug. When none matches, the
// most recent active event is returned and the bool is true.
func (s *service) GetBySlug(ctx context.Context, slug string) (*Event, bool, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))

	var event Event
	err := s.cache.GetOrSet(ctx, constants.BuildEventBySlugKey(slug), s.eventTTL(), func() (interface{}, error) {
		return s.repo.GetActiveBySlug(ctx, slug)
	}, &event)
	if err == nil {
		return &event, false, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, false, err
	}

	fallback, err := s.GetActive(ctx)
	if err != nil {
		return nil, false, err
	}
	return fallback, true, nil
}

func (s *service) GetActive(ctx context.Context) (*Event, error) {
	var event Event
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_EVENT_ACTIVE, s.eventTTL(), func() (interface{}, error) {
		return s.repo.GetMostRecentActive(ctx)
	}, &event)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *service) ListEvents(ctx context.Context, p *identity.Principal, query EventListQuery) (*PaginatedEvents, error) {
	if p == nil {
		return nil, apperrors.ErrForbidden
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 20
	}

	var onlyID *uuid.UUID
	if !p.IsSuperAdmin() {
		if p.EventID == nil {
			return nil, apperrors.ErrForbidden
		}
		onlyID = p.EventID
	}

	list, total, err := s.repo.List(ctx, query, onlyID)
	if err != nil {
		return nil, err
	}

	responses := make([]EventResponse, len(list))
	for i := range list {
		responses[i] = list[i].ToResponse(s.config.Auction.DefaultVIPSeatNum, s.config.Auction.MinimumBid)
	}

	return &PaginatedEvents{
		Events:     responses,
		TotalCount: total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(query.Limit))),
	}, nil
}

func (s *service) DeactivateExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeactivateExpired(ctx, s.now().UTC())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.invalidate(ctx)
	}
	return n, nil
}

func (s *service) apply(event *Event, req EventRequest) {
	event.Name = strings.TrimSpace(req.Name)
	event.Room = strings.TrimSpace(req.Room)
	event.RoomLogo = req.RoomLogo
	event.Image = req.Image
	event.StartDate = req.StartDate
	event.EndDate = req.EndDate
	event.ExpirationDate = req.ExpirationDate
	event.AutoDeactivate = req.AutoDeactivate
	if req.IsActive != nil {
		event.IsActive = *req.IsActive
	}
	event.Config = EventConfig{
		Theme:    req.Theme,
		Sessions: BuildSessions(req.Sessions),
		WhatsApp: req.WhatsApp,
		Texts:    req.Texts,
		Branding: req.Branding,
		Features: req.Features,
	}
}

func (s *service) insertWithUniqueSlug(ctx context.Context, event *Event) error {
	base := Slugify(event.Name)
	// a concurrent create can take the slug between the check and the
	// insert; the unique index catches it and the next suffix is tried
	for attempt := 0; attempt < 5; attempt++ {
		slug, err := s.uniqueSlug(ctx, base, uuid.Nil)
		if err != nil {
			return err
		}
		event.Slug = slug

		err = s.repo.Create(ctx, event)
		if err == nil {
			return nil
		}
		if !errors.Is(err, database.ErrDuplicate) {
			return fmt.Errorf("failed to create event: %w", err)
		}
	}
	return apperrors.NewConflict("event slug", base)
}

func (s *service) uniqueSlug(ctx context.Context, base string, excludeID uuid.UUID) (string, error) {
	for n := 0; ; n++ {
		candidate := nthSlug(base, n)
		taken, err := s.repo.SlugTaken(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}

func (s *service) provisionAdmin(ctx context.Context, event *Event, req *EventAdminRequest) error {
	if s.admins == nil {
		return nil
	}
	if err := s.admins.UpsertEventAdmin(ctx, event.ID, req.Username, req.Password, req.Email, event.Name); err != nil {
		return fmt.Errorf("failed to provision event admin: %w", err)
	}
	return nil
}

func (s *service) rollback(ctx context.Context, eventID uuid.UUID, cause error) {
	if err := s.repo.Delete(ctx, eventID); err != nil {
		logger.GetDefault().WithError(err).Error("event rollback failed",
			"event_id", eventID.String(), "cause", cause.Error())
	}
}

// vipSeatToMark is the seat flagged is_vip in the generated layout
func (s *service) vipSeatToMark(event *Event) int {
	if !event.Config.Features.AuctionEnabled {
		return 0
	}
	return event.EventVIPSeat(s.config.Auction.DefaultVIPSeatNum)
}

func (s *service) invalidate(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_EVENTS_ALL); err != nil {
		logger.GetDefault().WithError(err).Warn("event cache invalidation failed")
	}
}

func (s *service) eventTTL() time.Duration {
	if s.config.Redis.EventTTL > 0 {
		return s.config.Redis.EventTTL
	}
	return constants.TTL_EVENT_DEFAULT
}

func firstRows(list []sessions.Session) []int {
	if len(list) == 0 {
		return nil
	}
	return list[0].RowConfiguration
}
