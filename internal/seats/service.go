package seats

import (
	"context"
	"fmt"
	"time"

	"seatflow/internal/sessions"
	"seatflow/internal/shared/apperrors"
	"seatflow/internal/shared/config"
	"seatflow/internal/shared/constants"
	"seatflow/pkg/cache"
	"seatflow/pkg/logger"

	"github.com/google/uuid"
)

// EventLookup gives the seat map the event's configured sessions without
// importing the events package (events already depends on seats).
type EventLookup interface {
	SessionLayout(ctx context.Context, eventID uuid.UUID) (*EventLayout, error)
}

// EventLayout is the slice of an event the seat map needs. VIPSeatNumber is
// the event-wide designated seat; a session may override it.
type EventLayout struct {
	Sessions       []sessions.Session
	AuctionEnabled bool
	VIPSeatNumber  int
}

// VIPSeatFor resolves the designated auction seat for one session
func (l *EventLayout) VIPSeatFor(s *sessions.Session) int {
	if !l.AuctionEnabled {
		return 0
	}
	if s != nil && s.VIPSeatNumber != nil && *s.VIPSeatNumber > 0 {
		return *s.VIPSeatNumber
	}
	return l.VIPSeatNumber
}

// OccupancyReader reports, per seat id, the status held in one session.
// Implementations apply the legacy rule so old rows count for every session.
type OccupancyReader interface {
	SeatStatuses(ctx context.Context, eventID uuid.UUID, sessionID string) (map[uuid.UUID]SeatStatus, error)
}

type Service interface {
	// GenerateForEvent validates, builds and stores a fresh layout. Any
	// reservations against the previous layout are discarded.
	GenerateForEvent(ctx context.Context, eventID uuid.UUID, list []sessions.Session, vipSeatNumber int) (int, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]Seat, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Seat, error)
	GetByNumber(ctx context.Context, eventID uuid.UUID, seatNumber int) (*Seat, error)
	DeleteForEvent(ctx context.Context, eventID uuid.UUID) error

	GetSeatMap(ctx context.Context, eventID uuid.UUID, sessionRef string) (*SeatMap, error)
	InvalidateSeatMap(ctx context.Context, eventID uuid.UUID)
}

type service struct {
	repo      Repository
	events    EventLookup
	occupancy OccupancyReader
	cache     cache.Service
	config    *config.Config
}

func NewService(repo Repository, events EventLookup, occupancy OccupancyReader, cacheService cache.Service, cfg *config.Config) Service {
	return &service{
		repo:      repo,
		events:    events,
		occupancy: occupancy,
		cache:     cacheService,
		config:    cfg,
	}
}

func (s *service) GenerateForEvent(ctx context.Context, eventID uuid.UUID, list []sessions.Session, vipSeatNumber int) (int, error) {
	layout, err := GenerateLayout(eventID, list, vipSeatNumber)
	if err != nil {
		return 0, err
	}

	if err := s.repo.ReplaceForEvent(ctx, eventID, layout); err != nil {
		return 0, fmt.Errorf("failed to store seat layout: %w", err)
	}

	s.InvalidateSeatMap(ctx, eventID)
	return len(layout), nil
}

func (s *service) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]Seat, error) {
	return s.repo.ListByEvent(ctx, eventID)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Seat, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByNumber(ctx context.Context, eventID uuid.UUID, seatNumber int) (*Seat, error) {
	return s.repo.GetByNumber(ctx, eventID, seatNumber)
}

func (s *service) DeleteForEvent(ctx context.Context, eventID uuid.UUID) error {
	if err := s.repo.DeleteByEvent(ctx, eventID); err != nil {
		return err
	}
	s.InvalidateSeatMap(ctx, eventID)
	return nil
}

func (s *service) GetSeatMap(ctx context.Context, eventID uuid.UUID, sessionRef string) (*SeatMap, error) {
	layout, err := s.events.SessionLayout(ctx, eventID)
	if err != nil {
		return nil, err
	}

	session, ok := sessions.Find(layout.Sessions, sessionRef)
	if !ok {
		return nil, apperrors.NewNotFound("session", sessionRef)
	}

	var seatMap SeatMap
	key := constants.BuildSeatMapKey(eventID.String(), session.ID)
	err = s.cache.GetOrSet(ctx, key, s.seatMapTTL(), func() (interface{}, error) {
		return s.buildSeatMap(ctx, eventID, session, layout)
	}, &seatMap)
	if err != nil {
		return nil, err
	}
	return &seatMap, nil
}

func (s *service) buildSeatMap(ctx context.Context, eventID uuid.UUID, session *sessions.Session, layout *EventLayout) (*SeatMap, error) {
	seats, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	statuses, err := s.occupancy.SeatStatuses(ctx, eventID, session.ID)
	if err != nil {
		return nil, err
	}

	vip := layout.VIPSeatFor(session)

	seatMap := &SeatMap{
		EventID:     eventID.String(),
		SessionID:   session.ID,
		SessionName: sessions.DisplayName(session),
		VIPSeat:     vip,
		Rows:        [][]SeatMapEntry{},
	}

	currentRow := 0
	for _, seat := range seats {
		status, held := statuses[seat.ID]
		if !held {
			status = StatusAvailable
		}

		isVIP := vip > 0 && seat.SeatNumber == vip
		// the designated seat is only handed out through the auction
		entry := SeatMapEntry{
			SeatID:       seat.ID.String(),
			SeatNumber:   seat.SeatNumber,
			RowNumber:    seat.RowNumber,
			IsSelectable: seat.IsSelectable && status == StatusAvailable && !isVIP,
			IsVIP:        isVIP,
			Status:       status,
		}

		if seat.RowNumber != currentRow || len(seatMap.Rows) == 0 {
			seatMap.Rows = append(seatMap.Rows, []SeatMapEntry{})
			currentRow = seat.RowNumber
		}
		last := len(seatMap.Rows) - 1
		seatMap.Rows[last] = append(seatMap.Rows[last], entry)

		seatMap.Counts.Total++
		switch status {
		case StatusOccupied:
			seatMap.Counts.Occupied++
		case StatusReserved:
			seatMap.Counts.Reserved++
		default:
			seatMap.Counts.Available++
		}
	}

	return seatMap, nil
}

// InvalidateSeatMap drops every cached session map of the event. Failures
// only cost a stale read until the TTL expires, so they are logged.
func (s *service) InvalidateSeatMap(ctx context.Context, eventID uuid.UUID) {
	if err := s.cache.DeletePattern(ctx, constants.BuildSeatMapPattern(eventID.String())); err != nil {
		logger.GetDefault().WithError(err).Warn("seat map invalidation failed", "event_id", eventID.String())
	}
}

func (s *service) seatMapTTL() time.Duration {
	if s.config != nil && s.config.Redis.SeatMapTTL > 0 {
		return s.config.Redis.SeatMapTTL
	}
	return constants.TTL_SEAT_MAP_DEFAULT
}
