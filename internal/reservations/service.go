package reservations

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"seatflow/internal/events"
	"seatflow/internal/notifications"
	"seatflow/internal/seats"
	"seatflow/internal/sessions"
	"seatflow/internal/shared/apperrors"
	"seatflow/internal/shared/config"
	"seatflow/internal/shared/database"
	"seatflow/internal/shared/identity"
	"seatflow/pkg/logger"

	"github.com/google/uuid"
)

// EventReader is the part of the events service reservations need
type EventReader interface {
	GetEvent(ctx context.Context, id uuid.UUID) (*events.Event, error)
}

// SeatStore is the part of the seats service reservations need
type SeatStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*seats.Seat, error)
	InvalidateSeatMap(ctx context.Context, eventID uuid.UUID)
}

type Service interface {
	Reserve(ctx context.Context, eventID uuid.UUID, req ReserveRequest) (*Reservation, error)
	ReserveOccupied(ctx context.Context, in OccupiedInput) (*Reservation, error)
	Confirm(ctx context.Context, p *identity.Principal, id uuid.UUID) (*Reservation, error)
	Cancel(ctx context.Context, p *identity.Principal, id uuid.UUID) (*Reservation, error)
	Reopen(ctx context.Context, p *identity.Principal, id uuid.UUID) (*Reservation, error)
	Get(ctx context.Context, p *identity.Principal, id uuid.UUID) (*Reservation, error)
	List(ctx context.Context, p *identity.Principal, eventID uuid.UUID, filter ListFilter) ([]Reservation, error)
	OccupiedForSession(ctx context.Context, eventID uuid.UUID, sessionRef string) ([]Reservation, error)
	ListForEvent(ctx context.Context, eventID uuid.UUID) ([]Reservation, error)
}

type service struct {
	repo       Repository
	events     EventReader
	seats      SeatStore
	dispatcher notifications.Dispatcher
	config     *config.Config
	log        *logger.Logger
	now        func() time.Time
}

func NewService(repo Repository, eventReader EventReader, seatStore SeatStore, dispatcher notifications.Dispatcher, cfg *config.Config) Service {
	return &service{
		repo:       repo,
		events:     eventReader,
		seats:      seatStore,
		dispatcher: dispatcher,
		config:     cfg,
		log:        logger.GetDefault(),
		now:        time.Now,
	}
}

func (s *service) Reserve(ctx context.Context, eventID uuid.UUID, req ReserveRequest) (*Reservation, error) {
	c, err := normalizeCustomer(req)
	if err != nil {
		return nil, err
	}

	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsActive || event.IsExpired(s.now()) {
		return nil, apperrors.NewValidation("event is not accepting reservations")
	}

	session, ok := event.FindSession(req.SessionID)
	if !ok {
		return nil, apperrors.NewValidation(fmt.Sprintf("unknown session %q", req.SessionID))
	}

	seat, err := s.seatOf(ctx, event.ID, req.SeatID)
	if err != nil {
		return nil, err
	}
	if !seat.IsSelectable {
		return nil, apperrors.NewValidation(fmt.Sprintf("seat %d is not selectable", seat.SeatNumber))
	}
	if vip := event.Layout(s.config.Auction.DefaultVIPSeatNum).VIPSeatFor(session); vip > 0 && vip == seat.SeatNumber {
		return nil, apperrors.NewValidation(fmt.Sprintf("seat %d is assigned through the auction", seat.SeatNumber))
	}

	res := &Reservation{
		EventID:       event.ID,
		SeatID:        seat.ID,
		SessionID:     session.ID,
		CustomerName:  c.Name,
		CustomerPhone: c.Phone,
		NationalID:    c.NationalID,
		Status:        StatusReserved,
		Source:        SourceDirect,
	}
	if err := s.insert(ctx, event, seat, res); err != nil {
		return nil, err
	}

	s.log.LogReservationCreated(ctx, res.ID.String(), event.ID.String(), res.SessionID, seat.SeatNumber)
	s.afterTransition(ctx, event, res, notifications.KindReservationCreated)
	return res, nil
}

func (s *service) ReserveOccupied(ctx context.Context, in OccupiedInput) (*Reservation, error) {
	event, err := s.events.GetEvent(ctx, in.EventID)
	if err != nil {
		return nil, err
	}
	session, ok := event.FindSession(in.SessionID)
	if !ok {
		return nil, apperrors.NewValidation(fmt.Sprintf("unknown session %q", in.SessionID))
	}
	seat, err := s.seatOf(ctx, event.ID, in.SeatID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	source := in.Source
	if source == "" {
		source = SourceDirect
	}
	res := &Reservation{
		EventID:       event.ID,
		SeatID:        seat.ID,
		SessionID:     session.ID,
		CustomerName:  NormalizeName(in.CustomerName),
		CustomerPhone: NormalizePhone(in.Phone),
		NationalID:    NormalizeNationalID(in.NationalID),
		Status:        StatusOccupied,
		Source:        source,
		AuctionBidID:  in.AuctionBidID,
		ConfirmedAt:   &now,
	}
	if res.CustomerName == "" {
		res.CustomerName = in.CustomerName
	}
	if err := s.insert(ctx, event, seat, res); err != nil {
		return nil, err
	}

	s.log.LogReservationCreated(ctx, res.ID.String(), event.ID.String(), res.SessionID, seat.SeatNumber)
	// the auction sends its own vip_assigned message
	s.seats.InvalidateSeatMap(ctx, event.ID)
	return res, nil
}

// insert rejects seats already held for the session under another id form
// (legacy or rodada<N>) and then relies on the unique index for the rest.
func (s *service) insert(ctx context.Context, event *events.Event, seat *seats.Seat, res *Reservation) error {
	held, err := s.repo.ListBySeat(ctx, seat.ID)
	if err != nil {
		return err
	}
	for _, h := range held {
		if sessions.Matches(h.SessionID, event.ID, res.SessionID) {
			s.log.LogReservationConflict(ctx, seat.ID.String(), res.SessionID)
			return apperrors.NewConflict(fmt.Sprintf("seat %d", seat.SeatNumber), h.CustomerName)
		}
	}

	err = s.repo.Insert(ctx, res)
	if errors.Is(err, database.ErrDuplicate) {
		s.log.LogReservationConflict(ctx, seat.ID.String(), res.SessionID)
		occupant := ""
		if existing, findErr := s.repo.FindBySeatSession(ctx, seat.ID, res.SessionID); findErr == nil {
			occupant = existing.CustomerName
		}
		return apperrors.NewConflict(fmt.Sprintf("seat %d", seat.SeatNumber), occupant)
	}
	if err != nil {
		return err
	}
	res.Seat = seat
	return nil
}

func (s *service) Confirm(ctx context.Context, p *identity.Principal, id uuid.UUID) (*Reservation, error) {
	res, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if res.Status == StatusOccupied {
		return res, nil
	}

	now := s.now()
	updated, err := s.repo.Confirm(ctx, id, now)
	if err != nil {
		return nil, err
	}
	if !updated {
		// lost a race: either someone confirmed it (no-op) or it was deleted
		return s.repo.GetByID(ctx, id)
	}

	res.Status = StatusOccupied
	res.ConfirmedAt = &now
	s.log.LogReservationTransition(ctx, res.ID.String(), "confirm", p.AdminID.String())
	s.afterTransitionByID(ctx, res, notifications.KindReservationConfirmed)
	return res, nil
}

func (s *service) Cancel(ctx context.Context, p *identity.Principal, id uuid.UUID) (*Reservation, error) {
	return s.remove(ctx, p, id, "cancel", notifications.KindReservationCancelled)
}

func (s *service) Reopen(ctx context.Context, p *identity.Principal, id uuid.UUID) (*Reservation, error) {
	return s.remove(ctx, p, id, "reopen", notifications.KindSeatReopened)
}

func (s *service) remove(ctx context.Context, p *identity.Principal, id uuid.UUID, transition string, kind notifications.Kind) (*Reservation, error) {
	res, err := s.Get(ctx, p, id)
	if err != nil {
		return nil, err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	deleted.Seat = res.Seat

	s.log.LogReservationTransition(ctx, deleted.ID.String(), transition, p.AdminID.String())
	s.afterTransitionByID(ctx, deleted, kind)
	return deleted, nil
}

func (s *service) Get(ctx context.Context, p *identity.Principal, id uuid.UUID) (*Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.CanManageEvent(res.EventID) {
		return nil, apperrors.ErrForbidden
	}
	return res, nil
}

func (s *service) List(ctx context.Context, p *identity.Principal, eventID uuid.UUID, filter ListFilter) ([]Reservation, error) {
	if !p.CanManageEvent(eventID) {
		return nil, apperrors.ErrForbidden
	}
	list, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if filter.SessionID != "" {
		list = sessions.Filter(list, func(r Reservation) string { return r.SessionID }, eventID, filter.SessionID)
	}
	if filter.Status != "" {
		kept := list[:0]
		for _, r := range list {
			if r.Status == filter.Status {
				kept = append(kept, r)
			}
		}
		list = kept
	}
	return list, nil
}

// OccupiedForSession is the list a report renders: occupied rows for one
// session, legacy rows included, ordered by seat number.
func (s *service) OccupiedForSession(ctx context.Context, eventID uuid.UUID, sessionRef string) ([]Reservation, error) {
	list, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	list = sessions.Filter(list, func(r Reservation) string { return r.SessionID }, eventID, sessionRef)

	occupied := make([]Reservation, 0, len(list))
	for _, r := range list {
		if r.Status == StatusOccupied {
			occupied = append(occupied, r)
		}
	}
	sort.SliceStable(occupied, func(i, j int) bool {
		return occupied[i].SeatNumber() < occupied[j].SeatNumber()
	})
	return occupied, nil
}

func (s *service) ListForEvent(ctx context.Context, eventID uuid.UUID) ([]Reservation, error) {
	return s.repo.ListByEvent(ctx, eventID)
}

func (s *service) seatOf(ctx context.Context, eventID, seatID uuid.UUID) (*seats.Seat, error) {
	seat, err := s.seats.GetByID(ctx, seatID)
	if err != nil {
		return nil, err
	}
	if seat.EventID != eventID {
		return nil, apperrors.NewValidation(fmt.Sprintf("seat %s does not belong to this event", seatID))
	}
	return seat, nil
}

func (s *service) afterTransitionByID(ctx context.Context, res *Reservation, kind notifications.Kind) {
	event, err := s.events.GetEvent(ctx, res.EventID)
	if err != nil {
		s.log.WithError(err).Warn("event lookup after transition failed", "reservation_id", res.ID.String())
		s.seats.InvalidateSeatMap(ctx, res.EventID)
		return
	}
	s.afterTransition(ctx, event, res, kind)
}

func (s *service) afterTransition(ctx context.Context, event *events.Event, res *Reservation, kind notifications.Kind) {
	s.seats.InvalidateSeatMap(ctx, event.ID)
	n := notifications.New(kind, event.ID, res.SessionID, res.ID, OrganizerPhone(event, s.config), Payload(event, res))
	notifications.Notify(ctx, s.dispatcher, n)
}

// OrganizerPhone is the event's WhatsApp admin number, else the configured default
func OrganizerPhone(event *events.Event, cfg *config.Config) string {
	if phone := event.Config.WhatsApp.AdminPhone; phone != "" {
		return phone
	}
	return cfg.Notifications.OrganizerPhone
}

// Payload describes a reservation for a notification
func Payload(event *events.Event, res *Reservation) notifications.Payload {
	session, _ := sessions.Attribute(event.Sessions(), res.SessionID, event.ID)
	p := notifications.Payload{
		EventName:    event.Name,
		Room:         event.Room,
		SessionName:  sessions.DisplayName(session),
		SeatNumber:   res.SeatNumber(),
		CustomerName: res.CustomerName,
		Phone:        res.CustomerPhone,
		NationalID:   res.NationalID,
		Status:       string(res.Status),
	}
	if res.Seat != nil {
		p.RowNumber = res.Seat.RowNumber
	}
	if event.StartDate != nil {
		p.EventDate = *event.StartDate
	}
	return p
}
