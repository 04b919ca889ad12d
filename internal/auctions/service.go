package auctions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"seatflow/internal/events"
	"seatflow/internal/notifications"
	"seatflow/internal/reservations"
	"seatflow/internal/seats"
	"seatflow/internal/sessions"
	"seatflow/internal/shared/apperrors"
	"seatflow/internal/shared/config"
	"seatflow/internal/shared/identity"
	"seatflow/pkg/logger"

	"github.com/google/uuid"
)

type EventReader interface {
	GetEvent(ctx context.Context, id uuid.UUID) (*events.Event, error)
}

type SeatFinder interface {
	GetByNumber(ctx context.Context, eventID uuid.UUID, seatNumber int) (*seats.Seat, error)
}

// OccupiedReserver books the VIP seat straight into the occupied state
type OccupiedReserver interface {
	ReserveOccupied(ctx context.Context, in reservations.OccupiedInput) (*reservations.Reservation, error)
}

type Service interface {
	PlaceBid(ctx context.Context, eventID uuid.UUID, req PlaceBidRequest) (*AuctionBid, error)
	ListBids(ctx context.Context, p *identity.Principal, eventID uuid.UUID, sessionRef string) ([]AuctionBid, error)
	TopBid(ctx context.Context, p *identity.Principal, eventID uuid.UUID, sessionRef string) (*AuctionBid, error)
	AssignVIPSeat(ctx context.Context, p *identity.Principal, bidID uuid.UUID) (*Assignment, error)
	DeleteBid(ctx context.Context, p *identity.Principal, bidID uuid.UUID) error
	CountBySession(ctx context.Context, eventID uuid.UUID) (map[string]int, error)
	MinimumBid(event *events.Event) float64
}

// Assignment is the outcome of a successful VIP seat assignment
type Assignment struct {
	Bid         *AuctionBid
	Seat        *seats.Seat
	Reservation *reservations.Reservation
}

type service struct {
	repo       Repository
	events     EventReader
	seats      SeatFinder
	reserver   OccupiedReserver
	dispatcher notifications.Dispatcher
	config     *config.Config
	log        *logger.Logger
	now        func() time.Time
}

func NewService(repo Repository, eventReader EventReader, seatFinder SeatFinder, reserver OccupiedReserver, dispatcher notifications.Dispatcher, cfg *config.Config) Service {
	return &service{
		repo:       repo,
		events:     eventReader,
		seats:      seatFinder,
		reserver:   reserver,
		dispatcher: dispatcher,
		config:     cfg,
		log:        logger.GetDefault(),
		now:        time.Now,
	}
}

func (s *service) MinimumBid(event *events.Event) float64 {
	return event.MinimumBid(s.config.Auction.MinimumBid)
}

func (s *service) PlaceBid(ctx context.Context, eventID uuid.UUID, req PlaceBidRequest) (*AuctionBid, error) {
	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsActive || event.IsExpired(s.now()) || !event.Config.Features.AuctionEnabled {
		return nil, apperrors.NewValidation("the auction is not open for this event")
	}

	session, ok := event.FindSession(req.SessionID)
	if !ok {
		return nil, apperrors.NewValidation(fmt.Sprintf("unknown session %q", req.SessionID))
	}

	var problems []string
	name := strings.TrimSpace(req.FullName)
	if name == "" {
		problems = append(problems, "full name is required")
	}
	phone := reservations.NormalizePhone(req.Phone)
	if len(phone) < 7 {
		problems = append(problems, "phone must have at least 7 digits")
	}
	if minimum := s.MinimumBid(event); req.Amount < minimum {
		problems = append(problems, fmt.Sprintf("bid must be at least %.2f", minimum))
	}
	if len(problems) > 0 {
		return nil, apperrors.NewValidation(problems...)
	}

	bid := &AuctionBid{
		EventID:   event.ID,
		SessionID: session.ID,
		FullName:  name,
		Phone:     phone,
		Amount:    req.Amount,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, bid); err != nil {
		return nil, err
	}

	n := notifications.New(notifications.KindBidPlaced, event.ID, bid.SessionID, bid.ID,
		reservations.OrganizerPhone(event, s.config), s.payload(event, session, bid, 0))
	notifications.Notify(ctx, s.dispatcher, n)
	return bid, nil
}

func (s *service) ListBids(ctx context.Context, p *identity.Principal, eventID uuid.UUID, sessionRef string) ([]AuctionBid, error) {
	if !p.CanManageEvent(eventID) {
		return nil, apperrors.ErrForbidden
	}
	return s.rankedForSession(ctx, eventID, sessionRef)
}

func (s *service) TopBid(ctx context.Context, p *identity.Principal, eventID uuid.UUID, sessionRef string) (*AuctionBid, error) {
	ranked, err := s.ListBids(ctx, p, eventID, sessionRef)
	if err != nil {
		return nil, err
	}
	if len(ranked) == 0 {
		return nil, apperrors.NewNotFound("bid", sessions.Canonical(sessionRef))
	}
	return &ranked[0], nil
}

func (s *service) rankedForSession(ctx context.Context, eventID uuid.UUID, sessionRef string) ([]AuctionBid, error) {
	bids, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if sessionRef != "" {
		bids = sessions.Filter(bids, func(b AuctionBid) string { return b.SessionID }, eventID, sessionRef)
	}
	return RankBids(bids), nil
}

// AssignVIPSeat books the session's designated seat for the bidder. The
// reservation insert is the only guard, so of two concurrent assignments for
// one session exactly one succeeds and the other reports the winner.
func (s *service) AssignVIPSeat(ctx context.Context, p *identity.Principal, bidID uuid.UUID) (*Assignment, error) {
	bid, err := s.repo.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if !p.CanManageEvent(bid.EventID) {
		return nil, apperrors.ErrForbidden
	}

	event, err := s.events.GetEvent(ctx, bid.EventID)
	if err != nil {
		return nil, err
	}
	if !event.Config.Features.AuctionEnabled {
		return nil, apperrors.NewValidation("the auction is disabled for this event")
	}
	session, ok := sessions.Attribute(event.Sessions(), bid.SessionID, event.ID)
	if !ok {
		return nil, apperrors.NewValidation(fmt.Sprintf("session %q is no longer configured", bid.SessionID))
	}

	seatNumber := event.EventVIPSeat(s.config.Auction.DefaultVIPSeatNum)
	if session.VIPSeatNumber != nil && *session.VIPSeatNumber > 0 {
		seatNumber = *session.VIPSeatNumber
	}
	seat, err := s.seats.GetByNumber(ctx, event.ID, seatNumber)
	if err != nil {
		return nil, err
	}

	res, err := s.reserver.ReserveOccupied(ctx, reservations.OccupiedInput{
		EventID:      event.ID,
		SeatID:       seat.ID,
		SessionID:    session.ID,
		CustomerName: bid.FullName,
		Phone:        bid.Phone,
		Source:       reservations.SourceAuction,
		AuctionBidID: &bid.ID,
	})
	if err != nil {
		if conflict, ok := apperrors.AsConflict(err); ok {
			return nil, apperrors.NewConflict(fmt.Sprintf("VIP seat %d", seat.SeatNumber), conflict.Occupant)
		}
		return nil, err
	}

	s.log.LogVIPAssigned(ctx, bid.ID.String(), res.ID.String(), session.ID, bid.Amount)
	n := notifications.New(notifications.KindVIPAssigned, event.ID, session.ID, bid.ID,
		reservations.OrganizerPhone(event, s.config), s.payload(event, session, bid, seat.SeatNumber))
	notifications.Notify(ctx, s.dispatcher, n)

	return &Assignment{Bid: bid, Seat: seat, Reservation: res}, nil
}

// DeleteBid removes only the bid. A reservation created from it stays.
func (s *service) DeleteBid(ctx context.Context, p *identity.Principal, bidID uuid.UUID) error {
	bid, err := s.repo.GetByID(ctx, bidID)
	if err != nil {
		return err
	}
	if !p.CanManageEvent(bid.EventID) {
		return apperrors.ErrForbidden
	}
	return s.repo.Delete(ctx, bidID)
}

// CountBySession counts bids per configured session, legacy bids in every session
func (s *service) CountBySession(ctx context.Context, eventID uuid.UUID) (map[string]int, error) {
	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	bids, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(event.Sessions()))
	for _, session := range event.Sessions() {
		for _, b := range bids {
			if sessions.Matches(b.SessionID, eventID, session.ID) {
				counts[session.ID]++
			}
		}
	}
	return counts, nil
}

func (s *service) payload(event *events.Event, session *sessions.Session, bid *AuctionBid, seatNumber int) notifications.Payload {
	p := notifications.Payload{
		EventName:    event.Name,
		Room:         event.Room,
		SessionName:  sessions.DisplayName(session),
		SeatNumber:   seatNumber,
		CustomerName: bid.FullName,
		Phone:        bid.Phone,
		Amount:       bid.Amount,
	}
	if event.StartDate != nil {
		p.EventDate = *event.StartDate
	}
	return p
}
