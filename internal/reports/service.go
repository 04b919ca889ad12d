package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"seatflow/internal/events"
	"seatflow/internal/reservations"
	"seatflow/internal/seats"
	"seatflow/internal/sessions"
	"seatflow/internal/shared/apperrors"
	"seatflow/internal/shared/constants"
	"seatflow/internal/shared/identity"
	"seatflow/pkg/cache"
	"seatflow/pkg/logger"

	"github.com/google/uuid"
)

type EventReader interface {
	GetEvent(ctx context.Context, id uuid.UUID) (*events.Event, error)
}

type ReservationSource interface {
	OccupiedForSession(ctx context.Context, eventID uuid.UUID, sessionRef string) ([]reservations.Reservation, error)
	ListForEvent(ctx context.Context, eventID uuid.UUID) ([]reservations.Reservation, error)
}

// BidCounter reports bids per session. Optional.
type BidCounter interface {
	CountBySession(ctx context.Context, eventID uuid.UUID) (map[string]int, error)
}

// Service defines the reports service interface
type Service interface {
	OccupiedList(ctx context.Context, p *identity.Principal, eventID uuid.UUID, sessionRef string) (*OccupiedReport, error)
	ExportCSV(ctx context.Context, p *identity.Principal, eventID uuid.UUID, sessionRef string) (string, []byte, error)
	Summary(ctx context.Context, p *identity.Principal, eventID uuid.UUID) (*EventSummary, error)
}

type service struct {
	events       EventReader
	reservations ReservationSource
	bids         BidCounter
	cacheService cache.Service
	log          *logger.Logger
	now          func() time.Time
}

// NewService creates a new reports service instance
func NewService(eventReader EventReader, source ReservationSource, bids BidCounter, cacheService cache.Service) Service {
	return &service{
		events:       eventReader,
		reservations: source,
		bids:         bids,
		cacheService: cacheService,
		log:          logger.GetDefault(),
		now:          time.Now,
	}
}

func (s *service) OccupiedList(ctx context.Context, p *identity.Principal, eventID uuid.UUID, sessionRef string) (*OccupiedReport, error) {
	report, _, _, err := s.occupied(ctx, p, eventID, sessionRef)
	return report, err
}

func (s *service) occupied(ctx context.Context, p *identity.Principal, eventID uuid.UUID, sessionRef string) (*OccupiedReport, *events.Event, *sessions.Session, error) {
	if !p.CanManageEvent(eventID) {
		return nil, nil, nil, apperrors.ErrForbidden
	}

	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, nil, nil, err
	}
	session, err := resolveSession(event, sessionRef)
	if err != nil {
		return nil, nil, nil, err
	}

	list, err := s.reservations.OccupiedForSession(ctx, eventID, session.ID)
	if err != nil {
		return nil, nil, nil, err
	}

	report := &OccupiedReport{
		EventID:     event.ID,
		EventName:   event.Name,
		Room:        event.Room,
		EventDate:   event.StartDate,
		SessionID:   session.ID,
		SessionName: sessions.DisplayName(session),
		GeneratedAt: s.now().UTC(),
		Rows:        make([]OccupiedRow, 0, len(list)),
	}
	for i := range list {
		r := &list[i]
		row := OccupiedRow{
			SeatNumber:    r.SeatNumber(),
			CustomerName:  r.CustomerName,
			CustomerPhone: r.CustomerPhone,
			NationalID:    r.NationalID,
			SessionID:     r.SessionID,
			SessionName:   report.SessionName,
			Source:        string(r.Source),
		}
		if r.Seat != nil {
			row.RowNumber = r.Seat.RowNumber
		}
		report.Rows = append(report.Rows, row)
	}
	report.Total = len(report.Rows)
	return report, event, session, nil
}

var csvHeader = []string{"Asiento", "Fila", "Nombre", "Teléfono", "Cédula", "Sesión"}

// ExportCSV renders the occupied list and returns the download file name with it
func (s *service) ExportCSV(ctx context.Context, p *identity.Principal, eventID uuid.UUID, sessionRef string) (string, []byte, error) {
	report, event, session, err := s.occupied(ctx, p, eventID, sessionRef)
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return "", nil, err
	}
	for _, row := range report.Rows {
		record := []string{
			strconv.Itoa(row.SeatNumber),
			strconv.Itoa(row.RowNumber),
			row.CustomerName,
			row.CustomerPhone,
			row.NationalID,
			row.SessionName,
		}
		if err := w.Write(record); err != nil {
			return "", nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", nil, err
	}

	return FileName(event, session, report.GeneratedAt), buf.Bytes(), nil
}

// FileName builds "<room>_<session>_<dd-mm-yyyy>.csv". The date is the
// event's start date, or at when the event has none.
func FileName(event *events.Event, session *sessions.Session, at time.Time) string {
	date := at
	if event.StartDate != nil {
		date = *event.StartDate
	}
	name := ""
	if session != nil {
		name = strings.TrimSpace(session.Name)
		if name == "" {
			name = session.ID
		}
	}
	room := strings.TrimSpace(event.Room)
	if room == "" {
		room = event.Name
	}
	return fmt.Sprintf("%s_%s_%s.csv", underscore(room), underscore(name), date.Format("02-01-2006"))
}

func underscore(s string) string {
	return strings.Join(strings.Fields(s), "_")
}

func (s *service) Summary(ctx context.Context, p *identity.Principal, eventID uuid.UUID) (*EventSummary, error) {
	if !p.CanManageEvent(eventID) {
		return nil, apperrors.ErrForbidden
	}

	var summary EventSummary
	err := s.cacheService.GetOrSet(ctx, constants.BuildReportSummaryKey(eventID.String()), constants.TTL_REPORT_SUMMARY, func() (interface{}, error) {
		return s.buildSummary(ctx, eventID)
	}, &summary)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *service) buildSummary(ctx context.Context, eventID uuid.UUID) (*EventSummary, error) {
	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	list, err := s.reservations.ListForEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var bidCounts map[string]int
	if s.bids != nil && event.Config.Features.AuctionEnabled {
		bidCounts, err = s.bids.CountBySession(ctx, eventID)
		if err != nil {
			s.log.WithError(err).Warn("bid counts unavailable for summary", "event_id", eventID.String())
		}
	}

	summary := &EventSummary{
		EventID:        event.ID,
		EventName:      event.Name,
		AuctionEnabled: event.Config.Features.AuctionEnabled,
		GeneratedAt:    s.now().UTC(),
	}
	configured := event.Sessions()
	// seats are generated once from the first session and shared by all
	layoutSeats := 0
	if len(configured) > 0 {
		layoutSeats = configured[0].RowSum()
	}
	for _, session := range configured {
		statuses := make(map[uuid.UUID]seats.SeatStatus)
		for _, r := range list {
			if sessions.Matches(r.SessionID, eventID, session.ID) {
				statuses[r.SeatID] = seats.Stronger(statuses[r.SeatID], r.SeatStatus())
			}
		}

		row := SessionSummary{
			SessionID:   session.ID,
			SessionName: sessions.DisplayName(&session),
			TotalSeats:  layoutSeats,
			Bids:        bidCounts[session.ID],
		}
		for _, status := range statuses {
			switch status {
			case seats.StatusOccupied:
				row.Occupied++
			case seats.StatusReserved:
				row.Reserved++
			}
		}
		row.Available = row.TotalSeats - row.Reserved - row.Occupied
		if row.Available < 0 {
			row.Available = 0
		}
		summary.Sessions = append(summary.Sessions, row)
	}
	return summary, nil
}

func resolveSession(event *events.Event, ref string) (*sessions.Session, error) {
	if strings.TrimSpace(ref) == "" {
		list := event.Sessions()
		if len(list) == 1 {
			return &list[0], nil
		}
		return nil, apperrors.NewValidation("session is required")
	}
	session, ok := event.FindSession(ref)
	if !ok {
		return nil, apperrors.NewNotFound("session", ref)
	}
	return session, nil
}
