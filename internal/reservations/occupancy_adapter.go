package reservations

import (
	"context"

	"seatflow/internal/seats"
	"seatflow/internal/sessions"

	"github.com/google/uuid"
)

// OccupancyAdapter feeds the seat map from the reservation table without
// seats importing this package
type OccupancyAdapter struct {
	repo Repository
}

func NewOccupancyAdapter(repo Repository) *OccupancyAdapter {
	return &OccupancyAdapter{repo: repo}
}

func (a *OccupancyAdapter) SeatStatuses(ctx context.Context, eventID uuid.UUID, sessionID string) (map[uuid.UUID]seats.SeatStatus, error) {
	list, err := a.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	statuses := make(map[uuid.UUID]seats.SeatStatus, len(list))
	for _, r := range list {
		if !sessions.Matches(r.SessionID, eventID, sessionID) {
			continue
		}
		statuses[r.SeatID] = seats.Stronger(statuses[r.SeatID], r.SeatStatus())
	}
	return statuses, nil
}
