package events

import (
	"context"

	"seatflow/internal/seats"

	"github.com/google/uuid"
)

// SeatLookupAdapter lets the seats package read session layouts without
// importing events
type SeatLookupAdapter struct {
	repo           Repository
	defaultVIPSeat int
}

func NewSeatLookupAdapter(repo Repository, defaultVIPSeat int) *SeatLookupAdapter {
	return &SeatLookupAdapter{repo: repo, defaultVIPSeat: defaultVIPSeat}
}

func (a *SeatLookupAdapter) SessionLayout(ctx context.Context, eventID uuid.UUID) (*seats.EventLayout, error) {
	event, err := a.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return event.Layout(a.defaultVIPSeat), nil
}
