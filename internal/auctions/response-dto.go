package auctions

import (
	"time"

	"seatflow/internal/reservations"

	"github.com/google/uuid"
)

type BidResponse struct {
	ID        uuid.UUID `json:"id"`
	Rank      int       `json:"rank"`
	SessionID string    `json:"session_id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// BidReceipt is returned to the public bidder
type BidReceipt struct {
	ID         uuid.UUID `json:"id"`
	SessionID  string    `json:"session_id"`
	Amount     float64   `json:"amount"`
	MinimumBid float64   `json:"minimum_bid"`
	CreatedAt  time.Time `json:"created_at"`
}

type AssignmentResponse struct {
	Bid         BidResponse                      `json:"bid"`
	SeatNumber  int                              `json:"seat_number"`
	Reservation reservations.ReservationResponse `json:"reservation"`
}

// ToRankedResponses numbers already-ranked bids from 1
func ToRankedResponses(ranked []AuctionBid) []BidResponse {
	out := make([]BidResponse, 0, len(ranked))
	for i := range ranked {
		out = append(out, ranked[i].toResponse(i+1))
	}
	return out
}

func (b *AuctionBid) toResponse(rank int) BidResponse {
	return BidResponse{
		ID:        b.ID,
		Rank:      rank,
		SessionID: b.SessionID,
		FullName:  b.FullName,
		Phone:     b.Phone,
		Amount:    b.Amount,
		CreatedAt: b.CreatedAt,
	}
}
