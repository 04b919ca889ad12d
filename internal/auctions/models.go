package auctions

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// AuctionBid is one offer for a session's VIP seat. Bids are append-only;
// assigning the seat leaves the bid in place.
type AuctionBid struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	SessionID string    `gorm:"size:100;not null" json:"session_id"`
	FullName  string    `gorm:"size:255;not null" json:"full_name"`
	Phone     string    `gorm:"size:30;not null" json:"phone"`
	Amount    float64   `gorm:"type:numeric(10,2);not null;check:amount > 0" json:"amount"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// TableName sets the table name for AuctionBid
func (AuctionBid) TableName() string {
	return "auction_bids"
}

// RankBids orders bids by amount, highest first. Equal amounts go to the
// earliest bid, and the id settles identical timestamps so the order is total.
func RankBids(bids []AuctionBid) []AuctionBid {
	ranked := make([]AuctionBid, len(bids))
	copy(ranked, bids)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Amount != b.Amount {
			return a.Amount > b.Amount
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
	return ranked
}
