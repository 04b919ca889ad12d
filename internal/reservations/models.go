package reservations

import (
	"time"

	"seatflow/internal/seats"

	"github.com/google/uuid"
)

type Status string

const (
	StatusReserved Status = "reserved"
	StatusOccupied Status = "occupied"
)

type Source string

const (
	SourceDirect  Source = "direct"
	SourceAuction Source = "auction"
)

// Reservation holds one seat for one session. The (seat_id, session_id)
// pair is unique in the store; a missing row means the seat is available.
type Reservation struct {
	ID            uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EventID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"event_id"`
	SeatID        uuid.UUID   `gorm:"type:uuid;not null" json:"seat_id"`
	SessionID     string      `gorm:"size:100;not null" json:"session_id"`
	CustomerName  string      `gorm:"size:255;not null" json:"customer_name"`
	CustomerPhone string      `gorm:"size:30;not null" json:"customer_phone"`
	NationalID    string      `gorm:"size:30" json:"national_id"`
	Status        Status      `gorm:"type:varchar(20);not null;default:'reserved';check:status IN ('reserved','occupied')" json:"status"`
	Source        Source      `gorm:"type:varchar(20);not null;default:'direct'" json:"source"`
	AuctionBidID  *uuid.UUID  `gorm:"type:uuid" json:"auction_bid_id,omitempty"`
	ConfirmedAt   *time.Time  `json:"confirmed_at,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	Seat          *seats.Seat `gorm:"foreignKey:SeatID" json:"seat,omitempty"`
}

// TableName sets the table name for Reservation
func (Reservation) TableName() string {
	return "reservations"
}

func (r *Reservation) SeatStatus() seats.SeatStatus {
	if r.Status == StatusOccupied {
		return seats.StatusOccupied
	}
	return seats.StatusReserved
}

// SeatNumber is zero when the seat was not loaded
func (r *Reservation) SeatNumber() int {
	if r.Seat == nil {
		return 0
	}
	return r.Seat.SeatNumber
}
