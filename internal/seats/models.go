package seats

import (
	"time"

	"github.com/google/uuid"
)

// Seat is one numbered position in an event's shared layout. Seats belong to
// the event, not to a session; every session reuses the same geometry.
type Seat struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EventID      uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	SeatNumber   int       `gorm:"not null" json:"seat_number"`
	RowNumber    int       `gorm:"not null" json:"row_number"`
	IsSelectable bool      `gorm:"not null" json:"is_selectable"`
	IsVIP        bool      `gorm:"not null" json:"is_vip"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName sets the table name for Seat
func (Seat) TableName() string {
	return "seats"
}

// SeatStatus is the per-session state of a seat
type SeatStatus string

const (
	StatusAvailable SeatStatus = "available"
	StatusReserved  SeatStatus = "reserved"
	StatusOccupied  SeatStatus = "occupied"
)

// rank orders statuses so that the strongest claim wins when several rows
// (a legacy one and a session one) point at the same seat
func (s SeatStatus) rank() int {
	switch s {
	case StatusOccupied:
		return 2
	case StatusReserved:
		return 1
	}
	return 0
}

// Stronger returns whichever of the two statuses holds the seat more firmly
func Stronger(a, b SeatStatus) SeatStatus {
	if b.rank() > a.rank() {
		return b
	}
	return a
}
