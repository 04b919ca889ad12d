package reports

import (
	"time"

	"github.com/google/uuid"
)

// OccupiedRow is one confirmed attendee of a session
type OccupiedRow struct {
	SeatNumber    int    `json:"seat_number"`
	RowNumber     int    `json:"row_number"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	NationalID    string `json:"national_id"`
	SessionID     string `json:"session_id"`
	SessionName   string `json:"session_name"`
	Source        string `json:"source"`
}

// OccupiedReport is the attendee list handed to exporters
type OccupiedReport struct {
	EventID     uuid.UUID     `json:"event_id"`
	EventName   string        `json:"event_name"`
	Room        string        `json:"room"`
	EventDate   *time.Time    `json:"event_date,omitempty"`
	SessionID   string        `json:"session_id"`
	SessionName string        `json:"session_name"`
	GeneratedAt time.Time     `json:"generated_at"`
	Total       int           `json:"total"`
	Rows        []OccupiedRow `json:"rows"`
}

type SessionSummary struct {
	SessionID   string `json:"session_id"`
	SessionName string `json:"session_name"`
	TotalSeats  int    `json:"total_seats"`
	Reserved    int    `json:"reserved"`
	Occupied    int    `json:"occupied"`
	Available   int    `json:"available"`
	Bids        int    `json:"bids"`
}

// EventSummary aggregates seat usage per session of one event
type EventSummary struct {
	EventID        uuid.UUID        `json:"event_id"`
	EventName      string           `json:"event_name"`
	AuctionEnabled bool             `json:"auction_enabled"`
	Sessions       []SessionSummary `json:"sessions"`
	GeneratedAt    time.Time        `json:"generated_at"`
}
