package reservations

import (
	"time"

	"seatflow/internal/sessions"

	"github.com/google/uuid"
)

// ReceiptResponse is what a public booker gets back. It never carries other customers' data.
type ReceiptResponse struct {
	ID          uuid.UUID `json:"id"`
	SeatNumber  int       `json:"seat_number"`
	RowNumber   int       `json:"row_number"`
	SessionID   string    `json:"session_id"`
	SessionName string    `json:"session_name"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type ReservationResponse struct {
	ID            uuid.UUID  `json:"id"`
	EventID       uuid.UUID  `json:"event_id"`
	SeatID        uuid.UUID  `json:"seat_id"`
	SeatNumber    int        `json:"seat_number"`
	RowNumber     int        `json:"row_number"`
	SessionID     string     `json:"session_id"`
	SessionName   string     `json:"session_name"`
	LegacySession bool       `json:"legacy_session"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	NationalID    string     `json:"national_id"`
	Status        Status     `json:"status"`
	Source        Source     `json:"source"`
	AuctionBidID  *uuid.UUID `json:"auction_bid_id,omitempty"`
	ConfirmedAt   *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (r *Reservation) ToReceipt(list []sessions.Session) ReceiptResponse {
	resp := ReceiptResponse{
		ID:          r.ID,
		SeatNumber:  r.SeatNumber(),
		SessionID:   r.SessionID,
		SessionName: r.sessionName(list),
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
	}
	if r.Seat != nil {
		resp.RowNumber = r.Seat.RowNumber
	}
	return resp
}

func (r *Reservation) ToResponse(list []sessions.Session) ReservationResponse {
	resp := ReservationResponse{
		ID:            r.ID,
		EventID:       r.EventID,
		SeatID:        r.SeatID,
		SeatNumber:    r.SeatNumber(),
		SessionID:     r.SessionID,
		SessionName:   r.sessionName(list),
		LegacySession: sessions.IsLegacy(r.SessionID, r.EventID),
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		NationalID:    r.NationalID,
		Status:        r.Status,
		Source:        r.Source,
		AuctionBidID:  r.AuctionBidID,
		ConfirmedAt:   r.ConfirmedAt,
		CreatedAt:     r.CreatedAt,
	}
	if r.Seat != nil {
		resp.RowNumber = r.Seat.RowNumber
	}
	return resp
}

func (r *Reservation) sessionName(list []sessions.Session) string {
	s, _ := sessions.Attribute(list, r.SessionID, r.EventID)
	return sessions.DisplayName(s)
}

func ToResponses(list []Reservation, sessionList []sessions.Session) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(list))
	for i := range list {
		out = append(out, list[i].ToResponse(sessionList))
	}
	return out
}
