package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindReservationCreated   Kind = "reservation_created"
	KindReservationConfirmed Kind = "reservation_confirmed"
	KindReservationCancelled Kind = "reservation_cancelled"
	KindSeatReopened         Kind = "seat_reopened"
	KindBidPlaced            Kind = "bid_placed"
	KindVIPAssigned          Kind = "vip_assigned"
)

// ToOrganizer reports whether the message goes to the event organizer rather than the customer
func (k Kind) ToOrganizer() bool {
	return k == KindReservationCreated || k == KindBidPlaced
}

// Payload is the resolved record a notification describes
type Payload struct {
	EventName    string    `json:"event_name"`
	Room         string    `json:"room,omitempty"`
	EventDate    time.Time `json:"event_date,omitempty"`
	SessionName  string    `json:"session_name"`
	SeatNumber   int       `json:"seat_number,omitempty"`
	RowNumber    int       `json:"row_number,omitempty"`
	CustomerName string    `json:"customer_name"`
	Phone        string    `json:"phone"`
	NationalID   string    `json:"national_id,omitempty"`
	Status       string    `json:"status,omitempty"`
	Amount       float64   `json:"amount,omitempty"`
}

type Notification struct {
	ID             uuid.UUID `json:"id"`
	Kind           Kind      `json:"kind"`
	EventID        uuid.UUID `json:"event_id"`
	SessionID      string    `json:"session_id"`
	ReferenceID    uuid.UUID `json:"reference_id"`
	RecipientPhone string    `json:"recipient_phone"`
	RecipientName  string    `json:"recipient_name"`
	Payload        Payload   `json:"payload"`
	CreatedAt      time.Time `json:"created_at"`
}

// New builds a notification about a reservation or bid. Organizer-bound kinds
// are addressed to organizerPhone, the rest to the customer on the payload.
func New(kind Kind, eventID uuid.UUID, sessionID string, referenceID uuid.UUID, organizerPhone string, payload Payload) *Notification {
	n := &Notification{
		ID:          uuid.New(),
		Kind:        kind,
		EventID:     eventID,
		SessionID:   sessionID,
		ReferenceID: referenceID,
		Payload:     payload,
		CreatedAt:   time.Now().UTC(),
	}
	if kind.ToOrganizer() {
		n.RecipientPhone = organizerPhone
		n.RecipientName = "organizer"
	} else {
		n.RecipientPhone = payload.Phone
		n.RecipientName = payload.CustomerName
	}
	return n
}

// PartitionKey keeps every notification of one event on the same partition
func (n *Notification) PartitionKey() string {
	return n.EventID.String()
}

func (n *Notification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

func FromJSON(data []byte) (*Notification, error) {
	var n Notification
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}
