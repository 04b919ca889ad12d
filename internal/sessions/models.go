package sessions

// Instructor describes who leads a session
type Instructor struct {
	Name string `json:"name"`
	Rank string `json:"rank,omitempty"`
}

// Session is one scheduled run of an event. Sessions live inside the event
// config document and share the event's seat geometry.
type Session struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Time             string       `json:"time"` // HH:MM, 24h
	Price            float64      `json:"price"`
	SeatCount        int          `json:"seat_count"`
	RowConfiguration []int        `json:"row_configuration"`
	Instructors      []Instructor `json:"instructors,omitempty"`
	Image            string       `json:"image,omitempty"`

	// VIPSeatNumber overrides the event-level designated auction seat
	VIPSeatNumber *int `json:"vip_seat_number,omitempty"`
}

// RowSum adds up the row configuration
func (s Session) RowSum() int {
	total := 0
	for _, n := range s.RowConfiguration {
		total += n
	}
	return total
}

const (
	modernPrefix = "session"
	legacyPrefix = "rodada"

	// SingleSessionLabel is shown when a record cannot be tied to a session
	SingleSessionLabel = "Sesión única"
)
