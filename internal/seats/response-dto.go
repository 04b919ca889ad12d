package seats

// SeatMapEntry is one seat as the public booking page sees it. Customer
// identity is never included here.
type SeatMapEntry struct {
	SeatID       string     `json:"seat_id"`
	SeatNumber   int        `json:"seat_number"`
	RowNumber    int        `json:"row_number"`
	IsSelectable bool       `json:"is_selectable"`
	IsVIP        bool       `json:"is_vip"`
	Status       SeatStatus `json:"status"`
}

// SeatMapCounts summarises a seat map
type SeatMapCounts struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Reserved  int `json:"reserved"`
	Occupied  int `json:"occupied"`
}

// SeatMap is the per-session view of an event's layout, grouped by row
type SeatMap struct {
	EventID     string           `json:"event_id"`
	SessionID   string           `json:"session_id"`
	SessionName string           `json:"session_name"`
	VIPSeat     int              `json:"vip_seat_number,omitempty"`
	Rows        [][]SeatMapEntry `json:"rows"`
	Counts      SeatMapCounts    `json:"counts"`
}
