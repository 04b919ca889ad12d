package reservations

import "github.com/google/uuid"

type ReserveRequest struct {
	SeatID     uuid.UUID `json:"seat_id" binding:"required"`
	SessionID  string    `json:"session_id" binding:"required"`
	FirstName  string    `json:"first_name" binding:"required"`
	LastName   string    `json:"last_name" binding:"required"`
	NationalID string    `json:"national_id" binding:"required"`
	Phone      string    `json:"phone" binding:"required"`
}

// OccupiedInput books a seat straight into the occupied state
type OccupiedInput struct {
	EventID      uuid.UUID
	SeatID       uuid.UUID
	SessionID    string
	CustomerName string
	Phone        string
	NationalID   string
	Source       Source
	AuctionBidID *uuid.UUID
}

type ListFilter struct {
	Status    Status `form:"status"`
	SessionID string `form:"session"`
}
