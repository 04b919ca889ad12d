package events

import (
	"time"

	"seatflow/internal/sessions"
)

type SessionRequest struct {
	ID               string                `json:"id" validate:"omitempty,max=64"`
	Name             string                `json:"name" validate:"required,max=255"`
	Time             string                `json:"time" validate:"required"`
	Price            float64               `json:"price" validate:"gte=0"`
	SeatCount        int                   `json:"seat_count" validate:"gte=1"`
	RowConfiguration []int                 `json:"row_configuration"`
	Instructors      []sessions.Instructor `json:"instructors"`
	Image            string                `json:"image" validate:"omitempty,max=500"`
	VIPSeatNumber    *int                  `json:"vip_seat_number" validate:"omitempty,gte=1"`
}

type EventAdminRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// EventRequest is the body of create and update. Update replaces the whole
// configuration, the way the admin wizard submits it.
type EventRequest struct {
	Name           string             `json:"name" validate:"required,min=3,max=255"`
	Room           string             `json:"room" validate:"max=255"`
	RoomLogo       string             `json:"room_logo" validate:"max=500"`
	Image          string             `json:"image" validate:"max=500"`
	StartDate      *time.Time         `json:"start_date"`
	EndDate        *time.Time         `json:"end_date"`
	ExpirationDate *time.Time         `json:"expiration_date"`
	AutoDeactivate bool               `json:"auto_deactivate"`
	IsActive       *bool              `json:"is_active"`
	Theme          Theme              `json:"theme"`
	WhatsApp       WhatsAppConfig     `json:"whatsapp"`
	Texts          map[string]string  `json:"texts"`
	Branding       Branding           `json:"branding"`
	Features       Features           `json:"features"`
	Sessions       []SessionRequest   `json:"sessions" validate:"required,min=1,dive"`
	Admin          *EventAdminRequest `json:"admin" validate:"omitempty"`
}

type EventListQuery struct {
	Page       int  `form:"page" binding:"omitempty,min=1"`
	Limit      int  `form:"limit" binding:"omitempty,min=1,max=100"`
	ActiveOnly bool `form:"active_only"`
}
