package events

import (
	"time"

	"seatflow/internal/sessions"
)

type SessionResponse struct {
	sessions.Session
	DisplayName string `json:"display_name"`
	VIPSeat     int    `json:"vip_seat_number_resolved,omitempty"`
}

type EventResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Slug           string            `json:"slug"`
	Room           string            `json:"room"`
	RoomLogo       string            `json:"room_logo"`
	Image          string            `json:"image"`
	StartDate      *time.Time        `json:"start_date"`
	EndDate        *time.Time        `json:"end_date"`
	ExpirationDate *time.Time        `json:"expiration_date"`
	AutoDeactivate bool              `json:"auto_deactivate"`
	IsActive       bool              `json:"is_active"`
	Theme          Theme             `json:"theme"`
	WhatsApp       WhatsAppConfig    `json:"whatsapp"`
	Texts          map[string]string `json:"texts,omitempty"`
	Branding       Branding          `json:"branding"`
	AuctionEnabled bool              `json:"auction_enabled"`
	MinimumBid     float64           `json:"minimum_bid,omitempty"`
	Sessions       []SessionResponse `json:"sessions"`
	SeatCount      int               `json:"seat_count"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`

	// Fallback is set when a slug lookup missed and the most recent active
	// event was returned instead
	Fallback bool `json:"fallback,omitempty"`
}

type PaginatedEvents struct {
	Events     []EventResponse `json:"events"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// ToResponse resolves the event into its API shape with auction defaults applied
func (e *Event) ToResponse(defaultVIPSeat int, defaultMinimumBid float64) EventResponse {
	layout := e.Layout(defaultVIPSeat)

	list := make([]SessionResponse, len(e.Config.Sessions))
	for i := range e.Config.Sessions {
		s := &e.Config.Sessions[i]
		list[i] = SessionResponse{
			Session:     *s,
			DisplayName: sessions.DisplayName(s),
			VIPSeat:     layout.VIPSeatFor(s),
		}
	}

	resp := EventResponse{
		ID:             e.ID.String(),
		Name:           e.Name,
		Slug:           e.Slug,
		Room:           e.Room,
		RoomLogo:       e.RoomLogo,
		Image:          e.Image,
		StartDate:      e.StartDate,
		EndDate:        e.EndDate,
		ExpirationDate: e.ExpirationDate,
		AutoDeactivate: e.AutoDeactivate,
		IsActive:       e.IsActive,
		Theme:          e.Config.Theme,
		WhatsApp:       e.Config.WhatsApp,
		Texts:          e.Config.Texts,
		Branding:       e.Config.Branding,
		AuctionEnabled: e.Config.Features.AuctionEnabled,
		Sessions:       list,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
	if len(e.Config.Sessions) > 0 {
		resp.SeatCount = e.Config.Sessions[0].SeatCount
	}
	if resp.AuctionEnabled {
		resp.MinimumBid = e.MinimumBid(defaultMinimumBid)
	}
	return resp
}
