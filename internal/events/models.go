package events

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"seatflow/internal/seats"
	"seatflow/internal/sessions"

	"github.com/google/uuid"
)

// Theme holds the booking page colours
type Theme struct {
	PrimaryColor    string `json:"primary_color,omitempty"`
	SecondaryColor  string `json:"secondary_color,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"`
	TextColor       string `json:"text_color,omitempty"`
	FontFamily      string `json:"font_family,omitempty"`
}

type WhatsAppConfig struct {
	AdminPhone string `json:"admin_phone,omitempty"`
}

type Branding struct {
	LogoURL   string `json:"logo_url,omitempty"`
	BannerURL string `json:"banner_url,omitempty"`
	Footer    string `json:"footer,omitempty"`
}

// Features toggles optional flows. VIPSeatNumber and MinimumBid fall back
// to the service-wide auction defaults when unset.
type Features struct {
	AuctionEnabled bool     `json:"auction_enabled"`
	VIPSeatNumber  *int     `json:"vip_seat_number,omitempty"`
	MinimumBid     *float64 `json:"minimum_bid,omitempty"`
}

// EventConfig is stored as a single JSONB document on the event row
type EventConfig struct {
	Theme    Theme              `json:"theme"`
	Sessions []sessions.Session `json:"sessions"`
	WhatsApp WhatsAppConfig     `json:"whatsapp"`
	Texts    map[string]string  `json:"texts,omitempty"`
	Branding Branding           `json:"branding"`
	Features Features           `json:"features"`
}

// Value implements driver.Valuer for the jsonb column
func (c EventConfig) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for the jsonb column
func (c *EventConfig) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*c = EventConfig{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("events: unsupported config column type")
	}
	return json.Unmarshal(raw, c)
}

type Event struct {
	ID             uuid.UUID   `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string      `json:"name" gorm:"not null;size:255"`
	Slug           string      `json:"slug" gorm:"not null;size:255;uniqueIndex"`
	Room           string      `json:"room" gorm:"size:255"`
	RoomLogo       string      `json:"room_logo" gorm:"size:500"`
	Image          string      `json:"image" gorm:"size:500"`
	StartDate      *time.Time  `json:"start_date"`
	EndDate        *time.Time  `json:"end_date"`
	ExpirationDate *time.Time  `json:"expiration_date"`
	AutoDeactivate bool        `json:"auto_deactivate" gorm:"not null"`
	IsActive       bool        `json:"is_active" gorm:"not null;index"`
	Config         EventConfig `json:"config" gorm:"type:jsonb;not null"`

	CreatedBy *uuid.UUID `json:"created_by" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for Event
func (Event) TableName() string {
	return "events"
}

// Sessions returns the configured sessions
func (e *Event) Sessions() []sessions.Session {
	return e.Config.Sessions
}

// FindSession resolves a session reference against the event config
func (e *Event) FindSession(ref string) (*sessions.Session, bool) {
	return sessions.Find(e.Config.Sessions, ref)
}

// EventVIPSeat is the event-wide designated auction seat, or defaultSeat
func (e *Event) EventVIPSeat(defaultSeat int) int {
	if n := e.Config.Features.VIPSeatNumber; n != nil && *n > 0 {
		return *n
	}
	return defaultSeat
}

// MinimumBid is the lowest accepted auction bid for the event
func (e *Event) MinimumBid(defaultMinimum float64) float64 {
	if m := e.Config.Features.MinimumBid; m != nil && *m > 0 {
		return *m
	}
	return defaultMinimum
}

// Layout is the seat-facing view of the event
func (e *Event) Layout(defaultVIPSeat int) *seats.EventLayout {
	return &seats.EventLayout{
		Sessions:       e.Config.Sessions,
		AuctionEnabled: e.Config.Features.AuctionEnabled,
		VIPSeatNumber:  e.EventVIPSeat(defaultVIPSeat),
	}
}

// IsExpired reports whether the expiration date has passed
func (e *Event) IsExpired(now time.Time) bool {
	return e.ExpirationDate != nil && now.After(*e.ExpirationDate)
}
