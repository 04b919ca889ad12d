package auth

import (
	"time"

	"seatflow/internal/shared/identity"
)

type AdminResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	EventID   string    `json:"event_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	Admin AdminResponse `json:"admin"`
	identity.TokenPair
}
