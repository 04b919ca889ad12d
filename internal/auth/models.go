package auth

import (
	"time"

	"seatflow/internal/shared/identity"

	"github.com/google/uuid"
)

// Admin is an operator account. Event admins are bound to one event.
type Admin struct {
	ID           uuid.UUID     `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string        `json:"username" gorm:"uniqueIndex;not null;size:100"`
	PasswordHash string        `json:"-" gorm:"not null"`
	Email        string        `json:"email" gorm:"size:255"`
	FullName     string        `json:"full_name" gorm:"size:255"`
	Role         identity.Role `json:"role" gorm:"type:varchar(20);not null;check:role IN ('super_admin','event_admin')"`
	EventID      *uuid.UUID    `json:"event_id,omitempty" gorm:"type:uuid;index"`
	LastLoginAt  *time.Time    `json:"last_login_at,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// TableName sets the table name for Admin
func (Admin) TableName() string {
	return "admins"
}

// Principal is the session object carried by this admin's tokens
func (a *Admin) Principal() *identity.Principal {
	return &identity.Principal{
		AdminID:  a.ID,
		Username: a.Username,
		FullName: a.FullName,
		Role:     a.Role,
		EventID:  a.EventID,
	}
}

// ToResponse converts Admin to AdminResponse
func (a *Admin) ToResponse() AdminResponse {
	resp := AdminResponse{
		ID:        a.ID.String(),
		Username:  a.Username,
		Email:     a.Email,
		FullName:  a.FullName,
		Role:      string(a.Role),
		CreatedAt: a.CreatedAt,
	}
	if a.EventID != nil {
		resp.EventID = a.EventID.String()
	}
	return resp
}
