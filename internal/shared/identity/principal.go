package identity

import (
	"github.com/google/uuid"
)

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleEventAdmin Role = "event_admin"
)

// IsValid checks if the role is known
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleEventAdmin:
		return true
	}
	return false
}

// Principal is the authenticated admin acting on a request. It is resolved
// from the bearer token once and passed explicitly into service calls.
type Principal struct {
	AdminID  uuid.UUID  `json:"admin_id"`
	Username string     `json:"username"`
	FullName string     `json:"full_name"`
	Role     Role       `json:"role"`
	EventID  *uuid.UUID `json:"event_id,omitempty"`
}

// IsSuperAdmin reports whether the principal may manage every event
func (p *Principal) IsSuperAdmin() bool {
	return p != nil && p.Role == RoleSuperAdmin
}

// CanManageEvent reports whether the principal may act on the given event.
// Event admins are scoped to the single event they were created for.
func (p *Principal) CanManageEvent(eventID uuid.UUID) bool {
	if p == nil {
		return false
	}
	if p.Role == RoleSuperAdmin {
		return true
	}
	return p.Role == RoleEventAdmin && p.EventID != nil && *p.EventID == eventID
}
