package sessions

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Canonical maps a session reference to its canonical id. The old
// "rodada<N>" form becomes "session<N>"; anything else is returned trimmed.
func Canonical(ref string) string {
	ref = strings.TrimSpace(ref)
	if n, ok := strings.CutPrefix(ref, legacyPrefix); ok && isDigits(n) {
		return modernPrefix + n
	}
	return ref
}

// DefaultID is the id given to the n-th (1-based) session when none is set
func DefaultID(n int) string {
	return modernPrefix + strconv.Itoa(n)
}

// IsLegacy reports whether a stored session id predates per-session
// booking, in which case it holds the owning event id.
func IsLegacy(sessionID string, eventID uuid.UUID) bool {
	return strings.EqualFold(strings.TrimSpace(sessionID), eventID.String())
}

// Matches reports whether a stored record belongs to target. Legacy records
// belong to every session of their event.
func Matches(recordSessionID string, eventID uuid.UUID, target string) bool {
	if IsLegacy(recordSessionID, eventID) {
		return true
	}
	return Canonical(recordSessionID) == Canonical(target)
}

// Filter keeps the records that belong to target
func Filter[T any](records []T, sessionOf func(T) string, eventID uuid.UUID, target string) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if Matches(sessionOf(r), eventID, target) {
			out = append(out, r)
		}
	}
	return out
}

// Find resolves ref against the configured sessions
func Find(list []Session, ref string) (*Session, bool) {
	id := Canonical(ref)
	if id == "" {
		return nil, false
	}
	for i := range list {
		if Canonical(list[i].ID) == id {
			return &list[i], true
		}
	}
	return nil, false
}

// Attribute picks the session a stored record is shown under. Legacy
// records go to the first configured session.
func Attribute(list []Session, recordSessionID string, eventID uuid.UUID) (*Session, bool) {
	if IsLegacy(recordSessionID, eventID) {
		if len(list) == 0 {
			return nil, false
		}
		return &list[0], true
	}
	return Find(list, recordSessionID)
}

// DisplayName renders "<name> - h:mm AM/PM"
func DisplayName(s *Session) string {
	if s == nil {
		return SingleSessionLabel
	}
	name := strings.TrimSpace(s.Name)
	if name == "" {
		name = s.ID
	}
	t, err := time.Parse("15:04", strings.TrimSpace(s.Time))
	if err != nil {
		if s.Time == "" {
			return name
		}
		return name + " - " + s.Time
	}
	return name + " - " + t.Format("3:04 PM")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
