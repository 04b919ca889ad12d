package database

import (
	"fmt"

	"gorm.io/gorm"
)

// constraintStatements back the booking invariants in the store itself.
// The (seat_id, session_id) index is what makes a reservation insert atomic.
var constraintStatements = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_reservations_seat_session
		ON reservations (seat_id, session_id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_seats_event_number
		ON seats (event_id, seat_number)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_event_session
		ON reservations (event_id, session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_auction_bids_event_session_rank
		ON auction_bids (event_id, session_id, amount DESC, created_at ASC)`,
	`CREATE INDEX IF NOT EXISTS idx_events_active_expiration
		ON events (is_active, expiration_date)`,
}

// MigrateConstraints adds the uniqueness and lookup indexes
func MigrateConstraints(db *gorm.DB) error {
	for _, stmt := range constraintStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply constraint: %w", err)
		}
	}
	return nil
}
