package seats

import (
	"fmt"

	"seatflow/internal/sessions"
	"seatflow/internal/shared/apperrors"

	"github.com/google/uuid"
)

// GenerateLayout builds the full seat set for an event from the first
// session's row configuration. Seat numbers run 1..N across rows without
// restarting; rows are 1-based. vipSeatNumber <= 0 marks no seat as VIP.
func GenerateLayout(eventID uuid.UUID, list []sessions.Session, vipSeatNumber int) ([]Seat, error) {
	if len(list) == 0 {
		return nil, apperrors.NewValidation("at least one session is required to generate seats")
	}

	layout := list[0]
	if err := ValidateRowConfiguration(layout); err != nil {
		return nil, err
	}

	seats := make([]Seat, 0, layout.SeatCount)
	seatNumber := 1
	for i, perRow := range layout.RowConfiguration {
		for j := 0; j < perRow; j++ {
			seats = append(seats, Seat{
				EventID:      eventID,
				SeatNumber:   seatNumber,
				RowNumber:    i + 1,
				IsSelectable: true,
				IsVIP:        seatNumber == vipSeatNumber,
			})
			seatNumber++
		}
	}

	return seats, nil
}

// ValidateRowConfiguration checks that every row is positive and that the
// rows add up to the session's seat count
func ValidateRowConfiguration(s sessions.Session) error {
	label := s.ID
	if label == "" {
		label = s.Name
	}

	if len(s.RowConfiguration) == 0 {
		return apperrors.NewValidation(fmt.Sprintf("session %q: row configuration is required", label))
	}

	var problems []string
	for i, n := range s.RowConfiguration {
		if n <= 0 {
			problems = append(problems, fmt.Sprintf("session %q: row %d must have at least one seat", label, i+1))
		}
	}
	if s.SeatCount <= 0 {
		problems = append(problems, fmt.Sprintf("session %q: seat count must be positive", label))
	}
	if sum := s.RowSum(); sum != s.SeatCount {
		problems = append(problems, fmt.Sprintf("session %q: rows add up to %d seats but seat count is %d", label, sum, s.SeatCount))
	}

	if len(problems) > 0 {
		return apperrors.NewValidation(problems...)
	}
	return nil
}
