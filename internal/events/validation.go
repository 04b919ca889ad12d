package events

import (
	"errors"
	"fmt"
	"strings"

	"seatflow/internal/seats"
	"seatflow/internal/sessions"
	"seatflow/internal/shared/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateEvent checks the request shape with struct tags, then the rules
// tags cannot express. All problems are reported together. defaultVIPSeat
// is the designated auction seat used when the event does not set one.
func ValidateEvent(req *EventRequest, defaultVIPSeat int) error {
	var problems []string

	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return apperrors.NewValidation(err.Error())
		}
		for _, fe := range fieldErrs {
			problems = append(problems, describeFieldError(fe))
		}
	}

	seen := make(map[string]bool, len(req.Sessions))
	for i, s := range req.Sessions {
		id := sessions.Canonical(s.ID)
		if id == "" {
			id = sessions.DefaultID(i + 1)
		}
		if seen[id] {
			problems = append(problems, fmt.Sprintf("session %q is defined more than once", id))
		}
		seen[id] = true

		// The first session defines the shared layout and must carry rows.
		if i == 0 || len(s.RowConfiguration) > 0 {
			if err := seats.ValidateRowConfiguration(s.toSession(id)); err != nil {
				var v *apperrors.ValidationError
				if errors.As(err, &v) {
					problems = append(problems, v.Problems...)
				}
			}
		}
	}

	if req.StartDate != nil && req.EndDate != nil && req.StartDate.After(*req.EndDate) {
		problems = append(problems, "start_date must not be after end_date")
	}

	if req.Features.AuctionEnabled && len(req.Sessions) > 0 {
		capacity := req.Sessions[0].SeatCount
		if n := req.Features.VIPSeatNumber; n != nil && (*n < 1 || *n > capacity) {
			problems = append(problems, fmt.Sprintf("vip_seat_number %d is outside the layout (1..%d)", *n, capacity))
		} else if n == nil && (defaultVIPSeat < 1 || defaultVIPSeat > capacity) {
			problems = append(problems, fmt.Sprintf("default vip seat %d is outside the layout (1..%d); set vip_seat_number", defaultVIPSeat, capacity))
		}
		for _, s := range req.Sessions {
			if n := s.VIPSeatNumber; n != nil && *n > capacity {
				problems = append(problems, fmt.Sprintf("session %q: vip_seat_number %d is outside the layout (1..%d)", s.Name, *n, capacity))
			}
		}
	}

	if len(problems) > 0 {
		return apperrors.NewValidation(problems...)
	}
	return nil
}

// BuildSessions converts the request into stored sessions, assigning
// session<N> ids where none were given
func BuildSessions(in []SessionRequest) []sessions.Session {
	out := make([]sessions.Session, len(in))
	for i, s := range in {
		id := sessions.Canonical(s.ID)
		if id == "" {
			id = sessions.DefaultID(i + 1)
		}
		out[i] = s.toSession(id)
	}
	return out
}

func (s SessionRequest) toSession(id string) sessions.Session {
	return sessions.Session{
		ID:               id,
		Name:             strings.TrimSpace(s.Name),
		Time:             strings.TrimSpace(s.Time),
		Price:            s.Price,
		SeatCount:        s.SeatCount,
		RowConfiguration: append([]int(nil), s.RowConfiguration...),
		Instructors:      s.Instructors,
		Image:            s.Image,
		VIPSeatNumber:    s.VIPSeatNumber,
	}
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Namespace())
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("%s needs at least %s item(s)", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	case "email":
		return field + " must be a valid email"
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
