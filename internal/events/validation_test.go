package events

import (
	"testing"
	"time"

	"seatflow/internal/shared/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() EventRequest {
	return EventRequest{
		Name: "Giros Indoor",
		Room: "Sala 1",
		Sessions: []SessionRequest{
			{Name: "Mañana", Time: "08:00", Price: 10, SeatCount: 27, RowConfiguration: []int{6, 5, 5, 5, 6}},
			{Name: "Tarde", Time: "18:30", Price: 12, SeatCount: 27},
		},
	}
}

func problemsOf(t *testing.T, err error) []string {
	t.Helper()
	var v *apperrors.ValidationError
	require.ErrorAs(t, err, &v)
	return v.Problems
}

func TestValidateEventAcceptsValidRequest(t *testing.T) {
	req := validRequest()
	assert.NoError(t, ValidateEvent(&req, 27))

	list := BuildSessions(req.Sessions)
	assert.Equal(t, "session1", list[0].ID)
	assert.Equal(t, "session2", list[1].ID)
}

func TestValidateEventRejections(t *testing.T) {
	start := time.Now()
	end := start.Add(-time.Hour)
	vip := 40

	tests := []struct {
		name   string
		mutate func(r *EventRequest)
	}{
		{"short name", func(r *EventRequest) { r.Name = "ab" }},
		{"no sessions", func(r *EventRequest) { r.Sessions = nil }},
		{"unnamed session", func(r *EventRequest) { r.Sessions[0].Name = "" }},
		{"missing time", func(r *EventRequest) { r.Sessions[1].Time = "" }},
		{"zero seats", func(r *EventRequest) { r.Sessions[1].SeatCount = 0 }},
		{"row sum mismatch", func(r *EventRequest) { r.Sessions[0].RowConfiguration = []int{6, 5, 5, 5} }},
		{"second session rows mismatch", func(r *EventRequest) { r.Sessions[1].RowConfiguration = []int{10} }},
		{"first session without rows", func(r *EventRequest) { r.Sessions[0].RowConfiguration = nil }},
		{"duplicate ids", func(r *EventRequest) { r.Sessions[0].ID = "session2"; r.Sessions[1].ID = "rodada2" }},
		{"start after end", func(r *EventRequest) { r.StartDate = &start; r.EndDate = &end }},
		{"short admin password", func(r *EventRequest) { r.Admin = &EventAdminRequest{Username: "giros", Password: "123"} }},
		{"vip outside layout", func(r *EventRequest) { r.Features = Features{AuctionEnabled: true, VIPSeatNumber: &vip} }},
		{"default vip outside small layout", func(r *EventRequest) {
			r.Features = Features{AuctionEnabled: true}
			r.Sessions = []SessionRequest{{Name: "Única", Time: "09:00", SeatCount: 4, RowConfiguration: []int{2, 2}}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			problems := problemsOf(t, ValidateEvent(&req, 27))
			assert.NotEmpty(t, problems)
		})
	}
}

func TestValidateEventCollectsAllProblems(t *testing.T) {
	req := validRequest()
	req.Name = "x"
	req.Sessions[0].RowConfiguration = []int{1}

	problems := problemsOf(t, ValidateEvent(&req, 27))
	assert.GreaterOrEqual(t, len(problems), 2)
}

func TestValidateEventDefaultVIPSeat(t *testing.T) {
	req := validRequest()
	req.Features = Features{AuctionEnabled: true}
	req.Sessions = []SessionRequest{{Name: "Única", Time: "09:00", SeatCount: 4, RowConfiguration: []int{2, 2}}}

	problems := problemsOf(t, ValidateEvent(&req, 27))
	assert.Contains(t, problems[0], "default vip seat 27")

	seat := 4
	req.Features.VIPSeatNumber = &seat
	assert.NoError(t, ValidateEvent(&req, 27))

	req.Features = Features{}
	assert.NoError(t, ValidateEvent(&req, 27), "without an auction the default seat is irrelevant")
}
