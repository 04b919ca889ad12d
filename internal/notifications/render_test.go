package notifications

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"0414-555.90.26", "+584145559026"},
		{"+58 414 5559026", "+584145559026"},
		{"584145559026", "+584145559026"},
		{"4145559026", "+584145559026"},
		{"12345", "+5812345"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizePhone(tc.in, "58"), tc.in)
	}
	assert.Equal(t, "+573001234567", NormalizePhone("03001234567", "57"))
	assert.Equal(t, "+584145559026", NormalizePhone("04145559026", ""))
}

func samplePayload() Payload {
	return Payload{
		EventName:    "Giros Indoor",
		Room:         "Sala Principal",
		EventDate:    time.Date(2025, 8, 8, 0, 0, 0, 0, time.UTC),
		SessionName:  "Rodada 1 - 5:30 PM",
		SeatNumber:   14,
		RowNumber:    3,
		CustomerName: "MARIA PEREZ",
		Phone:        "04141234567",
		NationalID:   "V-12345678",
		Amount:       50,
	}
}

func TestRenderAddressesOrganizerOrCustomer(t *testing.T) {
	r := NewRenderer("58", "+584145599026")
	eventID := uuid.New()

	created, err := r.Render(New(KindReservationCreated, eventID, "session1", uuid.New(), "", samplePayload()))
	require.NoError(t, err)
	assert.Equal(t, "+584145599026", created.Phone)
	assert.Contains(t, created.Text, "NUEVA RESERVA - Giros Indoor")
	assert.Contains(t, created.Text, "V-12345678")
	assert.Contains(t, created.Text, "#14")

	confirmed, err := r.Render(New(KindReservationConfirmed, eventID, "session1", uuid.New(), "", samplePayload()))
	require.NoError(t, err)
	assert.Equal(t, "+584141234567", confirmed.Phone)
	assert.Contains(t, confirmed.Text, "CONFIRMADO")
	assert.Contains(t, confirmed.Text, "08/08/2025")
	assert.Contains(t, confirmed.Text, "*Sala Principal*")

	vip, err := r.Render(New(KindVIPAssigned, eventID, "session1", uuid.New(), "", samplePayload()))
	require.NoError(t, err)
	assert.Contains(t, vip.Text, "$50.00")
}

func TestRenderEveryKind(t *testing.T) {
	r := NewRenderer("58", "+584145599026")
	kinds := []Kind{KindReservationCreated, KindReservationConfirmed, KindReservationCancelled, KindSeatReopened, KindBidPlaced, KindVIPAssigned}
	for _, k := range kinds {
		msg, err := r.Render(New(k, uuid.New(), "session1", uuid.New(), "", samplePayload()))
		require.NoError(t, err, k)
		assert.NotEmpty(t, msg.Text, k)
	}

	_, err := r.Render(&Notification{ID: uuid.New(), Kind: "bogus", RecipientPhone: "04141234567"})
	assert.Error(t, err)
}

func TestRenderRequiresPhone(t *testing.T) {
	r := NewRenderer("58", "")
	_, err := r.Render(New(KindBidPlaced, uuid.New(), "session1", uuid.New(), "", samplePayload()))
	assert.Error(t, err)
}

func TestWhatsAppLinkEscapesText(t *testing.T) {
	link := WhatsAppLink(&Message{Phone: "+584141234567", Text: "Hola María & co"})
	assert.True(t, strings.HasPrefix(link, "https://wa.me/584141234567?text="))
	assert.Contains(t, link, "Hola%20Mar%C3%ADa%20%26%20co")
}

func TestLogDispatcherSendsRenderedMessage(t *testing.T) {
	sender := &recordingSender{}
	d := NewLogDispatcher(NewRenderer("58", "04145599026"), sender)

	require.NoError(t, d.Dispatch(context.Background(), New(KindBidPlaced, uuid.New(), "session1", uuid.New(), "", samplePayload())))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "+584145599026", sender.sent[0].Phone)
}
