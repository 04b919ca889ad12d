package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu       sync.Mutex
	failures int
	calls    int
	sent     []*Message
}

func (s *recordingSender) Send(_ context.Context, msg *Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failures > 0 {
		s.failures--
		return errors.New("whatsapp unavailable")
	}
	s.sent = append(s.sent, msg)
	return nil
}

func encoded(t *testing.T, kind Kind) []byte {
	body, err := New(kind, uuid.New(), "session1", uuid.New(), "", samplePayload()).ToJSON()
	require.NoError(t, err)
	return body
}

func TestProcessorRetriesWithBackoff(t *testing.T) {
	sender := &recordingSender{failures: 2}
	p := NewProcessor(NewRenderer("58", ""), sender, 3, time.Millisecond)

	require.NoError(t, p.Process(context.Background(), encoded(t, KindReservationConfirmed)))
	assert.Equal(t, 3, sender.calls)
	assert.Len(t, sender.sent, 1)
}

func TestProcessorGivesUp(t *testing.T) {
	sender := &recordingSender{failures: 10}
	p := NewProcessor(NewRenderer("58", ""), sender, 2, time.Millisecond)

	err := p.Process(context.Background(), encoded(t, KindReservationCancelled))
	assert.Error(t, err)
	assert.Equal(t, 3, sender.calls)
}

func TestProcessorRejectsGarbage(t *testing.T) {
	p := NewProcessor(NewRenderer("58", ""), &recordingSender{}, 0, time.Millisecond)
	assert.Error(t, p.Process(context.Background(), []byte("not json")))
}

func TestProcessorDropsUnrenderable(t *testing.T) {
	sender := &recordingSender{}
	p := NewProcessor(NewRenderer("58", ""), sender, 0, time.Millisecond)

	// organizer kind with no organizer phone anywhere
	assert.NoError(t, p.Process(context.Background(), encoded(t, KindBidPlaced)))
	assert.Zero(t, sender.calls)
}
