package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Seats int    `json:"seats"`
}

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	var got payload
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k", payload{Name: "a", Seats: 27}, time.Minute))
	require.NoError(t, c.Get(ctx, "k", &got))
	assert.Equal(t, payload{Name: "a", Seats: 27}, got)
	assert.True(t, c.Exists(ctx, "k"))
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory().(*memory)
	now := time.Now()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "k", 1, time.Second))
	now = now.Add(2 * time.Second)

	var v int
	assert.ErrorIs(t, m.Get(ctx, "k", &v), ErrCacheMiss)
}

func TestMemoryDeletePattern(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	require.NoError(t, c.Set(ctx, "seatflow:seats:map:event:e1:session:session1", 1, 0))
	require.NoError(t, c.Set(ctx, "seatflow:seats:map:event:e1:session:session2", 1, 0))
	require.NoError(t, c.Set(ctx, "seatflow:seats:map:event:e2:session:session1", 1, 0))

	require.NoError(t, c.DeletePattern(ctx, "seatflow:seats:map:event:e1:*"))

	assert.False(t, c.Exists(ctx, "seatflow:seats:map:event:e1:session:session1"))
	assert.False(t, c.Exists(ctx, "seatflow:seats:map:event:e1:session:session2"))
	assert.True(t, c.Exists(ctx, "seatflow:seats:map:event:e2:session:session1"))
}

func TestGetOrSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return payload{Name: "fresh", Seats: 3}, nil
	}

	var first, second payload
	require.NoError(t, c.GetOrSet(ctx, "k", time.Minute, fetch, &first))
	require.NoError(t, c.GetOrSet(ctx, "k", time.Minute, fetch, &second))

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)

	boom := errors.New("boom")
	var ignored payload
	err := c.GetOrSet(ctx, "other", time.Minute, func() (interface{}, error) { return nil, boom }, &ignored)
	assert.ErrorIs(t, err, boom)
	assert.False(t, c.Exists(ctx, "other"))
}
