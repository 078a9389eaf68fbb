package security

import (
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingLogRecentNewestFirst(t *testing.T) {
	l := NewRingLog(8, zerolog.Nop())

	l.Record(Event{Kind: KindAuthFailure, Detail: "first"})
	l.Record(Event{Kind: KindOwnerMismatch, Detail: "second"})
	l.Record(Event{Kind: KindRateLimited, Detail: "third"})

	events := l.Recent(0)
	require.Len(t, events, 3)
	assert.Equal(t, "third", events[0].Detail)
	assert.Equal(t, "first", events[2].Detail)

	events = l.Recent(2)
	require.Len(t, events, 2)
	assert.Equal(t, "third", events[0].Detail)
}

func TestRingLogWrapsAround(t *testing.T) {
	l := NewRingLog(4, zerolog.Nop())

	for i := 0; i < 10; i++ {
		l.Record(Event{Kind: KindRateLimited, Detail: fmt.Sprintf("e%d", i)})
	}

	events := l.Recent(0)
	require.Len(t, events, 4, "capacity bounds retention")
	assert.Equal(t, "e9", events[0].Detail)
	assert.Equal(t, "e6", events[3].Detail)
}

func TestRingLogStampsTime(t *testing.T) {
	l := NewRingLog(4, zerolog.Nop()).(*ringLog)
	at := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	l.nowFn = func() time.Time { return at }

	l.Record(Event{Kind: KindPaymentRejected})
	events := l.Recent(1)
	require.Len(t, events, 1)
	assert.Equal(t, at, events[0].At)

	explicit := at.Add(-time.Hour)
	l.Record(Event{Kind: KindPaymentRejected, At: explicit})
	events = l.Recent(1)
	assert.Equal(t, explicit, events[0].At, "an explicit timestamp is kept")
}

func TestNopLog(t *testing.T) {
	l := Nop()
	l.Record(Event{Kind: KindAuthFailure})
	assert.Nil(t, l.Recent(10))
}
