package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAlertQueueCounterMatchesQueue(t *testing.T) {
	q := NewAlertQueue()

	ids := []int64{
		q.Raise("first", AlertInfo),
		q.Raise("second", AlertWarning),
		q.Raise("third", AlertError),
	}

	require.Equal(t, 3, q.Count())
	require.Len(t, q.Active(), 3)

	// ids are strictly increasing even when raised within the same millisecond
	require.Less(t, ids[0], ids[1])
	require.Less(t, ids[1], ids[2])

	q.Dismiss(ids[1])
	require.Equal(t, 2, q.Count())
	require.Len(t, q.Active(), 2)

	// dismissing again must not double-decrement
	q.Dismiss(ids[1])
	require.Equal(t, 2, q.Count())

	q.Dismiss(ids[0])
	q.Dismiss(ids[2])
	require.Equal(t, 0, q.Count())
	require.Empty(t, q.Active())

	// unknown ids are a no-op and the counter never goes negative
	q.Dismiss(12345)
	require.Equal(t, 0, q.Count())
}

func TestAlertQueueExpiry(t *testing.T) {
	q := NewAlertQueue()
	q.ttl = 20 * time.Millisecond

	q.Raise("short lived", AlertSuccess)
	require.Equal(t, 1, q.Count())

	require.Eventually(t, func() bool {
		return q.Count() == 0 && len(q.Active()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestAlertQueueDismissCancelsExpiry(t *testing.T) {
	q := NewAlertQueue()
	q.ttl = 20 * time.Millisecond

	id := q.Raise("dismiss me", AlertInfo)
	q.Raise("keep me", AlertInfo)
	q.Dismiss(id)
	require.Equal(t, 1, q.Count())

	// let the cancelled timer's window pass, then confirm the stale timer
	// did not fire a second decrement once the survivor expires
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 0, q.Count())
	require.Empty(t, q.Active())
}
