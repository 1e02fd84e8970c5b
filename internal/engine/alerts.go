package engine

import (
	"sync"
	"time"
)

// Alert types for user-facing notices
const (
	AlertInfo    = "info"
	AlertSuccess = "success"
	AlertWarning = "warning"
	AlertError   = "error"
)

const alertTTL = 7 * time.Second

// Alert is a transient user-facing notice. Not persisted.
type Alert struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// AlertQueue is an append-only notice list with self-expiry. Each alert is
// removed after exactly alertTTL unless dismissed first; a dismissal stops the
// pending timer so the counter is never decremented twice for the same alert.
type AlertQueue struct {
	mu     sync.Mutex
	alerts []Alert
	timers map[int64]*time.Timer
	count  int
	lastID int64
	ttl    time.Duration
}

func NewAlertQueue() *AlertQueue {
	return &AlertQueue{
		timers: make(map[int64]*time.Timer),
		ttl:    alertTTL,
	}
}

// Raise appends a notice and schedules its expiry. The id is the current unix
// millisecond timestamp, bumped on collision so ids stay strictly increasing.
func (q *AlertQueue) Raise(message, alertType string) int64 {
	q.mu.Lock()
	defer q.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= q.lastID {
		id = q.lastID + 1
	}
	q.lastID = id

	q.alerts = append(q.alerts, Alert{ID: id, Message: message, Type: alertType})
	q.count++
	q.timers[id] = time.AfterFunc(q.ttl, func() {
		q.Dismiss(id)
	})

	return id
}

// Dismiss removes a notice immediately. Safe to call for an already-expired or
// unknown id.
func (q *AlertQueue) Dismiss(id int64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	timer, ok := q.timers[id]
	if !ok {
		return
	}
	timer.Stop()
	delete(q.timers, id)

	for i, a := range q.alerts {
		if a.ID == id {
			q.alerts = append(q.alerts[:i], q.alerts[i+1:]...)
			break
		}
	}
	if q.count > 0 {
		q.count--
	}
}

// Active returns a snapshot of the current notices
func (q *AlertQueue) Active() []Alert {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Alert, len(q.alerts))
	copy(out, q.alerts)
	return out
}

func (q *AlertQueue) Count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}
