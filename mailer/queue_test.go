package mailer

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []Message
	fail func(m Message) error
}

func (r *recordingSender) Send(m Message) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		if err := r.fail(m); err != nil {
			return 1, err
		}
	}
	r.sent = append(r.sent, m)
	return 1, nil
}

func (r *recordingSender) recipients() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.sent))
	for i, m := range r.sent {
		out[i] = m.To
	}
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discard{}, nil))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestQueue_DrainsFIFO(t *testing.T) {
	s := &recordingSender{}
	q := NewQueue(s, time.Millisecond, discardLogger())

	const n = 5
	for i := 0; i < n; i++ {
		q.Enqueue(Message{To: fmt.Sprintf("user%d@example.com", i)})
	}

	require.Eventually(t, func() bool {
		return q.Stats().Delivered == n
	}, 2*time.Second, 5*time.Millisecond)

	want := []string{
		"user0@example.com", "user1@example.com", "user2@example.com",
		"user3@example.com", "user4@example.com",
	}
	require.Equal(t, want, s.recipients())

	st := q.Stats()
	require.Equal(t, 0, st.Pending)
	require.False(t, st.Draining)
	require.Equal(t, uint64(n), st.Enqueued)
	require.Equal(t, uint64(n), st.Attempts)
}

func TestQueue_InterMessageDelay(t *testing.T) {
	s := &recordingSender{}
	q := NewQueue(s, 50*time.Millisecond, discardLogger())

	var mu sync.Mutex
	var slept []time.Duration
	q.sleep = func(d time.Duration) {
		mu.Lock()
		slept = append(slept, d)
		mu.Unlock()
	}

	q.Enqueue(Message{To: "a@example.com"})
	q.Enqueue(Message{To: "b@example.com"})
	q.Enqueue(Message{To: "c@example.com"})

	require.Eventually(t, func() bool {
		return q.Stats().Delivered == 3
	}, 2*time.Second, time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, slept, 3)
	for _, d := range slept {
		require.GreaterOrEqual(t, d, 50*time.Millisecond)
	}
}

func TestQueue_ExhaustionIsRecordedNotRaised(t *testing.T) {
	boom := errors.New("relay unreachable")
	s := &recordingSender{fail: func(m Message) error {
		if m.To == "bad@example.com" {
			return boom
		}
		return nil
	}}
	q := NewQueue(s, time.Millisecond, discardLogger())

	// Enqueue must not surface the failure.
	q.Enqueue(Message{To: "bad@example.com"})
	q.Enqueue(Message{To: "good@example.com"})

	require.Eventually(t, func() bool {
		st := q.Stats()
		return st.Delivered == 1 && st.Exhausted == 1
	}, 2*time.Second, time.Millisecond)

	st := q.Stats()
	require.Equal(t, "relay unreachable", st.LastError)
	require.Equal(t, uint64(2), st.Attempts)
	require.Equal(t, []string{"good@example.com"}, s.recipients())
}

func TestQueue_ReturnsToIdleAndWakesAgain(t *testing.T) {
	s := &recordingSender{}
	q := NewQueue(s, time.Millisecond, discardLogger())

	q.Enqueue(Message{To: "first@example.com"})
	require.Eventually(t, func() bool {
		st := q.Stats()
		return st.Delivered == 1 && !st.Draining
	}, 2*time.Second, time.Millisecond)

	q.Enqueue(Message{To: "second@example.com"})
	require.Eventually(t, func() bool {
		return q.Stats().Delivered == 2
	}, 2*time.Second, time.Millisecond)
}
