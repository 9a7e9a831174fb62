package mailer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	name     string
	attempts int
	failN    int // fail the first N sends
	err      error
}

func (f *fakeTransport) Name() string { return f.name }

func (f *fakeTransport) Send(_ Message, _ time.Duration) error {
	f.attempts++
	if f.attempts <= f.failN {
		if f.err != nil {
			return f.err
		}
		return errors.New("send failed")
	}
	return nil
}

func (f *fakeTransport) Verify() error { return f.err }

func newTestSender(transports []Transport, maxRetries int) *RetrySender {
	s := NewRetrySender(transports, maxRetries, time.Second, time.Second, discardLogger())
	s.sleep = func(time.Duration) {}
	return s
}

func TestRetrySender_FirstTrySucceeds(t *testing.T) {
	primary := &fakeTransport{name: "primary"}
	fallback := &fakeTransport{name: "fallback"}
	s := newTestSender([]Transport{primary, fallback}, 3)

	tries, err := s.Send(Message{To: "a@example.com"})
	require.NoError(t, err)
	require.Equal(t, 1, tries)
	require.Equal(t, 1, primary.attempts)
	require.Equal(t, 0, fallback.attempts)
}

func TestRetrySender_RetriesBeforeFallback(t *testing.T) {
	primary := &fakeTransport{name: "primary", failN: 2}
	fallback := &fakeTransport{name: "fallback"}
	s := newTestSender([]Transport{primary, fallback}, 3)

	tries, err := s.Send(Message{To: "a@example.com"})
	require.NoError(t, err)
	// primary recovered on its third try, fallback never used
	require.Equal(t, 3, tries)
	require.Equal(t, 3, primary.attempts)
	require.Equal(t, 0, fallback.attempts)
}

func TestRetrySender_ExhaustsPrimaryThenUsesFallback(t *testing.T) {
	primary := &fakeTransport{name: "primary", failN: 99}
	fallback := &fakeTransport{name: "fallback"}
	s := newTestSender([]Transport{primary, fallback}, 3)

	tries, err := s.Send(Message{To: "a@example.com"})
	require.NoError(t, err)
	require.Equal(t, 4, tries)
	require.Equal(t, 3, primary.attempts)
	require.Equal(t, 1, fallback.attempts)
}

func TestRetrySender_AllExhaustedReturnsLastError(t *testing.T) {
	lastErr := errors.New("fallback down")
	primary := &fakeTransport{name: "primary", failN: 99}
	fallback := &fakeTransport{name: "fallback", failN: 99, err: lastErr}
	s := newTestSender([]Transport{primary, fallback}, 2)

	tries, err := s.Send(Message{To: "a@example.com"})
	require.ErrorIs(t, err, lastErr)
	require.Equal(t, 4, tries)
	require.Equal(t, 2, primary.attempts)
	require.Equal(t, 2, fallback.attempts)
}

func TestRetrySender_BackoffGrowsPerAttempt(t *testing.T) {
	primary := &fakeTransport{name: "primary", failN: 99}
	s := NewRetrySender([]Transport{primary}, 3, time.Second, 100*time.Millisecond, discardLogger())

	var slept []time.Duration
	s.sleep = func(d time.Duration) { slept = append(slept, d) }

	_, _ = s.Send(Message{To: "a@example.com"})
	require.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, slept)
}

func TestRetrySender_Verify(t *testing.T) {
	ok := &fakeTransport{name: "primary"}
	bad := &fakeTransport{name: "fallback", err: errors.New("tls handshake failed")}
	s := newTestSender([]Transport{ok, bad}, 1)

	got := s.Verify()
	require.Len(t, got, 2)
	require.Equal(t, TransportHealth{Transport: "primary", Status: "OK"}, got[0])
	require.Equal(t, "FAILED", got[1].Status)
	require.Contains(t, got[1].Error, "tls handshake")
}
