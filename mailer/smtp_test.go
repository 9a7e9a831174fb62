package mailer

import (
	"errors"
	"io"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeConn struct {
	mu     sync.Mutex
	errs   []error // one per Send call, nil entries succeed
	sent   int
	closed int
}

func (c *fakeConn) Send(from string, to []string, msg io.WriterTo) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var err error
	if len(c.errs) > 0 {
		err, c.errs = c.errs[0], c.errs[1:]
	}
	if err != nil {
		return err
	}
	c.sent++
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed++
	return nil
}

func (c *fakeConn) closeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func newTestTransport(dial func() (gomail.SendCloser, error)) *smtpTransport {
	tr := NewSMTPTransport(SMTPConfig{Name: "primary", Host: "smtp.example.com", Port: 587}).(*smtpTransport)
	tr.dial = dial
	return tr
}

func dialSequence(conns ...*fakeConn) (func() (gomail.SendCloser, error), *int) {
	dials := new(int)
	return func() (gomail.SendCloser, error) {
		conn := conns[*dials]
		*dials++
		return conn, nil
	}, dials
}

func TestSMTPTransport_ImplicitTLSOn465(t *testing.T) {
	ssl := NewSMTPTransport(SMTPConfig{Host: "smtp.example.com", Port: 465}).(*smtpTransport)
	require.True(t, ssl.dialer.SSL)

	startTLS := NewSMTPTransport(SMTPConfig{Host: "smtp.example.com", Port: 587}).(*smtpTransport)
	require.False(t, startTLS.dialer.SSL)
}

func TestSMTPTransport_ReusesConnection(t *testing.T) {
	conn := &fakeConn{}
	dial, dials := dialSequence(conn)
	tr := newTestTransport(dial)

	m := Message{From: "turf@example.com", To: "a@example.com", Subject: "s", Body: "b"}
	require.NoError(t, tr.Send(m, time.Second))
	require.NoError(t, tr.Send(m, time.Second))

	require.Equal(t, 1, *dials)
	require.Equal(t, 2, conn.sent)
	require.Equal(t, 0, conn.closeCount())
}

func TestSMTPTransport_TransientErrorDiscardsAndRedials(t *testing.T) {
	broken := &fakeConn{errs: []error{syscall.ECONNRESET}}
	fresh := &fakeConn{}
	dial, dials := dialSequence(broken, fresh)
	tr := newTestTransport(dial)

	m := Message{From: "turf@example.com", To: "a@example.com", Subject: "s", Body: "b"}

	err := tr.Send(m, time.Second)
	require.ErrorIs(t, err, syscall.ECONNRESET)
	require.Equal(t, 1, broken.closeCount())

	require.NoError(t, tr.Send(m, time.Second))
	require.Equal(t, 2, *dials)
	require.Equal(t, 1, fresh.sent)
}

func TestSMTPTransport_PermanentErrorKeepsHandle(t *testing.T) {
	conn := &fakeConn{errs: []error{errors.New("550 mailbox unavailable")}}
	dial, dials := dialSequence(conn)
	tr := newTestTransport(dial)

	m := Message{From: "turf@example.com", To: "a@example.com", Subject: "s", Body: "b"}

	err := tr.Send(m, time.Second)
	require.Error(t, err)
	require.Equal(t, 0, conn.closeCount())

	// rejection is no reason to re-dial
	require.NoError(t, tr.Send(m, time.Second))
	require.Equal(t, 1, *dials)
	require.Equal(t, 1, conn.sent)
}

func TestSMTPTransport_TimedOutAttemptNeverSharesItsConnection(t *testing.T) {
	// A relay whose dial completes only after the per-try timeout: the
	// abandoned attempt must keep its connection to itself and close
	// it, while the next attempt dials fresh.
	release := make(chan struct{})
	slow := &fakeConn{}
	fresh := &fakeConn{}
	var mu sync.Mutex
	dialed := 0
	tr := newTestTransport(func() (gomail.SendCloser, error) {
		mu.Lock()
		dialed++
		n := dialed
		mu.Unlock()
		if n == 1 {
			<-release
			return slow, nil
		}
		return fresh, nil
	})

	m := Message{From: "turf@example.com", To: "a@example.com", Subject: "s", Body: "b"}

	err := tr.Send(m, 20*time.Millisecond)
	require.Error(t, err)
	require.Contains(t, err.Error(), "timed out")
	require.Nil(t, tr.conn)

	close(release)

	require.NoError(t, tr.Send(m, time.Second))
	mu.Lock()
	n := dialed
	mu.Unlock()
	require.Equal(t, 2, n)
	require.Equal(t, 1, fresh.sent)
	require.Same(t, fresh, tr.conn.(*fakeConn))

	// the late connection ends up closed, never cached
	require.Eventually(t, func() bool {
		return slow.closeCount() == 1
	}, 2*time.Second, time.Millisecond)
	require.Same(t, fresh, tr.conn.(*fakeConn))
}
