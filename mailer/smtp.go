package mailer

import (
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
	"time"

	"gopkg.in/gomail.v2"
)

// SMTPConfig is one named relay configuration. Port 465 is dialed with
// implicit TLS, anything else with STARTTLS.
type SMTPConfig struct {
	Name string
	Host string
	Port int
	User string
	Pass string
}

type smtpTransport struct {
	cfg    SMTPConfig
	dialer *gomail.Dialer
	dial   func() (gomail.SendCloser, error)

	// cached connection; only the owning Send call touches it, and a
	// timed-out attempt never hands its connection back here
	conn gomail.SendCloser
}

// NewSMTPTransport builds a Transport over one relay configuration.
func NewSMTPTransport(cfg SMTPConfig) Transport {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
	d.SSL = cfg.Port == 465
	return &smtpTransport{cfg: cfg, dialer: d, dial: d.Dial}
}

func (t *smtpTransport) Name() string { return t.cfg.Name }

type sendResult struct {
	conn gomail.SendCloser
	err  error
}

func (t *smtpTransport) Send(m Message, timeout time.Duration) error {
	// Hand the cached connection to the attempt goroutine and take it
	// out of the struct: whatever comes back over done is the only
	// handle allowed to be cached again, so a timed-out attempt can
	// never share state with its successor.
	conn := t.conn
	t.conn = nil

	done := make(chan sendResult, 1)
	go func() {
		conn, err := t.deliver(conn, m)
		done <- sendResult{conn: conn, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil && res.conn != nil && isTransient(res.err) {
			_ = res.conn.Close()
			res.conn = nil
		}
		t.conn = res.conn
		return res.err
	case <-time.After(timeout):
		go func() {
			// the abandoned attempt owns its connection to the end
			if res := <-done; res.conn != nil {
				_ = res.conn.Close()
			}
		}()
		return fmt.Errorf("send to %s timed out after %s", m.To, timeout)
	}
}

// deliver sends m over conn, dialing first when conn is nil. The returned
// connection is whatever handle the attempt ended up holding.
func (t *smtpTransport) deliver(conn gomail.SendCloser, m Message) (gomail.SendCloser, error) {
	if conn == nil {
		c, err := t.dial()
		if err != nil {
			return nil, err
		}
		conn = c
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Body)

	if err := gomail.Send(conn, msg); err != nil {
		return conn, err
	}
	return conn, nil
}

// Verify performs a connectivity self-test on a fresh connection, leaving
// the cached delivery handle alone.
func (t *smtpTransport) Verify() error {
	conn, err := t.dial()
	if err != nil {
		return err
	}
	return conn.Close()
}

// isTransient reports whether the failure warrants a fresh connection on
// the next attempt.
func isTransient(err error) bool {
	if errors.Is(err, io.EOF) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}
