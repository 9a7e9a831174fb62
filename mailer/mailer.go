// Package mailer implements best-effort outbound email: an in-process FIFO
// queue drained one message at a time, backed by ordered SMTP transports
// with per-attempt timeouts and multiplicative backoff. Delivery failure is
// recorded, never surfaced to the code that enqueued the message.
package mailer

import "time"

type Message struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Job is a queued message plus its delivery bookkeeping.
type Job struct {
	Msg        Message
	EnqueuedAt time.Time
	Attempts   int
	LastErr    string
}

// Sender runs a full delivery attempt sequence for one message, reporting
// how many tries it took. A non-nil error means every transport and retry
// was exhausted.
type Sender interface {
	Send(m Message) (attempts int, err error)
}

// Transport is a single outbound mail configuration.
type Transport interface {
	Name() string
	Send(m Message, timeout time.Duration) error
	Verify() error
}
