package mailer

import (
	"log/slog"
	"time"
)

// RetrySender walks an ordered transport list: each transport gets up to
// MaxRetries tries (with multiplicative backoff between them) before the
// next transport is attempted. The last error is returned only when every
// transport is exhausted.
type RetrySender struct {
	transports []Transport
	maxRetries int
	timeout    time.Duration
	backoff    time.Duration
	log        *slog.Logger

	sleep func(time.Duration) // swapped out in tests
}

func NewRetrySender(transports []Transport, maxRetries int, timeout, backoff time.Duration, log *slog.Logger) *RetrySender {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &RetrySender{
		transports: transports,
		maxRetries: maxRetries,
		timeout:    timeout,
		backoff:    backoff,
		log:        log,
		sleep:      time.Sleep,
	}
}

func (s *RetrySender) Send(m Message) (int, error) {
	var last error
	tries := 0
	for _, t := range s.transports {
		for attempt := 1; attempt <= s.maxRetries; attempt++ {
			if attempt > 1 {
				s.sleep(s.backoff << (attempt - 2))
			}
			tries++
			err := t.Send(m, s.timeout)
			if err == nil {
				return tries, nil
			}
			last = err
			s.log.Warn("mail attempt failed",
				"transport", t.Name(), "attempt", attempt, "to", m.To, "err", err)
		}
	}
	return tries, last
}

// TransportHealth is one transport's Verify outcome.
type TransportHealth struct {
	Transport string `json:"transport"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// Verify runs the connectivity self-test on every transport.
func (s *RetrySender) Verify() []TransportHealth {
	out := make([]TransportHealth, 0, len(s.transports))
	for _, t := range s.transports {
		h := TransportHealth{Transport: t.Name(), Status: "OK"}
		if err := t.Verify(); err != nil {
			h.Status = "FAILED"
			h.Error = err.Error()
		}
		out = append(out, h)
	}
	return out
}
