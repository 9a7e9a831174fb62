package mailer

import (
	"log/slog"
	"sync"
	"time"
)

// Stats is a snapshot of queue activity for the diagnostics probe.
type Stats struct {
	Pending   int    `json:"pending"`
	Draining  bool   `json:"draining"`
	Enqueued  uint64 `json:"enqueued"`
	Delivered uint64 `json:"delivered"`
	Exhausted uint64 `json:"exhausted"`
	Attempts  uint64 `json:"attempts"`
	LastError string `json:"last_error,omitempty"`
}

// Queue owns a private FIFO list of jobs drained by a single goroutine, one
// message at a time with a fixed delay between messages. Enqueue never
// blocks on delivery and delivery failure never reaches the enqueuer.
type Queue struct {
	sender Sender
	delay  time.Duration
	log    *slog.Logger

	mu       sync.Mutex
	jobs     []*Job
	draining bool
	stats    Stats

	sleep func(time.Duration) // swapped out in tests
}

func NewQueue(sender Sender, delay time.Duration, log *slog.Logger) *Queue {
	return &Queue{
		sender: sender,
		delay:  delay,
		log:    log,
		sleep:  time.Sleep,
	}
}

// Enqueue appends a message and wakes the drain loop if it is idle.
func (q *Queue) Enqueue(m Message) {
	q.mu.Lock()
	q.jobs = append(q.jobs, &Job{Msg: m, EnqueuedAt: time.Now()})
	q.stats.Enqueued++
	start := !q.draining
	if start {
		q.draining = true
	}
	q.mu.Unlock()

	if start {
		go q.drain()
	}
}

func (q *Queue) drain() {
	for {
		q.mu.Lock()
		if len(q.jobs) == 0 {
			q.draining = false
			q.mu.Unlock()
			return
		}
		job := q.jobs[0]
		q.jobs = q.jobs[1:]
		q.mu.Unlock()

		attempts, err := q.sender.Send(job.Msg)
		job.Attempts = attempts
		if err != nil {
			job.LastErr = err.Error()
			q.mu.Lock()
			q.stats.Exhausted++
			q.stats.Attempts += uint64(attempts)
			q.stats.LastError = job.LastErr
			q.mu.Unlock()
			q.log.Error("mail delivery exhausted",
				"to", job.Msg.To, "attempts", attempts, "err", err)
		} else {
			q.mu.Lock()
			q.stats.Delivered++
			q.stats.Attempts += uint64(attempts)
			q.mu.Unlock()
			q.log.Info("mail delivered",
				"to", job.Msg.To, "subject", job.Msg.Subject, "attempts", attempts)
		}

		// courtesy delay toward the relay
		q.sleep(q.delay)
	}
}

func (q *Queue) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()
	s := q.stats
	s.Pending = len(q.jobs)
	s.Draining = q.draining
	return s
}
