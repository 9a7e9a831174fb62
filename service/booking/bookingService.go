package booking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/IITBsports/turf-backend/mailer"
	"github.com/IITBsports/turf-backend/model"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound      ErrCode = "NOT_FOUND"
	ErrInvalidStatus ErrCode = "INVALID_STATUS"
	ErrBanned        ErrCode = "BANNED"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// dto

type Submitted struct {
	Request     *model.BookingRequest
	EmailQueued bool
}

type Decision struct {
	Request      *model.BookingRequest
	AutoDeclined int
	EmailQueued  bool
}

type Position struct {
	Status      model.RequestStatus `json:"status"`
	Position    *int                `json:"position"`
	RequestTime *time.Time          `json:"request_time,omitempty"`
	Slot        int                 `json:"slot,omitempty"`
	Date        string              `json:"date,omitempty"`
}

type Repo interface {
	Create(ctx context.Context, req *model.BookingRequest) error
	ByID(ctx context.Context, id string) (*model.BookingRequest, error)
	List(ctx context.Context) ([]model.BookingRequest, error)
	ListPending(ctx context.Context, slot int, date string) ([]model.BookingRequest, error)
	EarliestPending(ctx context.Context, slot int, date string) (*model.BookingRequest, error)
	CountEarlierPending(ctx context.Context, slot int, date string, before time.Time) (int, error)
	Accept(ctx context.Context, id string) (*model.BookingRequest, []model.BookingRequest, error)
	Decline(ctx context.Context, id string) (*model.BookingRequest, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// BanGate is consulted once, synchronously, before any write.
type BanGate interface {
	IsBanned(ctx context.Context, rollno string) (bool, error)
}

// Notifier hands a message to the mail queue; it must not block on delivery.
type Notifier interface {
	Enqueue(m mailer.Message)
}

type Service interface {
	// Submit gates on the ban registry, dual-writes the request and its
	// slot claim, and queues an acknowledgment email.
	Submit(ctx context.Context, req model.CreateRequestReq) (*Submitted, error)

	// Decide moves a request to accepted or declined. Accepting
	// auto-declines every other pending request on the same (slot, date)
	// and queues a decline email for each.
	Decide(ctx context.Context, id string, status model.RequestStatus) (*Decision, error)

	// QueuePosition reports 1 + the number of earlier pending requests on
	// the same (slot, date); nil position for non-pending requests.
	QueuePosition(ctx context.Context, id string) (*Position, error)

	Cancel(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.BookingRequest, error)
	ListPending(ctx context.Context, slot int, date string) ([]model.BookingRequest, error)
}

// ----- Service implementation -----

type service struct {
	r    Repo
	bans BanGate
	mail Notifier
	from string
	log  *slog.Logger
}

func New(r Repo, bans BanGate, mail Notifier, from string, log *slog.Logger) Service {
	return &service{r: r, bans: bans, mail: mail, from: from, log: log}
}

func (s *service) Submit(ctx context.Context, req model.CreateRequestReq) (*Submitted, error) {
	banned, err := s.bans.IsBanned(ctx, req.RollNo)
	if err != nil {
		return nil, err
	}
	if banned {
		return nil, makeErr(ErrBanned)
	}

	br := &model.BookingRequest{
		ID:           uuid.NewString(),
		Name:         req.Name,
		RollNo:       req.RollNo,
		Email:        req.Email,
		Purpose:      req.Purpose,
		PlayerRollNo: req.PlayerRollNo,
		NumPlayers:   req.NumPlayers,
		Slot:         req.Slot,
		Date:         req.Date,
		Status:       model.StatusPending,
	}
	if err := s.r.Create(ctx, br); err != nil {
		return nil, err
	}

	s.mail.Enqueue(ackEmail(s.from, br))

	return &Submitted{Request: br, EmailQueued: true}, nil
}

func (s *service) Decide(ctx context.Context, id string, status model.RequestStatus) (*Decision, error) {
	if !status.Terminal() {
		return nil, makeErr(ErrInvalidStatus)
	}

	target, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, makeErr(ErrNotFound)
	}

	if status == model.StatusDeclined {
		updated, err := s.r.Decline(ctx, id)
		if err != nil {
			return nil, err
		}
		if updated == nil {
			return nil, makeErr(ErrNotFound)
		}
		s.mail.Enqueue(declineEmail(s.from, updated))
		return &Decision{Request: updated, EmailQueued: true}, nil
	}

	// Advisory FIFO check: an operator may accept out of order on
	// purpose, so a mismatch is logged, never rejected.
	earliest, err := s.r.EarliestPending(ctx, target.Slot, target.Date)
	if err != nil {
		return nil, err
	}
	if earliest != nil && earliest.ID != id {
		s.log.Warn("accepting request out of FIFO order",
			"accepted_id", id,
			"earliest_pending_id", earliest.ID,
			"slot", target.Slot,
			"date", target.Date,
		)
	}

	updated, peers, err := s.r.Accept(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, makeErr(ErrNotFound)
	}

	for i := range peers {
		s.mail.Enqueue(autoDeclineEmail(s.from, &peers[i], updated))
	}
	s.mail.Enqueue(confirmationEmail(s.from, updated))

	return &Decision{Request: updated, AutoDeclined: len(peers), EmailQueued: true}, nil
}

func (s *service) QueuePosition(ctx context.Context, id string) (*Position, error) {
	req, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, makeErr(ErrNotFound)
	}

	if req.Status != model.StatusPending {
		return &Position{Status: req.Status}, nil
	}

	earlier, err := s.r.CountEarlierPending(ctx, req.Slot, req.Date, req.CreatedAt)
	if err != nil {
		return nil, err
	}
	pos := earlier + 1
	return &Position{
		Status:      req.Status,
		Position:    &pos,
		RequestTime: &req.CreatedAt,
		Slot:        req.Slot,
		Date:        req.Date,
	}, nil
}

func (s *service) Cancel(ctx context.Context, id string) error {
	ok, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrNotFound)
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]model.BookingRequest, error) {
	return s.r.List(ctx)
}

func (s *service) ListPending(ctx context.Context, slot int, date string) ([]model.BookingRequest, error) {
	return s.r.ListPending(ctx, slot, date)
}
