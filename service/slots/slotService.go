package slots

import (
	"context"
	"time"

	"github.com/IITBsports/turf-backend/model"
	"github.com/IITBsports/turf-backend/util/civil"
)

type Repo interface {
	List(ctx context.Context) ([]model.BookingRequest, error)
	AcceptedClaim(ctx context.Context, slot int, date string) (*model.SlotClaim, error)
}

type Service interface {
	// Board projects every slot's status for today and tomorrow.
	Board(ctx context.Context) ([]model.SlotStatus, error)

	// AcceptedHolder returns the accepted claim for (slot, date), or nil
	// when the slot is free.
	AcceptedHolder(ctx context.Context, slot int, date string) (*model.SlotClaim, error)
}

type service struct {
	r   Repo
	now func() time.Time
}

func New(r Repo) Service {
	return &service{r: r, now: time.Now}
}

func (s *service) Board(ctx context.Context) ([]model.SlotStatus, error) {
	reqs, err := s.r.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	today := civil.Date(now)
	tomorrow := civil.Date(now.Add(24 * time.Hour))
	return Project(reqs, today, tomorrow), nil
}

func (s *service) AcceptedHolder(ctx context.Context, slot int, date string) (*model.SlotClaim, error) {
	return s.r.AcceptedClaim(ctx, slot, date)
}

type slotKey struct {
	slot int
	date string
}

// Project derives one status per (slot, date) cell. Priority within a
// group: any accepted => booked, else any pending => requested, else
// available. Pure; recomputing over the same records yields the same board.
func Project(reqs []model.BookingRequest, dates ...string) []model.SlotStatus {
	grouped := make(map[slotKey]string)
	for _, r := range reqs {
		k := slotKey{slot: r.Slot, date: r.Date}
		switch r.Status {
		case model.StatusAccepted:
			grouped[k] = "booked"
		case model.StatusPending:
			if grouped[k] != "booked" {
				grouped[k] = "requested"
			}
		}
	}

	out := make([]model.SlotStatus, 0, len(dates)*model.SlotCount)
	for _, date := range dates {
		for slot := 1; slot <= model.SlotCount; slot++ {
			status := grouped[slotKey{slot: slot, date: date}]
			if status == "" {
				status = "available"
			}
			out = append(out, model.SlotStatus{Slot: slot, Date: date, Status: status})
		}
	}
	return out
}
