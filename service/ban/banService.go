package ban

import (
	"context"
	"time"

	"github.com/IITBsports/turf-backend/model"
)

type Repo interface {
	Add(ctx context.Context, rollno string, ttl time.Duration) (*model.BanEntry, error)
	Exists(ctx context.Context, rollno string) (bool, error)
}

type Service interface {
	// Ban denylists a roll number for the configured window. Banning an
	// already banned requester keeps the original expiry.
	Ban(ctx context.Context, rollno string) (*model.BanEntry, error)

	// IsBanned is true only while an unexpired entry exists.
	IsBanned(ctx context.Context, rollno string) (bool, error)
}

type service struct {
	r   Repo
	ttl time.Duration
}

func New(r Repo, ttl time.Duration) Service {
	return &service{r: r, ttl: ttl}
}

func (s *service) Ban(ctx context.Context, rollno string) (*model.BanEntry, error) {
	return s.r.Add(ctx, rollno, s.ttl)
}

func (s *service) IsBanned(ctx context.Context, rollno string) (bool, error) {
	return s.r.Exists(ctx, rollno)
}
