package cleanup

import (
	"context"
	"time"
)

// The Mongo schemas this replaces expired records with TTL indexes;
// Postgres has no field expiry, so a sweeper runs on an interval instead.

type BookingRepo interface {
	SweepExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

type BanRepo interface {
	SweepExpired(ctx context.Context) (int64, error)
}

type OTPRepo interface {
	SweepExpired(ctx context.Context, freshness time.Duration) (int64, error)
}

type Report struct {
	Requests int64
	Bans     int64
	OTPs     int64
}

type Cleaner interface {
	SweepExpired(ctx context.Context) (Report, error)
}

type cleaner struct {
	bookings BookingRepo
	bans     BanRepo
	otps     OTPRepo

	requestRetention time.Duration
	otpFreshness     time.Duration
	now              func() time.Time
}

func New(bookings BookingRepo, bans BanRepo, otps OTPRepo, requestRetention, otpFreshness time.Duration) Cleaner {
	return &cleaner{
		bookings:         bookings,
		bans:             bans,
		otps:             otps,
		requestRetention: requestRetention,
		otpFreshness:     otpFreshness,
		now:              time.Now,
	}
}

func (c *cleaner) SweepExpired(ctx context.Context) (Report, error) {
	var rep Report
	var err error

	if rep.Requests, err = c.bookings.SweepExpired(ctx, c.now().UTC().Add(-c.requestRetention)); err != nil {
		return rep, err
	}
	if rep.Bans, err = c.bans.SweepExpired(ctx); err != nil {
		return rep, err
	}
	if rep.OTPs, err = c.otps.SweepExpired(ctx, c.otpFreshness); err != nil {
		return rep, err
	}
	return rep, nil
}
