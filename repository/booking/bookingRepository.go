package bookingrepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/IITBsports/turf-backend/model"
)

type Repo interface {
	// Create persists the request and its slot claim in one transaction.
	Create(ctx context.Context, req *model.BookingRequest) error

	ByID(ctx context.Context, id string) (*model.BookingRequest, error)
	List(ctx context.Context) ([]model.BookingRequest, error)
	ListPending(ctx context.Context, slot int, date string) ([]model.BookingRequest, error)
	EarliestPending(ctx context.Context, slot int, date string) (*model.BookingRequest, error)
	CountEarlierPending(ctx context.Context, slot int, date string, before time.Time) (int, error)

	// Accept marks the request accepted and, in the same transaction,
	// declines every other pending request for its (slot, date). The
	// auto-declined peers are returned for notification.
	Accept(ctx context.Context, id string) (*model.BookingRequest, []model.BookingRequest, error)
	Decline(ctx context.Context, id string) (*model.BookingRequest, error)

	Delete(ctx context.Context, id string) (bool, error)
	AcceptedClaim(ctx context.Context, slot int, date string) (*model.SlotClaim, error)

	// SweepExpired removes requests (and, via cascade, their claims)
	// older than the cutoff. Returns the number of requests removed.
	SweepExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

type repo struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) Repo { return &repo{db: db} }

const requestCols = `id, name, rollno, email, purpose, player_roll_no, no_of_players, slot, date, status, created_at`

func scanRequest(row pgx.Row) (*model.BookingRequest, error) {
	var r model.BookingRequest
	err := row.Scan(
		&r.ID, &r.Name, &r.RollNo, &r.Email, &r.Purpose,
		&r.PlayerRollNo, &r.NumPlayers, &r.Slot, &r.Date, &r.Status, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func collectRequests(rows pgx.Rows) ([]model.BookingRequest, error) {
	defer rows.Close()
	var out []model.BookingRequest
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (r *repo) Create(ctx context.Context, req *model.BookingRequest) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	const insReq = `
INSERT INTO booking_requests (id, name, rollno, email, purpose, player_roll_no, no_of_players, slot, date, status)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING created_at`
	err = tx.QueryRow(ctx, insReq,
		req.ID, req.Name, req.RollNo, req.Email, req.Purpose,
		req.PlayerRollNo, req.NumPlayers, req.Slot, req.Date, req.Status,
	).Scan(&req.CreatedAt)
	if err != nil {
		return err
	}

	const insClaim = `
INSERT INTO slot_claims (id, request_id, rollno, slot, date, status, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err = tx.Exec(ctx, insClaim,
		uuid.NewString(), req.ID, req.RollNo, req.Slot, req.Date, req.Status, req.CreatedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *repo) ByID(ctx context.Context, id string) (*model.BookingRequest, error) {
	const q = `
SELECT ` + requestCols + `
FROM booking_requests
WHERE id = $1`
	req, err := scanRequest(r.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return req, err
}

func (r *repo) List(ctx context.Context) ([]model.BookingRequest, error) {
	const q = `
SELECT ` + requestCols + `
FROM booking_requests
ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func (r *repo) ListPending(ctx context.Context, slot int, date string) ([]model.BookingRequest, error) {
	const q = `
SELECT ` + requestCols + `
FROM booking_requests
WHERE slot = $1 AND date = $2 AND status = 'pending'
ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, q, slot, date)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func (r *repo) EarliestPending(ctx context.Context, slot int, date string) (*model.BookingRequest, error) {
	const q = `
SELECT ` + requestCols + `
FROM booking_requests
WHERE slot = $1 AND date = $2 AND status = 'pending'
ORDER BY created_at ASC
LIMIT 1`
	req, err := scanRequest(r.db.QueryRow(ctx, q, slot, date))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return req, err
}

func (r *repo) CountEarlierPending(ctx context.Context, slot int, date string, before time.Time) (int, error) {
	const q = `
SELECT count(*)
FROM booking_requests
WHERE slot = $1 AND date = $2 AND status = 'pending' AND created_at < $3`
	var n int
	err := r.db.QueryRow(ctx, q, slot, date, before).Scan(&n)
	return n, err
}

func (r *repo) Accept(ctx context.Context, id string) (accepted *model.BookingRequest, declined []model.BookingRequest, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	const acceptTarget = `
UPDATE booking_requests
SET status = 'accepted'
WHERE id = $1
RETURNING ` + requestCols
	accepted, err = scanRequest(tx.QueryRow(ctx, acceptTarget, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = tx.Rollback(ctx)
			return nil, nil, nil
		}
		return nil, nil, err
	}

	const mirrorTarget = `
UPDATE slot_claims
SET status = 'accepted'
WHERE request_id = $1`
	if _, err = tx.Exec(ctx, mirrorTarget, id); err != nil {
		return nil, nil, err
	}

	// One conditional bulk update: concurrent accepts on the same
	// (slot, date) serialize on these rows instead of racing a
	// read-then-write pair.
	const declinePeers = `
UPDATE booking_requests
SET status = 'declined'
WHERE slot = $1 AND date = $2 AND status = 'pending' AND id <> $3
RETURNING ` + requestCols
	rows, err := tx.Query(ctx, declinePeers, accepted.Slot, accepted.Date, id)
	if err != nil {
		return nil, nil, err
	}
	declined, err = collectRequests(rows)
	if err != nil {
		return nil, nil, err
	}

	const mirrorPeers = `
UPDATE slot_claims
SET status = 'declined'
WHERE slot = $1 AND date = $2 AND status = 'pending' AND request_id <> $3`
	if _, err = tx.Exec(ctx, mirrorPeers, accepted.Slot, accepted.Date, id); err != nil {
		return nil, nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return accepted, declined, nil
}

func (r *repo) Decline(ctx context.Context, id string) (updated *model.BookingRequest, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	const q = `
UPDATE booking_requests
SET status = 'declined'
WHERE id = $1
RETURNING ` + requestCols
	updated, err = scanRequest(tx.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = tx.Rollback(ctx)
			return nil, nil
		}
		return nil, err
	}

	const mirror = `
UPDATE slot_claims
SET status = 'declined'
WHERE request_id = $1`
	if _, err = tx.Exec(ctx, mirror, id); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *repo) Delete(ctx context.Context, id string) (bool, error) {
	// slot_claims rows go with the request via ON DELETE CASCADE
	const q = `DELETE FROM booking_requests WHERE id = $1`
	tag, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repo) AcceptedClaim(ctx context.Context, slot int, date string) (*model.SlotClaim, error) {
	const q = `
SELECT id, rollno, slot, date, status, created_at
FROM slot_claims
WHERE slot = $1 AND date = $2 AND status = 'accepted'`
	var c model.SlotClaim
	err := r.db.QueryRow(ctx, q, slot, date).Scan(
		&c.ID, &c.RollNo, &c.Slot, &c.Date, &c.Status, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) SweepExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	const q = `DELETE FROM booking_requests WHERE created_at < $1`
	tag, err := r.db.Exec(ctx, q, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
