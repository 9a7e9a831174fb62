package banrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/IITBsports/turf-backend/model"
)

type Repo interface {
	// Add records a ban with the given TTL; re-banning an already banned
	// roll number is a no-op that keeps the original expiry.
	Add(ctx context.Context, rollno string, ttl time.Duration) (*model.BanEntry, error)
	Exists(ctx context.Context, rollno string) (bool, error)
	SweepExpired(ctx context.Context) (int64, error)
}

type repo struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) Repo { return &repo{db: db} }

func (r *repo) Add(ctx context.Context, rollno string, ttl time.Duration) (*model.BanEntry, error) {
	const q = `
INSERT INTO bans (rollno, expires_at)
VALUES ($1, now() + $2)
ON CONFLICT (rollno) DO NOTHING
RETURNING rollno, banned_at, expires_at`
	var b model.BanEntry
	err := r.db.QueryRow(ctx, q, rollno, ttl).Scan(&b.RollNo, &b.BannedAt, &b.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// conflict: the existing entry wins
		return r.get(ctx, rollno)
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return r.get(ctx, rollno)
		}
		return nil, err
	}
	return &b, nil
}

func (r *repo) get(ctx context.Context, rollno string) (*model.BanEntry, error) {
	const q = `SELECT rollno, banned_at, expires_at FROM bans WHERE rollno = $1`
	var b model.BanEntry
	if err := r.db.QueryRow(ctx, q, rollno).Scan(&b.RollNo, &b.BannedAt, &b.ExpiresAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) Exists(ctx context.Context, rollno string) (bool, error) {
	const q = `
SELECT EXISTS (
	SELECT 1 FROM bans WHERE rollno = $1 AND expires_at > now()
)`
	var ok bool
	err := r.db.QueryRow(ctx, q, rollno).Scan(&ok)
	return ok, err
}

func (r *repo) SweepExpired(ctx context.Context) (int64, error) {
	const q = `DELETE FROM bans WHERE expires_at <= now()`
	tag, err := r.db.Exec(ctx, q)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
