package otprepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo interface {
	Save(ctx context.Context, email, code string) error
	// Consume reports whether a code issued within the freshness window
	// matches, and deletes it so it cannot be replayed.
	Consume(ctx context.Context, email, code string, freshness time.Duration) (bool, error)
	SweepExpired(ctx context.Context, freshness time.Duration) (int64, error)
}

type repo struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) Repo { return &repo{db: db} }

func (r *repo) Save(ctx context.Context, email, code string) error {
	const q = `INSERT INTO otps (email, code) VALUES ($1, $2)`
	_, err := r.db.Exec(ctx, q, email, code)
	return err
}

func (r *repo) Consume(ctx context.Context, email, code string, freshness time.Duration) (bool, error) {
	const q = `
DELETE FROM otps
WHERE email = $1 AND code = $2 AND created_at > now() - $3`
	tag, err := r.db.Exec(ctx, q, email, code, freshness)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repo) SweepExpired(ctx context.Context, freshness time.Duration) (int64, error) {
	const q = `DELETE FROM otps WHERE created_at <= now() - $1`
	tag, err := r.db.Exec(ctx, q, freshness)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
