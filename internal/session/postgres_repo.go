package session

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// Create stores s under s.ID, which the service has already hashed.
func (r *PostgresRepo) Create(ctx context.Context, s Session) error {
	const query = `
	INSERT INTO console_sessions (id_hash, username, role, token, expires_at, created_at, last_used_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, query,
		s.ID,
		s.Username,
		s.Role,
		s.Token,
		s.ExpiresAt,
		s.CreatedAt,
		s.LastUsedAt,
	)
	return err
}

func (r *PostgresRepo) Get(ctx context.Context, idHash string) (Session, error) {
	const query = `
	SELECT id_hash, username, role, token, expires_at, created_at, last_used_at
	FROM console_sessions
	WHERE id_hash = $1
	LIMIT 1
	`
	var s Session
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, idHash).Scan(
		&s.ID,
		&s.Username,
		&s.Role,
		&s.Token,
		&s.ExpiresAt,
		&s.CreatedAt,
		&s.LastUsedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	return s, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, idHash string) error {
	const query = `DELETE FROM console_sessions WHERE id_hash = $1`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	result, err := r.db.Exec(timeoutCtx, query, idHash)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Touch(ctx context.Context, idHash string, at time.Time) error {
	const query = `UPDATE console_sessions SET last_used_at = $2 WHERE id_hash = $1`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, query, idHash, at)
	return err
}

func (r *PostgresRepo) CleanupExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM console_sessions WHERE expires_at <= $1`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	result, err := r.db.Exec(timeoutCtx, query, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
