package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrLimitExceeded is returned by Hit once a key goes over its limit
var ErrLimitExceeded = errors.New("rate limit exceeded")

// DB is satisfied by *pgxpool.Pool and pgxmock
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// Limiter counts hits per key in PostgreSQL with a fixed window, so the
// count is shared by every API instance
type Limiter struct {
	db     DB
	window time.Duration
	now    func() time.Time
}

func NewLimiter(db DB, window time.Duration) *Limiter {
	return &Limiter{
		db:     db,
		window: window,
		now:    time.Now,
	}
}

// Hit records one hit for key and returns the count in the current window.
// It returns ErrLimitExceeded when the count goes over limit; a limit <= 0
// disables the check.
func (l *Limiter) Hit(ctx context.Context, key string, limit int) (int, error) {
	if limit <= 0 {
		return 0, nil
	}

	now := l.now()
	expired := now.Add(-l.window)

	// Upsert atomically so concurrent hits on the same key are all counted
	query := `
		INSERT INTO rate_limit_counters (key, count, window_start)
		VALUES ($1, 1, $2)
		ON CONFLICT (key)
		DO UPDATE SET
			count = CASE
				WHEN rate_limit_counters.window_start <= $3 THEN 1
				ELSE rate_limit_counters.count + 1
			END,
			window_start = CASE
				WHEN rate_limit_counters.window_start <= $3 THEN $2
				ELSE rate_limit_counters.window_start
			END
		RETURNING count
	`

	var count int
	if err := l.db.QueryRow(ctx, query, key, now, expired).Scan(&count); err != nil {
		return 0, fmt.Errorf("check rate limit: %w", err)
	}

	if count > limit {
		return count, fmt.Errorf("%w: %d/%d in window", ErrLimitExceeded, count, limit)
	}

	return count, nil
}

// Count returns the hits of key in the current window
func (l *Limiter) Count(ctx context.Context, key string) (int, error) {
	query := `
		SELECT count
		FROM rate_limit_counters
		WHERE key = $1 AND window_start > $2
	`

	var count int
	err := l.db.QueryRow(ctx, query, key, l.now().Add(-l.window)).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("count rate limit: %w", err)
	}

	return count, nil
}

// Reset clears the counter of key
func (l *Limiter) Reset(ctx context.Context, key string) error {
	if _, err := l.db.Exec(ctx, `DELETE FROM rate_limit_counters WHERE key = $1`, key); err != nil {
		return fmt.Errorf("reset rate limit: %w", err)
	}
	return nil
}

// CleanupExpired removes counters whose window has closed
func (l *Limiter) CleanupExpired(ctx context.Context) (int64, error) {
	result, err := l.db.Exec(ctx,
		`DELETE FROM rate_limit_counters WHERE window_start <= $1`,
		l.now().Add(-l.window),
	)
	if err != nil {
		return 0, fmt.Errorf("cleanup rate limits: %w", err)
	}
	return result.RowsAffected(), nil
}

// RunCleanup calls CleanupExpired every interval until ctx is done
func (l *Limiter) RunCleanup(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := l.CleanupExpired(ctx)
			if err != nil {
				logger.Warn("rate limit cleanup failed", slog.String("error", err.Error()))
				continue
			}
			if n > 0 {
				logger.Debug("rate limit counters removed", slog.Int64("count", n))
			}
		}
	}
}
