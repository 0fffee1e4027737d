package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var sessionColumns = []string{
	"id", "sequence", "mode", "filter", "started_at", "duration_ms", "total", "answered", "correct",
}

// sessionRepo implements SessionRepo.
type sessionRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *sessionRepo) Append(ctx context.Context, rec SessionRecord) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(tableSessions).
		Columns(sessionColumns...).
		Values(rec.ID, seqNum, rec.Mode, rec.Filter, rec.StartedAt.UnixMilli(),
			rec.Duration.Milliseconds(), rec.Total, rec.Answered, rec.Correct).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session %s: %w", rec.ID, err)
	}
	return nil
}

func (r *sessionRepo) Get(ctx context.Context, id string) (*SessionRecord, error) {
	query, args := builder().Select(sessionColumns...).
		From(builder().Table(tableSessions)).
		Where(entsql.EQ("id", id)).
		Query()

	rec, err := scanSession(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}
	return rec, nil
}

func (r *sessionRepo) Recent(ctx context.Context, limit int) ([]SessionRecord, error) {
	sel := builder().Select(sessionColumns...).
		From(builder().Table(tableSessions)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*SessionRecord, error) {
	var (
		rec        SessionRecord
		startedAt  int64
		durationMs int64
	)
	err := row.Scan(&rec.ID, &rec.Sequence, &rec.Mode, &rec.Filter, &startedAt, &durationMs,
		&rec.Total, &rec.Answered, &rec.Correct)
	if err != nil {
		return nil, err
	}
	rec.StartedAt = time.UnixMilli(startedAt)
	rec.Duration = time.Duration(durationMs) * time.Millisecond
	return &rec, nil
}
