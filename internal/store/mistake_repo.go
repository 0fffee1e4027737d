package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/kotoba/internal/session"
)

// mistakeRepo implements MistakeRepo. Rows are only ever inserted.
type mistakeRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *mistakeRepo) AppendMistake(ctx context.Context, rec session.MistakeRecord) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query, args := builder().Insert(tableMistakes).
		Columns("sequence", "session_id", "group_key", "item_number", "picked_position", "created_at").
		Values(seqNum, rec.SessionID, rec.GroupKey, rec.ItemNumber, rec.PickedPosition, createdAt.UnixMilli()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save mistake: %w", err)
	}
	return nil
}

func (r *mistakeRepo) Query(ctx context.Context, opts QueryOpts) ([]Mistake, error) {
	sel := builder().
		Select("sequence", "session_id", "group_key", "item_number", "picked_position", "created_at").
		From(builder().Table(tableMistakes))

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("created_at", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("created_at", opts.To.UnixMilli()))
	}
	if opts.GroupKey != "" {
		preds = append(preds, entsql.EQ("group_key", opts.GroupKey))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query mistakes: %w", err)
	}
	defer rows.Close()

	var out []Mistake
	for rows.Next() {
		var (
			m         Mistake
			createdAt int64
		)
		if err := rows.Scan(&m.Sequence, &m.SessionID, &m.GroupKey, &m.ItemNumber, &m.PickedPosition, &createdAt); err != nil {
			return nil, fmt.Errorf("scan mistake: %w", err)
		}
		m.CreatedAt = time.UnixMilli(createdAt)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mistakes: %w", err)
	}
	return out, nil
}

func (r *mistakeRepo) CountsByQuestion(ctx context.Context, limit int) ([]MistakeCount, error) {
	sel := builder().
		Select("group_key", "item_number", entsql.As(entsql.Count("*"), "n"), entsql.As(entsql.Max("created_at"), "last_at")).
		From(builder().Table(tableMistakes)).
		GroupBy("group_key", "item_number").
		OrderBy(entsql.Desc("n"), "group_key", "item_number")
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count mistakes: %w", err)
	}
	defer rows.Close()

	var out []MistakeCount
	for rows.Next() {
		var (
			c      MistakeCount
			lastAt int64
		)
		if err := rows.Scan(&c.GroupKey, &c.ItemNumber, &c.Count, &lastAt); err != nil {
			return nil, fmt.Errorf("scan mistake count: %w", err)
		}
		c.LastAt = time.UnixMilli(lastAt)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mistake counts: %w", err)
	}
	return out, nil
}

// sequenceCounter hands out one monotonic sequence shared by the mistake log
// and the session history, so both can be ordered against each other.
//
// Uses raw SQL because the SQL builder has no atomic counter primitive. The
// mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}
