package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/kotoba/internal/content"
	"github.com/abhisek/kotoba/internal/session"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("store: not found")

// QueryOpts configures log queries with filtering and pagination.
type QueryOpts struct {
	Limit    int       // max results (0 = unlimited)
	After    int64     // sequence > After
	Before   int64     // sequence < Before
	From     time.Time // created_at >= From
	To       time.Time // created_at <= To
	GroupKey string    // exact group key match when set
}

// GroupInfo summarizes one imported question group.
type GroupInfo struct {
	Key       string
	Mode      string
	Level     string
	Questions int
}

// ImportResult reports what an import wrote.
type ImportResult struct {
	Groups    int
	Questions int
	Choices   int
}

// ContentRepo is the question bank. It serves pools and accepts catalog
// imports.
type ContentRepo interface {
	content.Source

	// Import writes every group in cat, replacing any existing questions
	// with the same group key. The whole import is one transaction.
	Import(ctx context.Context, cat *content.Catalog) (ImportResult, error)

	// Groups lists the imported groups ordered by key.
	Groups(ctx context.Context) ([]GroupInfo, error)
}

// KVRepo is a string-keyed settings store.
type KVRepo interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set inserts or replaces the value for key.
	Set(ctx context.Context, key, value string) error
}

// Mistake is a stored mistake log entry.
type Mistake struct {
	Sequence int64
	session.MistakeRecord
}

// MistakeCount aggregates mistakes for one question.
type MistakeCount struct {
	GroupKey   string
	ItemNumber int
	Count      int
	LastAt     time.Time
}

// MistakeRepo is the append-only mistake log.
type MistakeRepo interface {
	session.MistakeLog

	// Query returns mistakes newest first.
	Query(ctx context.Context, opts QueryOpts) ([]Mistake, error)

	// CountsByQuestion returns per-question totals, most missed first.
	CountsByQuestion(ctx context.Context, limit int) ([]MistakeCount, error)
}

// SessionRecord is the stored summary of a finished practice session.
type SessionRecord struct {
	ID        string
	Sequence  int64
	Mode      string
	Filter    string
	StartedAt time.Time
	Duration  time.Duration
	Total     int
	Answered  int
	Correct   int
}

// Accuracy is Correct over Answered, 0 when nothing was answered.
func (r SessionRecord) Accuracy() float64 {
	if r.Answered == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Answered)
}

// SessionRepo is the append-only session history.
type SessionRepo interface {
	// Append stores a finished session.
	Append(ctx context.Context, rec SessionRecord) error

	// Get returns the session with id, or ErrNotFound.
	Get(ctx context.Context, id string) (*SessionRecord, error)

	// Recent returns up to limit sessions, newest first.
	Recent(ctx context.Context, limit int) ([]SessionRecord, error)
}
