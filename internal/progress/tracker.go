package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/abhisek/kotoba/internal/keys"
)

// CompletedTokensKey is the KV key holding the serialized TokenSet.
const CompletedTokensKey = "progress.completedDays"

// ErrInvalidDay is returned by MarkDone for a week or day outside the track.
var ErrInvalidDay = errors.New("progress: week or day out of range")

// UnlockedWeekKey returns the KV key for a track's unlocked week.
func UnlockedWeekKey(level keys.Level, category keys.Category) string {
	return fmt.Sprintf("progress.unlockedWeek.%s.%s", level, category)
}

// KV is the string-keyed persistence the tracker reads and writes.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Tracker reads and updates progress through a KV store. It holds no cached
// state: every call re-reads so that changes made elsewhere are picked up.
type Tracker struct {
	kv     KV
	logger *slog.Logger
}

// NewTracker creates a Tracker. A nil logger discards output.
func NewTracker(kv KV, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Tracker{kv: kv, logger: logger}
}

// Refresh loads the current progress for a track. Read failures are logged
// and fall back to week 1 unlocked and nothing completed.
func (t *Tracker) Refresh(ctx context.Context, level keys.Level, category keys.Category) *Progress {
	return &Progress{
		Level:        level,
		Category:     category,
		UnlockedWeek: t.readUnlocked(ctx, level, category),
		Completed:    t.readCompleted(ctx),
	}
}

// MarkDone records a finished day and advances the unlocked week by one when
// the current unlocked week is now complete. Finishing a locked or earlier
// week stores the day but never moves the unlocked week. Write failures are logged and the returned
// Progress still reflects the update.
func (t *Tracker) MarkDone(ctx context.Context, level keys.Level, category keys.Category, week, day int) (*Progress, error) {
	if week < 1 || week > keys.MaxWeek || day < 1 || day > keys.DaysPerWeek {
		return nil, fmt.Errorf("%w: week %d day %d", ErrInvalidDay, week, day)
	}

	p := t.Refresh(ctx, level, category)
	if p.Completed.Add(keys.Token(level, category, week, day)) {
		t.writeCompleted(ctx, p.Completed)
	}

	if week == p.UnlockedWeek && p.WeekDone(week) && week < keys.MaxWeek {
		p.UnlockedWeek = week + 1
		t.writeUnlocked(ctx, level, category, p.UnlockedWeek)
		t.logger.Info("week unlocked", "level", level, "category", category, "week", p.UnlockedWeek)
	}
	return p, nil
}

// Reset clears one track: its completion tokens are removed and the unlocked
// week goes back to 1. Other tracks are untouched. Unlike MarkDone, write
// failures are returned.
func (t *Tracker) Reset(ctx context.Context, level keys.Level, category keys.Category) error {
	set := t.readCompleted(ctx)
	kept := make(TokenSet, len(set))
	removed := 0
	for tok := range set {
		if ref, ok := keys.ParseToken(tok); ok && ref.Level == level && ref.Category == category {
			removed++
			continue
		}
		kept[tok] = struct{}{}
	}

	data, err := json.Marshal(kept)
	if err != nil {
		return fmt.Errorf("encode completed days: %w", err)
	}
	if err := t.kv.Set(ctx, CompletedTokensKey, string(data)); err != nil {
		return fmt.Errorf("save completed days: %w", err)
	}
	if err := t.kv.Set(ctx, UnlockedWeekKey(level, category), "1"); err != nil {
		return fmt.Errorf("save unlocked week: %w", err)
	}
	t.logger.Info("track reset", "level", level, "category", category, "removed", removed)
	return nil
}

func (t *Tracker) readUnlocked(ctx context.Context, level keys.Level, category keys.Category) int {
	key := UnlockedWeekKey(level, category)
	raw, ok, err := t.kv.Get(ctx, key)
	if err != nil {
		t.logger.Warn("failed to read unlocked week", "key", key, "err", err)
		return 1
	}
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		t.logger.Warn("malformed unlocked week", "key", key, "value", raw)
		return 1
	}
	return keys.ClampWeek(n)
}

func (t *Tracker) readCompleted(ctx context.Context) TokenSet {
	raw, ok, err := t.kv.Get(ctx, CompletedTokensKey)
	if err != nil {
		t.logger.Warn("failed to read completed days", "err", err)
		return TokenSet{}
	}
	if !ok || raw == "" {
		return TokenSet{}
	}
	var set TokenSet
	if err := json.Unmarshal([]byte(raw), &set); err != nil {
		t.logger.Warn("malformed completed days", "err", err)
		return TokenSet{}
	}
	return set
}

func (t *Tracker) writeCompleted(ctx context.Context, set TokenSet) {
	data, err := json.Marshal(set)
	if err != nil {
		t.logger.Warn("failed to encode completed days", "err", err)
		return
	}
	if err := t.kv.Set(ctx, CompletedTokensKey, string(data)); err != nil {
		t.logger.Warn("failed to save completed days", "err", err)
	}
}

func (t *Tracker) writeUnlocked(ctx context.Context, level keys.Level, category keys.Category, week int) {
	key := UnlockedWeekKey(level, category)
	if err := t.kv.Set(ctx, key, strconv.Itoa(week)); err != nil {
		t.logger.Warn("failed to save unlocked week", "key", key, "err", err)
	}
}
