// Package pool turns a filter into the ordered, de-duplicated question
// sequence a practice session runs over.
package pool

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/abhisek/kotoba/internal/content"
	"github.com/abhisek/kotoba/internal/keys"
)

// Builder resolves filters against a content source. The same filter over
// the same content snapshot always yields the same sequence.
type Builder struct {
	src    content.Source
	cfg    Config
	logger *slog.Logger
}

// NewBuilder creates a Builder. A nil logger discards output.
func NewBuilder(src content.Source, cfg Config, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Builder{src: src, cfg: cfg, logger: logger}
}

// Build returns the pool for f. An empty pool with a nil error means the
// filter matched no content; it is the caller's cue to relax the filter or
// show an empty state. Errors come only from the content source.
func (b *Builder) Build(ctx context.Context, f Filter) ([]content.Question, error) {
	switch f := f.(type) {
	case ExamFilter:
		return b.buildExam(ctx, f)
	case DailyFilter:
		return b.buildDaily(ctx, f)
	case *ExamFilter:
		return b.buildExam(ctx, *f)
	case *DailyFilter:
		return b.buildDaily(ctx, *f)
	}
	return nil, fmt.Errorf("unsupported filter type %T", f)
}

func (b *Builder) buildDaily(ctx context.Context, f DailyFilter) ([]content.Question, error) {
	key := f.GroupKey()
	rows, err := b.src.GroupQuestions(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("fetch daily set %s: %w", key, err)
	}

	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, c content.Question) int {
		return cmp.Compare(a.ItemNumber, c.ItemNumber)
	})
	out := slices.CompactFunc(sorted, func(a, c content.Question) bool {
		return a.ItemNumber == c.ItemNumber
	})

	b.logger.Debug("daily pool built", "key", key, "rows", len(rows), "questions", len(out))
	return clip(out), nil
}

func (b *Builder) buildExam(ctx context.Context, f ExamFilter) ([]content.Question, error) {
	q := content.ExamQuery{
		Levels:   b.ResolveLevels(f.Level),
		Year:     f.Year,
		Month:    f.Month,
		Sections: f.Kind.Sections(),
	}
	if f.WholePaper && f.Exact() {
		q.Sections = content.AllSections()
	}
	if len(q.Levels) == 0 || len(q.Sections) == 0 {
		return nil, nil
	}

	rows, err := b.src.ExamQuestions(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("fetch exam questions (%s): %w", f, err)
	}

	// The same sitting is labeled by month in some content and by session
	// number in other content. Try the other label once.
	if len(rows) == 0 && f.Month != "" {
		if alt, ok := keys.AltMonth(f.Month); ok {
			b.logger.Debug("exam pool empty, retrying alternate month label",
				"filter", f.String(), "month", f.Month, "alt", alt)
			q.Month = alt
			rows, err = b.src.ExamQuestions(ctx, q)
			if err != nil {
				return nil, fmt.Errorf("fetch exam questions (%s, month %s): %w", f, alt, err)
			}
		}
	}

	out := normalize(rows)
	b.logger.Debug("exam pool built", "filter", f.String(), "rows", len(rows), "questions", len(out))
	return out, nil
}

// ResolveLevels expands a selector to concrete levels.
func (b *Builder) ResolveLevels(sel LevelSelector) []keys.Level {
	switch sel {
	case RandomPair:
		return slices.Clone(b.cfg.RandomPair[:])
	case AllLevels:
		return slices.Clone(keys.AllLevels)
	}
	l, err := keys.ParseLevel(string(sel))
	if err != nil {
		return nil
	}
	return []keys.Level{l}
}

// normalize sorts by (group key, item number) and drops repeated
// identities, keeping the first occurrence.
func normalize(rows []content.Question) []content.Question {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, compareID)
	out := slices.CompactFunc(sorted, func(a, c content.Question) bool {
		return a.ID() == c.ID()
	})
	return clip(out)
}

func compareID(a, c content.Question) int {
	return cmp.Or(
		cmp.Compare(a.GroupKey, c.GroupKey),
		cmp.Compare(a.ItemNumber, c.ItemNumber),
	)
}

func clip(qs []content.Question) []content.Question {
	if len(qs) == 0 {
		return nil
	}
	return slices.Clip(qs)
}

// Result is the outcome of a relaxation search.
type Result struct {
	Questions []content.Question

	// Filter is the filter that produced Questions (or the weakest filter
	// tried when nothing matched).
	Filter ExamFilter

	// Steps counts how many times the filter was relaxed.
	Steps int
}

// BuildRelaxed runs Build and, while the pool is empty, relaxes the filter
// with Relax and tries again. Each attempt is an independent Build call.
func (b *Builder) BuildRelaxed(ctx context.Context, f ExamFilter) (*Result, error) {
	steps := 0
	for {
		qs, err := b.Build(ctx, f)
		if err != nil {
			return nil, err
		}
		if len(qs) > 0 {
			return &Result{Questions: qs, Filter: f, Steps: steps}, nil
		}
		next, ok := Relax(f)
		if !ok {
			return &Result{Filter: f, Steps: steps}, nil
		}
		b.logger.Info("no questions for filter, relaxing", "from", f.String(), "to", next.String())
		f = next
		steps++
	}
}
