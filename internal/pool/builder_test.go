package pool

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kotoba/internal/content"
	"github.com/abhisek/kotoba/internal/keys"
)

// fakeSource is an in-memory content.Source that records every query.
type fakeSource struct {
	rows        []content.Question
	examQueries []content.ExamQuery
	groupKeys   []string
	err         error
}

func (f *fakeSource) ExamQuestions(_ context.Context, q content.ExamQuery) ([]content.Question, error) {
	f.examQueries = append(f.examQueries, q)
	if f.err != nil {
		return nil, f.err
	}
	var out []content.Question
	for _, r := range f.rows {
		g, ok := content.ParseGroupKey(r.GroupKey)
		if !ok || g.Exam == nil {
			continue
		}
		if !slices.Contains(q.Levels, g.Level) {
			continue
		}
		if q.Year != 0 && g.Exam.Year != q.Year {
			continue
		}
		if q.Month != "" && g.Exam.Month != q.Month {
			continue
		}
		if !slices.Contains(q.Sections, r.Section) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeSource) GroupQuestions(_ context.Context, key string) ([]content.Question, error) {
	f.groupKeys = append(f.groupKeys, key)
	if f.err != nil {
		return nil, f.err
	}
	var out []content.Question
	for _, r := range f.rows {
		if r.GroupKey == key {
			out = append(out, r)
		}
	}
	return out, nil
}

func q(groupKey string, item int, section content.Section, stem string) content.Question {
	return content.Question{
		GroupKey:   groupKey,
		ItemNumber: item,
		Section:    section,
		Stem:       stem,
		Choices: []content.Choice{
			{Position: 1, Content: "a", IsCorrect: true},
			{Position: 2, Content: "b"},
		},
	}
}

func ids(qs []content.Question) []content.ID {
	out := make([]content.ID, len(qs))
	for i, q := range qs {
		out[i] = q.ID()
	}
	return out
}

func examRows() []content.Question {
	return []content.Question{
		q("N2-2022-12", 2, content.SectionGrammar, "g2"),
		q("N2-2022-07", 3, content.SectionVocab, "v3"),
		q("N2-2022-07", 1, content.SectionVocab, "v1"),
		q("N2-2022-07", 1, content.SectionVocab, "v1-dup"),
		q("N2-2022-07", 20, content.SectionReading, "r20"),
		q("N1-2021-12", 4, content.SectionGrammar, "n1g4"),
		q("N3-2021-07", 1, content.SectionVocab, "n3v1"),
		q("N2-2019-1", 7, content.SectionGrammar, "legacy"),
	}
}

func newTestBuilder(src content.Source) *Builder {
	return NewBuilder(src, DefaultConfig(), nil)
}

func TestBuildExam_SortsAndDedups(t *testing.T) {
	src := &fakeSource{rows: examRows()}
	b := newTestBuilder(src)

	pool, err := b.Build(context.Background(), ExamFilter{Level: "N2", Kind: content.KindLanguage})
	require.NoError(t, err)

	assert.Equal(t, []content.ID{
		{GroupKey: "N2-2019-1", ItemNumber: 7},
		{GroupKey: "N2-2022-07", ItemNumber: 1},
		{GroupKey: "N2-2022-07", ItemNumber: 3},
		{GroupKey: "N2-2022-12", ItemNumber: 2},
	}, ids(pool))
	// First occurrence wins.
	assert.Equal(t, "v1", pool[1].Stem)
}

func TestBuild_Deterministic(t *testing.T) {
	src := &fakeSource{rows: examRows()}
	b := newTestBuilder(src)
	f := ExamFilter{Level: AllLevels, Kind: content.KindLanguage}

	first, err := b.Build(context.Background(), f)
	require.NoError(t, err)
	second, err := b.Build(context.Background(), f)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuild_NeverDuplicatesIdentity(t *testing.T) {
	src := &fakeSource{rows: append(examRows(), examRows()...)}
	b := newTestBuilder(src)

	pool, err := b.Build(context.Background(), ExamFilter{Level: AllLevels, Kind: content.KindLanguage})
	require.NoError(t, err)

	seen := make(map[content.ID]bool)
	for _, q := range pool {
		assert.False(t, seen[q.ID()], "duplicate %v", q.ID())
		seen[q.ID()] = true
	}
}

func TestBuildExam_KindSelectsSections(t *testing.T) {
	src := &fakeSource{rows: examRows()}
	b := newTestBuilder(src)

	pool, err := b.Build(context.Background(), ExamFilter{Level: "N2", Kind: content.KindReading})
	require.NoError(t, err)
	assert.Equal(t, []content.ID{{GroupKey: "N2-2022-07", ItemNumber: 20}}, ids(pool))

	pool, err = b.Build(context.Background(), ExamFilter{Level: "N2", Kind: content.KindListening})
	require.NoError(t, err)
	assert.Empty(t, pool)
}

func TestBuildExam_LevelSelectors(t *testing.T) {
	src := &fakeSource{rows: examRows()}
	b := newTestBuilder(src)

	pool, err := b.Build(context.Background(), ExamFilter{Level: RandomPair, Kind: content.KindLanguage})
	require.NoError(t, err)
	for _, q := range pool {
		g, _ := content.ParseGroupKey(q.GroupKey)
		assert.Contains(t, []keys.Level{keys.N1, keys.N2}, g.Level)
	}
	require.Len(t, src.examQueries, 1)
	assert.Equal(t, []keys.Level{keys.N1, keys.N2}, src.examQueries[0].Levels)

	_, err = b.Build(context.Background(), ExamFilter{Level: AllLevels, Kind: content.KindLanguage})
	require.NoError(t, err)
	assert.Equal(t, keys.AllLevels, src.examQueries[1].Levels)
}

func TestBuildExam_AlternateMonthRetry(t *testing.T) {
	src := &fakeSource{rows: examRows()}
	b := newTestBuilder(src)

	// "N2-2019-1" is labeled with a session number; asking for July finds it
	// on the single automatic retry.
	pool, err := b.Build(context.Background(), ExamFilter{
		Level: "N2", Kind: content.KindLanguage, Year: 2019, Month: keys.July,
	})
	require.NoError(t, err)
	assert.Equal(t, []content.ID{{GroupKey: "N2-2019-1", ItemNumber: 7}}, ids(pool))

	require.Len(t, src.examQueries, 2)
	assert.Equal(t, keys.July, src.examQueries[0].Month)
	assert.Equal(t, keys.FirstSession, src.examQueries[1].Month)
	assert.Equal(t, 2019, src.examQueries[1].Year, "retry must not drop the year")
}

func TestBuildExam_RetryOnlyOnce(t *testing.T) {
	src := &fakeSource{rows: examRows()}
	b := newTestBuilder(src)

	pool, err := b.Build(context.Background(), ExamFilter{
		Level: "N4", Kind: content.KindLanguage, Year: 2020, Month: keys.December,
	})
	require.NoError(t, err)
	assert.Empty(t, pool)
	assert.Len(t, src.examQueries, 2)
}

func TestBuildExam_NoRetryWithoutMonth(t *testing.T) {
	src := &fakeSource{rows: examRows()}
	b := newTestBuilder(src)

	pool, err := b.Build(context.Background(), ExamFilter{Level: "N4", Kind: content.KindLanguage, Year: 2020})
	require.NoError(t, err)
	assert.Empty(t, pool)
	assert.Len(t, src.examQueries, 1)
}

func TestBuildExam_WholePaperOnlyWhenExact(t *testing.T) {
	src := &fakeSource{rows: examRows()}
	b := newTestBuilder(src)

	exact := ExamFilter{Level: "N2", Kind: content.KindLanguage, Year: 2022, Month: keys.July, WholePaper: true}
	pool, err := b.Build(context.Background(), exact)
	require.NoError(t, err)
	assert.Equal(t, []content.ID{
		{GroupKey: "N2-2022-07", ItemNumber: 1},
		{GroupKey: "N2-2022-07", ItemNumber: 3},
		{GroupKey: "N2-2022-07", ItemNumber: 20},
	}, ids(pool))

	loose := exact
	loose.Year = 0
	pool, err = b.Build(context.Background(), loose)
	require.NoError(t, err)
	for _, q := range pool {
		assert.NotEqual(t, content.SectionReading, q.Section, "whole paper must be ignored for a non-exact filter")
	}
}

func TestBuildDaily(t *testing.T) {
	key := keys.DailyKey(keys.N3, keys.Vocab, 2, 3)
	src := &fakeSource{rows: []content.Question{
		q(key, 3, content.SectionVocab, "third"),
		q(key, 1, content.SectionVocab, "first"),
		q(key, 1, content.SectionVocab, "first-dup"),
		q(key, 2, content.SectionVocab, "second"),
		q("N3-VOCAB-0011", 1, content.SectionVocab, "other day"),
	}}
	b := newTestBuilder(src)

	pool, err := b.Build(context.Background(), DailyFilter{Ref: keys.DailyRef{Level: keys.N3, Category: keys.Vocab, Week: 2, Day: 3}})
	require.NoError(t, err)
	require.Len(t, pool, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{pool[0].Stem, pool[1].Stem, pool[2].Stem})
	assert.Equal(t, []string{"N3-VOCAB-0010"}, src.groupKeys)
}

func TestBuildDaily_PrecomputedKeyAndEmpty(t *testing.T) {
	src := &fakeSource{}
	b := newTestBuilder(src)

	pool, err := b.Build(context.Background(), DailyFilter{Key: "N5-GRAMMAR-0070"})
	require.NoError(t, err)
	assert.Empty(t, pool)
	assert.Equal(t, []string{"N5-GRAMMAR-0070"}, src.groupKeys)
}

func TestBuild_SourceError(t *testing.T) {
	boom := errors.New("disk on fire")
	b := newTestBuilder(&fakeSource{err: boom})

	_, err := b.Build(context.Background(), ExamFilter{Level: "N2", Kind: content.KindLanguage})
	assert.ErrorIs(t, err, boom)

	_, err = b.Build(context.Background(), DailyFilter{Key: "N5-GRAMMAR-0001"})
	assert.ErrorIs(t, err, boom)
}

func TestRelax(t *testing.T) {
	f := ExamFilter{Level: "N2", Kind: content.KindLanguage, Year: 2022, Month: keys.July}

	f1, ok := Relax(f)
	require.True(t, ok)
	assert.Equal(t, 0, f1.Year)
	assert.Equal(t, keys.July, f1.Month)

	f2, ok := Relax(f1)
	require.True(t, ok)
	assert.Equal(t, 0, f2.Year)
	assert.Equal(t, keys.Month(""), f2.Month)

	_, ok = Relax(f2)
	assert.False(t, ok)
	assert.Equal(t, 2022, f.Year, "Relax must not modify its argument")
}

func TestBuildRelaxed(t *testing.T) {
	src := &fakeSource{rows: examRows()}
	b := newTestBuilder(src)

	res, err := b.BuildRelaxed(context.Background(), ExamFilter{
		Level: "N3", Kind: content.KindLanguage, Year: 2023, Month: keys.July,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Steps)
	assert.Equal(t, 0, res.Filter.Year)
	assert.Equal(t, []content.ID{{GroupKey: "N3-2021-07", ItemNumber: 1}}, ids(res.Questions))

	// Each attempt is visible as its own query: month, alt month, then the
	// relaxed filter.
	require.Len(t, src.examQueries, 3)
	assert.Equal(t, 2023, src.examQueries[0].Year)
	assert.Equal(t, 2023, src.examQueries[1].Year)
	assert.Equal(t, 0, src.examQueries[2].Year)
}

func TestBuildRelaxed_NothingMatches(t *testing.T) {
	b := newTestBuilder(&fakeSource{})

	res, err := b.BuildRelaxed(context.Background(), ExamFilter{
		Level: "N5", Kind: content.KindLanguage, Year: 2023, Month: keys.December,
	})
	require.NoError(t, err)
	assert.Empty(t, res.Questions)
	assert.Equal(t, 2, res.Steps)
}

func TestParseLevelSelector(t *testing.T) {
	for in, want := range map[string]LevelSelector{
		"random-pair": RandomPair,
		"all":         AllLevels,
		"n2":          "N2",
	} {
		got, err := ParseLevelSelector(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseLevelSelector("N9")
	assert.Error(t, err)
}

func TestFilterModes(t *testing.T) {
	assert.Equal(t, ModeExam, ExamFilter{}.Mode())
	assert.Equal(t, ModeDaily, DailyFilter{}.Mode())
	assert.True(t, ExamFilter{Level: "N2", Year: 2022, Month: keys.July}.Exact())
	assert.False(t, ExamFilter{Level: RandomPair, Year: 2022, Month: keys.July}.Exact())
	assert.False(t, ExamFilter{Level: "N2", Month: keys.July}.Exact())
}
