package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kotoba/internal/content"
	"github.com/abhisek/kotoba/internal/pool"
	"github.com/abhisek/kotoba/internal/session"
)

func TestMistakeRepo_AppendAndQuery(t *testing.T) {
	repo := openTestStore(t).MistakeRepo()
	ctx := context.Background()
	base := time.UnixMilli(1_720_000_000_000)

	recs := []session.MistakeRecord{
		{CreatedAt: base, SessionID: "s1", GroupKey: "N2-2022-07", ItemNumber: 5, PickedPosition: 2},
		{CreatedAt: base.Add(time.Minute), SessionID: "s1", GroupKey: "N2-2022-07", ItemNumber: 7, PickedPosition: 1},
		{CreatedAt: base.Add(2 * time.Minute), SessionID: "s2", GroupKey: "N3-VOCAB-0001", ItemNumber: 1, PickedPosition: 4},
	}
	for _, rec := range recs {
		require.NoError(t, repo.AppendMistake(ctx, rec))
	}

	all, err := repo.Query(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "N3-VOCAB-0001", all[0].GroupKey, "newest first")
	assert.Greater(t, all[0].Sequence, all[1].Sequence)

	first := all[2]
	assert.Equal(t, "N2-2022-07", first.GroupKey)
	assert.Equal(t, 5, first.ItemNumber)
	assert.Equal(t, 2, first.PickedPosition)
	assert.Equal(t, "s1", first.SessionID)
	assert.True(t, first.CreatedAt.Equal(base))

	limited, err := repo.Query(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	byGroup, err := repo.Query(ctx, QueryOpts{GroupKey: "N2-2022-07"})
	require.NoError(t, err)
	assert.Len(t, byGroup, 2)

	after, err := repo.Query(ctx, QueryOpts{After: first.Sequence})
	require.NoError(t, err)
	assert.Len(t, after, 2)

	window, err := repo.Query(ctx, QueryOpts{From: base.Add(30 * time.Second), To: base.Add(90 * time.Second)})
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, 7, window[0].ItemNumber)
}

func TestMistakeRepo_CountsByQuestion(t *testing.T) {
	repo := openTestStore(t).MistakeRepo()
	ctx := context.Background()
	base := time.UnixMilli(1_720_000_000_000)

	for i, item := range []int{5, 5, 5, 7} {
		require.NoError(t, repo.AppendMistake(ctx, session.MistakeRecord{
			CreatedAt: base.Add(time.Duration(i) * time.Second),
			GroupKey:  "N2-2022-07", ItemNumber: item, PickedPosition: 1,
		}))
	}

	counts, err := repo.CountsByQuestion(ctx, 0)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, 5, counts[0].ItemNumber)
	assert.Equal(t, 3, counts[0].Count)
	assert.True(t, counts[0].LastAt.Equal(base.Add(2*time.Second)))
	assert.Equal(t, 1, counts[1].Count)

	top, err := repo.CountsByQuestion(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestMistakeRepo_RecordsSessionMistakes(t *testing.T) {
	repo := openTestStore(t).MistakeRepo()
	ctx := context.Background()

	q := content.Question{GroupKey: "N2-2022-07", ItemNumber: 5, Section: content.SectionGrammar,
		Choices: []content.Choice{{Position: 1, IsCorrect: true}, {Position: 2}}}
	s := session.New(session.Options{MistakeLog: repo, NewID: func() string { return "sess-1" }})
	s.Init([]content.Question{q}, pool.ModeExam)
	s.Pick(content.Choice{Position: 2})
	_, err := s.Submit(ctx)
	require.NoError(t, err)

	mistakes, err := repo.Query(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, mistakes, 1)
	assert.Equal(t, "sess-1", mistakes[0].SessionID)
	assert.Equal(t, 5, mistakes[0].ItemNumber)
	assert.Equal(t, 2, mistakes[0].PickedPosition)
}
