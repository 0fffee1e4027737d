package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kotoba/internal/keys"
	"github.com/abhisek/kotoba/internal/progress"
)

func TestKVRepo_GetSet(t *testing.T) {
	repo := openTestStore(t).KVRepo()
	ctx := context.Background()

	_, ok, err := repo.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(ctx, "a", "1"))
	require.NoError(t, repo.Set(ctx, "a", "2"))

	v, ok, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", v)
}

func TestKVRepo_BacksTracker(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	tr := progress.NewTracker(s.KVRepo(), nil)

	for d := 1; d <= keys.DaysPerWeek; d++ {
		_, err := tr.MarkDone(ctx, keys.N2, keys.Grammar, 1, d)
		require.NoError(t, err)
	}

	v, ok, err := s.KVRepo().Get(ctx, progress.UnlockedWeekKey(keys.N2, keys.Grammar))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2", v)

	p := progress.NewTracker(s.KVRepo(), nil).Refresh(ctx, keys.N2, keys.Grammar)
	assert.Equal(t, 2, p.UnlockedWeek)
	assert.True(t, p.WeekDone(1))
	assert.Equal(t, progress.Available, p.Status(2, 1))
}
