package progress

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kotoba/internal/keys"
)

// memKV is an in-memory KV with switchable failures.
type memKV struct {
	data     map[string]string
	getErr   error
	setErr   error
	setCalls int
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

func (m *memKV) Get(_ context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key, value string) error {
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func TestUnlockedWeekKey(t *testing.T) {
	assert.Equal(t, "progress.unlockedWeek.N2.grammar", UnlockedWeekKey(keys.N2, keys.Grammar))
}

func TestTracker_RefreshDefaults(t *testing.T) {
	tr := NewTracker(newMemKV(), nil)
	p := tr.Refresh(context.Background(), keys.N2, keys.Grammar)

	assert.Equal(t, 1, p.UnlockedWeek)
	assert.Empty(t, p.Completed)
	assert.Equal(t, Available, p.Status(1, 1))
	assert.Equal(t, Available, p.Status(1, 2))
	assert.Equal(t, Locked, p.Status(1, 3))
}

func TestTracker_SequentialUnlock(t *testing.T) {
	ctx := context.Background()
	tr := NewTracker(newMemKV(), nil)

	_, err := tr.MarkDone(ctx, keys.N2, keys.Grammar, 1, 1)
	require.NoError(t, err)
	p, err := tr.MarkDone(ctx, keys.N2, keys.Grammar, 1, 2)
	require.NoError(t, err)

	assert.Equal(t, Available, p.Status(1, 3))
	assert.Equal(t, Locked, p.Status(1, 4))

	// A fresh read sees the same state.
	p = tr.Refresh(ctx, keys.N2, keys.Grammar)
	assert.Equal(t, Available, p.Status(1, 3))
	assert.Equal(t, Locked, p.Status(1, 4))
}

func TestTracker_WeekRollover(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	tr := NewTracker(kv, nil)

	var p *Progress
	for d := 1; d <= keys.DaysPerWeek; d++ {
		var err error
		p, err = tr.MarkDone(ctx, keys.N2, keys.Grammar, 1, d)
		require.NoError(t, err)
		if d < keys.DaysPerWeek {
			assert.Equal(t, 1, p.UnlockedWeek, "after day %d", d)
		}
	}

	assert.Equal(t, 2, p.UnlockedWeek)
	assert.Equal(t, "2", kv.data[UnlockedWeekKey(keys.N2, keys.Grammar)])
	assert.Equal(t, Available, p.Status(2, 1))
	assert.Equal(t, Locked, p.Status(2, 2))
	assert.Equal(t, Locked, p.Status(3, 1))
}

func TestTracker_FinalWeekDoesNotOverflow(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	kv.data[UnlockedWeekKey(keys.N1, keys.Vocab)] = "10"
	tr := NewTracker(kv, nil)

	var p *Progress
	for d := 1; d <= keys.DaysPerWeek; d++ {
		p, _ = tr.MarkDone(ctx, keys.N1, keys.Vocab, keys.MaxWeek, d)
	}
	assert.Equal(t, keys.MaxWeek, p.UnlockedWeek)
	assert.True(t, p.WeekDone(keys.MaxWeek))
}

func TestTracker_Monotonic(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	kv.data[UnlockedWeekKey(keys.N4, keys.Vocab)] = "5"
	tr := NewTracker(kv, nil)

	// Completing an earlier week never moves the unlocked week backwards.
	var p *Progress
	for d := 1; d <= keys.DaysPerWeek; d++ {
		p, _ = tr.MarkDone(ctx, keys.N4, keys.Vocab, 2, d)
		assert.Equal(t, 5, p.UnlockedWeek)
	}
	assert.Equal(t, "5", kv.data[UnlockedWeekKey(keys.N4, keys.Vocab)])
}

func TestTracker_LockedWeekDoesNotSkip(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	tr := NewTracker(kv, nil)

	var p *Progress
	for d := 1; d <= keys.DaysPerWeek; d++ {
		var err error
		p, err = tr.MarkDone(ctx, keys.N2, keys.Grammar, 5, d)
		require.NoError(t, err)
		assert.Equal(t, 1, p.UnlockedWeek, "after locked week 5 day %d", d)
	}
	assert.True(t, p.WeekDone(5), "tokens are still recorded")
	_, stored := kv.data[UnlockedWeekKey(keys.N2, keys.Grammar)]
	assert.False(t, stored, "unlocked week must not be written")

	// Completing week 1 advances by exactly one.
	for d := 1; d <= keys.DaysPerWeek; d++ {
		p, _ = tr.MarkDone(ctx, keys.N2, keys.Grammar, 1, d)
	}
	assert.Equal(t, 2, p.UnlockedWeek)
}

func TestTracker_UnlockOnlyWhenWeekComplete(t *testing.T) {
	ctx := context.Background()
	tr := NewTracker(newMemKV(), nil)

	prev := 1
	// Out-of-order completion, repeated days included.
	for _, d := range []int{3, 1, 1, 7, 2, 6, 5, 4} {
		p, err := tr.MarkDone(ctx, keys.N3, keys.Grammar, 1, d)
		require.NoError(t, err)
		require.GreaterOrEqual(t, p.UnlockedWeek, prev)
		if p.UnlockedWeek > prev {
			assert.True(t, p.WeekDone(prev))
		}
		prev = p.UnlockedWeek
	}
	assert.Equal(t, 2, prev)
}

func TestTracker_MarkDoneInvalid(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	tr := NewTracker(kv, nil)

	for _, c := range [][2]int{{0, 1}, {11, 1}, {1, 0}, {1, 8}} {
		_, err := tr.MarkDone(ctx, keys.N2, keys.Grammar, c[0], c[1])
		assert.ErrorIs(t, err, ErrInvalidDay)
	}
	assert.Zero(t, kv.setCalls)
}

func TestTracker_ReadFailureFallsBack(t *testing.T) {
	kv := newMemKV()
	kv.data[UnlockedWeekKey(keys.N2, keys.Grammar)] = "4"
	kv.getErr = errors.New("database is locked")
	tr := NewTracker(kv, nil)

	p := tr.Refresh(context.Background(), keys.N2, keys.Grammar)
	assert.Equal(t, 1, p.UnlockedWeek)
	assert.Empty(t, p.Completed)
}

func TestTracker_MalformedValuesFallBack(t *testing.T) {
	kv := newMemKV()
	kv.data[UnlockedWeekKey(keys.N2, keys.Grammar)] = "many"
	kv.data[CompletedTokensKey] = "{not json"
	tr := NewTracker(kv, nil)

	p := tr.Refresh(context.Background(), keys.N2, keys.Grammar)
	assert.Equal(t, 1, p.UnlockedWeek)
	assert.Empty(t, p.Completed)
}

func TestTracker_WriteFailureSwallowed(t *testing.T) {
	kv := newMemKV()
	kv.setErr = errors.New("read-only database")
	tr := NewTracker(kv, nil)

	p, err := tr.MarkDone(context.Background(), keys.N2, keys.Grammar, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, Done, p.Status(1, 1))
	assert.Equal(t, 1, kv.setCalls)
}

func TestTracker_RefreshSeesExternalWrites(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	tr := NewTracker(kv, nil)
	other := NewTracker(kv, nil)

	before := tr.Refresh(ctx, keys.N5, keys.Vocab)
	_, err := other.MarkDone(ctx, keys.N5, keys.Vocab, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, Available, before.Status(1, 1))
	after := tr.Refresh(ctx, keys.N5, keys.Vocab)
	assert.Equal(t, Done, after.Status(1, 1))
}

func TestProgress_NextAvailable(t *testing.T) {
	p := &Progress{Level: keys.N2, Category: keys.Vocab, UnlockedWeek: 1,
		Completed: tokens(keys.N2, keys.Vocab, 1, 1, 2, 3)}
	w, d, ok := p.NextAvailable()
	assert.True(t, ok)
	assert.Equal(t, 1, w)
	assert.Equal(t, 4, d)
	assert.Equal(t, 3, p.DoneCount(1))

	all := tokens(keys.N2, keys.Vocab, 1, 1, 2, 3, 4, 5, 6, 7)
	p = &Progress{Level: keys.N2, Category: keys.Vocab, UnlockedWeek: 1, Completed: all}
	_, _, ok = p.NextAvailable()
	assert.False(t, ok)
}

func TestTracker_ResetClearsOneTrack(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	tr := NewTracker(kv, nil)
	for d := 1; d <= keys.DaysPerWeek; d++ {
		_, err := tr.MarkDone(ctx, keys.N4, keys.Grammar, 1, d)
		require.NoError(t, err)
	}
	_, err := tr.MarkDone(ctx, keys.N4, keys.Vocab, 1, 1)
	require.NoError(t, err)
	require.Equal(t, 2, tr.Refresh(ctx, keys.N4, keys.Grammar).UnlockedWeek)

	require.NoError(t, tr.Reset(ctx, keys.N4, keys.Grammar))

	grammar := tr.Refresh(ctx, keys.N4, keys.Grammar)
	assert.Equal(t, 1, grammar.UnlockedWeek)
	assert.Equal(t, 0, grammar.DoneCount(1))
	assert.Equal(t, Done, tr.Refresh(ctx, keys.N4, keys.Vocab).Status(1, 1))
}

func TestTracker_ResetReportsWriteFailure(t *testing.T) {
	kv := newMemKV()
	kv.setErr = errors.New("read-only database")
	err := NewTracker(kv, nil).Reset(context.Background(), keys.N4, keys.Grammar)
	assert.ErrorIs(t, err, kv.setErr)
}
