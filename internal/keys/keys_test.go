package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyKey(t *testing.T) {
	tests := []struct {
		name     string
		level    Level
		category Category
		week     int
		day      int
		want     string
	}{
		{"first day", N5, Grammar, 1, 1, "N5-GRAMMAR-0001"},
		{"week 2 day 3", N3, Vocab, 2, 3, "N3-VOCAB-0010"},
		{"last day of week 1", N1, Vocab, 1, 7, "N1-VOCAB-0007"},
		{"last day of track", N2, Grammar, 10, 7, "N2-GRAMMAR-0070"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DailyKey(tt.level, tt.category, tt.week, tt.day))
		})
	}
}

func TestParseDailyKey_RoundTrip(t *testing.T) {
	for week := 1; week <= MaxWeek; week++ {
		for day := 1; day <= DaysPerWeek; day++ {
			ref := DailyRef{Level: N4, Category: Grammar, Week: week, Day: day}
			got, ok := ParseDailyKey(ref.Key())
			require.True(t, ok, "key %s", ref.Key())
			assert.Equal(t, ref, got)
		}
	}
}

func TestParseDailyKey_Rejects(t *testing.T) {
	for _, key := range []string{
		"",
		"N3-VOCAB-10",
		"N6-VOCAB-0010",
		"N3-READING-0010",
		"N3-VOCAB-0000",
		"N3-VOCAB-0071",
		"n3-vocab-0010",
	} {
		_, ok := ParseDailyKey(key)
		assert.False(t, ok, "key %q", key)
	}
}

func TestParseExamKey(t *testing.T) {
	k, ok := ParseExamKey("N2-2022-07")
	require.True(t, ok)
	assert.Equal(t, ExamKey{Level: N2, Year: 2022, Month: July}, k)
	assert.Equal(t, "N2-2022-07", k.String())

	k, ok = ParseExamKey("N5-2019-12")
	require.True(t, ok)
	assert.Equal(t, December, k.Month)
}

func TestParseExamKey_Malformed(t *testing.T) {
	for _, key := range []string{
		"N2-2022-06",
		"N0-2022-07",
		"N2-22-07",
		"N2-2022-7",
		"N2-2022-07-x",
		"N3-VOCAB-0010",
	} {
		_, ok := ParseExamKey(key)
		assert.False(t, ok, "key %q", key)
	}
}

func TestToken(t *testing.T) {
	tok := Token(N2, Grammar, 3, 5)
	assert.Equal(t, "N2|grammar|3|5", tok)

	ref, ok := ParseToken(tok)
	require.True(t, ok)
	assert.Equal(t, DailyRef{Level: N2, Category: Grammar, Week: 3, Day: 5}, ref)
	assert.Equal(t, tok, ref.Token())

	for _, bad := range []string{"N2|grammar|3", "N2|grammar|0|1", "N2|grammar|1|8", "N2|grammar|x|1"} {
		_, ok := ParseToken(bad)
		assert.False(t, ok, "token %q", bad)
	}
}

func TestAltMonth(t *testing.T) {
	tests := []struct {
		in     Month
		want   Month
		wantOK bool
	}{
		{July, FirstSession, true},
		{December, SecondSession, true},
		{FirstSession, July, true},
		{SecondSession, December, true},
		{"03", "", false},
	}
	for _, tt := range tests {
		got, ok := AltMonth(tt.in)
		assert.Equal(t, tt.wantOK, ok, "AltMonth(%q)", tt.in)
		assert.Equal(t, tt.want, got, "AltMonth(%q)", tt.in)
	}
}

func TestParseHelpers(t *testing.T) {
	l, err := ParseLevel("n3")
	require.NoError(t, err)
	assert.Equal(t, N3, l)
	_, err = ParseLevel("N6")
	assert.Error(t, err)

	c, err := ParseCategory("VOCAB")
	require.NoError(t, err)
	assert.Equal(t, Vocab, c)
	_, err = ParseCategory("reading")
	assert.Error(t, err)

	m, err := ParseMonth("7")
	require.NoError(t, err)
	assert.Equal(t, July, m)
	m, err = ParseMonth("2")
	require.NoError(t, err)
	assert.Equal(t, December, m)
	_, err = ParseMonth("06")
	assert.Error(t, err)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, ClampWeek(0))
	assert.Equal(t, MaxWeek, ClampWeek(42))
	assert.Equal(t, 4, ClampWeek(4))
	assert.Equal(t, 1, ClampDay(-3))
	assert.Equal(t, DaysPerWeek, ClampDay(8))
}
