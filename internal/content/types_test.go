package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindSections(t *testing.T) {
	assert.Equal(t, []Section{SectionVocab, SectionGrammar}, KindLanguage.Sections())
	assert.Equal(t, []Section{SectionReading}, KindReading.Sections())
	assert.Equal(t, []Section{SectionListening}, KindListening.Sections())
	assert.Empty(t, Kind("kanji").Sections())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Reading ")
	require.NoError(t, err)
	assert.Equal(t, KindReading, k)

	_, err = ParseKind("kanji")
	assert.Error(t, err)
}

func TestQuestionLookups(t *testing.T) {
	exp := "because"
	q := Question{
		GroupKey:   "N2-2022-07",
		ItemNumber: 4,
		Choices: []Choice{
			{Position: 1, Content: "a"},
			{Position: 2, Content: "b", IsCorrect: true, Explanation: &exp},
			{Position: 3, Content: "c", IsCorrect: true},
		},
	}
	assert.Equal(t, ID{GroupKey: "N2-2022-07", ItemNumber: 4}, q.ID())

	c, ok := q.CorrectChoice()
	require.True(t, ok)
	assert.Equal(t, 2, c.Position)

	c, ok = q.ChoiceAt(3)
	require.True(t, ok)
	assert.Equal(t, "c", c.Content)

	_, ok = q.ChoiceAt(9)
	assert.False(t, ok)

	_, ok = Question{}.CorrectChoice()
	assert.False(t, ok)
}
