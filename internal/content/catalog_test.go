package content

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/kotoba/internal/keys"
)

const validCatalog = `{
  "title": "sample",
  "groups": [
    {
      "group_key": "N2-2022-07",
      "questions": [
        {
          "item_number": 1,
          "section": "vocab",
          "stem": "彼は会議で意見を述べた。",
          "choices": [
            {"position": 1, "content": "のべた", "is_correct": true, "explanation": "述べる = to state"},
            {"position": 2, "content": "すべた", "is_correct": false},
            {"position": 3, "content": "くらべた", "is_correct": false},
            {"position": 4, "content": "しらべた", "is_correct": false}
          ]
        }
      ]
    },
    {
      "group_key": "N3-VOCAB-0010",
      "questions": [
        {
          "item_number": 1,
          "section": "vocab",
          "stem": "この町は＿＿がいい。",
          "passage": null,
          "choices": [
            {"position": 1, "content": "交通", "is_correct": true},
            {"position": 2, "content": "交換", "is_correct": false}
          ]
        }
      ]
    }
  ]
}`

func TestParseCatalog_Valid(t *testing.T) {
	cat, err := ParseCatalog([]byte(validCatalog))
	require.NoError(t, err)
	require.Len(t, cat.Groups, 2)

	qs := cat.Groups[0].ToQuestions()
	require.Len(t, qs, 1)
	assert.Equal(t, "N2-2022-07", qs[0].GroupKey)
	assert.Equal(t, SectionVocab, qs[0].Section)

	correct, ok := qs[0].CorrectChoice()
	require.True(t, ok)
	assert.Equal(t, 1, correct.Position)
	require.NotNil(t, correct.Explanation)
	assert.Equal(t, "述べる = to state", *correct.Explanation)
}

func TestParseCatalog_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{`},
		{"no groups", `{"groups": []}`},
		{"bad key", `{"groups":[{"group_key":"N2-2022-06","questions":[{"item_number":1,"section":"vocab","stem":"x","choices":[{"position":1,"content":"a","is_correct":true},{"position":2,"content":"b","is_correct":false}]}]}]}`},
		{"bad section", `{"groups":[{"group_key":"N2-2022-07","questions":[{"item_number":1,"section":"kanji","stem":"x","choices":[{"position":1,"content":"a","is_correct":true},{"position":2,"content":"b","is_correct":false}]}]}]}`},
		{"zero item number", `{"groups":[{"group_key":"N2-2022-07","questions":[{"item_number":0,"section":"vocab","stem":"x","choices":[{"position":1,"content":"a","is_correct":true},{"position":2,"content":"b","is_correct":false}]}]}]}`},
		{"unknown field", `{"groups":[{"group_key":"N2-2022-07","extra":1,"questions":[]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.raw))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCatalog), "got %v", err)
		})
	}
}

func TestParseCatalog_CorrectChoiceCount(t *testing.T) {
	raw := `{"groups":[{"group_key":"N2-2022-07","questions":[{"item_number":3,"section":"grammar","stem":"x","choices":[{"position":1,"content":"a","is_correct":true},{"position":2,"content":"b","is_correct":true}]}]}]}`

	_, err := ParseCatalog([]byte(raw))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCatalog))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "N2-2022-07", verr.GroupKey)
	assert.Equal(t, 3, verr.ItemNumber)
}

func TestParseCatalog_DuplicatePosition(t *testing.T) {
	raw := `{"groups":[{"group_key":"N1-VOCAB-0001","questions":[{"item_number":1,"section":"vocab","stem":"x","choices":[{"position":1,"content":"a","is_correct":true},{"position":1,"content":"b","is_correct":false}]}]}]}`

	_, err := ParseCatalog([]byte(raw))
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestParseGroupKey(t *testing.T) {
	g, ok := ParseGroupKey("N2-2022-07")
	require.True(t, ok)
	require.NotNil(t, g.Exam)
	assert.Nil(t, g.Daily)
	assert.Equal(t, keys.July, g.Exam.Month)

	g, ok = ParseGroupKey("N2-2022-1")
	require.True(t, ok)
	require.NotNil(t, g.Exam)
	assert.Equal(t, keys.FirstSession, g.Exam.Month)

	g, ok = ParseGroupKey("N3-VOCAB-0010")
	require.True(t, ok)
	require.NotNil(t, g.Daily)
	assert.Equal(t, 2, g.Daily.Week)
	assert.Equal(t, 3, g.Daily.Day)

	_, ok = ParseGroupKey("N3-2022-03")
	assert.False(t, ok)
}
