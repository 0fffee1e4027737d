package progress

import (
	"encoding/json"
	"fmt"
	"slices"
)

// TokenSet is the global set of completion tokens. Tokens are only added.
type TokenSet map[string]struct{}

// Has reports whether tok is present. A nil set is empty.
func (s TokenSet) Has(tok string) bool {
	_, ok := s[tok]
	return ok
}

// Add inserts tok and reports whether it was new.
func (s TokenSet) Add(tok string) bool {
	if s.Has(tok) {
		return false
	}
	s[tok] = struct{}{}
	return true
}

// Sorted returns the tokens in ascending order.
func (s TokenSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for tok := range s {
		out = append(out, tok)
	}
	slices.Sort(out)
	return out
}

// MarshalJSON encodes the set as a sorted array of strings.
func (s TokenSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array of strings. Duplicates collapse.
func (s *TokenSet) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("decode completed tokens: %w", err)
	}
	set := make(TokenSet, len(list))
	for _, tok := range list {
		set[tok] = struct{}{}
	}
	*s = set
	return nil
}
