package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kotoba/internal/content"
)

func strPtr(s string) *string { return &s }

func testChoices() []content.Choice {
	return []content.Choice{
		{Position: 1, Content: "たべる", IsCorrect: true, Explanation: strPtr("to eat")},
		{Position: 2, Content: "のむ", Explanation: strPtr("to drink")},
		{Position: 3, Content: "みる"},
	}
}

func TestChoiceList_View(t *testing.T) {
	c := ChoiceList{Choices: testChoices(), Cursor: 2, Picked: 2}
	view := c.View(40)
	for _, want := range []string{"たべる", "のむ", "みる", "▸", "●"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestChoiceList_Explanation(t *testing.T) {
	c := ChoiceList{Choices: testChoices(), Picked: 2}
	if got := c.Explanation(); got != "" {
		t.Errorf("explanation before reveal = %q, want empty", got)
	}

	c.Revealed = true
	if got := c.Explanation(); got != "to drink" {
		t.Errorf("explanation = %q, want picked choice's", got)
	}

	c.Picked = 3
	if got := c.Explanation(); got != "to eat" {
		t.Errorf("explanation = %q, want correct choice's fallback", got)
	}
}

func TestMenu_Navigation(t *testing.T) {
	called := false
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B", Hint: "b hint"},
		{Label: "C", Action: func() tea.Cmd { called = true; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want first enabled item", m.Selected)
	}
	if m.SelectedHint() != "b hint" {
		t.Errorf("SelectedHint = %q", m.SelectedHint())
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("Selected = %d, disabled item must be skipped", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !called {
		t.Error("expected action to run on Enter")
	}
}

func TestMenu_DigitShortcut(t *testing.T) {
	ran := ""
	item := func(label string) MenuItem {
		return MenuItem{Label: label, Action: func() tea.Cmd { ran = label; return nil }}
	}
	m := NewMenu([]MenuItem{item("A"), {Label: "B", Disabled: true}, item("C")})

	m, _ = m.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	if ran != "" || m.Selected != 0 {
		t.Errorf("disabled item ran (%q) or was selected (%d)", ran, m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	if ran != "C" || m.Selected != 2 {
		t.Errorf("ran = %q selected = %d, want C at 2", ran, m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: '9', Text: "9"})
	if m.Selected != 2 {
		t.Error("out-of-range digit should be ignored")
	}
	if !strings.Contains(m.View(20), "3  C") {
		t.Error("view should number the items")
	}
}

func TestTextInput_NumericOnly(t *testing.T) {
	ti := NewTextInput("", true, 3)
	for _, r := range "1a2" {
		ti, _ = ti.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	if ti.Value() != "12" {
		t.Errorf("Value = %q, want 12", ti.Value())
	}
	if n, ok := ti.NumberIn(1, 20); !ok || n != 12 {
		t.Errorf("NumberIn(1, 20) = %d, %v", n, ok)
	}
	if _, ok := ti.NumberIn(1, 10); ok {
		t.Error("12 is outside 1-10")
	}
	ti.Reset()
	if ti.Value() != "" {
		t.Errorf("Value after Reset = %q", ti.Value())
	}
	if _, ok := ti.NumberIn(0, 99); ok {
		t.Error("empty input is not a number")
	}
}

func TestProgressBar_Percent(t *testing.T) {
	p := NewProgressBar("Week 1", 3.0/7.0, true, 30)
	view := p.View()
	if !strings.Contains(view, "42%") {
		t.Errorf("view %q missing percent label", view)
	}
	if !strings.Contains(view, "Week 1") {
		t.Error("view missing label")
	}
}

func TestFractionBar(t *testing.T) {
	view := FractionBar("", 3, 7, 30).View()
	if !strings.Contains(view, "3/7") {
		t.Errorf("view %q missing fraction caption", view)
	}
	if got := FractionBar("", 0, 0, 30).Percent; got != 0 {
		t.Errorf("empty total percent = %v, want 0", got)
	}
	if got := NewProgressBar("", 1.5, false, 10).Percent; got != 1 {
		t.Errorf("percent = %v, want clamp to 1", got)
	}
}
