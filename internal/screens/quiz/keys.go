package quiz

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/kotoba/internal/ui/layout"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Pick   key.Binding
	Submit key.Binding
	Prev   key.Binding
	Next   key.Binding
	Jump   key.Binding
	Finish key.Binding
	Cancel key.Binding
}

var bindings = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑↓", "Choose"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
	),
	Pick: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6"),
		key.WithHelp("1-6", "Pick"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "Submit"),
	),
	Prev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←→", "Prev/Next"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l"),
	),
	Jump: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "Jump"),
	),
	Finish: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "Finish"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "Cancel"),
	),
}

// hints converts bindings with help text into footer hints.
func hints(bindings ...key.Binding) []layout.KeyHint {
	out := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		out = append(out, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return out
}
