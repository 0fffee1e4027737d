package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kotoba/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Focuser is implemented by screens that reload state when they become the
// active screen again after the screen above them is popped.
type Focuser interface {
	Focus() tea.Cmd
}

// InputCapturer is implemented by screens that temporarily need every key,
// including Esc, delivered to them instead of the global bindings.
type InputCapturer interface {
	CapturingInput() bool
}

// StatusProvider is implemented by screens that show a status string on the
// right side of the header.
type StatusProvider interface {
	Status() string
}
