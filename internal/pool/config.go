package pool

import "github.com/abhisek/kotoba/internal/keys"

// Config controls level resolution.
type Config struct {
	// RandomPair is the fixed level set RandomPair resolves to.
	RandomPair [2]keys.Level
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		RandomPair: [2]keys.Level{keys.N1, keys.N2},
	}
}
