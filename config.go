package pegtree

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config carries the interpreter's ambient knobs. It generalizes the
// teacher's Config map-of-typed-values (go/config.go) into a typed
// struct, since this engine has a fixed, small set of knobs rather
// than the teacher's open-ended compiler/grammar-transform flags.
type Config struct {
	// MaxDepth bounds recursive eval nesting (Call chains, nested
	// Sequence/Choice). Zero means DefaultMaxDepth. Exceeding it
	// fails the parse with ExpectedAnything rather than overflowing
	// the Go stack - spec.md §5 notes deep grammars may need an
	// explicit limit.
	MaxDepth int `toml:"max_depth"`

	// Debug turns on the zerolog trace of operator dispatch.
	Debug bool `toml:"debug"`
}

// DefaultMaxDepth is generous enough for any grammar that isn't
// deliberately pathological, while still catching runaway recursion
// (e.g. a rule that calls itself with no intervening consumption)
// before it exhausts the goroutine stack.
const DefaultMaxDepth = 10000

// DefaultConfig returns the engine's defaults.
func DefaultConfig() Config {
	return Config{MaxDepth: DefaultMaxDepth, Debug: false}
}

func (c Config) maxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}

// LoadConfigFile reads a Config from a TOML file, as
// tendermint/tendermint loads its node configuration with the same
// library. Unset fields keep DefaultConfig's values.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("pegtree: reading config %s: %w", path, err)
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("pegtree: parsing config %s: %w", path, err)
	}
	return cfg, nil
}
