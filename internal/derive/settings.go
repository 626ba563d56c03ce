package derive

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ModID is this pass's identifier. Any recipe or entity whose exclusion list
// names it is left alone; this is the opt-out hook for collaborating content.
const ModID = "scraploot"

// Settings are the host-supplied knobs for a derivation pass. They are read
// once at process start and never change afterwards.
type Settings struct {
	// Probability is the drop chance written onto every generated loot entry.
	Probability float64 `env:"LOOTGEN_PROBABILITY" envDefault:"0.8"`
	// MinMultiplier and MaxMultiplier scale the per-ingredient cost into the
	// count_min/count_max range of each entry.
	MinMultiplier float64 `env:"LOOTGEN_MIN_MULTIPLIER" envDefault:"0.3"`
	MaxMultiplier float64 `env:"LOOTGEN_MAX_MULTIPLIER" envDefault:"1"`
	// Verbose lowers the diagnostic threshold to debug.
	Verbose bool `env:"LOOTGEN_VERBOSE" envDefault:"false"`
	// ExtraExclusions is a comma/whitespace-separated list of item names to
	// blacklist on top of the built-in set.
	ExtraExclusions string `env:"LOOTGEN_EXTRA_EXCLUSIONS" envDefault:""`
}

// DefaultSettings returns the stock configuration.
func DefaultSettings() Settings {
	return Settings{
		Probability:   0.8,
		MinMultiplier: 0.3,
		MaxMultiplier: 1,
	}
}

// SettingsFromEnv loads settings from LOOTGEN_* environment variables and
// validates them.
func SettingsFromEnv() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("derive: parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate enforces the configured ranges. A max multiplier below the min is
// the one fatal configuration error; it aborts the whole pass.
func (s Settings) Validate() error {
	if s.Probability < 0 || s.Probability > 1 {
		return fmt.Errorf("derive: probability %v outside [0,1]", s.Probability)
	}
	if s.MinMultiplier < 0 || s.MinMultiplier > 100 {
		return fmt.Errorf("derive: min multiplier %v outside [0,100]", s.MinMultiplier)
	}
	if s.MaxMultiplier < 0 || s.MaxMultiplier > 100 {
		return fmt.Errorf("derive: max multiplier %v outside [0,100]", s.MaxMultiplier)
	}
	if s.MaxMultiplier < s.MinMultiplier {
		return fmt.Errorf("derive: max multiplier %v below min multiplier %v", s.MaxMultiplier, s.MinMultiplier)
	}
	return nil
}
