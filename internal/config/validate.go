package config

import (
	"fmt"

	"github.com/stemsat/sdlog/internal/record"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg.Kit.Prefix == "" {
		return fmt.Errorf("kit: prefix must not be empty")
	}

	// prefix sanity (ASCII only; it becomes part of an 8.3 filename)
	for i := 0; i < len(cfg.Kit.Prefix); i++ {
		if cfg.Kit.Prefix[i] > 0x7F {
			return fmt.Errorf("kit: prefix must contain ASCII characters only")
		}
	}

	if len(cfg.Sensors) == 0 {
		return fmt.Errorf("at least one sensor must be configured")
	}

	seenIDs := make(map[uint8]string)

	for _, s := range cfg.Sensors {
		if s.Name == "" {
			return fmt.Errorf("sensor with id %d: name must not be empty", s.ID)
		}

		if _, ok := record.ParseSensorType(s.Type); !ok {
			return fmt.Errorf(
				"sensor %q: unknown type %q",
				s.Name,
				s.Type,
			)
		}

		if s.IntervalMs <= 0 {
			return fmt.Errorf(
				"sensor %q: interval_ms must be positive, got %d",
				s.Name,
				s.IntervalMs,
			)
		}

		if prev, exists := seenIDs[s.ID]; exists {
			return fmt.Errorf(
				"source id collision: id=%d used by sensors %q and %q",
				s.ID,
				prev,
				s.Name,
			)
		}
		seenIDs[s.ID] = s.Name
	}

	if cfg.Simulation.DurationSeconds < 0 {
		return fmt.Errorf("simulation: duration_seconds must not be negative")
	}

	return nil
}
