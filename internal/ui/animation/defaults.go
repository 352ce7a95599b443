package animation

import (
	"time"

	"pomodoro/internal/core/model"
)

// DefaultConfig returns the stock sprite timings. The transition lasts as
// long as the default settle delay so it ends when the next mode commits.
func DefaultConfig() Config {
	return Config{
		TransitionDuration:  model.DefaultSettleDelay,
		BlinkClosedDuration: Range{Min: 150 * time.Millisecond, Max: 200 * time.Millisecond},
		BlinkOpenDuration:   Range{Min: 150 * time.Millisecond, Max: 200 * time.Millisecond},
		BlinkInterval:       Range{Min: 3 * time.Second, Max: 8 * time.Second},
		DoubleBlinkChance:   0.12,
		DoubleBlinkGap:      Range{Min: 50 * time.Millisecond, Max: 100 * time.Millisecond},
	}
}
