package cubesim

import (
	"math"

	"go.uber.org/zap"
)

// DefaultTurnSpeed is the default animation speed in radians per second:
// a quarter turn takes half a second.
const DefaultTurnSpeed = math.Pi

// Option configures Animator behavior.
type Option func(*config)

type config struct {
	logger *zap.Logger
	speed  float64
	loop   bool
	queue  *Queue
}

func defaultConfig() *config {
	return &config{
		logger: zap.NewNop(),
		speed:  DefaultTurnSpeed,
	}
}

// WithLogger sets the logger used for turn lifecycle events.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTurnSpeed sets how many radians a single-layer turn sweeps per second
// of elapsed time passed to Tick. Non-positive values are ignored.
func WithTurnSpeed(radiansPerSecond float64) Option {
	return func(c *config) {
		if radiansPerSecond > 0 && !math.IsInf(radiansPerSecond, 0) {
			c.speed = radiansPerSecond
		}
	}
}

// WithLoop makes the animator push every committed move back onto the
// queue, replaying the sequence forever. Useful for soak testing a
// renderer.
func WithLoop(enabled bool) Option {
	return func(c *config) {
		c.loop = enabled
	}
}

// WithQueue supplies the move queue instead of creating a fresh one.
func WithQueue(q *Queue) Option {
	return func(c *config) {
		if q != nil {
			c.queue = q
		}
	}
}
