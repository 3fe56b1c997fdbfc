package agent

import (
	"github.com/rs/zerolog"

	"github.com/ndl284/pacman-ai/internal/env"
)

// RandomAgent takes uniformly random actions. It is the baseline agent:
// useful for checking environment wiring and for putting a floor under any
// smarter agent's evaluation numbers.
//
// The observation is accepted but ignored; actions come from the action
// space's own sampling procedure. Seeding happens at construction and only
// touches the space's random source, never ambient global state.
type RandomAgent struct {
	space  env.ActionSpace
	logger zerolog.Logger
}

// Option configures a RandomAgent at construction.
type Option func(*RandomAgent)

// WithSeed seeds the agent's action space so that identical seeds produce
// identical action sequences.
func WithSeed(seed int64) Option {
	return func(a *RandomAgent) {
		a.space.Seed(seed)
	}
}

// WithLogger attaches a logger to the agent.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *RandomAgent) {
		a.logger = logger.With().Str("component", "random_agent").Logger()
	}
}

// NewRandomAgent creates a random agent over the given action space.
func NewRandomAgent(space env.ActionSpace, opts ...Option) *RandomAgent {
	a := &RandomAgent{
		space:  space,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SelectAction returns a uniformly random valid action. The observation has
// no influence on the result.
func (a *RandomAgent) SelectAction(_ env.Observation) int {
	action := a.space.Sample()
	a.logger.Trace().Int("action", action).Msg("Selected random action")
	return action
}
