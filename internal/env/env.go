package env

import (
	"github.com/ndl284/pacman-ai/internal/render"
)

// Observation is whatever the environment chooses to expose about its state.
// The harness treats it as opaque and only passes it through to agents.
type Observation interface{}

// Info carries auxiliary diagnostic data alongside an observation. Its
// contents are environment-specific and never affect episode statistics.
type Info map[string]interface{}

// StepResult is the outcome of advancing the environment by one action.
type StepResult struct {
	Observation Observation
	Reward      float64
	Terminated  bool
	Truncated   bool
	Info        Info
}

// Environment is the adapter contract the episode runner drives. It follows
// the reset/step/render shape of Gymnasium-style environments: Reset starts
// a fresh episode, Step applies one action, Render produces a frame for
// display only.
type Environment interface {
	// Reset starts a new episode and returns the initial observation.
	Reset(opts ...ResetOption) (Observation, Info, error)

	// Step applies the action and advances the environment by one tick.
	Step(action int) (StepResult, error)

	// Render returns a frame of the current state. Purely presentational.
	Render() (*render.Frame, error)

	// ActionSpace returns the set of valid actions for this environment.
	ActionSpace() ActionSpace

	// Close releases any resources held by the environment.
	Close() error
}

// ResetOption configures a single Reset call.
type ResetOption func(*ResetConfig)

// ResetConfig holds the resolved options for a Reset call.
type ResetConfig struct {
	Seed    int64
	HasSeed bool
}

// WithSeed makes the reset deterministic for the given seed.
func WithSeed(seed int64) ResetOption {
	return func(c *ResetConfig) {
		c.Seed = seed
		c.HasSeed = true
	}
}

// ApplyResetOptions resolves a list of reset options.
func ApplyResetOptions(opts []ResetOption) ResetConfig {
	var cfg ResetConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
