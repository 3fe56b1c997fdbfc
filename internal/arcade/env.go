package arcade

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ndl284/pacman-ai/internal/env"
	"github.com/ndl284/pacman-ai/internal/render"
)

// Observation is the state snapshot handed to agents. Random agents ignore
// it; it exists so smarter agents have something to look at.
type Observation struct {
	Tick    int
	Score   int
	Lives   int
	Pellets int
	Powered bool
	Player  Point
	Ghosts  []Point
}

// Env adapts the arcade engine to the env.Environment contract.
type Env struct {
	engine   *Engine
	space    *env.DiscreteSpace
	renderer *frameRenderer
	logger   zerolog.Logger

	started bool
	closed  bool
}

var _ env.Environment = (*Env)(nil)

// New creates an arcade environment. The zero Config plays a default-sized
// board with a time-seeded random source.
func New(cfg Config) *Env {
	logger := cfg.Logger.With().Str("component", "arcade_env").Logger()
	return &Env{
		engine:   NewEngine(cfg),
		space:    env.NewDiscreteSpace(NumActions),
		renderer: newFrameRenderer(),
		logger:   logger,
	}
}

// Reset starts a new episode. A seeded reset makes the board deal, ghost
// walk and action-space sampling all deterministic.
func (a *Env) Reset(opts ...env.ResetOption) (env.Observation, env.Info, error) {
	if a.closed {
		return nil, nil, env.ErrClosed
	}

	cfg := env.ApplyResetOptions(opts)
	if cfg.HasSeed {
		a.engine.Reseed(cfg.Seed)
		a.space.Seed(cfg.Seed)
	}

	a.engine.Reset()
	a.started = true

	return a.observation(), env.Info{
		"pellets": a.engine.Pellets(),
		"lives":   a.engine.Lives(),
	}, nil
}

// Step applies one action.
func (a *Env) Step(action int) (env.StepResult, error) {
	if a.closed {
		return env.StepResult{}, env.ErrClosed
	}
	if !a.started {
		return env.StepResult{}, env.ErrNotReset
	}
	if !a.space.Contains(action) {
		return env.StepResult{}, fmt.Errorf("%w: %d not in %s", env.ErrInvalidAction, action, a.space)
	}

	outcome, err := a.engine.Step(action)
	if err != nil {
		return env.StepResult{}, err
	}

	return env.StepResult{
		Observation: a.observation(),
		Reward:      outcome.Reward,
		Terminated:  outcome.Terminated,
		Truncated:   outcome.Truncated,
		Info: env.Info{
			"score":   a.engine.Score(),
			"lives":   a.engine.Lives(),
			"pellets": a.engine.Pellets(),
		},
	}, nil
}

// Render draws the current state. The returned frame's pixel buffer is
// reused across calls; clone it to keep it.
func (a *Env) Render() (*render.Frame, error) {
	if a.closed {
		return nil, env.ErrClosed
	}
	if !a.started {
		return nil, env.ErrNotReset
	}
	return a.renderer.draw(a.engine), nil
}

// ActionSpace returns the discrete action set.
func (a *Env) ActionSpace() env.ActionSpace { return a.space }

// Close marks the environment unusable.
func (a *Env) Close() error {
	a.closed = true
	return nil
}

func (a *Env) observation() Observation {
	return Observation{
		Tick:    a.engine.Tick(),
		Score:   a.engine.Score(),
		Lives:   a.engine.Lives(),
		Pellets: a.engine.Pellets(),
		Powered: a.engine.Powered(),
		Player:  a.engine.Player(),
		Ghosts:  a.engine.Ghosts(),
	}
}
