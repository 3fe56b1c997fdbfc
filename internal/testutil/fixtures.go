package testutil

import (
	"image"

	"github.com/ndl284/pacman-ai/internal/env"
	"github.com/ndl284/pacman-ai/internal/render"
)

// ScriptedEnv is a deterministic fake environment for runner and evaluator
// tests. Each step pays out the next scripted reward (cycling when the
// script runs out, 1.0 when no script is given); termination and truncation
// fire at fixed step counts.
type ScriptedEnv struct {
	// Rewards is the per-step reward script.
	Rewards []float64
	// RewardFn, when set, overrides Rewards. It receives the 1-based
	// episode number (reset count) and 1-based step index.
	RewardFn func(episode, step int) float64
	// TerminateAt makes the step with this 1-based index report
	// terminated. Zero disables natural termination.
	TerminateAt int
	// TruncateAt makes the step with this 1-based index report truncated.
	// Zero disables truncation.
	TruncateAt int

	// Error injection.
	ResetErr  error
	StepErr   error
	StepErrAt int // 1-based step index to fail at; 0 fails immediately
	RenderErr error

	// Call counters.
	Resets  int
	Steps   int // steps within the current episode
	Renders int

	space *env.DiscreteSpace
}

// NewScriptedEnv creates a scripted environment with the given number of
// actions.
func NewScriptedEnv(actions int) *ScriptedEnv {
	return &ScriptedEnv{space: env.NewDiscreteSpace(actions)}
}

// Reset implements env.Environment.
func (s *ScriptedEnv) Reset(opts ...env.ResetOption) (env.Observation, env.Info, error) {
	if s.ResetErr != nil {
		return nil, nil, s.ResetErr
	}
	cfg := env.ApplyResetOptions(opts)
	if cfg.HasSeed {
		s.space.Seed(cfg.Seed)
	}
	s.Resets++
	s.Steps = 0
	return s.observation(), env.Info{"resets": s.Resets}, nil
}

// Step implements env.Environment.
func (s *ScriptedEnv) Step(action int) (env.StepResult, error) {
	if !s.space.Contains(action) {
		return env.StepResult{}, env.ErrInvalidAction
	}
	next := s.Steps + 1
	if s.StepErr != nil && (s.StepErrAt == 0 || next == s.StepErrAt) {
		return env.StepResult{}, s.StepErr
	}
	s.Steps = next

	reward := 1.0
	switch {
	case s.RewardFn != nil:
		reward = s.RewardFn(s.Resets, s.Steps)
	case len(s.Rewards) > 0:
		reward = s.Rewards[(s.Steps-1)%len(s.Rewards)]
	}

	return env.StepResult{
		Observation: s.observation(),
		Reward:      reward,
		Terminated:  s.TerminateAt > 0 && s.Steps >= s.TerminateAt,
		Truncated:   s.TruncateAt > 0 && s.Steps >= s.TruncateAt,
		Info:        env.Info{"step": s.Steps},
	}, nil
}

// Render implements env.Environment with a tiny blank frame.
func (s *ScriptedEnv) Render() (*render.Frame, error) {
	if s.RenderErr != nil {
		return nil, s.RenderErr
	}
	s.Renders++
	return render.NewFrame(image.NewRGBA(image.Rect(0, 0, 4, 4))), nil
}

// ActionSpace implements env.Environment.
func (s *ScriptedEnv) ActionSpace() env.ActionSpace { return s.space }

// Close implements env.Environment.
func (s *ScriptedEnv) Close() error { return nil }

func (s *ScriptedEnv) observation() env.Observation {
	return s.Steps
}
