package runner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndl284/pacman-ai/internal/agent"
	"github.com/ndl284/pacman-ai/internal/env"
	"github.com/ndl284/pacman-ai/internal/events"
)

// EpisodeRunner drives one reset/step loop at a time against a single
// environment instance, which it owns exclusively for the duration of a
// run. The loop itself only accumulates statistics; every side effect for
// human consumption (frame display, pacing, console output) lives in event
// subscribers, so the loop's timing and results cannot be contaminated by
// presentation concerns.
type EpisodeRunner struct {
	environment env.Environment
	agent       agent.Agent
	bus         events.Publisher
	logger      zerolog.Logger
	runID       string
}

// RunnerOption configures an EpisodeRunner at construction.
type RunnerOption func(*EpisodeRunner)

// WithEventBus attaches a publisher for episode events. Without one the
// runner stays silent.
func WithEventBus(bus events.Publisher) RunnerOption {
	return func(r *EpisodeRunner) {
		r.bus = bus
	}
}

// WithLogger attaches a logger to the runner.
func WithLogger(logger zerolog.Logger) RunnerOption {
	return func(r *EpisodeRunner) {
		r.logger = logger.With().Str("component", "episode_runner").Logger()
	}
}

// NewEpisodeRunner creates a runner over the given environment and agent.
func NewEpisodeRunner(environment env.Environment, a agent.Agent, opts ...RunnerOption) *EpisodeRunner {
	r := &EpisodeRunner{
		environment: environment,
		agent:       a,
		logger:      zerolog.Nop(),
		runID:       uuid.New().String(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunID identifies this runner's event stream.
func (r *EpisodeRunner) RunID() string { return r.runID }

// EpisodeOptions configures a single episode.
type EpisodeOptions struct {
	// MaxSteps caps the episode length. Zero means uncapped. The cap is
	// checked after the step counter increments, so exactly MaxSteps steps
	// execute before the cap fires.
	MaxSteps int

	// Render captures a frame after every step and attaches it to the
	// step event. Rendering never changes the returned statistics.
	Render bool
}

// PlayEpisode resets the environment and steps it until the environment
// reports terminated or truncated, the step cap fires, or the context is
// cancelled. Environment failures abort the episode and propagate
// unchanged; the episode's own length or behavior never causes an error.
func (r *EpisodeRunner) PlayEpisode(ctx context.Context, opts EpisodeOptions) (EpisodeResult, error) {
	return r.playEpisode(ctx, opts, 1)
}

func (r *EpisodeRunner) playEpisode(ctx context.Context, opts EpisodeOptions, episode int) (EpisodeResult, error) {
	if opts.MaxSteps < 0 {
		return EpisodeResult{}, fmt.Errorf("%w: got %d", ErrInvalidMaxSteps, opts.MaxSteps)
	}

	obs, _, err := r.environment.Reset()
	if err != nil {
		return EpisodeResult{}, fmt.Errorf("reset environment: %w", err)
	}

	episodeID := uuid.New().String()
	r.publish(events.EpisodeStartedEvent{
		BaseEvent: events.NewBase(events.TypeEpisodeStarted, r.runID),
		EpisodeID: episodeID,
		Episode:   episode,
	})

	var (
		totalReward float64
		steps       int
		terminated  bool
		truncated   bool
	)

	for {
		if err := ctx.Err(); err != nil {
			return EpisodeResult{}, err
		}

		action := r.agent.SelectAction(obs)
		res, err := r.environment.Step(action)
		if err != nil {
			return EpisodeResult{}, fmt.Errorf("step environment: %w", err)
		}

		totalReward += res.Reward
		steps++
		obs = res.Observation

		stepEvent := events.StepCompletedEvent{
			BaseEvent:   events.NewBase(events.TypeStepCompleted, r.runID),
			EpisodeID:   episodeID,
			Episode:     episode,
			Step:        steps,
			Action:      action,
			Reward:      res.Reward,
			TotalReward: totalReward,
			Terminated:  res.Terminated,
			Truncated:   res.Truncated,
		}
		if opts.Render {
			frame, err := r.environment.Render()
			if err != nil {
				return EpisodeResult{}, fmt.Errorf("render environment: %w", err)
			}
			stepEvent.Frame = frame
		}
		r.publish(stepEvent)

		if res.Terminated || res.Truncated {
			terminated = res.Terminated
			truncated = res.Truncated
			break
		}
		// Cap is checked after the counter increments: a cap of k runs
		// exactly k steps and leaves both termination flags false.
		if opts.MaxSteps > 0 && steps >= opts.MaxSteps {
			break
		}
	}

	result := EpisodeResult{
		TotalReward: totalReward,
		Steps:       steps,
		Terminated:  terminated,
		Truncated:   truncated,
	}

	r.publish(events.EpisodeCompletedEvent{
		BaseEvent:   events.NewBase(events.TypeEpisodeCompleted, r.runID),
		EpisodeID:   episodeID,
		Episode:     episode,
		TotalReward: result.TotalReward,
		Steps:       result.Steps,
		Terminated:  result.Terminated,
		Truncated:   result.Truncated,
	})

	r.logger.Debug().
		Int("episode", episode).
		Float64("total_reward", result.TotalReward).
		Int("steps", result.Steps).
		Bool("terminated", result.Terminated).
		Bool("truncated", result.Truncated).
		Msg("Episode finished")

	return result, nil
}

func (r *EpisodeRunner) publish(event events.Event) {
	if r.bus != nil {
		r.bus.Publish(event)
	}
}
