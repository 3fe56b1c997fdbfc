package runner

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ndl284/pacman-ai/internal/events"
)

// Evaluator runs a batch of sequential episodes and aggregates their totals.
type Evaluator struct {
	runner *EpisodeRunner
	logger zerolog.Logger
}

// EvaluatorOption configures an Evaluator at construction.
type EvaluatorOption func(*Evaluator)

// WithEvaluatorLogger attaches a logger to the evaluator.
func WithEvaluatorLogger(logger zerolog.Logger) EvaluatorOption {
	return func(ev *Evaluator) {
		ev.logger = logger.With().Str("component", "evaluator").Logger()
	}
}

// NewEvaluator creates an evaluator over the given episode runner.
func NewEvaluator(r *EpisodeRunner, opts ...EvaluatorOption) *Evaluator {
	ev := &Evaluator{
		runner: r,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(ev)
	}
	return ev
}

// EvalOptions configures an evaluation run.
type EvalOptions struct {
	// Episodes is the number of episodes to play. Must be positive.
	Episodes int
	// MaxSteps caps each episode. Zero means uncapped.
	MaxSteps int
	// Render captures frames during every episode.
	Render bool
}

// Evaluate plays exactly opts.Episodes episodes one after another and
// returns summary statistics over their totals. Invalid arguments are
// rejected before the first reset. A failed episode aborts the whole run;
// no partial result is returned.
func (ev *Evaluator) Evaluate(ctx context.Context, opts EvalOptions) (EvaluationResult, error) {
	if opts.Episodes <= 0 {
		return EvaluationResult{}, fmt.Errorf("%w: got %d", ErrNoEpisodes, opts.Episodes)
	}
	if opts.MaxSteps < 0 {
		return EvaluationResult{}, fmt.Errorf("%w: got %d", ErrInvalidMaxSteps, opts.MaxSteps)
	}

	rewards := make([]float64, 0, opts.Episodes)
	lengths := make([]int, 0, opts.Episodes)

	episodeOpts := EpisodeOptions{MaxSteps: opts.MaxSteps, Render: opts.Render}
	for episode := 1; episode <= opts.Episodes; episode++ {
		res, err := ev.runner.playEpisode(ctx, episodeOpts, episode)
		if err != nil {
			return EvaluationResult{}, fmt.Errorf("episode %d/%d: %w", episode, opts.Episodes, err)
		}

		rewards = append(rewards, res.TotalReward)
		lengths = append(lengths, res.Steps)

		ev.logger.Info().
			Int("episode", episode).
			Int("episodes", opts.Episodes).
			Float64("reward", res.TotalReward).
			Int("steps", res.Steps).
			Msg("Episode evaluated")
	}

	result := aggregate(rewards, lengths)

	ev.runner.publish(events.EvaluationCompletedEvent{
		BaseEvent:  events.NewBase(events.TypeEvaluationCompleted, ev.runner.runID),
		Episodes:   opts.Episodes,
		MeanReward: result.MeanReward,
		StdReward:  result.StdReward,
		MeanSteps:  result.MeanSteps,
	})

	return result, nil
}

// aggregate computes the summary statistics over completed episodes. The
// standard deviation is the population form, matching how the evaluation
// numbers are reported.
func aggregate(rewards []float64, lengths []int) EvaluationResult {
	steps := make([]float64, len(lengths))
	for i, l := range lengths {
		steps[i] = float64(l)
	}

	return EvaluationResult{
		MeanReward:     stat.Mean(rewards, nil),
		StdReward:      stat.PopStdDev(rewards, nil),
		MinReward:      floats.Min(rewards),
		MaxReward:      floats.Max(rewards),
		MeanSteps:      stat.Mean(steps, nil),
		EpisodeRewards: rewards,
		EpisodeLengths: lengths,
	}
}
