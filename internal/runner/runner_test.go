package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndl284/pacman-ai/internal/agent"
	"github.com/ndl284/pacman-ai/internal/events"
	"github.com/ndl284/pacman-ai/internal/testutil"
)

func newTestRunner(scripted *testutil.ScriptedEnv, opts ...RunnerOption) *EpisodeRunner {
	a := agent.NewRandomAgent(scripted.ActionSpace(), agent.WithSeed(42))
	return NewEpisodeRunner(scripted, a, opts...)
}

func TestPlayEpisode_NaturalTermination(t *testing.T) {
	// Reward 1.0 per step, terminates exactly at step 5.
	scripted := testutil.NewScriptedEnv(4)
	scripted.TerminateAt = 5

	res, err := newTestRunner(scripted).PlayEpisode(context.Background(), EpisodeOptions{})
	require.NoError(t, err)

	assert.Equal(t, EpisodeResult{
		TotalReward: 5.0,
		Steps:       5,
		Terminated:  true,
		Truncated:   false,
	}, res)
}

func TestPlayEpisode_StepCapRunsExactlyMaxSteps(t *testing.T) {
	scripted := testutil.NewScriptedEnv(4) // never terminates on its own

	res, err := newTestRunner(scripted).PlayEpisode(context.Background(), EpisodeOptions{MaxSteps: 7})
	require.NoError(t, err)

	assert.Equal(t, 7, res.Steps)
	assert.False(t, res.Terminated, "cap exit must not look like natural termination")
	assert.False(t, res.Truncated, "cap exit must not look like truncation")
	assert.Equal(t, 7, scripted.Steps, "environment stepped a different number of times than reported")
}

func TestPlayEpisode_TerminationOnFirstStep(t *testing.T) {
	scripted := testutil.NewScriptedEnv(4)
	scripted.TerminateAt = 1
	scripted.Rewards = []float64{-3.5}

	res, err := newTestRunner(scripted).PlayEpisode(context.Background(), EpisodeOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Steps)
	assert.Equal(t, -3.5, res.TotalReward)
	assert.True(t, res.Terminated)
}

func TestPlayEpisode_TotalRewardIsExactSum(t *testing.T) {
	scripted := testutil.NewScriptedEnv(4)
	scripted.Rewards = []float64{1.5, -0.5, 2.0}
	scripted.TerminateAt = 3

	res, err := newTestRunner(scripted).PlayEpisode(context.Background(), EpisodeOptions{})
	require.NoError(t, err)

	assert.InDelta(t, 3.0, res.TotalReward, 1e-12)
	assert.Equal(t, 3, res.Steps)
}

func TestPlayEpisode_TruncationReported(t *testing.T) {
	scripted := testutil.NewScriptedEnv(4)
	scripted.TruncateAt = 4

	res, err := newTestRunner(scripted).PlayEpisode(context.Background(), EpisodeOptions{})
	require.NoError(t, err)

	assert.Equal(t, 4, res.Steps)
	assert.False(t, res.Terminated)
	assert.True(t, res.Truncated)
}

func TestPlayEpisode_NegativeMaxStepsRejected(t *testing.T) {
	scripted := testutil.NewScriptedEnv(4)

	_, err := newTestRunner(scripted).PlayEpisode(context.Background(), EpisodeOptions{MaxSteps: -1})
	require.ErrorIs(t, err, ErrInvalidMaxSteps)
	assert.Zero(t, scripted.Resets, "invalid arguments must be rejected before any reset")
}

func TestPlayEpisode_ResetErrorPropagates(t *testing.T) {
	scripted := testutil.NewScriptedEnv(4)
	bang := errors.New("emulator crashed")
	scripted.ResetErr = bang

	_, err := newTestRunner(scripted).PlayEpisode(context.Background(), EpisodeOptions{})
	assert.ErrorIs(t, err, bang)
}

func TestPlayEpisode_StepErrorPropagates(t *testing.T) {
	scripted := testutil.NewScriptedEnv(4)
	bang := errors.New("emulator crashed")
	scripted.StepErr = bang
	scripted.StepErrAt = 3

	_, err := newTestRunner(scripted).PlayEpisode(context.Background(), EpisodeOptions{})
	assert.ErrorIs(t, err, bang)
}

func TestPlayEpisode_RenderErrorPropagatesOnlyWhenRendering(t *testing.T) {
	scripted := testutil.NewScriptedEnv(4)
	scripted.TerminateAt = 3
	bang := errors.New("display gone")
	scripted.RenderErr = bang

	_, err := newTestRunner(scripted).PlayEpisode(context.Background(), EpisodeOptions{})
	require.NoError(t, err, "render failures must not affect non-rendered episodes")

	_, err = newTestRunner(scripted).PlayEpisode(context.Background(), EpisodeOptions{Render: true})
	assert.ErrorIs(t, err, bang)
}

func TestPlayEpisode_NoRenderCallsWithoutRenderFlag(t *testing.T) {
	scripted := testutil.NewScriptedEnv(4)
	scripted.TerminateAt = 5

	_, err := newTestRunner(scripted).PlayEpisode(context.Background(), EpisodeOptions{})
	require.NoError(t, err)
	assert.Zero(t, scripted.Renders)

	_, err = newTestRunner(scripted).PlayEpisode(context.Background(), EpisodeOptions{Render: true})
	require.NoError(t, err)
	assert.Equal(t, 5, scripted.Renders)
}

func TestPlayEpisode_ContextCancellation(t *testing.T) {
	scripted := testutil.NewScriptedEnv(4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestRunner(scripted).PlayEpisode(ctx, EpisodeOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlayEpisode_PublishesEventsInOrder(t *testing.T) {
	scripted := testutil.NewScriptedEnv(4)
	scripted.TerminateAt = 3

	bus := events.NewEventBus(testutil.NopLogger())
	var seen []string
	for _, eventType := range []string{
		events.TypeEpisodeStarted,
		events.TypeStepCompleted,
		events.TypeEpisodeCompleted,
	} {
		et := eventType
		bus.SubscribeFunc(et, func(events.Event) { seen = append(seen, et) })
	}

	runner := newTestRunner(scripted, WithEventBus(bus))
	res, err := runner.PlayEpisode(context.Background(), EpisodeOptions{})
	require.NoError(t, err)

	want := []string{
		events.TypeEpisodeStarted,
		events.TypeStepCompleted,
		events.TypeStepCompleted,
		events.TypeStepCompleted,
		events.TypeEpisodeCompleted,
	}
	assert.Equal(t, want, seen)
	assert.Equal(t, 3, res.Steps)
}

func TestPlayEpisode_StepEventsCarryRunningTotals(t *testing.T) {
	scripted := testutil.NewScriptedEnv(4)
	scripted.Rewards = []float64{1.0, 2.0, 3.0}
	scripted.TerminateAt = 3

	bus := events.NewEventBus(testutil.NopLogger())
	var totals []float64
	bus.SubscribeFunc(events.TypeStepCompleted, func(e events.Event) {
		totals = append(totals, e.(events.StepCompletedEvent).TotalReward)
	})

	runner := newTestRunner(scripted, WithEventBus(bus))
	_, err := runner.PlayEpisode(context.Background(), EpisodeOptions{})
	require.NoError(t, err)

	assert.Equal(t, []float64{1.0, 3.0, 6.0}, totals)
}

func TestPlayEpisode_SubscriberPanicDoesNotChangeResult(t *testing.T) {
	scripted := testutil.NewScriptedEnv(4)
	scripted.TerminateAt = 4

	bus := events.NewEventBus(testutil.NopLogger())
	bus.SubscribeFunc(events.TypeStepCompleted, func(events.Event) {
		panic("broken display hook")
	})

	runner := newTestRunner(scripted, WithEventBus(bus))
	res, err := runner.PlayEpisode(context.Background(), EpisodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Steps)
	assert.Equal(t, 4.0, res.TotalReward)
}

func TestPlayEpisode_RenderAttachesFrames(t *testing.T) {
	scripted := testutil.NewScriptedEnv(4)
	scripted.TerminateAt = 2

	bus := events.NewEventBus(testutil.NopLogger())
	frames := 0
	bus.SubscribeFunc(events.TypeStepCompleted, func(e events.Event) {
		if e.(events.StepCompletedEvent).Frame != nil {
			frames++
		}
	})

	runner := newTestRunner(scripted, WithEventBus(bus))
	_, err := runner.PlayEpisode(context.Background(), EpisodeOptions{Render: true})
	require.NoError(t, err)
	assert.Equal(t, 2, frames)
}
