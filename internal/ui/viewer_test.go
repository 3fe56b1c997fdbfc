package ui

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndl284/pacman-ai/internal/events"
	"github.com/ndl284/pacman-ai/internal/render"
)

func blankFrames(n int) []*render.Frame {
	frames := make([]*render.Frame, n)
	for i := range frames {
		frames[i] = render.NewFrame(image.NewRGBA(image.Rect(0, 0, 8, 8)))
	}
	return frames
}

func TestNewReplay_RequiresFrames(t *testing.T) {
	_, err := NewReplay(nil, 0, 0, 0)
	assert.ErrorIs(t, err, ErrNoFrames)
}

func TestReplay_AdvancesAtInterval(t *testing.T) {
	r, err := NewReplay(blankFrames(3), 10.0, 2, 1)
	require.NoError(t, err)

	require.NoError(t, r.Update())
	assert.Equal(t, 0, r.Frame(), "first tick should not advance yet")
	require.NoError(t, r.Update())
	assert.Equal(t, 1, r.Frame())

	for i := 0; i < 10; i++ {
		require.NoError(t, r.Update())
	}
	assert.Equal(t, 2, r.Frame(), "replay must hold on the last frame")
}

func TestReplay_Layout(t *testing.T) {
	r, err := NewReplay(blankFrames(1), 0, 1, 4)
	require.NoError(t, err)

	w, h := r.Layout(0, 0)
	assert.Equal(t, 32, w)
	assert.Equal(t, 32, h)
}

func TestLiveView_KeepsOnlyLatestFrame(t *testing.T) {
	lv := NewLiveView("live", 8, 8, 1)

	for step := 1; step <= 3; step++ {
		lv.HandleEvent(events.StepCompletedEvent{
			BaseEvent:   events.NewBase(events.TypeStepCompleted, "run"),
			Step:        step,
			TotalReward: float64(step) * 2,
			Frame:       blankFrames(1)[0],
		})
	}

	assert.Equal(t, 3, lv.step)
	assert.Equal(t, 6.0, lv.totalReward)
}

func TestLiveView_TerminatesAfterEpisodeWhenConfigured(t *testing.T) {
	lv := NewLiveView("live", 8, 8, 1)
	lv.CloseOnFinish = true

	require.NoError(t, lv.Update())

	lv.HandleEvent(events.EpisodeCompletedEvent{
		BaseEvent: events.NewBase(events.TypeEpisodeCompleted, "run"),
	})
	assert.ErrorIs(t, lv.Update(), ebiten.Termination)
}

func TestLiveView_IgnoresFramelessSteps(t *testing.T) {
	lv := NewLiveView("live", 8, 8, 1)
	lv.HandleEvent(events.StepCompletedEvent{
		BaseEvent: events.NewBase(events.TypeStepCompleted, "run"),
		Step:      1,
	})
	assert.Nil(t, lv.frame)
}
