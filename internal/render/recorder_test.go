package render

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndl284/pacman-ai/internal/events"
)

func testFrame(c color.RGBA) *Frame {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, c)
	return NewFrame(img)
}

func stepEvent(step int, total float64, frame *Frame) events.StepCompletedEvent {
	return events.StepCompletedEvent{
		BaseEvent:   events.NewBase(events.TypeStepCompleted, "run"),
		Step:        step,
		TotalReward: total,
		Frame:       frame,
	}
}

func TestRecorder_CollectsFramesInOrder(t *testing.T) {
	rec := NewRecorder("rec")

	rec.HandleEvent(stepEvent(1, 1.0, testFrame(color.RGBA{1, 0, 0, 255})))
	rec.HandleEvent(stepEvent(2, 3.0, testFrame(color.RGBA{2, 0, 0, 255})))

	require.Equal(t, 2, rec.Len())
	frames := rec.Frames()
	assert.Equal(t, uint8(1), frames[0].Image.RGBAAt(0, 0).R)
	assert.Equal(t, uint8(2), frames[1].Image.RGBAAt(0, 0).R)
	assert.Equal(t, 3.0, rec.TotalReward())
}

func TestRecorder_ClonesFrames(t *testing.T) {
	rec := NewRecorder("rec")
	frame := testFrame(color.RGBA{9, 0, 0, 255})
	rec.HandleEvent(stepEvent(1, 0, frame))

	// Mutate the original buffer, as an environment reusing it would.
	frame.Image.SetRGBA(0, 0, color.RGBA{200, 0, 0, 255})

	assert.Equal(t, uint8(9), rec.Frames()[0].Image.RGBAAt(0, 0).R,
		"recorder must keep its own copy of the pixels")
}

func TestRecorder_IgnoresFramelessSteps(t *testing.T) {
	rec := NewRecorder("rec")
	rec.HandleEvent(stepEvent(1, 1.0, nil))
	assert.Zero(t, rec.Len())
}

func TestRecorder_NewEpisodeClearsOldFrames(t *testing.T) {
	rec := NewRecorder("rec")
	rec.HandleEvent(stepEvent(1, 1.0, testFrame(color.RGBA{1, 0, 0, 255})))
	require.Equal(t, 1, rec.Len())

	rec.HandleEvent(events.EpisodeStartedEvent{
		BaseEvent: events.NewBase(events.TypeEpisodeStarted, "run"),
		Episode:   2,
	})
	assert.Zero(t, rec.Len())
	assert.Zero(t, rec.TotalReward())
}

func TestPacer_SleepsOnlyForRenderedSteps(t *testing.T) {
	p := NewPacer("pacer", 5*time.Millisecond)
	var slept []time.Duration
	p.sleep = func(d time.Duration) { slept = append(slept, d) }

	p.HandleEvent(stepEvent(1, 0, testFrame(color.RGBA{})))
	p.HandleEvent(stepEvent(2, 0, nil))
	p.HandleEvent(events.EpisodeStartedEvent{BaseEvent: events.NewBase(events.TypeEpisodeStarted, "run")})

	assert.Equal(t, []time.Duration{5 * time.Millisecond}, slept)
}

func TestPacer_DefaultDelay(t *testing.T) {
	p := NewPacer("pacer", 0)
	assert.Equal(t, DefaultStepDelay, p.delay)
}

func TestFrame_CloneOfEmptyFrame(t *testing.T) {
	var f *Frame
	clone := f.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, image.Rectangle{}, clone.Bounds())
}
