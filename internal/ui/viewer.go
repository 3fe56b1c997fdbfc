package ui

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/ndl284/pacman-ai/internal/events"
	"github.com/ndl284/pacman-ai/internal/render"
)

// DefaultScale is the pixel scale factor for display windows.
const DefaultScale = 3

// DefaultReplayInterval is the number of ebiten ticks (at 60 per second)
// between replay frames; 2 gives 30 FPS playback.
const DefaultReplayInterval = 2

var ErrNoFrames = errors.New("no frames to play")

// Replay plays back a recorded episode at a fixed interval, each frame
// labeled with its index and the episode's total reward. The last frame
// stays on screen until the window is closed.
type Replay struct {
	frames      []*render.Frame
	totalReward float64
	interval    int
	scale       int

	idx   int
	timer int
}

// NewReplay creates a playback surface over recorded frames.
func NewReplay(frames []*render.Frame, totalReward float64, interval, scale int) (*Replay, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	if interval <= 0 {
		interval = DefaultReplayInterval
	}
	if scale <= 0 {
		scale = DefaultScale
	}
	return &Replay{
		frames:      frames,
		totalReward: totalReward,
		interval:    interval,
		scale:       scale,
	}, nil
}

// Update implements ebiten.Game.
func (r *Replay) Update() error {
	if r.idx >= len(r.frames)-1 {
		return nil
	}
	r.timer++
	if r.timer >= r.interval {
		r.timer = 0
		r.idx++
	}
	return nil
}

// Draw implements ebiten.Game.
func (r *Replay) Draw(screen *ebiten.Image) {
	frame := r.frames[r.idx]
	img := ebiten.NewImageFromImage(frame.Image)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.scale), float64(r.scale))
	screen.DrawImage(img, op)

	label := fmt.Sprintf("Step: %d/%d | Reward: %.1f", r.idx+1, len(r.frames), r.totalReward)
	ebitenutil.DebugPrintAt(screen, label, 4, 4)
}

// Layout implements ebiten.Game.
func (r *Replay) Layout(_, _ int) (int, int) {
	b := r.frames[0].Bounds()
	return b.Dx() * r.scale, b.Dy() * r.scale
}

// Frame returns the index of the frame currently shown.
func (r *Replay) Frame() int { return r.idx }

// LiveView displays an episode while it is being played. It subscribes to
// step events, keeps only the latest frame, and draws it labeled with the
// step count and running reward. The episode runs on another goroutine;
// the view just mirrors whatever frame arrived last.
type LiveView struct {
	id    string
	scale int

	width, height int

	mu          sync.Mutex
	frame       *render.Frame
	step        int
	totalReward float64
	finished    bool

	// CloseOnFinish ends the ebiten loop once the episode completes.
	CloseOnFinish bool
}

var _ events.Subscriber = (*LiveView)(nil)

// NewLiveView creates a live display surface for frames of the given pixel
// dimensions.
func NewLiveView(id string, width, height, scale int) *LiveView {
	if scale <= 0 {
		scale = DefaultScale
	}
	return &LiveView{id: id, width: width, height: height, scale: scale}
}

// ID implements events.Subscriber.
func (lv *LiveView) ID() string { return lv.id }

// InterestedIn implements events.Subscriber.
func (lv *LiveView) InterestedIn(eventType string) bool {
	return eventType == events.TypeStepCompleted || eventType == events.TypeEpisodeCompleted
}

// HandleEvent implements events.Subscriber. The previous frame is simply
// replaced: the live view never buffers more than one frame.
func (lv *LiveView) HandleEvent(event events.Event) {
	switch e := event.(type) {
	case events.StepCompletedEvent:
		if e.Frame == nil {
			return
		}
		lv.mu.Lock()
		lv.frame = e.Frame.Clone()
		lv.step = e.Step
		lv.totalReward = e.TotalReward
		lv.mu.Unlock()
	case events.EpisodeCompletedEvent:
		lv.mu.Lock()
		lv.finished = true
		lv.mu.Unlock()
	}
}

// Finish closes the view regardless of CloseOnFinish. Used when the
// driving side (for example a multi-episode evaluation) decides the window
// is done.
func (lv *LiveView) Finish() {
	lv.mu.Lock()
	lv.finished = true
	lv.CloseOnFinish = true
	lv.mu.Unlock()
}

// Update implements ebiten.Game.
func (lv *LiveView) Update() error {
	lv.mu.Lock()
	defer lv.mu.Unlock()
	if lv.finished && lv.CloseOnFinish {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (lv *LiveView) Draw(screen *ebiten.Image) {
	lv.mu.Lock()
	frame := lv.frame
	step := lv.step
	total := lv.totalReward
	lv.mu.Unlock()

	if frame == nil || frame.Image == nil {
		ebitenutil.DebugPrintAt(screen, "Waiting for first frame...", 4, 4)
		return
	}

	img := ebiten.NewImageFromImage(frame.Image)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(lv.scale), float64(lv.scale))
	screen.DrawImage(img, op)

	label := fmt.Sprintf("Step: %d | Total Reward: %.1f", step, total)
	ebitenutil.DebugPrintAt(screen, label, 4, 4)
}

// Layout implements ebiten.Game.
func (lv *LiveView) Layout(_, _ int) (int, int) {
	return lv.width * lv.scale, lv.height * lv.scale
}
