package render

import (
	"sync"

	"github.com/ndl284/pacman-ai/internal/events"
)

// Recorder collects the frames of a rendered episode by subscribing to
// step events. After the episode it hands the buffered frames to a
// playback surface. Recording is a pure side effect: it never feeds
// anything back into the episode loop.
type Recorder struct {
	id string

	mu          sync.Mutex
	frames      []*Frame
	totalReward float64
}

var _ events.Subscriber = (*Recorder)(nil)

// NewRecorder creates an empty frame recorder.
func NewRecorder(id string) *Recorder {
	return &Recorder{id: id}
}

// ID implements events.Subscriber.
func (r *Recorder) ID() string { return r.id }

// InterestedIn implements events.Subscriber.
func (r *Recorder) InterestedIn(eventType string) bool {
	return eventType == events.TypeStepCompleted || eventType == events.TypeEpisodeStarted
}

// HandleEvent implements events.Subscriber. Frames are cloned on arrival
// because environments may reuse their pixel buffers between steps. A new
// episode clears the previous recording.
func (r *Recorder) HandleEvent(event events.Event) {
	switch e := event.(type) {
	case events.EpisodeStartedEvent:
		r.Clear()
	case events.StepCompletedEvent:
		if e.Frame == nil {
			return
		}
		r.mu.Lock()
		r.frames = append(r.frames, e.Frame.Clone())
		r.totalReward = e.TotalReward
		r.mu.Unlock()
	}
}

// Frames returns the recorded frames in step order.
func (r *Recorder) Frames() []*Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Frame, len(r.frames))
	copy(out, r.frames)
	return out
}

// TotalReward returns the running reward total at the last recorded frame.
func (r *Recorder) TotalReward() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.totalReward
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// Clear drops all recorded frames.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = r.frames[:0]
	r.totalReward = 0
}
