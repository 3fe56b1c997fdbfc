package render

import (
	"time"

	"github.com/ndl284/pacman-ai/internal/events"
)

// DefaultStepDelay paces rendered gameplay to a speed a human can follow.
const DefaultStepDelay = 20 * time.Millisecond

// Pacer sleeps after every rendered step so live gameplay is watchable.
// It exists only for human consumption: the delay blocks between steps and
// has no effect on episode statistics. Register it only when a person is
// watching.
type Pacer struct {
	id    string
	delay time.Duration
	sleep func(time.Duration)
}

var _ events.Subscriber = (*Pacer)(nil)

// NewPacer creates a pacer with the given per-step delay. A non-positive
// delay falls back to DefaultStepDelay.
func NewPacer(id string, delay time.Duration) *Pacer {
	if delay <= 0 {
		delay = DefaultStepDelay
	}
	return &Pacer{id: id, delay: delay, sleep: time.Sleep}
}

// ID implements events.Subscriber.
func (p *Pacer) ID() string { return p.id }

// InterestedIn implements events.Subscriber.
func (p *Pacer) InterestedIn(eventType string) bool {
	return eventType == events.TypeStepCompleted
}

// HandleEvent implements events.Subscriber.
func (p *Pacer) HandleEvent(event events.Event) {
	if e, ok := event.(events.StepCompletedEvent); !ok || e.Frame == nil {
		return
	}
	p.sleep(p.delay)
}
