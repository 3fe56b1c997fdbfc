package events

import (
	"time"

	"github.com/ndl284/pacman-ai/internal/render/frame"
)

// Event type identifiers.
const (
	TypeEpisodeStarted      = "episode.started"
	TypeStepCompleted       = "episode.step"
	TypeEpisodeCompleted    = "episode.completed"
	TypeEvaluationCompleted = "evaluation.completed"
)

// EpisodeStartedEvent fires right after the environment is reset for a new
// episode.
type EpisodeStartedEvent struct {
	BaseEvent
	EpisodeID string `json:"episode_id"`
	Episode   int    `json:"episode"`
}

// StepCompletedEvent fires after every environment step. When the episode is
// being rendered the event carries the frame for that step; otherwise Frame
// is nil. Subscribers must not assume frames are retained past the call.
type StepCompletedEvent struct {
	BaseEvent
	EpisodeID   string       `json:"episode_id"`
	Episode     int          `json:"episode"`
	Step        int          `json:"step"`
	Action      int          `json:"action"`
	Reward      float64      `json:"reward"`
	TotalReward float64      `json:"total_reward"`
	Terminated  bool         `json:"terminated"`
	Truncated   bool         `json:"truncated"`
	Frame       *frame.Frame `json:"-"`
}

// EpisodeCompletedEvent fires once per finished episode with its totals.
type EpisodeCompletedEvent struct {
	BaseEvent
	EpisodeID   string  `json:"episode_id"`
	Episode     int     `json:"episode"`
	TotalReward float64 `json:"total_reward"`
	Steps       int     `json:"steps"`
	Terminated  bool    `json:"terminated"`
	Truncated   bool    `json:"truncated"`
}

// EvaluationCompletedEvent fires after a whole evaluation run.
type EvaluationCompletedEvent struct {
	BaseEvent
	Episodes   int     `json:"episodes"`
	MeanReward float64 `json:"mean_reward"`
	StdReward  float64 `json:"std_reward"`
	MeanSteps  float64 `json:"mean_steps"`
}

// NewBase builds the common part of an event.
func NewBase(eventType, runID string) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
		Run:       runID,
	}
}
