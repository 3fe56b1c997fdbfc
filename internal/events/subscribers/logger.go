package subscribers

import (
	"github.com/rs/zerolog"

	"github.com/ndl284/pacman-ai/internal/events"
)

// LoggerSubscriber logs episode events to structured logs.
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // if non-nil, only log these event types
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string { return ls.id }

// SetEventFilter sets which event types to log (empty means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}
	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// InterestedIn returns true if the subscriber wants this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("run_id", event.RunID()).
		Logger()

	logEvent := eventLogger.WithLevel(ls.logLevel)

	switch e := event.(type) {
	case events.EpisodeStartedEvent:
		logEvent.
			Str("episode_id", e.EpisodeID).
			Int("episode", e.Episode)

	case events.StepCompletedEvent:
		logEvent.
			Int("episode", e.Episode).
			Int("step", e.Step).
			Int("action", e.Action).
			Float64("reward", e.Reward).
			Float64("total_reward", e.TotalReward).
			Bool("terminated", e.Terminated).
			Bool("truncated", e.Truncated)

	case events.EpisodeCompletedEvent:
		logEvent.
			Str("episode_id", e.EpisodeID).
			Int("episode", e.Episode).
			Float64("total_reward", e.TotalReward).
			Int("steps", e.Steps).
			Bool("terminated", e.Terminated).
			Bool("truncated", e.Truncated)

	case events.EvaluationCompletedEvent:
		logEvent.
			Int("episodes", e.Episodes).
			Float64("mean_reward", e.MeanReward).
			Float64("std_reward", e.StdReward).
			Float64("mean_steps", e.MeanSteps)
	}

	logEvent.Msg("Episode event")
}
