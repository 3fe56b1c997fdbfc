package runner

// EpisodeResult holds the totals of one completed episode. It is created
// once when the episode ends and never mutated afterwards.
//
// Terminated and Truncated reflect only what the environment reported. An
// episode stopped by the runner's step cap leaves both false, so a capped
// run is distinguishable from a natural exit.
type EpisodeResult struct {
	TotalReward float64
	Steps       int
	Terminated  bool
	Truncated   bool
}

// EvaluationResult aggregates a batch of episodes. EpisodeRewards and
// EpisodeLengths are ordered by play order; index i is episode i+1.
type EvaluationResult struct {
	MeanReward float64
	StdReward  float64
	MinReward  float64
	MaxReward  float64
	MeanSteps  float64

	EpisodeRewards []float64
	EpisodeLengths []int
}

// Episodes returns the number of episodes in the evaluation.
func (r EvaluationResult) Episodes() int {
	return len(r.EpisodeRewards)
}
