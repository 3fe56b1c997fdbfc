package runner

import (
	"fmt"
	"io"
	"strings"
)

const reportRule = 60

// WriteEpisodeLine writes the one-line progress report for a finished
// episode: reward at one decimal, integer step count.
func WriteEpisodeLine(w io.Writer, episode, episodes int, res EpisodeResult) error {
	_, err := fmt.Fprintf(w, "Episode %d/%d: Reward = %.1f, Steps = %d\n",
		episode, episodes, res.TotalReward, res.Steps)
	return err
}

// WriteReport writes the final summary block for an evaluation run:
// mean ± std at two decimals, min/max reward, mean steps.
func WriteReport(w io.Writer, result EvaluationResult) error {
	rule := strings.Repeat("=", reportRule)
	_, err := fmt.Fprintf(w,
		"%s\nEvaluation Results\n%s\n"+
			"Mean Reward:   %.2f ± %.2f\n"+
			"Min Reward:    %.2f\n"+
			"Max Reward:    %.2f\n"+
			"Mean Steps:    %.2f\n%s\n",
		rule, rule,
		result.MeanReward, result.StdReward,
		result.MinReward,
		result.MaxReward,
		result.MeanSteps,
		rule)
	return err
}
