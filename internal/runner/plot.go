package runner

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// SaveRewardPlot writes a reward-per-episode line plot for an evaluation
// run to the given file. The x axis follows play order, so the curve reads
// left to right as the run progressed.
func SaveRewardPlot(path string, result EvaluationResult) error {
	if result.Episodes() == 0 {
		return fmt.Errorf("%w: no episodes to plot", ErrNoEpisodes)
	}

	p := plot.New()
	p.Title.Text = "Reward per Episode"
	p.X.Label.Text = "Episode"
	p.Y.Label.Text = "Total reward"

	points := make(plotter.XYs, len(result.EpisodeRewards))
	for i, reward := range result.EpisodeRewards {
		points[i] = plotter.XY{X: float64(i + 1), Y: reward}
	}

	line, err := plotter.NewLine(points)
	if err != nil {
		return fmt.Errorf("build reward line: %w", err)
	}
	line.Color = plotutil.Color(0)
	p.Add(line)
	p.Legend.Add("reward", line)

	mean := plotter.NewFunction(func(float64) float64 { return result.MeanReward })
	mean.Color = plotutil.Color(1)
	mean.Dashes = plotutil.Dashes(1)
	p.Add(mean)
	p.Legend.Add("mean", mean)

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save reward plot: %w", err)
	}
	return nil
}
