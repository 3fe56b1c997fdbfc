package runner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteEpisodeLine_Format(t *testing.T) {
	var sb strings.Builder
	err := WriteEpisodeLine(&sb, 3, 5, EpisodeResult{TotalReward: 210.0, Steps: 643})
	require.NoError(t, err)

	assert.Equal(t, "Episode 3/5: Reward = 210.0, Steps = 643\n", sb.String())
}

func TestWriteEpisodeLine_OneDecimalReward(t *testing.T) {
	var sb strings.Builder
	err := WriteEpisodeLine(&sb, 1, 1, EpisodeResult{TotalReward: 12.345, Steps: 9})
	require.NoError(t, err)

	assert.Equal(t, "Episode 1/1: Reward = 12.3, Steps = 9\n", sb.String())
}

func TestWriteReport_Format(t *testing.T) {
	result := EvaluationResult{
		MeanReward:     123.456,
		StdReward:      7.891,
		MinReward:      100.0,
		MaxReward:      150.5,
		MeanSteps:      420.25,
		EpisodeRewards: []float64{100.0, 150.5},
		EpisodeLengths: []int{400, 440},
	}

	var sb strings.Builder
	require.NoError(t, WriteReport(&sb, result))
	out := sb.String()

	assert.Contains(t, out, "Evaluation Results")
	assert.Contains(t, out, "Mean Reward:   123.46 ± 7.89")
	assert.Contains(t, out, "Min Reward:    100.00")
	assert.Contains(t, out, "Max Reward:    150.50")
	assert.Contains(t, out, "Mean Steps:    420.25")
	assert.Contains(t, out, strings.Repeat("=", 60))
}

func TestSaveRewardPlot_WritesFile(t *testing.T) {
	result := EvaluationResult{
		MeanReward:     2.0,
		EpisodeRewards: []float64{1.0, 2.0, 3.0},
		EpisodeLengths: []int{10, 20, 30},
	}

	path := filepath.Join(t.TempDir(), "rewards.png")
	require.NoError(t, SaveRewardPlot(path, result))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSaveRewardPlot_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rewards.png")
	err := SaveRewardPlot(path, EvaluationResult{})
	assert.ErrorIs(t, err, ErrNoEpisodes)
}
