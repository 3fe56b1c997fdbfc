package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/rs/zerolog"

	"github.com/ndl284/pacman-ai/internal/agent"
	"github.com/ndl284/pacman-ai/internal/arcade"
	"github.com/ndl284/pacman-ai/internal/env"
	"github.com/ndl284/pacman-ai/internal/runner"
)

// envcheck verifies the environment wiring end to end: construct, reset,
// step, render, then a short capped episode through the runner. Each check
// prints a pass/fail line; any failure exits non-zero.
func main() {
	seed := flag.Int64("seed", 42, "Random seed for the check run")
	flag.Parse()

	fmt.Println("Checking environment setup...")
	fmt.Println()

	ok := true
	check := func(name string, err error) {
		if err != nil {
			fmt.Printf("  ✗ %s: %v\n", name, err)
			ok = false
			return
		}
		fmt.Printf("  ✓ %s\n", name)
	}

	environment := arcade.New(arcade.Config{
		Rng:    rand.New(rand.NewSource(*seed)),
		Logger: zerolog.Nop(),
	})
	defer environment.Close()

	space := environment.ActionSpace()
	fmt.Printf("  ✓ environment created (actions: %v)\n", space)

	obs, info, err := environment.Reset(env.WithSeed(*seed))
	check("reset", err)
	if err == nil {
		fmt.Printf("    observation: %+v\n", obs)
		fmt.Printf("    info: %v\n", info)
	}

	if ok {
		res, err := environment.Step(space.Sample())
		check("single step", err)
		if err == nil {
			fmt.Printf("    reward: %.1f, terminated: %v, truncated: %v\n",
				res.Reward, res.Terminated, res.Truncated)
		}
	}

	if ok {
		frame, err := environment.Render()
		check("render", err)
		if err == nil {
			b := frame.Bounds()
			fmt.Printf("    frame: %dx%d\n", b.Dx(), b.Dy())
		}
	}

	if ok {
		randomAgent := agent.NewRandomAgent(space, agent.WithSeed(*seed))
		run := runner.NewEpisodeRunner(environment, randomAgent)
		result, err := run.PlayEpisode(context.Background(), runner.EpisodeOptions{MaxSteps: 50})
		check("capped episode", err)
		if err == nil {
			fmt.Printf("    reward: %.1f, steps: %d\n", result.TotalReward, result.Steps)
		}
	}

	fmt.Println()
	if !ok {
		fmt.Println("Environment check FAILED")
		os.Exit(1)
	}
	fmt.Println("Environment check passed")
}
