package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/ndl284/pacman-ai/internal/agent"
	"github.com/ndl284/pacman-ai/internal/arcade"
	"github.com/ndl284/pacman-ai/internal/config"
	"github.com/ndl284/pacman-ai/internal/events"
	"github.com/ndl284/pacman-ai/internal/events/subscribers"
	"github.com/ndl284/pacman-ai/internal/render"
	"github.com/ndl284/pacman-ai/internal/runner"
	"github.com/ndl284/pacman-ai/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	episodes := flag.Int("episodes", 0, "Number of episodes to play (overrides config)")
	maxSteps := flag.Int("max-steps", 0, "Per-episode step cap, 0 for uncapped (overrides config)")
	seed := flag.Int64("seed", 0, "Random seed for agent and environment (overrides config)")
	plotPath := flag.String("plot", "", "Write a reward-per-episode plot to this file (overrides config)")
	watch := flag.Bool("watch", false, "Show gameplay in a window while evaluating")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Get()

	// Command-line flags win over the config file, but only when actually set.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "episodes":
			cfg.Eval.Episodes = *episodes
		case "max-steps":
			cfg.Eval.MaxSteps = *maxSteps
		case "seed":
			cfg.Agent.Seed = *seed
		case "plot":
			cfg.Eval.PlotPath = *plotPath
		}
	})
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogging(cfg.Logging)
	logger.Info().
		Int("episodes", cfg.Eval.Episodes).
		Int("max_steps", cfg.Eval.MaxSteps).
		Int64("seed", cfg.Agent.Seed).
		Bool("watch", *watch).
		Msg("Starting random agent evaluation")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	environment := arcade.New(arcade.Config{
		Width:    cfg.Env.Width,
		Height:   cfg.Env.Height,
		Ghosts:   cfg.Env.Ghosts,
		Lives:    cfg.Env.Lives,
		MaxTicks: cfg.Env.MaxTicks,
		Rng:      rand.New(rand.NewSource(cfg.Agent.Seed)),
		Logger:   logger,
	})
	defer environment.Close()

	randomAgent := agent.NewRandomAgent(environment.ActionSpace(),
		agent.WithSeed(cfg.Agent.Seed),
		agent.WithLogger(logger))

	bus := events.NewEventBus(logger)

	eventLog := subscribers.NewLoggerSubscriber("event-log", logger, zerolog.DebugLevel)
	eventLog.SetEventFilter([]string{events.TypeEpisodeCompleted, events.TypeEvaluationCompleted})
	bus.Subscribe(eventLog)

	totalEpisodes := cfg.Eval.Episodes
	bus.SubscribeFunc(events.TypeEpisodeCompleted, func(event events.Event) {
		e, ok := event.(events.EpisodeCompletedEvent)
		if !ok {
			return
		}
		err := runner.WriteEpisodeLine(os.Stdout, e.Episode, totalEpisodes, runner.EpisodeResult{
			TotalReward: e.TotalReward,
			Steps:       e.Steps,
			Terminated:  e.Terminated,
			Truncated:   e.Truncated,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to write episode progress line")
		}
	})

	run := runner.NewEpisodeRunner(environment, randomAgent,
		runner.WithEventBus(bus),
		runner.WithLogger(logger))
	evaluator := runner.NewEvaluator(run, runner.WithEvaluatorLogger(logger))

	printBanner(cfg)

	opts := runner.EvalOptions{
		Episodes: cfg.Eval.Episodes,
		MaxSteps: cfg.Eval.MaxSteps,
		Render:   *watch,
	}

	var (
		result  runner.EvaluationResult
		evalErr error
	)
	if *watch {
		bus.Subscribe(render.NewPacer("step-pacer",
			time.Duration(cfg.Render.StepDelayMs)*time.Millisecond))

		live := ui.NewLiveView("live-view",
			cfg.Env.Width*arcade.CellSize, cfg.Env.Height*arcade.CellSize, cfg.UI.Scale)
		bus.Subscribe(live)

		ebiten.SetWindowSize(
			cfg.Env.Width*arcade.CellSize*cfg.UI.Scale,
			cfg.Env.Height*arcade.CellSize*cfg.UI.Scale)
		ebiten.SetWindowTitle(cfg.UI.Title)

		// ebiten owns the main goroutine, so the evaluation runs beside it
		// and closes the window when the last episode finishes.
		done := make(chan struct{})
		go func() {
			defer close(done)
			result, evalErr = evaluator.Evaluate(ctx, opts)
			live.Finish()
		}()
		if err := ebiten.RunGame(live); err != nil {
			logger.Warn().Err(err).Msg("Display window closed with error")
		}
		stop()
		<-done
	} else {
		result, evalErr = evaluator.Evaluate(ctx, opts)
	}
	if evalErr != nil {
		logger.Error().Err(evalErr).Msg("Evaluation failed")
		os.Exit(1)
	}

	fmt.Println()
	runner.WriteReport(os.Stdout, result)

	if cfg.Eval.PlotPath != "" {
		if err := runner.SaveRewardPlot(cfg.Eval.PlotPath, result); err != nil {
			logger.Error().Err(err).Msg("Failed to save reward plot")
			os.Exit(1)
		}
		fmt.Printf("Reward plot saved to %s\n", cfg.Eval.PlotPath)
	}
}

func printBanner(cfg *config.Config) {
	rule := strings.Repeat("=", 60)
	fmt.Println(rule)
	fmt.Println("Random Agent Evaluation")
	fmt.Println(rule)
	fmt.Printf("Board:     %dx%d, %d ghosts, %d lives\n",
		cfg.Env.Width, cfg.Env.Height, cfg.Env.Ghosts, cfg.Env.Lives)
	fmt.Printf("Actions:   Discrete(%d)\n", arcade.NumActions)
	fmt.Printf("Episodes:  %d\n", cfg.Eval.Episodes)
	if cfg.Eval.MaxSteps > 0 {
		fmt.Printf("Step cap:  %d\n", cfg.Eval.MaxSteps)
	}
	fmt.Printf("Seed:      %d\n", cfg.Agent.Seed)
	fmt.Println(rule)
}

func setupLogging(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "json" {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return logger.Level(level).With().Timestamp().Logger()
}
