package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/ndl284/pacman-ai/internal/agent"
	"github.com/ndl284/pacman-ai/internal/arcade"
	"github.com/ndl284/pacman-ai/internal/config"
	"github.com/ndl284/pacman-ai/internal/events"
	"github.com/ndl284/pacman-ai/internal/render"
	"github.com/ndl284/pacman-ai/internal/runner"
	"github.com/ndl284/pacman-ai/internal/ui"
)

// The viewer plays a single random-agent episode and shows it in a window.
// Default mode records the whole episode first and replays it at a fixed
// rate; live mode mirrors frames while the episode is still running.
func main() {
	configPath := flag.String("config", "", "Path to config file")
	seed := flag.Int64("seed", 0, "Random seed for agent and environment (overrides config)")
	maxSteps := flag.Int("max-steps", 0, "Step cap for the episode, 0 for uncapped (overrides config)")
	live := flag.Bool("live", false, "Show the episode while it plays instead of replaying afterwards")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Get()
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Agent.Seed = *seed
		case "max-steps":
			cfg.Eval.MaxSteps = *maxSteps
		}
	})
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := setupLogging(cfg.Logging)

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
	run := runner.NewEpisodeRunner(environment, randomAgent,
		runner.WithEventBus(bus),
		runner.WithLogger(logger))

	opts := runner.EpisodeOptions{MaxSteps: cfg.Eval.MaxSteps, Render: true}

	ebiten.SetWindowSize(
		cfg.Env.Width*arcade.CellSize*cfg.UI.Scale,
		cfg.Env.Height*arcade.CellSize*cfg.UI.Scale)
	ebiten.SetWindowTitle(cfg.UI.Title)

	if *live {
		playLive(ctx, cfg, logger, bus, run, opts)
		return
	}
	playRecorded(ctx, cfg, logger, bus, run, opts)
}

// playRecorded runs the episode to completion, then replays the recording.
func playRecorded(ctx context.Context, cfg *config.Config, logger zerolog.Logger,
	bus *events.EventBus, run *runner.EpisodeRunner, opts runner.EpisodeOptions) {

	recorder := render.NewRecorder("episode-recorder")
	bus.Subscribe(recorder)

	fmt.Println("Playing episode...")
	result, err := run.PlayEpisode(ctx, opts)
	if err != nil {
		logger.Error().Err(err).Msg("Episode failed")
		os.Exit(1)
	}

	fmt.Printf("Episode finished: Reward = %.1f, Steps = %d\n", result.TotalReward, result.Steps)
	fmt.Printf("Recorded %d frames, replaying...\n", recorder.Len())

	replay, err := ui.NewReplay(recorder.Frames(), recorder.TotalReward(),
		cfg.UI.ReplayInterval, cfg.UI.Scale)
	if err != nil {
		logger.Error().Err(err).Msg("Nothing to replay")
		os.Exit(1)
	}
	if err := ebiten.RunGame(replay); err != nil {
		logger.Error().Err(err).Msg("Replay window failed")
		os.Exit(1)
	}
}

// playLive mirrors frames into a window while the episode runs on a side
// goroutine, paced so a human can follow it.
func playLive(ctx context.Context, cfg *config.Config, logger zerolog.Logger,
	bus *events.EventBus, run *runner.EpisodeRunner, opts runner.EpisodeOptions) {

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bus.Subscribe(render.NewPacer("step-pacer",
		time.Duration(cfg.Render.StepDelayMs)*time.Millisecond))

	view := ui.NewLiveView("live-view",
		cfg.Env.Width*arcade.CellSize, cfg.Env.Height*arcade.CellSize, cfg.UI.Scale)
	view.CloseOnFinish = true
	bus.Subscribe(view)

	var (
		result runner.EpisodeResult
		runErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		result, runErr = run.PlayEpisode(ctx, opts)
		view.Finish()
	}()

	if err := ebiten.RunGame(view); err != nil {
		logger.Warn().Err(err).Msg("Display window closed with error")
	}
	// Closing the window early cancels the episode instead of letting it
	// run on invisibly.
	cancel()
	<-done

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logger.Error().Err(runErr).Msg("Episode failed")
		os.Exit(1)
	}
	if runErr == nil {
		fmt.Printf("Episode finished: Reward = %.1f, Steps = %d\n", result.TotalReward, result.Steps)
	}
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
