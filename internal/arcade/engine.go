package arcade

import (
	"errors"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// Scoring and timing constants.
const (
	PelletScore = 10
	PowerScore  = 50
	GhostScore  = 200

	PowerDuration = 40 // ticks of ghost vulnerability after a power pellet

	DefaultWidth  = 19
	DefaultHeight = 15
	DefaultGhosts = 3
	DefaultLives  = 3
)

var ErrGameOver = errors.New("game is over")

// Config configures an arcade engine.
type Config struct {
	Width  int
	Height int
	Ghosts int
	Lives  int
	// MaxTicks truncates the episode after this many ticks. Zero disables
	// the internal limit.
	MaxTicks int
	Rng      *rand.Rand
	Logger   zerolog.Logger
}

func (c *Config) applyDefaults() {
	if c.Width <= 4 {
		c.Width = DefaultWidth
	}
	if c.Height <= 4 {
		c.Height = DefaultHeight
	}
	if c.Ghosts <= 0 {
		c.Ghosts = DefaultGhosts
	}
	if c.Lives <= 0 {
		c.Lives = DefaultLives
	}
	if c.Rng == nil {
		c.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
}

// Engine runs one maze-chase game: a player eats pellets for score while
// random-walking ghosts chase it off its lives. It owns its random source;
// nothing here reads or seeds global state.
type Engine struct {
	cfg    Config
	rng    *rand.Rand
	logger zerolog.Logger

	board       *Board
	player      Point
	playerSpawn Point
	ghosts      []Point
	ghostSpawn  Point

	score   int
	lives   int
	tick    int
	power   int
	pellets int
	done    bool
}

// NewEngine creates an engine and deals the first board.
func NewEngine(cfg Config) *Engine {
	cfg.applyDefaults()
	e := &Engine{
		cfg:    cfg,
		rng:    cfg.Rng,
		logger: cfg.Logger.With().Str("component", "arcade_engine").Logger(),
	}
	e.reset()
	return e
}

// Reseed swaps the engine's random source. Used by the environment adapter
// to honor seeded resets.
func (e *Engine) Reseed(seed int64) {
	e.rng = rand.New(rand.NewSource(seed))
}

// Reset deals a fresh board and zeroes the episode state.
func (e *Engine) Reset() {
	e.reset()
}

func (e *Engine) reset() {
	w, h := e.cfg.Width, e.cfg.Height
	e.playerSpawn = Point{X: w / 2, Y: h - 2}
	e.ghostSpawn = Point{X: w / 2, Y: 1}

	e.board = generateBoard(w, h, e.playerSpawn, e.ghostSpawn, e.rng)
	e.player = e.playerSpawn
	e.ghosts = make([]Point, e.cfg.Ghosts)
	for i := range e.ghosts {
		e.ghosts[i] = e.ghostSpawn
	}

	e.score = 0
	e.lives = e.cfg.Lives
	e.tick = 0
	e.power = 0
	e.pellets = e.board.Pellets()
	e.done = false

	e.logger.Debug().
		Int("width", w).
		Int("height", h).
		Int("pellets", e.pellets).
		Int("ghosts", len(e.ghosts)).
		Msg("Board dealt")
}

// StepOutcome is the engine-level result of one tick.
type StepOutcome struct {
	Reward     float64
	Terminated bool
	Truncated  bool
}

// Step advances the game by one tick: the player moves and eats, the
// ghosts move, collisions resolve. The reward is the score gained during
// the tick.
func (e *Engine) Step(action int) (StepOutcome, error) {
	if e.done {
		return StepOutcome{}, ErrGameOver
	}

	e.tick++
	scoreBefore := e.score

	if e.power > 0 {
		e.power--
	}

	e.movePlayer(action)
	e.moveGhosts()
	e.resolveCollisions()

	terminated := false
	switch {
	case e.lives <= 0:
		terminated = true
		e.logger.Debug().Int("tick", e.tick).Int("score", e.score).Msg("Out of lives")
	case e.pellets == 0:
		terminated = true
		e.logger.Debug().Int("tick", e.tick).Int("score", e.score).Msg("Board cleared")
	}

	truncated := false
	if !terminated && e.cfg.MaxTicks > 0 && e.tick >= e.cfg.MaxTicks {
		truncated = true
		e.logger.Debug().Int("tick", e.tick).Msg("Tick limit reached")
	}

	e.done = terminated || truncated

	return StepOutcome{
		Reward:     float64(e.score - scoreBefore),
		Terminated: terminated,
		Truncated:  truncated,
	}, nil
}

func (e *Engine) movePlayer(action int) {
	if action < 0 || action >= NumActions {
		return
	}
	d := actionDeltas[action]
	nx, ny := e.player.X+d.X, e.player.Y+d.Y
	if !e.board.In(nx, ny) || e.board.At(nx, ny) == TileWall {
		return
	}
	e.player = Point{X: nx, Y: ny}

	switch e.board.At(nx, ny) {
	case TilePellet:
		e.score += PelletScore
		e.pellets--
		e.board.Set(nx, ny, TileFloor)
	case TilePower:
		e.score += PowerScore
		e.pellets--
		e.power = PowerDuration
		e.board.Set(nx, ny, TileFloor)
	}
}

func (e *Engine) moveGhosts() {
	for i, g := range e.ghosts {
		open := make([]Point, 0, 4)
		for _, d := range actionDeltas[ActionUp:] {
			nx, ny := g.X+d.X, g.Y+d.Y
			if e.board.In(nx, ny) && e.board.At(nx, ny) != TileWall {
				open = append(open, Point{X: nx, Y: ny})
			}
		}
		if len(open) == 0 {
			continue
		}
		e.ghosts[i] = open[e.rng.Intn(len(open))]
	}
}

func (e *Engine) resolveCollisions() {
	for i, g := range e.ghosts {
		if g != e.player {
			continue
		}
		if e.power > 0 {
			e.score += GhostScore
			e.ghosts[i] = e.ghostSpawn
			e.logger.Debug().Int("ghost", i).Int("tick", e.tick).Msg("Ghost eaten")
			continue
		}

		e.lives--
		e.logger.Debug().Int("lives", e.lives).Int("tick", e.tick).Msg("Life lost")
		e.player = e.playerSpawn
		for j := range e.ghosts {
			e.ghosts[j] = e.ghostSpawn
		}
		return
	}
}

// Accessors.
func (e *Engine) Score() int     { return e.score }
func (e *Engine) Lives() int     { return e.lives }
func (e *Engine) Tick() int      { return e.tick }
func (e *Engine) Pellets() int   { return e.pellets }
func (e *Engine) Powered() bool  { return e.power > 0 }
func (e *Engine) IsOver() bool   { return e.done }
func (e *Engine) Player() Point  { return e.player }
func (e *Engine) Ghosts() []Point {
	out := make([]Point, len(e.ghosts))
	copy(out, e.ghosts)
	return out
}

// BoardCopy returns a snapshot of the current board.
func (e *Engine) BoardCopy() *Board {
	b := NewBoard(e.board.W, e.board.H)
	copy(b.T, e.board.T)
	return b
}
