package arcade

import (
	"math/rand"
)

// Tile is the content of one board cell.
type Tile uint8

const (
	TileFloor Tile = iota
	TileWall
	TilePellet
	TilePower
)

// Actions understood by the engine. Action 0 is a no-op, matching the
// NOOP-first convention of Atari action sets.
const (
	ActionStay = iota
	ActionUp
	ActionRight
	ActionDown
	ActionLeft

	NumActions
)

// Point is a board coordinate.
type Point struct {
	X, Y int
}

var actionDeltas = [NumActions]Point{
	ActionStay:  {0, 0},
	ActionUp:    {0, -1},
	ActionRight: {1, 0},
	ActionDown:  {0, 1},
	ActionLeft:  {-1, 0},
}

// Board is the maze grid, stored row-major.
type Board struct {
	W, H int
	T    []Tile
}

// NewBoard creates an empty floor board.
func NewBoard(w, h int) *Board {
	return &Board{W: w, H: h, T: make([]Tile, w*h)}
}

// Idx converts coordinates to a slice index.
func (b *Board) Idx(x, y int) int { return y*b.W + x }

// XY converts a slice index to coordinates.
func (b *Board) XY(i int) (int, int) { return i % b.W, i / b.W }

// In reports whether the coordinates are on the board.
func (b *Board) In(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// At returns the tile at the coordinates.
func (b *Board) At(x, y int) Tile { return b.T[b.Idx(x, y)] }

// Set replaces the tile at the coordinates.
func (b *Board) Set(x, y int, t Tile) { b.T[b.Idx(x, y)] = t }

// Pellets counts the remaining pellets and power pellets.
func (b *Board) Pellets() int {
	n := 0
	for _, t := range b.T {
		if t == TilePellet || t == TilePower {
			n++
		}
	}
	return n
}

// Interior wall density, percent of candidate cells.
const wallRatio = 8

// generateBoard builds a bordered maze: walls around the edge, scattered
// interior walls, pellets on every remaining floor cell and one power
// pellet near each inner corner. Cells around the spawn points are kept
// clear so the player and ghosts always start with room to move.
func generateBoard(w, h int, playerSpawn, ghostSpawn Point, rng *rand.Rand) *Board {
	b := NewBoard(w, h)

	for x := 0; x < w; x++ {
		b.Set(x, 0, TileWall)
		b.Set(x, h-1, TileWall)
	}
	for y := 0; y < h; y++ {
		b.Set(0, y, TileWall)
		b.Set(w-1, y, TileWall)
	}

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			if nearSpawn(x, y, playerSpawn) || nearSpawn(x, y, ghostSpawn) {
				continue
			}
			if rng.Intn(100) < wallRatio {
				b.Set(x, y, TileWall)
				continue
			}
			b.Set(x, y, TilePellet)
		}
	}

	for _, c := range []Point{{1, 1}, {w - 2, 1}, {1, h - 2}, {w - 2, h - 2}} {
		if b.At(c.X, c.Y) != TileWall && c != playerSpawn && c != ghostSpawn {
			b.Set(c.X, c.Y, TilePower)
		}
	}

	return b
}

func nearSpawn(x, y int, spawn Point) bool {
	dx, dy := x-spawn.X, y-spawn.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx <= 1 && dy <= 1
}
