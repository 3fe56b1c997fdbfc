package arcade

import (
	"image"
	"image/color"

	"github.com/ndl284/pacman-ai/internal/render"
)

// CellSize is the width and height of one board cell in pixels.
const CellSize = 12

var (
	floorColor  = color.RGBA{0, 0, 0, 255}
	wallColor   = color.RGBA{33, 33, 222, 255}
	pelletColor = color.RGBA{255, 255, 255, 255}
	playerColor = color.RGBA{255, 255, 0, 255}
	ghostColor  = color.RGBA{222, 40, 40, 255}
	frightColor = color.RGBA{60, 60, 255, 255}
)

// frameRenderer draws engine state into a reused RGBA buffer.
type frameRenderer struct {
	img *image.RGBA
}

func newFrameRenderer() *frameRenderer {
	return &frameRenderer{}
}

func (r *frameRenderer) draw(e *Engine) *render.Frame {
	board := e.board
	w, h := board.W*CellSize, board.H*CellSize
	if r.img == nil || r.img.Bounds().Dx() != w || r.img.Bounds().Dy() != h {
		r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	}

	for i, t := range board.T {
		x, y := board.XY(i)
		switch t {
		case TileWall:
			r.fillCell(x, y, 0, wallColor)
		case TilePellet:
			r.fillCell(x, y, 0, floorColor)
			r.fillCell(x, y, CellSize/2-1, pelletColor)
		case TilePower:
			r.fillCell(x, y, 0, floorColor)
			r.fillCell(x, y, CellSize/2-3, pelletColor)
		default:
			r.fillCell(x, y, 0, floorColor)
		}
	}

	gc := ghostColor
	if e.Powered() {
		gc = frightColor
	}
	for _, g := range e.ghosts {
		r.fillCell(g.X, g.Y, 1, gc)
	}
	r.fillCell(e.player.X, e.player.Y, 1, playerColor)

	return render.NewFrame(r.img)
}

// fillCell paints the cell at board coordinates, inset by the given number
// of pixels on every side.
func (r *frameRenderer) fillCell(cx, cy, inset int, c color.RGBA) {
	x0, y0 := cx*CellSize+inset, cy*CellSize+inset
	x1, y1 := (cx+1)*CellSize-inset, (cy+1)*CellSize-inset
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r.img.SetRGBA(x, y, c)
		}
	}
}
