package render

import (
	"image"

	"github.com/ndl284/pacman-ai/internal/render/frame"
)

// Frame aliases the leaf frame type so event payloads and display code
// share one identity without this package's subscribers pulling the events
// package into a cycle.
type Frame = frame.Frame

// NewFrame wraps an RGBA image as a frame.
func NewFrame(img *image.RGBA) *Frame {
	return frame.New(img)
}
