// Package frame holds the rendered-picture value shared by event payloads
// and display code. It imports nothing above it, so both sides can depend
// on it freely.
package frame

import (
	"image"
)

// Frame is a single rendered picture of the environment, in RGBA pixels.
// Frames are produced by an environment's Render call and consumed by
// display code; the episode loop itself never inspects them.
type Frame struct {
	Image *image.RGBA
}

// New wraps an RGBA image as a frame.
func New(img *image.RGBA) *Frame {
	return &Frame{Image: img}
}

// Bounds returns the pixel bounds of the frame.
func (f *Frame) Bounds() image.Rectangle {
	if f == nil || f.Image == nil {
		return image.Rectangle{}
	}
	return f.Image.Bounds()
}

// Clone returns a deep copy of the frame. Environments are free to reuse
// their backing pixel buffer between Render calls, so anything that holds
// on to a frame past the current step should clone it first.
func (f *Frame) Clone() *Frame {
	if f == nil || f.Image == nil {
		return &Frame{}
	}
	dst := image.NewRGBA(f.Image.Bounds())
	copy(dst.Pix, f.Image.Pix)
	return &Frame{Image: dst}
}
