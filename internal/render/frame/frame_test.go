package frame

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClone_CopiesPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{9, 0, 0, 255})
	f := New(img)

	clone := f.Clone()
	img.SetRGBA(0, 0, color.RGBA{200, 0, 0, 255})

	assert.Equal(t, uint8(9), clone.Image.RGBAAt(0, 0).R,
		"clone must not share the backing buffer")
}

func TestClone_NilSafe(t *testing.T) {
	var f *Frame
	clone := f.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, image.Rectangle{}, clone.Bounds())
}

func TestBounds(t *testing.T) {
	f := New(image.NewRGBA(image.Rect(0, 0, 8, 4)))
	b := f.Bounds()
	assert.Equal(t, 8, b.Dx())
	assert.Equal(t, 4, b.Dy())
}
