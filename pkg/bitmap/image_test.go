package bitmap

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestFromImageUniform(t *testing.T) {
	white := FromImage(solid(90, 340, color.White), DefaultThreshold)
	assert.Equal(t, Width*Height, white.Lit())

	black := FromImage(solid(90, 340, color.Black), DefaultThreshold)
	assert.Equal(t, 0, black.Lit())

	transparent := FromImage(solid(90, 340, color.NRGBA{R: 255, G: 255, B: 255}), DefaultThreshold)
	assert.Equal(t, 0, transparent.Lit())
}

func TestFromImageTopHalf(t *testing.T) {
	img := solid(90, 340, color.Black)
	for x := 0; x < 90; x++ {
		for y := 0; y < 170; y++ {
			img.Set(x, y, color.White)
		}
	}

	m := FromImage(img, DefaultThreshold)
	for x := 0; x < Width; x++ {
		for y := 0; y < 15; y++ {
			assert.True(t, m.At(x, y), "(%d,%d)", x, y)
		}
		for y := 19; y < Height; y++ {
			assert.False(t, m.At(x, y), "(%d,%d)", x, y)
		}
	}
}

func TestDecodeImage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(18, 68, color.White)))

	m, err := DecodeImage(&buf, DefaultThreshold)
	require.NoError(t, err)
	assert.Equal(t, Width*Height, m.Lit())

	_, err = DecodeImage(bytes.NewReader([]byte("not an image")), DefaultThreshold)
	assert.Error(t, err)
}
