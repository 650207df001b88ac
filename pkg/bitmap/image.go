package bitmap

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// DefaultThreshold is the grayscale level at and above which a pixel is lit.
const DefaultThreshold = 128

// FromImage scales src to fill the panel and lights every pixel whose
// luminance reaches threshold. Transparent pixels stay dark.
func FromImage(src image.Image, threshold uint8) *Matrix {
	filled := imaging.Fill(src, Width, Height, imaging.Center, imaging.Lanczos)
	gray := imaging.Grayscale(filled)

	m := &Matrix{}
	for x := 0; x < Width; x++ {
		for y := 0; y < Height; y++ {
			i := y*gray.Stride + x*4
			if gray.Pix[i+3] == 0 {
				continue
			}
			m[x][y] = gray.Pix[i] >= threshold
		}
	}

	return m
}

func DecodeImage(r io.Reader, threshold uint8) (*Matrix, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "image decode failed")
	}
	return FromImage(img, threshold), nil
}
