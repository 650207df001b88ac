package proto

import (
	"ledmatrix/pkg/bitmap"
)

// Control is one addressable LED matrix panel.
type Control interface {
	Name() string

	SetPattern(id uint8) error
	SetBrightness(level uint8) error

	RenderMatrix(m *bitmap.Matrix) error
}
