package matrix

import (
	"go.uber.org/zap"

	"ledmatrix/pkg/bitmap"
	"ledmatrix/pkg/locator"
	"ledmatrix/pkg/proto"
)

func New(id locator.Identity, logger *zap.Logger, opts ...Option) *LedMatrix {
	m := &LedMatrix{
		id:     id,
		logger: logger.With(zap.String("port", id.PortName)),
		serial: proto.DefaultOptions(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// LedMatrix holds no connection: every command opens the port, writes one
// frame and closes it again.
type LedMatrix struct {
	id      locator.Identity
	logger  *zap.Logger
	serial  *proto.Options
	retries int
	metrics Observer
}

func (m *LedMatrix) Name() string {
	return m.id.PortName
}

func (m *LedMatrix) Identity() locator.Identity {
	return m.id
}

// SetPattern selects a built-in pattern. Ids are passed through unchecked.
func (m *LedMatrix) SetPattern(id uint8) error {
	return m.send(proto.Pattern(id))
}

// SetBrightness sends the raw level; the firmware does any clamping.
func (m *LedMatrix) SetBrightness(level uint8) error {
	return m.send(proto.Brightness(level))
}

func (m *LedMatrix) RenderMatrix(grid *bitmap.Matrix) error {
	return m.send(proto.DisplayBwImage(bitmap.Encode(grid)))
}

var _ proto.Control = (*LedMatrix)(nil)
