package virtual

import (
	"sync"

	"go.uber.org/zap"

	"ledmatrix/pkg/bitmap"
	"ledmatrix/pkg/proto"
)

// Mock returns a panel that only logs and remembers what it was sent.
func Mock(name string, logger *zap.Logger) *Mocker {
	return &Mocker{name: name, l: logger.With(zap.String("port", name))}
}

type Mocker struct {
	mu   sync.Mutex
	name string
	l    *zap.Logger
	sent []proto.Command
	fail error
}

func (m *Mocker) Name() string {
	return m.name
}

// FailWith makes every following command return err.
func (m *Mocker) FailWith(err error) *Mocker {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
	return m
}

// Sent returns the commands received so far.
func (m *Mocker) Sent() []proto.Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]proto.Command(nil), m.sent...)
}

func (m *Mocker) SetPattern(id uint8) error {
	m.l.With(zap.Uint8("id", id)).Info("set-pattern")
	return m.record(proto.Pattern(id))
}

func (m *Mocker) SetBrightness(level uint8) error {
	m.l.With(zap.Uint8("level", level)).Info("set-brightness")
	return m.record(proto.Brightness(level))
}

func (m *Mocker) RenderMatrix(grid *bitmap.Matrix) error {
	m.l.With(zap.Int("lit", grid.Lit())).Info("render-matrix")
	return m.record(proto.DisplayBwImage(bitmap.Encode(grid)))
}

func (m *Mocker) record(cmd proto.Command) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, cmd)
	return nil
}

var _ proto.Control = (*Mocker)(nil)
