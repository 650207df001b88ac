package matrix

import (
	"time"

	"ledmatrix/pkg/proto"
)

type Option func(m *LedMatrix)

// Observer receives the outcome of every transfer.
type Observer interface {
	ObserveTransfer(port string, code proto.Code, bytes int, cost time.Duration, err error)
}

func WithDialer(dial proto.Dialer) Option {
	return func(m *LedMatrix) {
		m.serial.Dial = dial
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(m *LedMatrix) {
		m.serial.Timeout = timeout
	}
}

// WithRetries retries the open+write step up to n more times on transport
// failures. Commands replace device state entirely, so a replay is harmless.
func WithRetries(n int) Option {
	return func(m *LedMatrix) {
		if n > 0 {
			m.retries = n
		}
	}
}

func WithObserver(o Observer) Option {
	return func(m *LedMatrix) {
		m.metrics = o
	}
}
