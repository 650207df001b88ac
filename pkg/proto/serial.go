package proto

import (
	"io"
	"time"

	"go.bug.st/serial"
)

const (
	DefaultBaudRate = 115200
	DefaultTimeout  = 20 * time.Millisecond
)

// Port is the part of a serial port the protocol needs: it never reads.
type Port interface {
	io.Writer
	io.Closer
}

type Dialer func(name string, opts *Options) (Port, error)

type Options struct {
	BaudRate int
	Timeout  time.Duration
	Dial     Dialer
}

func DefaultOptions() *Options {
	return &Options{
		BaudRate: DefaultBaudRate,
		Timeout:  DefaultTimeout,
		Dial:     DialSerial,
	}
}

// DialSerial opens a real serial port.
func DialSerial(name string, opts *Options) (Port, error) {
	port, err := serial.Open(name, &serial.Mode{BaudRate: opts.BaudRate})
	if err != nil {
		return nil, err
	}

	if opts.Timeout > 0 {
		if err := port.SetReadTimeout(opts.Timeout); err != nil {
			_ = port.Close()
			return nil, err
		}
	}

	return port, nil
}

func NewSerial(name string) *Serial {
	return &Serial{name: name}
}

type Serial struct {
	name    string
	timeout time.Duration
	port    Port
}

func (s *Serial) Name() string {
	return s.name
}

func (s *Serial) Open(opts *Options) error {
	if opts == nil {
		opts = DefaultOptions()
	}

	dial := opts.Dial
	if dial == nil {
		dial = DialSerial
	}

	port, err := dial(s.name, opts)
	if err != nil {
		return Classify(s.name, "open", err)
	}

	s.port = port
	s.timeout = opts.Timeout
	return nil
}

func (s *Serial) Close() error {
	if s.port == nil {
		return nil
	}

	err := s.port.Close()
	s.port = nil
	return Classify(s.name, "close", err)
}

// Write sends p in one go. A write that outlasts the timeout closes the port
// so the blocked call returns.
func (s *Serial) Write(p []byte) (n int, err error) {
	if s.port == nil {
		return 0, &TransportError{Port: s.name, Op: "write", Err: ErrNotOpen}
	}

	if s.timeout <= 0 {
		return s.write(s.port, p)
	}

	type result struct {
		n   int
		err error
	}

	port := s.port
	done := make(chan result, 1)
	go func() {
		n, err := s.write(port, p)
		done <- result{n, err}
	}()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case r := <-done:
		return r.n, r.err
	case <-timer.C:
		_ = port.Close()
		s.port = nil
		return 0, &TransportError{Port: s.name, Op: "write", Err: ErrTimeout}
	}
}

func (s *Serial) write(port Port, p []byte) (int, error) {
	n, err := port.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return n, Classify(s.name, "write", err)
}
