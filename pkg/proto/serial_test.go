package proto

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePort struct {
	buf    bytes.Buffer
	werr   error
	short  bool
	block  chan struct{}
	once   sync.Once
	closed bool
}

func (p *fakePort) Write(b []byte) (int, error) {
	if p.block != nil {
		<-p.block
	}
	if p.werr != nil {
		return 0, p.werr
	}
	if p.short {
		b = b[:len(b)-1]
	}
	return p.buf.Write(b)
}

func (p *fakePort) Close() error {
	p.closed = true
	if p.block != nil {
		p.once.Do(func() { close(p.block) })
	}
	return nil
}

func dialTo(port *fakePort, err error) *Options {
	opts := DefaultOptions()
	opts.Dial = func(name string, opts *Options) (Port, error) {
		if err != nil {
			return nil, err
		}
		return port, nil
	}
	return opts
}

func TestSerialWrite(t *testing.T) {
	port := &fakePort{}
	s := NewSerial("/dev/ttyACM0")

	require.NoError(t, s.Open(dialTo(port, nil)))
	n, err := s.Write(Frame(Pattern(5)))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.Equal(t, 4, n)
	assert.Equal(t, []byte{0x32, 0xAC, 0x01, 0x05}, port.buf.Bytes())
	assert.True(t, port.closed)
}

func TestSerialOpenErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		permission bool
	}{
		{
			name:       "eacces",
			err:        &os.PathError{Op: "open", Path: "/dev/ttyACM0", Err: syscall.EACCES},
			permission: true,
		},
		{
			name:       "wrapped os permission",
			err:        fmt.Errorf("open port: %w", os.ErrPermission),
			permission: true,
		},
		{
			name: "busy",
			err:  &os.PathError{Op: "open", Path: "/dev/ttyACM0", Err: syscall.EBUSY},
		},
		{
			name: "missing",
			err:  os.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSerial("/dev/ttyACM0").Open(dialTo(nil, tt.err))
			require.Error(t, err)

			assert.Equal(t, tt.permission, IsPermissionDenied(err))
			assert.Equal(t, !tt.permission, IsTransport(err))
			assert.True(t, errors.Is(err, tt.err))

			if tt.permission {
				assert.Contains(t, err.Error(), "udev")
			}
		})
	}
}

func TestSerialWriteErrors(t *testing.T) {
	t.Run("io error", func(t *testing.T) {
		s := NewSerial("COM3")
		require.NoError(t, s.Open(dialTo(&fakePort{werr: io.ErrClosedPipe}, nil)))

		_, err := s.Write(Frame(Brightness(1)))
		var te *TransportError
		require.True(t, errors.As(err, &te))
		assert.Equal(t, "write", te.Op)
		assert.Equal(t, "COM3", te.Port)
		assert.ErrorIs(t, err, io.ErrClosedPipe)
	})

	t.Run("short write", func(t *testing.T) {
		s := NewSerial("COM3")
		require.NoError(t, s.Open(dialTo(&fakePort{short: true}, nil)))

		_, err := s.Write(Frame(Brightness(1)))
		assert.ErrorIs(t, err, io.ErrShortWrite)
	})

	t.Run("not open", func(t *testing.T) {
		_, err := NewSerial("COM3").Write([]byte{1})
		assert.ErrorIs(t, err, ErrNotOpen)
	})

	t.Run("timeout", func(t *testing.T) {
		port := &fakePort{block: make(chan struct{})}
		opts := dialTo(port, nil)
		opts.Timeout = 5 * time.Millisecond

		s := NewSerial("COM3")
		require.NoError(t, s.Open(opts))

		_, err := s.Write(Frame(Brightness(1)))
		assert.ErrorIs(t, err, ErrTimeout)
		assert.True(t, IsTransport(err))
		assert.True(t, port.closed)
		assert.NoError(t, s.Close())
	})
}

func TestClassifyKeepsTypedErrors(t *testing.T) {
	pd := &PermissionDeniedError{Port: "a", Hint: PermissionHint, Err: os.ErrPermission}
	assert.Same(t, pd, Classify("b", "write", pd))
	assert.Nil(t, Classify("b", "write", nil))
}
