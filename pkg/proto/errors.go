package proto

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"go.bug.st/serial"
)

var (
	ErrNoDevicesFound = errors.New("no LED matrix devices found")
	ErrTimeout        = errors.New("serial write timed out")
	ErrNotOpen        = errors.New("serial port not open")
)

const PermissionHint = "ensure that you have permission to access the port, for example using a udev rule, the dialout group or sudo"

// TransportError is any open, write or enumeration failure that is not a
// permission problem.
type TransportError struct {
	Port string
	Op   string
	Err  error
}

func (e *TransportError) Error() string {
	if e.Port == "" {
		return fmt.Sprintf("serial %s: %s", e.Op, e.Err)
	}
	return fmt.Sprintf("serial %s %s: %s", e.Op, e.Port, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
func (e *TransportError) Cause() error  { return e.Err }

// PermissionDeniedError means the OS refused access to the port.
type PermissionDeniedError struct {
	Port string
	Hint string
	Err  error
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied on %s: %s", e.Port, e.Hint)
}

func (e *PermissionDeniedError) Unwrap() error { return e.Err }
func (e *PermissionDeniedError) Cause() error  { return e.Err }

func IsPermissionDenied(err error) bool {
	var pd *PermissionDeniedError
	return errors.As(err, &pd)
}

func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// Classify wraps a raw port failure into the error taxonomy.
func Classify(port, op string, err error) error {
	if err == nil {
		return nil
	}

	var pd *PermissionDeniedError
	var te *TransportError
	if errors.As(err, &pd) || errors.As(err, &te) {
		return err
	}

	if deniedByOS(err) {
		return &PermissionDeniedError{Port: port, Hint: PermissionHint, Err: err}
	}

	return &TransportError{Port: port, Op: op, Err: err}
}

func deniedByOS(err error) bool {
	var pp *serial.PortError
	if errors.As(err, &pp) && pp.Code() == serial.PermissionDenied {
		return true
	}

	var pv serial.PortError
	if errors.As(err, &pv) && pv.Code() == serial.PermissionDenied {
		return true
	}

	return errors.Is(err, os.ErrPermission)
}
