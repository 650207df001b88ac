package proto

import (
	"fmt"

	"ledmatrix/pkg/bitmap"
)

const (
	HeaderSize     = 3
	MaxFrameSize   = 64
	MaxPayloadSize = MaxFrameSize - HeaderSize
)

var Magic = [2]byte{0x32, 0xAC}

type Code uint8

const (
	CodeBrightness     Code = 0x00
	CodePattern        Code = 0x01
	CodeDisplayBwImage Code = 0x06
)

func (c Code) String() string {
	switch c {
	case CodeBrightness:
		return "brightness"
	case CodePattern:
		return "pattern"
	case CodeDisplayBwImage:
		return "display-bw-image"
	}
	return fmt.Sprintf("code(0x%02x)", uint8(c))
}

// Command is a frame body. The variants below are the only implementations
// and each one fixes its payload size.
type Command interface {
	Code() Code
	Payload() []byte
	command()
}

type Brightness uint8

func (Brightness) Code() Code        { return CodeBrightness }
func (b Brightness) Payload() []byte { return []byte{byte(b)} }
func (Brightness) command()          {}

type Pattern uint8

func (Pattern) Code() Code        { return CodePattern }
func (p Pattern) Payload() []byte { return []byte{byte(p)} }
func (Pattern) command()          {}

type DisplayBwImage bitmap.Packed

func (DisplayBwImage) Code() Code        { return CodeDisplayBwImage }
func (d DisplayBwImage) Payload() []byte { return d[:] }
func (DisplayBwImage) command()          {}

// fails to compile if the image payload outgrows a frame
var _ [MaxPayloadSize - bitmap.PackedSize]struct{}

// Frame lays cmd out in a zeroed frame buffer and returns the bytes that
// go on the wire.
func Frame(cmd Command) []byte {
	var buf [MaxFrameSize]byte

	copy(buf[:2], Magic[:])
	buf[2] = byte(cmd.Code())
	n := copy(buf[HeaderSize:], cmd.Payload())

	return buf[:HeaderSize+n]
}
