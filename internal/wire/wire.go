// Package wire implements the Wayland wire format: the 8-byte message
// header and the 32-bit aligned argument encoding.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// HeaderLen is the size of the fixed message header.
const HeaderLen = 8

// MaxMessageLen is the largest message libwayland accepts.
const MaxMessageLen = 4096

// ServerIDBase is the first object id in the compositor-allocated range.
const ServerIDBase ObjectID = 0xff000000

var (
	ErrShortHeader      = errors.New("wire: short message header")
	ErrSizeTooSmall     = errors.New("wire: message size smaller than header")
	ErrMessageTooLarge  = errors.New("wire: message too large")
	ErrShortBody        = errors.New("wire: message body truncated")
	ErrUnterminated     = errors.New("wire: string is not NUL terminated")
	ErrNullNotAllowed   = errors.New("wire: null value for non-nullable argument")
	ErrMessageUnaligned = errors.New("wire: message size is not 32-bit aligned")
)

// ObjectID identifies a protocol object on one connection.
type ObjectID uint32

// Fixed is a signed 24.8 fixed-point number.
type Fixed int32

// Float returns the value as a float64.
func (f Fixed) Float() float64 { return float64(f) / 256 }

// FixedFrom converts a float64 to 24.8 fixed point.
func FixedFrom(v float64) Fixed { return Fixed(v * 256) }

// Header is the fixed message header.
type Header struct {
	Object ObjectID
	Opcode uint16
	Size   uint16
}

// Message is one complete wire message.
type Message struct {
	Object ObjectID
	Opcode uint16
	Body   []byte
}

func (m Message) String() string {
	return fmt.Sprintf("object=%d opcode=%d len=%d", m.Object, m.Opcode, len(m.Body))
}

// ReadMessage reads one message from r.
func ReadMessage(r io.Reader) (Message, error) {
	var fixed [HeaderLen]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Message{}, ErrShortHeader
		}
		return Message{}, err
	}

	h, err := DecodeHeader(fixed[:])
	if err != nil {
		return Message{}, err
	}

	body := make([]byte, int(h.Size)-HeaderLen)
	if len(body) > 0 {
		if _, err := io.ReadFull(r, body); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
				return Message{}, ErrShortBody
			}
			return Message{}, err
		}
	}
	return Message{Object: h.Object, Opcode: h.Opcode, Body: body}, nil
}

// WriteMessage writes m to w as a single buffer.
func WriteMessage(w io.Writer, m Message) error {
	b, err := AppendMessage(nil, m)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// AppendMessage appends the encoded message to dst.
func AppendMessage(dst []byte, m Message) ([]byte, error) {
	size := HeaderLen + len(m.Body)
	if size > MaxMessageLen {
		return dst, ErrMessageTooLarge
	}
	if size%4 != 0 {
		return dst, ErrMessageUnaligned
	}
	dst = append(dst, EncodeHeader(Header{Object: m.Object, Opcode: m.Opcode, Size: uint16(size)})...)
	return append(dst, m.Body...), nil
}

// EncodeHeader encodes h in host byte order.
func EncodeHeader(h Header) []byte {
	buf := make([]byte, HeaderLen)
	binary.NativeEndian.PutUint32(buf[0:4], uint32(h.Object))
	binary.NativeEndian.PutUint32(buf[4:8], uint32(h.Size)<<16|uint32(h.Opcode))
	return buf
}

// DecodeHeader decodes a fixed header and validates its size field.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) != HeaderLen {
		return Header{}, fmt.Errorf("wire: invalid header length: %d", len(b))
	}
	word := binary.NativeEndian.Uint32(b[4:8])
	h := Header{
		Object: ObjectID(binary.NativeEndian.Uint32(b[0:4])),
		Opcode: uint16(word & 0xffff),
		Size:   uint16(word >> 16),
	}
	if int(h.Size) < HeaderLen {
		return Header{}, ErrSizeTooSmall
	}
	if h.Size%4 != 0 {
		return Header{}, ErrMessageUnaligned
	}
	return h, nil
}

func padded(n int) int { return (n + 3) &^ 3 }
