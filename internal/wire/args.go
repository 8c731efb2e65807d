package wire

import "encoding/binary"

// Encoder builds a message body.
type Encoder struct {
	buf []byte
}

// Bytes returns the encoded body.
func (e *Encoder) Bytes() []byte { return e.buf }

func (e *Encoder) PutUint(v uint32) {
	e.buf = binary.NativeEndian.AppendUint32(e.buf, v)
}

func (e *Encoder) PutInt(v int32) { e.PutUint(uint32(v)) }

func (e *Encoder) PutFixed(v Fixed) { e.PutUint(uint32(v)) }

func (e *Encoder) PutObject(id ObjectID) { e.PutUint(uint32(id)) }

// PutString encodes s with its terminating NUL and padding.
func (e *Encoder) PutString(s string) {
	e.PutUint(uint32(len(s) + 1))
	e.buf = append(e.buf, s...)
	e.buf = append(e.buf, 0)
	e.pad(len(s) + 1)
}

// PutNullString encodes the null string (length zero).
func (e *Encoder) PutNullString() { e.PutUint(0) }

// PutArray encodes a length-prefixed byte array with padding.
func (e *Encoder) PutArray(b []byte) {
	e.PutUint(uint32(len(b)))
	e.buf = append(e.buf, b...)
	e.pad(len(b))
}

func (e *Encoder) pad(n int) {
	for i := n; i < padded(n); i++ {
		e.buf = append(e.buf, 0)
	}
}

// Decoder reads arguments from a message body in order.
type Decoder struct {
	b   []byte
	off int
}

// NewDecoder returns a decoder over body.
func NewDecoder(body []byte) *Decoder { return &Decoder{b: body} }

// Remaining reports how many unread bytes are left.
func (d *Decoder) Remaining() int { return len(d.b) - d.off }

func (d *Decoder) Uint() (uint32, error) {
	if d.Remaining() < 4 {
		return 0, ErrShortBody
	}
	v := binary.NativeEndian.Uint32(d.b[d.off:])
	d.off += 4
	return v, nil
}

func (d *Decoder) Int() (int32, error) {
	v, err := d.Uint()
	return int32(v), err
}

func (d *Decoder) Fixed() (Fixed, error) {
	v, err := d.Uint()
	return Fixed(v), err
}

func (d *Decoder) Object() (ObjectID, error) {
	v, err := d.Uint()
	return ObjectID(v), err
}

// String decodes a string. The null string decodes as "" with ok=false.
func (d *Decoder) String() (s string, ok bool, err error) {
	n, err := d.Uint()
	if err != nil {
		return "", false, err
	}
	if n == 0 {
		return "", false, nil
	}
	if d.Remaining() < padded(int(n)) {
		return "", false, ErrShortBody
	}
	raw := d.b[d.off : d.off+int(n)]
	if raw[n-1] != 0 {
		return "", false, ErrUnterminated
	}
	d.off += padded(int(n))
	return string(raw[:n-1]), true, nil
}

// Array decodes a byte array. The returned slice is a copy.
func (d *Decoder) Array() ([]byte, error) {
	n, err := d.Uint()
	if err != nil {
		return nil, err
	}
	if d.Remaining() < padded(int(n)) {
		return nil, ErrShortBody
	}
	out := make([]byte, n)
	copy(out, d.b[d.off:])
	d.off += padded(int(n))
	return out, nil
}

// Uint32s interprets an array argument as host-order uint32 values.
func Uint32s(b []byte) []uint32 {
	out := make([]uint32, 0, len(b)/4)
	for i := 0; i+4 <= len(b); i += 4 {
		out = append(out, binary.NativeEndian.Uint32(b[i:]))
	}
	return out
}

// ArrayOf encodes uint32 values as an array argument payload.
func ArrayOf(vals ...uint32) []byte {
	out := make([]byte, 0, len(vals)*4)
	for _, v := range vals {
		out = binary.NativeEndian.AppendUint32(out, v)
	}
	return out
}
