package protocol

import (
	"fmt"

	"github.com/grovetools/conductor/internal/wire"
)

// UntypedNewID is the value of a new_id argument that carries its own
// interface name and version, as used by wl_registry.bind.
type UntypedNewID struct {
	Interface string
	Version   uint32
	ID        wire.ObjectID
}

// EncodeArgs encodes request arguments according to m.
//
// Values are int32, uint32, wire.Fixed, string, wire.ObjectID, []byte or
// UntypedNewID, matching the argument types in order.
func EncodeArgs(m *Message, args []any) ([]byte, error) {
	if len(args) != len(m.Args) {
		return nil, fmt.Errorf("%s: expected %d arguments, got %d", m.Name, len(m.Args), len(args))
	}
	var e wire.Encoder
	for i, spec := range m.Args {
		v := args[i]
		switch spec.Type {
		case ArgInt:
			n, ok := v.(int32)
			if !ok {
				return nil, argTypeError(m, spec, v)
			}
			e.PutInt(n)
		case ArgUint:
			n, ok := v.(uint32)
			if !ok {
				return nil, argTypeError(m, spec, v)
			}
			e.PutUint(n)
		case ArgFixed:
			n, ok := v.(wire.Fixed)
			if !ok {
				return nil, argTypeError(m, spec, v)
			}
			e.PutFixed(n)
		case ArgString:
			s, ok := v.(string)
			if !ok {
				return nil, argTypeError(m, spec, v)
			}
			e.PutString(s)
		case ArgObject:
			id, ok := v.(wire.ObjectID)
			if !ok {
				return nil, argTypeError(m, spec, v)
			}
			if id == 0 && !spec.Nullable {
				return nil, fmt.Errorf("%s.%s: %w", m.Name, spec.Name, wire.ErrNullNotAllowed)
			}
			e.PutObject(id)
		case ArgNewID:
			if spec.Interface == "" {
				u, ok := v.(UntypedNewID)
				if !ok {
					return nil, argTypeError(m, spec, v)
				}
				e.PutString(u.Interface)
				e.PutUint(u.Version)
				e.PutObject(u.ID)
				continue
			}
			id, ok := v.(wire.ObjectID)
			if !ok {
				return nil, argTypeError(m, spec, v)
			}
			e.PutObject(id)
		case ArgArray:
			b, ok := v.([]byte)
			if !ok {
				return nil, argTypeError(m, spec, v)
			}
			e.PutArray(b)
		}
	}
	return e.Bytes(), nil
}

func argTypeError(m *Message, spec Arg, v any) error {
	return fmt.Errorf("%s.%s: expected %s argument, got %T", m.Name, spec.Name, spec.Type, v)
}

// DecodeArgs decodes an event body according to m. Trailing bytes are
// an error.
func DecodeArgs(m *Message, body []byte) ([]any, error) {
	d := wire.NewDecoder(body)
	out := make([]any, 0, len(m.Args))
	for _, spec := range m.Args {
		var (
			v   any
			err error
		)
		switch spec.Type {
		case ArgInt:
			v, err = d.Int()
		case ArgUint:
			v, err = d.Uint()
		case ArgFixed:
			v, err = d.Fixed()
		case ArgString:
			var s string
			s, _, err = d.String()
			v = s
		case ArgObject, ArgNewID:
			v, err = d.Object()
		case ArgArray:
			v, err = d.Array()
		}
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", m.Name, spec.Name, err)
		}
		out = append(out, v)
	}
	if d.Remaining() != 0 {
		return nil, fmt.Errorf("%s: %d trailing bytes", m.Name, d.Remaining())
	}
	return out, nil
}
