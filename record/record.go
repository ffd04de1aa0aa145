// Package record adds consistent-hash support for protobuf messages.
//
// Messages are walked through protoreflect: set fields only, keyed by
// field name, with nested messages, lists and maps decomposed recursively.
// Enums canonicalize by number, so renaming an enum value does not change
// the hash. Unknown fields and unset fields are ignored. Register by blank
// import:
//
//	import _ "github.com/dicthash/dicthash/record"
package record

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/dicthash/dicthash"
)

type codec struct{}

func init() {
	dicthash.RegisterCodec(codec{})
}

func (codec) Match(value any) bool {
	_, ok := value.(proto.Message)
	return ok
}

func (codec) Decompose(value any, _ bool) (any, error) {
	msg, ok := value.(proto.Message)
	if !ok {
		return nil, fmt.Errorf("record codec: unexpected %T", value)
	}
	m := msg.ProtoReflect()
	if !m.IsValid() {
		// Typed nil message.
		return nil, nil
	}
	return decomposeMessage(m), nil
}

func decomposeMessage(m protoreflect.Message) map[string]any {
	out := make(map[string]any)
	m.Range(func(fd protoreflect.FieldDescriptor, v protoreflect.Value) bool {
		out[string(fd.Name())] = decomposeField(fd, v)
		return true
	})
	return out
}

func decomposeField(fd protoreflect.FieldDescriptor, v protoreflect.Value) any {
	switch {
	case fd.IsMap():
		// Map keys are scalar by proto definition; their rendered form is
		// unambiguous within one field.
		mp := v.Map()
		out := make(map[string]any, mp.Len())
		mp.Range(func(k protoreflect.MapKey, mv protoreflect.Value) bool {
			out[k.String()] = decomposeSingular(fd.MapValue(), mv)
			return true
		})
		return out
	case fd.IsList():
		l := v.List()
		out := make([]any, l.Len())
		for i := range out {
			out[i] = decomposeSingular(fd, l.Get(i))
		}
		return out
	default:
		return decomposeSingular(fd, v)
	}
}

func decomposeSingular(fd protoreflect.FieldDescriptor, v protoreflect.Value) any {
	switch fd.Kind() {
	case protoreflect.MessageKind, protoreflect.GroupKind:
		return decomposeMessage(v.Message())
	case protoreflect.EnumKind:
		return int64(v.Enum())
	case protoreflect.BytesKind:
		return v.Bytes()
	default:
		return v.Interface()
	}
}
