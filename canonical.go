package dicthash

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// canonicalJSON serializes canonical trees with sorted object keys. Key
// sorting is what makes mapping hashes independent of insertion order.
var canonicalJSON = sonic.Config{SortMapKeys: true}.Froze()

// Scalar type tags. Tagging keeps values of different types from colliding
// in the canonical representation: the number 1, the string "1", the float
// 1.0 and the boolean true all encode differently.
const (
	tagNone     = "none:"
	tagBool     = "bool:"
	tagInt      = "int:"
	tagFloat    = "float:"
	tagStr      = "str:"
	tagTime     = "time:"
	tagDuration = "duration:"
	tagRegexp   = "regexp:"
)

// converter holds the per-invocation traversal state. A fresh converter is
// built for every top-level hash call; nothing is shared across calls.
type converter struct {
	opts   *Options
	logger *zap.Logger
}

// canonicalize reduces a value to its canonical byte representation: the
// recursively converted tree, serialized as JSON with sorted keys.
func canonicalize(value any, o *Options) ([]byte, error) {
	c := &converter{opts: o, logger: o.warnLogger()}
	node, err := c.convert(value, 0)
	if err != nil {
		return nil, err
	}
	repr, err := canonicalJSON.Marshal(node)
	if err != nil {
		return nil, fmt.Errorf("encode canonical representation: %w", err)
	}
	return repr, nil
}

// convert dispatches one value to its canonicalization rule. First match
// wins: Hashable, registered codecs, well-known scalars, then structural
// reflection, with the error policy as the terminal fallback.
func (c *converter) convert(value any, depth int) (any, error) {
	if depth > c.opts.MaxRecursion {
		return c.fallback(fmt.Sprintf("%T", value), ErrDepthExceeded)
	}
	if value == nil {
		return tagNone, nil
	}

	// A Hashable supplies its own canonical form; its internals are never
	// inspected. The result is tagged as a string so hashing the object is
	// indistinguishable from hashing the string it returns.
	if h, ok := value.(Hashable); ok {
		s, err := h.ConsistentHash(c.opts.UseApproximation)
		if err != nil {
			return nil, fmt.Errorf("Hashable %T: %w", value, err)
		}
		return tagStr + s, nil
	}

	if codec := lookupCodec(value); codec != nil {
		decomposed, err := codec.Decompose(value, c.opts.UseApproximation)
		if err != nil {
			return nil, fmt.Errorf("codec for %T: %w", value, err)
		}
		return c.convert(decomposed, depth+1)
	}

	switch v := value.(type) {
	case time.Time:
		return tagTime + v.UTC().Format(time.RFC3339Nano), nil
	case time.Duration:
		return tagDuration + v.String(), nil
	case []byte:
		return tagStr + string(v), nil
	case *regexp.Regexp:
		if v == nil {
			return tagNone, nil
		}
		return tagRegexp + v.String(), nil
	}

	return c.convertReflect(reflect.ValueOf(value), depth)
}

// convertReflect handles values by runtime shape once the well-known
// concrete types have been ruled out. Named types (type Celsius float64)
// land here and canonicalize by their underlying kind.
func (c *converter) convertReflect(rv reflect.Value, depth int) (any, error) {
	switch rv.Kind() {
	case reflect.String:
		return tagStr + rv.String(), nil
	case reflect.Bool:
		return tagBool + strconv.FormatBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return tagInt + strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return tagInt + strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return tagFloat + strconv.FormatFloat(rv.Float(), 'g', -1, 64), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return tagNone, nil
		}
		return c.convert(rv.Elem().Interface(), depth+1)
	case reflect.Slice, reflect.Array:
		return c.convertSequence(rv, depth)
	case reflect.Map:
		if rv.IsNil() {
			return tagNone, nil
		}
		return c.convertMap(rv, depth)
	case reflect.Struct:
		return c.convertStruct(rv, depth)
	default:
		// func, chan, complex, unsafe pointers.
		return c.fallback(rv.Type().String(), nil)
	}
}

// convertSequence canonicalizes a slice or array. Element order is
// semantically significant and preserved as-is.
func (c *converter) convertSequence(rv reflect.Value, depth int) (any, error) {
	out := make([]any, rv.Len())
	for i := range out {
		node, err := c.convert(rv.Index(i).Interface(), depth+1)
		if err != nil {
			return nil, err
		}
		out[i] = node
	}
	return out, nil
}

var setElemType = reflect.TypeOf(struct{}{})

// convertMap canonicalizes a mapping. Keys become their canonical string
// form and the final key sort makes the result insertion-order invariant.
// map[T]struct{} is the conventional Go set shape and canonicalizes as a
// sorted element list instead.
func (c *converter) convertMap(rv reflect.Value, depth int) (any, error) {
	if rv.Type().Elem() == setElemType {
		return c.convertSet(rv, depth)
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		keyNode, err := c.convert(iter.Key().Interface(), depth+1)
		if err != nil {
			return nil, err
		}
		key, err := c.keyString(keyNode)
		if err != nil {
			return nil, err
		}
		valNode, err := c.convert(iter.Value().Interface(), depth+1)
		if err != nil {
			return nil, err
		}
		// Silent overwrite here would make the hash depend on map
		// iteration order.
		if _, taken := out[key]; taken {
			return c.fallback(rv.Type().String(), fmt.Errorf("%w: %q", ErrAmbiguousKey, key))
		}
		out[key] = valNode
	}
	return out, nil
}

// convertSet canonicalizes set elements and sorts them, making iteration
// order irrelevant.
func (c *converter) convertSet(rv reflect.Value, depth int) (any, error) {
	elems := make([]string, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		node, err := c.convert(iter.Key().Interface(), depth+1)
		if err != nil {
			return nil, err
		}
		s, err := c.keyString(node)
		if err != nil {
			return nil, err
		}
		elems = append(elems, s)
	}
	sort.Strings(elems)
	return elems, nil
}

// convertStruct canonicalizes exported fields as a name-keyed mapping.
// Embedded structs flatten into the parent the way encoding/json does,
// with the outer struct winning name conflicts.
func (c *converter) convertStruct(rv reflect.Value, depth int) (any, error) {
	out := make(map[string]any)
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		node, err := c.convert(rv.Field(i).Interface(), depth+1)
		if err != nil {
			return nil, err
		}
		if f.Anonymous {
			if embedded, ok := node.(map[string]any); ok {
				for k, v := range embedded {
					if _, taken := out[k]; !taken {
						out[k] = v
					}
				}
				continue
			}
		}
		out[f.Name] = node
	}
	return out, nil
}

// keyString renders a canonical node usable as a map key. Scalars are
// already strings; composite keys (array- or struct-keyed maps) fall back
// to their serialized form.
func (c *converter) keyString(node any) (string, error) {
	if s, ok := node.(string); ok {
		return s, nil
	}
	b, err := canonicalJSON.Marshal(node)
	if err != nil {
		return "", fmt.Errorf("encode map key: %w", err)
	}
	return string(b), nil
}

// fallback applies the error policy to a value no rule recognized, or to a
// subtree that exhausted the recursion budget (cause == ErrDepthExceeded).
func (c *converter) fallback(typeName string, cause error) (any, error) {
	switch c.opts.OnError {
	case PolicyWarn:
		c.logger.Warn("substituting sentinel for unhashable value",
			zap.String("type", typeName),
			zap.NamedError("cause", cause))
		return tagStr + unhashableSentinel, nil
	case PolicyIgnore:
		return tagStr + unhashableSentinel, nil
	default:
		return nil, &NotHashableError{TypeName: typeName, cause: cause}
	}
}
