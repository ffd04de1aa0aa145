package dicthash

import "sync"

// Codec canonicalizes values of an external container type the core engine
// does not know about, such as gonum matrices or protobuf messages.
//
// Decompose returns a plain Go value (maps, slices, scalars) that the
// engine canonicalizes recursively; it never needs to produce a final
// representation itself. The approximate flag mirrors
// Options.UseApproximation and allows codecs to subsample large payloads.
type Codec interface {
	// Match reports whether this codec handles the value.
	Match(value any) bool
	// Decompose reduces the value to plain maps, slices and scalars.
	Decompose(value any, approximate bool) (any, error)
}

var (
	codecsMu sync.RWMutex
	codecs   []Codec
)

// RegisterCodec adds a codec to the dispatch chain. Codecs are consulted in
// registration order, after the Hashable check and before structural
// reflection. Optional codec packages (matrix, frame, record) call this
// from init, so a blank import is enough to enable them:
//
//	import _ "github.com/dicthash/dicthash/matrix"
func RegisterCodec(c Codec) {
	if c == nil {
		panic("dicthash: RegisterCodec called with nil codec")
	}
	codecsMu.Lock()
	defer codecsMu.Unlock()
	codecs = append(codecs, c)
}

// lookupCodec returns the first registered codec matching the value.
func lookupCodec(value any) Codec {
	codecsMu.RLock()
	defer codecsMu.RUnlock()
	for _, c := range codecs {
		if c.Match(value) {
			return c
		}
	}
	return nil
}
