package dicthash

// Hashable lets a type supply its own consistent-hash logic instead of
// structural traversal. The dispatcher checks for this interface before any
// other rule, so implementing it takes full control over the subtree.
//
// The returned string becomes the subtree's canonical representation. A
// typical implementation hashes a map of the fields that should matter,
// deliberately leaving out volatile state such as timestamps:
//
//	type Model struct {
//		weights *mat.Dense
//		trained time.Time // ignored: models trained at different times should match
//	}
//
//	func (m *Model) ConsistentHash(useApproximation bool) (string, error) {
//		return dicthash.SHA256(map[string]any{"weights": m.weights},
//			&dicthash.Options{UseApproximation: useApproximation})
//	}
//
// An error returned here aborts the whole hash computation regardless of
// the error policy: it is a failure inside user code, not an unknown type.
type Hashable interface {
	ConsistentHash(useApproximation bool) (string, error)
}
