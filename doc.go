// Package dicthash computes stable, order-independent hashes of arbitrary
// nested values: maps, slices, sets, scalars, structs, and registered
// container types.
//
// Two front-ends share one canonicalization engine:
//   - ConsistentHash: cryptographic digest (hex string), identical across
//     runs, processes, and machines
//   - SessionHash: runtime-seeded 64-bit hash, valid only within the
//     current process
//
// The engine reduces a value to a canonical representation that is
// invariant to map insertion order and set iteration order, then feeds it
// to the chosen hash primitive. Per-algorithm wrappers (MD5, SHA256,
// Blake2b, Shake128, ...) cover the full supported digest set.
//
// Heavy container types are supported through optional codec packages,
// registered by blank import:
//   - matrix: gonum matrices and vectors
//   - frame: gota dataframes and series
//   - record: protobuf messages
//
// Custom types can bypass structural traversal entirely by implementing
// the Hashable interface.
//
// Example Usage:
//
//	digest, err := dicthash.SHA256(map[string]any{"a": 1, "b": []int{2, 3}}, nil)
//
//	// Order-independent: both maps hash identically.
//	h1, _ := dicthash.ConsistentHash(map[string]int{"x": 1, "y": 2}, nil)
//	h2, _ := dicthash.ConsistentHash(map[string]int{"y": 2, "x": 1}, nil)
//	// h1 == h2
package dicthash
