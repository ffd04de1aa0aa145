package dicthash

import "hash/maphash"

// sessionSeed is drawn fresh per process, which is exactly what makes
// session hashes unsuitable for cross-run comparison.
var sessionSeed = maphash.MakeSeed()

// SessionHash returns a 64-bit hash of the value's canonical
// representation using the runtime's seeded map hash. Structurally equal
// values hash equal within the current process; two different runs will
// almost certainly disagree. Use ConsistentHash for anything persisted or
// compared across processes.
//
// Approximation is never applied: session hashing is already cheap, and
// Options.UseApproximation is ignored here. Options.Algorithm and
// Options.HashLength are likewise meaningless for this front-end.
func SessionHash(value any, opts *Options) (uint64, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return 0, err
	}
	o.UseApproximation = false
	repr, err := canonicalize(value, o)
	if err != nil {
		return 0, err
	}
	return maphash.Bytes(sessionSeed, repr), nil
}
