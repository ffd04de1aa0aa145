package dicthash

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/dicthash/dicthash/internal/logging"
)

// Documented defaults applied when the corresponding Options field is zero.
const (
	DefaultAlgorithm    = "sha256"
	DefaultHashLength   = 32
	DefaultMaxRecursion = 100
)

// Options configures a single hash invocation. A nil *Options or a zero
// field means the documented default; callers never share mutable state, so
// concurrent invocations cannot influence each other.
type Options struct {
	// Algorithm names the digest for ConsistentHash. See Algorithms for
	// the supported set. Default "sha256".
	Algorithm string

	// UseApproximation lets registered codecs subsample large payloads
	// (matrices, dataframes) instead of hashing every element. The sample
	// is drawn with a fixed seed, so it is stable within a process run,
	// but it is not guaranteed stable across library versions.
	UseApproximation bool

	// HashLength is the output byte length for the variable-length
	// shake_128/shake_256 algorithms. Ignored by fixed-length digests.
	// Default 32.
	HashLength int

	// MaxRecursion bounds traversal depth. Exceeding it is treated as a
	// not-hashable condition governed by OnError. Default 100.
	MaxRecursion int

	// OnError selects the policy for unhashable values: PolicyRaise
	// (default), PolicyWarn or PolicyIgnore.
	OnError Policy

	// Logger receives warn-mode notices. Defaults to a warn-level console
	// logger on stderr.
	Logger *zap.Logger
}

// withDefaults returns a private copy with defaults filled in and the
// policy validated.
func (o *Options) withDefaults() (*Options, error) {
	out := Options{}
	if o != nil {
		out = *o
	}
	if out.Algorithm == "" {
		out.Algorithm = DefaultAlgorithm
	}
	if out.HashLength == 0 {
		out.HashLength = DefaultHashLength
	}
	if out.HashLength < 0 {
		return nil, fmt.Errorf("%w: %d (must be positive)", ErrInvalidHashLength, out.HashLength)
	}
	if out.MaxRecursion == 0 {
		out.MaxRecursion = DefaultMaxRecursion
	}
	if out.OnError == "" {
		out.OnError = PolicyRaise
	}
	if err := out.OnError.validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (o *Options) warnLogger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return defaultLogger()
}

var (
	defaultLoggerOnce sync.Once
	defaultLoggerInst *zap.Logger
)

func defaultLogger() *zap.Logger {
	defaultLoggerOnce.Do(func() {
		defaultLoggerInst = logging.NewWarn()
	})
	return defaultLoggerInst
}

// ConsistentHash returns the hex digest of the value's canonical
// representation under the named algorithm. The same value, algorithm and
// hash length always produce the same output, on any run, process or
// machine. Map insertion order and set iteration order never affect the
// result; slice element order does.
func ConsistentHash(value any, opts *Options) (string, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return "", err
	}
	alg, err := lookupAlgorithm(o.Algorithm)
	if err != nil {
		return "", err
	}
	repr, err := canonicalize(value, o)
	if err != nil {
		return "", err
	}
	return alg.hexDigest(repr, o.HashLength), nil
}

// hashWith runs ConsistentHash with the algorithm pinned, leaving the
// caller's Options untouched.
func hashWith(name string, value any, opts *Options) (string, error) {
	o := Options{}
	if opts != nil {
		o = *opts
	}
	o.Algorithm = name
	return ConsistentHash(value, &o)
}

// MD5 returns the md5 consistent hash of the value.
func MD5(value any, opts *Options) (string, error) { return hashWith("md5", value, opts) }

// SHA1 returns the sha1 consistent hash of the value.
func SHA1(value any, opts *Options) (string, error) { return hashWith("sha1", value, opts) }

// SHA224 returns the sha224 consistent hash of the value.
func SHA224(value any, opts *Options) (string, error) { return hashWith("sha224", value, opts) }

// SHA256 returns the sha256 consistent hash of the value.
func SHA256(value any, opts *Options) (string, error) { return hashWith("sha256", value, opts) }

// SHA384 returns the sha384 consistent hash of the value.
func SHA384(value any, opts *Options) (string, error) { return hashWith("sha384", value, opts) }

// SHA512 returns the sha512 consistent hash of the value.
func SHA512(value any, opts *Options) (string, error) { return hashWith("sha512", value, opts) }

// SHA3_224 returns the sha3-224 consistent hash of the value.
func SHA3_224(value any, opts *Options) (string, error) { return hashWith("sha3_224", value, opts) }

// SHA3_256 returns the sha3-256 consistent hash of the value.
func SHA3_256(value any, opts *Options) (string, error) { return hashWith("sha3_256", value, opts) }

// SHA3_384 returns the sha3-384 consistent hash of the value.
func SHA3_384(value any, opts *Options) (string, error) { return hashWith("sha3_384", value, opts) }

// SHA3_512 returns the sha3-512 consistent hash of the value.
func SHA3_512(value any, opts *Options) (string, error) { return hashWith("sha3_512", value, opts) }

// Blake2s returns the blake2s-256 consistent hash of the value.
func Blake2s(value any, opts *Options) (string, error) { return hashWith("blake2s", value, opts) }

// Blake2b returns the blake2b-512 consistent hash of the value.
func Blake2b(value any, opts *Options) (string, error) { return hashWith("blake2b", value, opts) }

// Shake128 returns the shake-128 consistent hash of the value with the
// given output byte length (hex output is twice as long).
func Shake128(value any, hashLength int, opts *Options) (string, error) {
	o := Options{}
	if opts != nil {
		o = *opts
	}
	o.Algorithm = "shake_128"
	o.HashLength = hashLength
	return ConsistentHash(value, &o)
}

// Shake256 returns the shake-256 consistent hash of the value with the
// given output byte length.
func Shake256(value any, hashLength int, opts *Options) (string, error) {
	o := Options{}
	if opts != nil {
		o = *opts
	}
	o.Algorithm = "shake_256"
	o.HashLength = hashLength
	return ConsistentHash(value, &o)
}
