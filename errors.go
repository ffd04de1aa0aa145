package dicthash

import (
	"errors"
	"fmt"
)

// Policy selects what happens when a value cannot be canonicalized.
type Policy string

const (
	// PolicyRaise aborts the whole hash computation with a *NotHashableError.
	PolicyRaise Policy = "raise"
	// PolicyWarn substitutes a sentinel for the offending subtree, emits a
	// warning through the configured logger, and continues.
	PolicyWarn Policy = "warn"
	// PolicyIgnore substitutes the sentinel silently.
	PolicyIgnore Policy = "ignore"
)

// sentinel substituted for unhashable subtrees under PolicyWarn and PolicyIgnore.
const unhashableSentinel = "Unhashable object"

// ErrDepthExceeded signals that traversal went past Options.MaxRecursion.
// It is wrapped in a *NotHashableError, so both errors.Is(err, ErrDepthExceeded)
// and errors.As with *NotHashableError work.
var ErrDepthExceeded = errors.New("maximum recursion depth exceeded")

// ErrInvalidPolicy is returned when Options.OnError names an unknown mode.
var ErrInvalidPolicy = errors.New("invalid error policy")

// ErrUnknownAlgorithm is returned when Options.Algorithm names an
// unsupported digest.
var ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

// ErrInvalidHashLength is returned when Options.HashLength is negative.
var ErrInvalidHashLength = errors.New("invalid hash length")

// ErrAmbiguousKey signals a mapping in which two distinct keys share one
// canonical form (for example int32(7) and int64(7), which both normalize
// to the same integer). Such a mapping has no single canonical
// representation, so it is treated as not hashable and routed through the
// error policy. It is wrapped in a *NotHashableError.
var ErrAmbiguousKey = errors.New("distinct map keys share a canonical form")

// NotHashableError reports a value the dispatcher could not canonicalize.
type NotHashableError struct {
	// TypeName is the Go type of the offending value.
	TypeName string

	cause error
}

func (e *NotHashableError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("value of type %s is not hashable: %v", e.TypeName, e.cause)
	}
	return fmt.Sprintf("value of type %s is not hashable: no canonicalization rule matches "+
		"and no codec is registered for it; implement dicthash.Hashable to add support", e.TypeName)
}

func (e *NotHashableError) Unwrap() error { return e.cause }

func (p Policy) validate() error {
	switch p {
	case PolicyRaise, PolicyWarn, PolicyIgnore:
		return nil
	default:
		return fmt.Errorf("%w: %q (want %q, %q or %q)",
			ErrInvalidPolicy, string(p), PolicyRaise, PolicyWarn, PolicyIgnore)
	}
}
