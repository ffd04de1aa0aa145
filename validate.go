package dicthash

// ValidateConsistentHash reports whether two Hashable implementations
// produce the same consistent hash. Useful as a test helper when writing a
// ConsistentHash method: two instances that should be considered equal must
// validate against each other.
func ValidateConsistentHash(first, second Hashable) (bool, error) {
	a, err := first.ConsistentHash(false)
	if err != nil {
		return false, err
	}
	b, err := second.ConsistentHash(false)
	if err != nil {
		return false, err
	}
	return a == b, nil
}
