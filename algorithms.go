package dicthash

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"sort"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
)

// algorithm describes one supported digest. Fixed-length digests provide
// newHash; the variable-length SHAKE family provides newXOF instead and
// honors the caller's hash length.
type algorithm struct {
	newHash func() hash.Hash
	newXOF  func() sha3.ShakeHash
}

// hexDigest hashes the canonical representation and returns the hex form.
// length applies to variable-length algorithms only.
func (a algorithm) hexDigest(repr []byte, length int) string {
	if a.newXOF != nil {
		x := a.newXOF()
		x.Write(repr)
		out := make([]byte, length)
		io.ReadFull(x, out)
		return hex.EncodeToString(out)
	}
	h := a.newHash()
	h.Write(repr)
	return hex.EncodeToString(h.Sum(nil))
}

var algorithms = map[string]algorithm{
	"md5":       {newHash: md5.New},
	"sha1":      {newHash: sha1.New},
	"sha224":    {newHash: sha256.New224},
	"sha256":    {newHash: sha256.New},
	"sha384":    {newHash: sha512.New384},
	"sha512":    {newHash: sha512.New},
	"sha3_224":  {newHash: sha3.New224},
	"sha3_256":  {newHash: sha3.New256},
	"sha3_384":  {newHash: sha3.New384},
	"sha3_512":  {newHash: sha3.New512},
	"blake2s":   {newHash: mustKeyless(blake2s.New256)},
	"blake2b":   {newHash: mustKeyless(blake2b.New512)},
	"shake_128": {newXOF: sha3.NewShake128},
	"shake_256": {newXOF: sha3.NewShake256},
}

// mustKeyless adapts the blake2 constructors, which only fail when given an
// oversized key and therefore cannot fail unkeyed.
func mustKeyless(newFn func(key []byte) (hash.Hash, error)) func() hash.Hash {
	return func() hash.Hash {
		h, err := newFn(nil)
		if err != nil {
			panic(fmt.Sprintf("dicthash: unkeyed digest construction failed: %v", err))
		}
		return h
	}
}

// Algorithms returns the supported digest names, sorted.
func Algorithms() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// lookupAlgorithm resolves a digest by name.
func lookupAlgorithm(name string) (algorithm, error) {
	a, ok := algorithms[name]
	if !ok {
		return algorithm{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return a, nil
}
