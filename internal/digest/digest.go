// Package digest implements the RTSS digest registry: a closed set of
// digest algorithms identified by a single octet code, used to embed an
// integrity check of the original secret into a share set.
//
// Corresponds to §4.3 of the TSS core specification.
package digest

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
)

// Algorithm identifies a digest algorithm by its one-octet RTSS code.
type Algorithm uint8

const (
	// None disables digest embedding.
	None Algorithm = 0
	// SHA1 embeds a 20-octet SHA-1 digest.
	SHA1 Algorithm = 1
	// SHA256 embeds a 32-octet SHA-256 digest.
	SHA256 Algorithm = 2
)

type entry struct {
	name string
	size int
	sum  func([]byte) []byte
}

var registry = map[Algorithm]entry{
	None:   {name: "NONE", size: 0, sum: func(b []byte) []byte { return nil }},
	SHA1:   {name: "SHA1", size: sha1.Size, sum: func(b []byte) []byte { s := sha1.Sum(b); return s[:] }},
	SHA256: {name: "SHA256", size: sha256.Size, sum: func(b []byte) []byte { s := sha256.Sum256(b); return s[:] }},
}

// ErrUnknownAlgorithm is the underlying error for an unregistered code or
// name; it is always returned wrapped with the offending value.
type ErrUnknownAlgorithm struct {
	Detail string
}

func (e *ErrUnknownAlgorithm) Error() string {
	return "digest: unknown algorithm: " + e.Detail
}

// Digest computes the digest of data under algo. Returns an empty slice,
// nil error for None.
func Digest(algo Algorithm, data []byte) ([]byte, error) {
	e, ok := registry[algo]
	if !ok {
		return nil, &ErrUnknownAlgorithm{Detail: fmt.Sprintf("code %d", algo)}
	}
	return e.sum(data), nil
}

// BytesSize returns the digest size in octets for algo.
func BytesSize(algo Algorithm) (int, error) {
	e, ok := registry[algo]
	if !ok {
		return 0, &ErrUnknownAlgorithm{Detail: fmt.Sprintf("code %d", algo)}
	}
	return e.size, nil
}

// CodesWithHash returns the registered codes that embed a non-empty digest,
// i.e. every code except None.
func CodesWithHash() []Algorithm {
	return []Algorithm{SHA1, SHA256}
}

// NameFromCode returns the registered name for algo.
func NameFromCode(algo Algorithm) (string, error) {
	e, ok := registry[algo]
	if !ok {
		return "", &ErrUnknownAlgorithm{Detail: fmt.Sprintf("code %d", algo)}
	}
	return e.name, nil
}

// CodeFromName returns the registered code for name (case-sensitive, as
// registered: "NONE", "SHA1", "SHA256").
func CodeFromName(name string) (Algorithm, error) {
	for code, e := range registry {
		if e.name == name {
			return code, nil
		}
	}
	return 0, &ErrUnknownAlgorithm{Detail: name}
}

// IsRegistered reports whether algo is a known registry code.
func IsRegistered(algo Algorithm) bool {
	_, ok := registry[algo]
	return ok
}

// ConstantTimeEqual compares two digests without leaking timing
// information about where they first differ, avoiding a timing oracle on
// digest verification.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
