package tss

import (
	"crypto/rand"
	"io"
)

// RandSource is a narrow interface over a cryptographically secure
// randomness source. §5 requires the entropy source to be CSPRNG-backed;
// §9's design notes call for exposing it through a narrow interface so
// tests can inject a deterministic source instead of the process-wide
// crypto/rand.Reader. Split uses DefaultRandSource unless a Config
// supplies one.
type RandSource interface {
	io.Reader
}

// DefaultRandSource wraps crypto/rand.Reader, the system CSPRNG.
var DefaultRandSource RandSource = rand.Reader
