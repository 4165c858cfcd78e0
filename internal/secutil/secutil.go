// Package secutil gives the zeroization recommendation in §5 of the TSS
// core specification ("secrets and intermediate polynomial coefficients
// should be zeroized on scope exit") a real implementation, instead of a
// hand-rolled overwrite loop a compiler's dead-store elimination could
// discard.
package secutil

import "github.com/awnumar/memguard"

// Wipe securely overwrites b in place. It is best-effort, not a
// correctness requirement: callers must not rely on b's prior contents
// being recoverable, but must also not rely on Wipe being called before a
// panic or early return unwinds the stack.
func Wipe(b []byte) {
	if len(b) == 0 {
		return
	}
	memguard.WipeBytes(b)
}
