package tss

import "github.com/gocrypto/tss/internal/sharefmt"

// decodedShare is a share after header parsing, with X-coordinate and
// payload split out of the body. It is the Combiner's working unit from
// Normalized through Reconstructed.
type decodedShare struct {
	header  sharefmt.Header
	x       byte
	payload []byte
}

// validateHeadersEqual enforces that every share in the set carries an
// identical header (§4.6 step 2, §4.7).
func validateHeadersEqual(shares []decodedShare) error {
	if len(shares) == 0 {
		return argumentFaultf("no shares to validate")
	}
	first := shares[0].header
	for i, s := range shares[1:] {
		if s.header != first {
			return argumentFaultf("share %d has a header that differs from share 0", i+1)
		}
	}
	return nil
}

// validateLengthsEqual enforces that every share has the same total byte
// length (§4.6 step 2).
func validateLengthsEqual(raw [][]byte) error {
	if len(raw) == 0 {
		return argumentFaultf("no shares to validate")
	}
	want := len(raw[0])
	for i, s := range raw[1:] {
		if len(s) != want {
			return argumentFaultf("share %d has length %d, want %d", i+1, len(s), want)
		}
	}
	return nil
}

// validateXCoordinates enforces that every X-coordinate is nonzero and
// that the set contains no duplicates (§4.6 step 4, §4.7).
func validateXCoordinates(shares []decodedShare) error {
	seen := make(map[byte]bool, len(shares))
	for i, s := range shares {
		if s.x == 0 {
			return argumentFaultf("share %d has a zero X-coordinate", i)
		}
		if seen[s.x] {
			return argumentFaultf("duplicate X-coordinate %d across shares", s.x)
		}
		seen[s.x] = true
	}
	return nil
}

// validateThresholdMet enforces that at least as many shares are present
// as the threshold encoded in their shared header (§4.6 step 2).
func validateThresholdMet(shares []decodedShare) error {
	threshold := int(shares[0].header.Threshold)
	if threshold < 1 {
		return argumentFaultf("threshold %d is not at least 1", threshold)
	}
	if len(shares) < threshold {
		return argumentFaultf("%d shares given, threshold requires %d", len(shares), threshold)
	}
	return nil
}
