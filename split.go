package tss

import (
	"unicode/utf8"

	"github.com/gocrypto/tss/internal/digest"
	"github.com/gocrypto/tss/internal/poly"
	"github.com/gocrypto/tss/internal/secutil"
	"github.com/gocrypto/tss/internal/sharefmt"
)

// Format selects the wire representation Split produces.
type Format int

const (
	// FormatBinary returns each share as a raw binary string.
	FormatBinary Format = iota
	// FormatHuman returns each share as the "tss~..." human string.
	FormatHuman
)

// DefaultPadBlockSize is applied when a SplitConfig leaves PadBlockSize nil.
const DefaultPadBlockSize = 16

// SplitConfig configures a single Split call, per §4.5.
type SplitConfig struct {
	// Threshold is the minimum number of shares needed to reconstruct (M),
	// 1..255.
	Threshold uint8
	// NumShares is the total number of shares to produce (N), Threshold..255.
	NumShares uint8
	// Identifier is stamped into every share. A random one is generated
	// when nil.
	Identifier *Identifier
	// HashAlg selects the embedded RTSS digest, or digest.None to omit one.
	HashAlg digest.Algorithm
	// PadBlockSize is the PKCS#7 block size, 0..255, per §4.5. nil means
	// DefaultPadBlockSize (16); an explicit 0 disables padding entirely, as
	// the spec requires — distinct from "unset", which is why this is a
	// pointer rather than plain int.
	PadBlockSize *int
	// Format selects FormatBinary or FormatHuman output.
	Format Format
	// ValidateUTF8, if true, requires secret to be valid UTF-8 before
	// splitting (§2's optional "UTF-8 validation" data-flow step).
	ValidateUTF8 bool
	// Rand is the entropy source for polynomial coefficients. Defaults to
	// DefaultRandSource.
	Rand RandSource
}

// maxSecretBytes is 2^16-1, per §3's Secret length bound.
const maxSecretBytes = 1<<16 - 1

// Split transforms secret into cfg.NumShares shares, any cfg.Threshold of
// which suffice to reconstruct it, per §4.5.
func Split(secret []byte, cfg SplitConfig) ([]string, error) {
	if err := validateSplitConfig(secret, cfg); err != nil {
		return nil, err
	}

	rnd := cfg.Rand
	if rnd == nil {
		rnd = DefaultRandSource
	}

	if cfg.ValidateUTF8 && !utf8.Valid(secret) {
		return nil, argumentFaultf("secret is not valid UTF-8")
	}

	id := cfg.Identifier
	if id == nil {
		var generated Identifier
		var err error
		if cfg.Format == FormatHuman {
			generated, err = GeneratePrintableIdentifier()
		} else {
			generated, err = GenerateIdentifier()
		}
		if err != nil {
			return nil, err
		}
		id = &generated
	}

	// Step 1: optionally append the digest of the original secret.
	body := append([]byte{}, secret...)
	if cfg.HashAlg != digest.None {
		sum, err := digest.Digest(cfg.HashAlg, secret)
		if err != nil {
			return nil, argumentFaultf("%v", err)
		}
		body = append(body, sum...)
	}

	// Step 2: PKCS#7 pad to the configured block size. An explicit 0
	// disables padding (§4.5); nil means "use the default".
	blockSize := DefaultPadBlockSize
	if cfg.PadBlockSize != nil {
		blockSize = *cfg.PadBlockSize
	}
	padded := pkcs7Pad(body, blockSize)
	defer secutil.Wipe(padded)

	// Step 3: share_len = 1 (X coordinate) + len(padded).
	l := len(padded)
	shareLen := 1 + l
	if shareLen > 1<<16-1 {
		return nil, tooLargeFaultf("padded secret plus digest is too large to share")
	}

	// Step 4: choose N distinct nonzero X-coordinates. The canonical
	// choice, 1..N, is reproducible and sufficient; §4.5 permits random
	// nonrepeating selection too, but the simple canonical scheme avoids
	// an extra entropy draw with no security benefit (X-coordinates are
	// public anyway).
	n := int(cfg.NumShares)
	xs := make([]byte, n)
	for i := 0; i < n; i++ {
		xs[i] = byte(i + 1)
	}

	header := sharefmt.Header{
		Identifier: *id,
		HashID:     uint8(cfg.HashAlg),
		Threshold:  cfg.Threshold,
		ShareLen:   uint16(shareLen),
	}
	headerBytes := sharefmt.EncodeHeader(header)

	bodies := make([][]byte, n)
	for i := range bodies {
		bodies[i] = make([]byte, 0, shareLen)
		bodies[i] = append(bodies[i], xs[i])
		bodies[i] = append(bodies[i], make([]byte, l)...)
	}

	// Step 5: one fresh random polynomial per payload octet position.
	degree := int(cfg.Threshold) - 1
	for p := 0; p < l; p++ {
		coeffs, err := poly.Random(padded[p], degree, rnd)
		if err != nil {
			return nil, err
		}
		for i, x := range xs {
			bodies[i][1+p] = poly.Eval(coeffs, x)
		}
		secutil.Wipe(coeffs)
	}

	// Step 6/7: prepend header, optionally encode to human form.
	out := make([]string, n)
	for i, b := range bodies {
		binaryShare := append(append([]byte{}, headerBytes...), b...)
		if cfg.Format == FormatHuman {
			human, err := sharefmt.ToHuman(binaryShare)
			if err != nil {
				return nil, argumentFaultf("%v", err)
			}
			out[i] = human
		} else {
			out[i] = string(binaryShare)
		}
	}
	return out, nil
}

func validateSplitConfig(secret []byte, cfg SplitConfig) error {
	if len(secret) == 0 {
		return argumentFaultf("secret must not be empty")
	}
	if len(secret) > maxSecretBytes {
		return tooLargeFaultf("secret is %d octets, limit is %d", len(secret), maxSecretBytes)
	}
	if cfg.Threshold < 1 {
		return argumentFaultf("threshold must be at least 1")
	}
	if cfg.NumShares < cfg.Threshold {
		return argumentFaultf("num_shares (%d) must be >= threshold (%d)", cfg.NumShares, cfg.Threshold)
	}
	if cfg.Identifier != nil {
		// Identifier is a fixed-size array; any non-nil value already has
		// the correct length by construction.
	}
	if cfg.HashAlg != digest.None && !digest.IsRegistered(cfg.HashAlg) {
		return argumentFaultf("unknown hash algorithm code %d", cfg.HashAlg)
	}
	if cfg.PadBlockSize != nil && (*cfg.PadBlockSize < 0 || *cfg.PadBlockSize > 255) {
		return argumentFaultf("pad_blocksize %d out of range", *cfg.PadBlockSize)
	}
	return nil
}
