package tss

import (
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"github.com/gocrypto/tss/internal/digest"
	"github.com/gocrypto/tss/internal/poly"
	"github.com/gocrypto/tss/internal/secutil"
	"github.com/gocrypto/tss/internal/sharefmt"
	"gonum.org/v1/gonum/stat/combin"
)

// SelectBy chooses how the Combiner picks exactly Threshold shares out of
// however many it was given, per §4.6 step 5.
type SelectBy int

const (
	// SelectFirst takes the first Threshold shares in input order. Default.
	SelectFirst SelectBy = iota
	// SelectSample draws Threshold shares uniformly at random, without
	// replacement.
	SelectSample
	// SelectCombinations iterates every Threshold-subset in deterministic
	// lexicographic order until one reconstructs a digest-verified secret.
	// Valid only when the share set carries a non-None hash algorithm.
	SelectCombinations
)

// maxCombinations bounds COMBINATIONS mode: requests whose C(K, M) exceeds
// this fail fast with ArgumentFault before any subset is materialized,
// per §4.6's "too-many-combinations" requirement.
const maxCombinations = 1_000_000

// CombineConfig configures a single Combine call, per §4.6.
type CombineConfig struct {
	// SelectBy chooses the subset-selection strategy. Default SelectFirst.
	SelectBy SelectBy
	// PaddingOff disables PKCS#7 unpadding of the reconstructed body. The
	// zero value (false) keeps unpadding on, matching "default on" in
	// §4.6's configuration summary.
	PaddingOff bool
	// PadBlockSize is the PKCS#7 block size used when unpadding. Must
	// match whatever Split used; nil means DefaultPadBlockSize, matching
	// SplitConfig.PadBlockSize's "nil means default, explicit 0 means no
	// padding was used" convention.
	PadBlockSize *int
}

// Result is what Combine returns on success, per §6's combine API.
type Result struct {
	Secret     []byte
	Identifier Identifier
	Threshold  uint8
	HashAlg    digest.Algorithm
	Digest     []byte // nil if HashAlg is digest.None
	Elapsed    time.Duration
}

// Combine validates shares, selects a Threshold-sized subset per
// cfg.SelectBy, and reconstructs the secret, verifying any embedded
// digest.
func Combine(shares []string, cfg CombineConfig) (Result, error) {
	start := time.Now()

	binaryShares, err := normalizeShares(shares)
	if err != nil {
		return Result{}, err
	}

	decoded, err := decodeAndValidate(binaryShares)
	if err != nil {
		return Result{}, err
	}

	blockSize := DefaultPadBlockSize
	if cfg.PadBlockSize != nil {
		blockSize = *cfg.PadBlockSize
	}

	threshold := int(decoded[0].header.Threshold)
	hashAlg := digest.Algorithm(decoded[0].header.HashID)

	var secret []byte
	var embeddedDigest []byte

	switch cfg.SelectBy {
	case SelectFirst:
		secret, embeddedDigest, err = reconstructSubset(decoded[:threshold], hashAlg, !cfg.PaddingOff, blockSize)
	case SelectSample:
		subset, serr := sampleSubset(decoded, threshold)
		if serr != nil {
			return Result{}, serr
		}
		secret, embeddedDigest, err = reconstructSubset(subset, hashAlg, !cfg.PaddingOff, blockSize)
	case SelectCombinations:
		if hashAlg == digest.None {
			return Result{}, argumentFaultf("COMBINATIONS selection requires a non-NONE hash algorithm")
		}
		secret, embeddedDigest, err = reconstructByCombinations(decoded, threshold, hashAlg, !cfg.PaddingOff, blockSize)
	default:
		return Result{}, argumentFaultf("unknown select_by mode %d", cfg.SelectBy)
	}
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Secret:     secret,
		Identifier: decoded[0].header.Identifier,
		Threshold:  decoded[0].header.Threshold,
		HashAlg:    hashAlg,
		Digest:     embeddedDigest,
		Elapsed:    time.Since(start),
	}
	return result, nil
}

// normalizeShares decodes every share to binary, per §4.6 step 1. If every
// share looks human it decodes them all; if every share looks binary it
// passes them through; a mix of the two fails.
func normalizeShares(shares []string) ([][]byte, error) {
	if len(shares) == 0 {
		return nil, argumentFaultf("no shares given")
	}
	// Defensive copy: the caller's slice must not be mutated mid-call
	// (§5's resource policy), and we don't touch the input anyway, but
	// copying here keeps that guarantee explicit and future-proof.
	local := make([]string, len(shares))
	copy(local, shares)

	allHuman := true
	for _, s := range local {
		if !sharefmt.LooksHuman(s) {
			allHuman = false
			break
		}
	}

	out := make([][]byte, len(local))
	if allHuman {
		for i, s := range local {
			b, err := sharefmt.FromHuman(s)
			if err != nil {
				return nil, formatFaultf("share %d: %v", i, err)
			}
			out[i] = b
		}
		return out, nil
	}

	for i, s := range local {
		if sharefmt.LooksHuman(s) {
			return nil, argumentFaultf("share %d is human-encoded but others are not; mixed formats are not allowed", i)
		}
		out[i] = []byte(s)
	}
	return out, nil
}

// decodeAndValidate runs the ordered validation sequence from §4.6 step 2
// and splits each share's body into X-coordinate and payload (step 3),
// then validates X-coordinates (step 4).
func decodeAndValidate(binaryShares [][]byte) ([]decodedShare, error) {
	headers := make([]sharefmt.Header, len(binaryShares))
	for i, b := range binaryShares {
		h, err := sharefmt.DecodeHeader(b)
		if err != nil {
			return nil, formatFaultf("share %d: %v", i, err)
		}
		if !digest.IsRegistered(digest.Algorithm(h.HashID)) {
			return nil, argumentFaultf("share %d has unregistered hash_id %d", i, h.HashID)
		}
		if h.Threshold < 1 {
			return nil, argumentFaultf("share %d has threshold < 1", i)
		}
		if h.ShareLen < 2 {
			return nil, argumentFaultf("share %d has share_len < 2", i)
		}
		headers[i] = h
	}

	decoded := make([]decodedShare, len(binaryShares))
	for i := range binaryShares {
		decoded[i].header = headers[i]
	}

	// §4.6 step 2, in order: headers identical, lengths equal, every
	// share longer than header_size+1, share count meets threshold.
	if err := validateHeadersEqual(decoded); err != nil {
		return nil, err
	}
	if err := validateLengthsEqual(binaryShares); err != nil {
		return nil, err
	}
	for i, b := range binaryShares {
		if len(b) <= sharefmt.HeaderSize+1 {
			return nil, argumentFaultf("share %d is not longer than header size + 1", i)
		}
	}
	if err := validateThresholdMet(decoded); err != nil {
		return nil, err
	}

	// §4.6 step 3: strip the header, splitting X-coordinate and payload.
	for i, b := range binaryShares {
		decoded[i].x = b[sharefmt.HeaderSize]
		decoded[i].payload = b[sharefmt.HeaderSize+1:]
	}

	// §4.6 step 4: X-coordinates nonzero and pairwise distinct.
	if err := validateXCoordinates(decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

// reconstructSubset runs §4.6 steps 6-7 over exactly one Threshold-sized
// subset: per-position Lagrange interpolation, then digest handling.
func reconstructSubset(subset []decodedShare, hashAlg digest.Algorithm, padding bool, blockSize int) (secret, embeddedDigest []byte, err error) {
	l := len(subset[0].payload)
	xs := make([]byte, len(subset))
	for i, s := range subset {
		xs[i] = s.x
	}

	recovered := make([]byte, l)
	ys := make([]byte, len(subset))
	for p := 0; p < l; p++ {
		for i, s := range subset {
			ys[i] = s.payload[p]
		}
		b, ierr := poly.Interpolate(xs, ys)
		if ierr != nil {
			return nil, nil, argumentFaultf("%v", ierr)
		}
		recovered[p] = b
	}
	defer secutil.Wipe(recovered)

	if hashAlg != digest.None {
		digestSize, derr := digest.BytesSize(hashAlg)
		if derr != nil {
			return nil, nil, argumentFaultf("%v", derr)
		}
		// Split pads secret||digest, so the padding comes off first. Padding
		// that does not parse means a corrupted share, reported like any
		// other failed digest check.
		body := recovered
		if padding {
			var perr error
			body, perr = pkcs7Unpad(recovered, blockSize)
			if perr != nil {
				return nil, nil, digestMismatchFaultf("reconstructed padding is invalid")
			}
		}
		if len(body) < digestSize {
			return nil, nil, digestMismatchFaultf("reconstructed body shorter than the embedded digest")
		}
		split := len(body) - digestSize
		secretBytes, embedded := body[:split], body[split:]

		actual, derr := digest.Digest(hashAlg, secretBytes)
		if derr != nil {
			return nil, nil, argumentFaultf("%v", derr)
		}
		if !digest.ConstantTimeEqual(actual, embedded) {
			return nil, nil, digestMismatchFaultf("embedded digest does not match reconstructed secret")
		}
		return append([]byte{}, secretBytes...), append([]byte{}, embedded...), nil
	}

	secretBytes := recovered
	if padding {
		var perr error
		secretBytes, perr = pkcs7Unpad(recovered, blockSize)
		if perr != nil {
			return nil, nil, noSecretFaultf("reconstructed padding is invalid and no digest was embedded")
		}
	}
	if len(secretBytes) == 0 {
		return nil, nil, noSecretFaultf("reconstruction produced an empty secret and no digest was embedded to confirm it")
	}
	return append([]byte{}, secretBytes...), nil, nil
}

// sampleSubset draws exactly threshold shares uniformly at random without
// replacement, using crypto/rand for the shuffle (§4.6 SAMPLE mode).
func sampleSubset(decoded []decodedShare, threshold int) ([]decodedShare, error) {
	perm := make([]int, len(decoded))
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		j, err := randIntn(i + 1)
		if err != nil {
			return nil, err
		}
		perm[i], perm[j] = perm[j], perm[i]
	}
	subset := make([]decodedShare, threshold)
	for i := 0; i < threshold; i++ {
		subset[i] = decoded[perm[i]]
	}
	return subset, nil
}

func randIntn(n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// reconstructByCombinations implements §4.6's COMBINATIONS mode: reject
// oversized requests before enumerating, then walk every Threshold-subset
// of decoded in lexicographic order, skipping any whose digest fails to
// verify or whose unpad fails, until one verifies or the set is
// exhausted.
func reconstructByCombinations(decoded []decodedShare, threshold int, hashAlg digest.Algorithm, padding bool, blockSize int) (secret, embeddedDigest []byte, err error) {
	k := len(decoded)
	if combin.Binomial(k, threshold) > maxCombinations {
		return nil, nil, argumentFaultf("too-many-combinations: C(%d, %d) exceeds %d", k, threshold, maxCombinations)
	}

	indexSets := combin.Combinations(k, threshold)
	for _, idx := range indexSets {
		subset := make([]decodedShare, threshold)
		for i, ix := range idx {
			subset[i] = decoded[ix]
		}
		s, d, rerr := reconstructSubset(subset, hashAlg, padding, blockSize)
		if rerr != nil {
			// Per §4.6: digest-mismatch faults (which is also how an unpad
			// failure is reported when a digest is embedded) and
			// ArgumentFaults are swallowed here and the search continues;
			// any other error class still aborts.
			var dm *DigestMismatchFault
			var af *ArgumentFault
			if errors.As(rerr, &dm) || errors.As(rerr, &af) {
				continue
			}
			return nil, nil, rerr
		}
		return s, d, nil
	}
	return nil, nil, noSecretFaultf("no %d-subset of %d shares reconstructed a verified secret", threshold, k)
}
