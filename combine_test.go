package tss

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gocrypto/tss/internal/digest"
	"github.com/gocrypto/tss/internal/sharefmt"
)

func TestCombineDigestMismatchThenCombinationsRecovers(t *testing.T) {
	secret := []byte("one corrupted share among several good ones")
	shares, err := Split(secret, SplitConfig{
		Threshold: 3,
		NumShares: 5,
		HashAlg:   digest.SHA256,
	})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	corrupted := make([]string, len(shares))
	copy(corrupted, shares)
	raw := []byte(corrupted[0])
	raw[len(raw)-1] ^= 0xff
	corrupted[0] = string(raw)

	if _, err := Combine(corrupted[:3], CombineConfig{}); err == nil {
		t.Fatal("Combine with a corrupted share in the chosen subset succeeded, want error")
	} else {
		var dm *DigestMismatchFault
		if !errors.As(err, &dm) {
			t.Errorf("error = %v (%T), want *DigestMismatchFault", err, err)
		}
	}

	result, err := Combine(corrupted, CombineConfig{SelectBy: SelectCombinations})
	if err != nil {
		t.Fatalf("Combine with SelectCombinations: %v", err)
	}
	if !bytes.Equal(result.Secret, secret) {
		t.Fatalf("recovered secret = %q, want %q", result.Secret, secret)
	}
}

func TestCombineCombinationsRequiresDigest(t *testing.T) {
	secret := []byte("no digest to verify against")
	shares, err := Split(secret, SplitConfig{
		Threshold: 2,
		NumShares: 4,
		HashAlg:   digest.None,
	})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	_, err = Combine(shares, CombineConfig{SelectBy: SelectCombinations})
	var af *ArgumentFault
	if !errors.As(err, &af) {
		t.Errorf("error = %v, want *ArgumentFault", err)
	}
}

func TestCombineTooManyCombinationsRejected(t *testing.T) {
	// C(255, 128) vastly exceeds the 1,000,000 cap; decodeAndValidate must
	// be satisfied first, so synthesize 255 well-formed-looking shares by
	// hand rather than running a real 255-way Split.
	header := sharefmt.Header{
		Identifier: Identifier{},
		HashID:     uint8(digest.SHA256),
		Threshold:  128,
		ShareLen:   34,
	}
	headerBytes := sharefmt.EncodeHeader(header)

	shares := make([]string, 255)
	for i := 0; i < 255; i++ {
		body := make([]byte, 34)
		body[0] = byte(i + 1)
		shares[i] = string(append(append([]byte{}, headerBytes...), body...))
	}

	_, err := Combine(shares, CombineConfig{SelectBy: SelectCombinations})
	var af *ArgumentFault
	if !errors.As(err, &af) {
		t.Fatalf("error = %v (%T), want *ArgumentFault (too-many-combinations)", err, err)
	}
}

func TestCombineSampleModeRecoversSecret(t *testing.T) {
	secret := []byte("sampled subset must still reconstruct correctly")
	shares, err := Split(secret, SplitConfig{
		Threshold: 3,
		NumShares: 7,
		HashAlg:   digest.SHA256,
	})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	result, err := Combine(shares, CombineConfig{SelectBy: SelectSample})
	if err != nil {
		t.Fatalf("Combine (SAMPLE): %v", err)
	}
	if !bytes.Equal(result.Secret, secret) {
		t.Fatalf("secret = %q, want %q", result.Secret, secret)
	}
}

func TestCombineRejectsMixedHumanAndBinaryShares(t *testing.T) {
	secret := []byte("mixed formats are rejected")
	shares, err := Split(secret, SplitConfig{
		Threshold: 2,
		NumShares: 2,
		HashAlg:   digest.SHA256,
		Format:    FormatHuman,
	})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	binShares, err := Split(secret, SplitConfig{
		Threshold: 2,
		NumShares: 2,
		HashAlg:   digest.SHA256,
		Format:    FormatBinary,
	})
	if err != nil {
		t.Fatalf("Split (binary): %v", err)
	}

	mixed := []string{shares[0], binShares[1]}
	_, err = Combine(mixed, CombineConfig{})
	var af *ArgumentFault
	if !errors.As(err, &af) {
		t.Errorf("error = %v, want *ArgumentFault", err)
	}
}

func TestCombineRejectsCorruptedHumanShareAsFormatFault(t *testing.T) {
	secret := []byte("human-encoded shares must parse cleanly")
	shares, err := Split(secret, SplitConfig{
		Threshold: 2,
		NumShares: 2,
		HashAlg:   digest.SHA256,
		Format:    FormatHuman,
	})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	// Truncate the base64url payload segment to an invalid length (length
	// % 4 == 1 is never valid for unpadded base64), forcing a decode
	// failure while keeping the "tss~...~...~..." shape LooksHuman checks
	// for intact.
	idx := strings.LastIndex(shares[0], "~")
	payload := shares[0][idx+1:]
	drop := 1
	for (len(payload)-drop)%4 != 1 {
		drop++
	}
	corrupted := shares[0][:idx+1] + payload[:len(payload)-drop]

	_, err = Combine([]string{corrupted, shares[1]}, CombineConfig{})
	if err == nil {
		t.Fatal("Combine with a corrupted human share succeeded, want error")
	}
	var ff *FormatFault
	if !errors.As(err, &ff) {
		t.Errorf("error = %v (%T), want *FormatFault", err, err)
	}
}

func TestCombineRejectsInconsistentHeaders(t *testing.T) {
	secretA := []byte("secret A shares")
	secretB := []byte("secret B shares")
	sharesA, err := Split(secretA, SplitConfig{Threshold: 2, NumShares: 2, HashAlg: digest.SHA256})
	if err != nil {
		t.Fatalf("Split A: %v", err)
	}
	sharesB, err := Split(secretB, SplitConfig{Threshold: 2, NumShares: 2, HashAlg: digest.SHA256})
	if err != nil {
		t.Fatalf("Split B: %v", err)
	}

	_, err = Combine([]string{sharesA[0], sharesB[0]}, CombineConfig{})
	var af *ArgumentFault
	if !errors.As(err, &af) {
		t.Errorf("error = %v, want *ArgumentFault", err)
	}
}

func TestCombineEmptyReconstructionWithoutDigestIsNoSecretFault(t *testing.T) {
	// Hand-construct a single share whose payload unpads to a zero-length
	// secret under a NONE hash algorithm, matching §9's explicit decision
	// that this case is a NoSecretFault rather than a successful empty
	// result.
	// Threshold 1 means Lagrange interpolation over a single point returns
	// that point's Y unchanged, so the payload byte below reconstructs
	// deterministically without needing a real Split-generated share.
	header := sharefmt.Header{
		Identifier: Identifier{1},
		HashID:     uint8(digest.None),
		Threshold:  1,
		ShareLen:   2,
	}
	headerBytes := sharefmt.EncodeHeader(header)

	// A single padded byte of value 0x01 unpads (block size 1) to empty.
	share1 := append(append([]byte{}, headerBytes...), 1, 1)

	_, err := Combine([]string{string(share1)}, CombineConfig{PadBlockSize: intPtr(1)})
	var ns *NoSecretFault
	if !errors.As(err, &ns) {
		t.Fatalf("error = %v (%T), want *NoSecretFault", err, err)
	}
}
