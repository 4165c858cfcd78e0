package tss

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gocrypto/tss/internal/digest"
)

func TestSplitCombineRoundTripExactThreshold(t *testing.T) {
	secret := []byte("correct horse battery staple")
	shares, err := Split(secret, SplitConfig{
		Threshold: 3,
		NumShares: 5,
		HashAlg:   digest.SHA256,
		Format:    FormatHuman,
	})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(shares) != 5 {
		t.Fatalf("len(shares) = %d, want 5", len(shares))
	}

	result, err := Combine(shares[:3], CombineConfig{})
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if !bytes.Equal(result.Secret, secret) {
		t.Fatalf("Combine secret = %q, want %q", result.Secret, secret)
	}
}

func TestSplitCombineEveryThresholdSubsetSucceeds(t *testing.T) {
	secret := []byte("every subset of size M must recover the secret")
	shares, err := Split(secret, SplitConfig{
		Threshold: 3,
		NumShares: 6,
		HashAlg:   digest.SHA1,
	})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	// Exercise several distinct 3-of-6 subsets, not just a prefix.
	subsets := [][]int{
		{0, 1, 2},
		{3, 4, 5},
		{0, 2, 4},
		{1, 3, 5},
	}
	for _, idx := range subsets {
		subset := []string{shares[idx[0]], shares[idx[1]], shares[idx[2]]}
		result, err := Combine(subset, CombineConfig{})
		if err != nil {
			t.Fatalf("Combine(%v): %v", idx, err)
		}
		if !bytes.Equal(result.Secret, secret) {
			t.Fatalf("Combine(%v) secret = %q, want %q", idx, result.Secret, secret)
		}
	}
}

func TestCombineBelowThresholdFailsIndependentOfSecret(t *testing.T) {
	secret := []byte("cannot be recovered from too few shares")
	shares, err := Split(secret, SplitConfig{
		Threshold: 4,
		NumShares: 6,
		HashAlg:   digest.None,
	})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	_, err = Combine(shares[:3], CombineConfig{})
	if err == nil {
		t.Fatal("Combine with 3 of threshold-4 shares succeeded, want error")
	}
	var af *ArgumentFault
	if !errors.As(err, &af) {
		t.Errorf("error = %v (%T), want *ArgumentFault", err, err)
	}
}

func TestSplitBinaryFormatRoundTrip(t *testing.T) {
	secret := []byte("format independence")
	binShares, err := Split(secret, SplitConfig{
		Threshold: 2,
		NumShares: 3,
		HashAlg:   digest.SHA256,
		Format:    FormatBinary,
	})
	if err != nil {
		t.Fatalf("Split (binary): %v", err)
	}
	result, err := Combine(binShares[:2], CombineConfig{})
	if err != nil {
		t.Fatalf("Combine (binary): %v", err)
	}
	if !bytes.Equal(result.Secret, secret) {
		t.Errorf("secret = %q, want %q", result.Secret, secret)
	}
}

func TestSplitRejectsEmptySecret(t *testing.T) {
	_, err := Split(nil, SplitConfig{Threshold: 1, NumShares: 1})
	var af *ArgumentFault
	if !errors.As(err, &af) {
		t.Errorf("error = %v, want *ArgumentFault", err)
	}
}

func TestSplitRejectsThresholdGreaterThanNumShares(t *testing.T) {
	_, err := Split([]byte("x"), SplitConfig{Threshold: 5, NumShares: 3})
	var af *ArgumentFault
	if !errors.As(err, &af) {
		t.Errorf("error = %v, want *ArgumentFault", err)
	}
}

func TestSplitRejectsUnknownHashAlgorithm(t *testing.T) {
	_, err := Split([]byte("x"), SplitConfig{
		Threshold: 1,
		NumShares: 1,
		HashAlg:   digest.Algorithm(99),
	})
	var af *ArgumentFault
	if !errors.As(err, &af) {
		t.Errorf("error = %v, want *ArgumentFault", err)
	}
}

func TestSplitNoDigestNoPaddingRoundTrip(t *testing.T) {
	secret := []byte("sixteen bytes!!!")
	shares, err := Split(secret, SplitConfig{
		Threshold:    2,
		NumShares:    3,
		HashAlg:      digest.None,
		PadBlockSize: intPtr(0),
	})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	result, err := Combine(shares[:2], CombineConfig{PaddingOff: true})
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if !bytes.Equal(result.Secret, secret) {
		t.Errorf("secret = %q, want %q", result.Secret, secret)
	}
}

// TestSplitPadBlockSizeZeroDisablesPadding is §8 scenario 3: a single-byte
// secret with pad=0 must round-trip unpadded rather than silently picking
// up the default block size.
func TestSplitPadBlockSizeZeroDisablesPadding(t *testing.T) {
	secret := []byte{0x00}
	shares, err := Split(secret, SplitConfig{
		Threshold:    2,
		NumShares:    2,
		HashAlg:      digest.None,
		PadBlockSize: intPtr(0),
	})
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	result, err := Combine(shares, CombineConfig{PaddingOff: true})
	if err != nil {
		t.Fatalf("Combine: %v", err)
	}
	if !bytes.Equal(result.Secret, secret) {
		t.Fatalf("secret = %x, want %x", result.Secret, secret)
	}
}

func intPtr(v int) *int { return &v }
