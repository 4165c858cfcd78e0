// Package sharefmt implements the binary share header layout and the
// bijective mapping between binary shares and the human-readable string
// form described in §4.4 and §6 of the TSS core specification.
//
// A binary share is `header(20 octets) || body`, where body is
// `X(1 octet) || payload(L-1 octets)`. A human share string is
// `tss~<identifier-text>~<threshold>~<base64url-no-pad(binary share)>`.
package sharefmt

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// HeaderSize is the fixed size, in octets, of a share header.
const HeaderSize = 20

// IdentifierSize is the fixed size, in octets, of the identifier field.
const IdentifierSize = 16

// Header is the fixed 20-octet prefix shared by every share in one split
// call (aside from the X-coordinate, which lives in the body, not here).
type Header struct {
	Identifier [IdentifierSize]byte
	HashID     uint8
	Threshold  uint8
	ShareLen   uint16 // 1 + payload length
}

// ErrShortHeader is returned by DecodeHeader when fewer than HeaderSize
// bytes are given.
var ErrShortHeader = errors.New("sharefmt: share shorter than header size")

// EncodeHeader serializes h into its 20-octet wire form.
func EncodeHeader(h Header) []byte {
	out := make([]byte, HeaderSize)
	copy(out[0:16], h.Identifier[:])
	out[16] = h.HashID
	out[17] = h.Threshold
	binary.BigEndian.PutUint16(out[18:20], h.ShareLen)
	return out
}

// DecodeHeader parses the first HeaderSize bytes of b into a Header.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, ErrShortHeader
	}
	var h Header
	copy(h.Identifier[:], b[0:16])
	h.HashID = b[16]
	h.Threshold = b[17]
	h.ShareLen = binary.BigEndian.Uint16(b[18:20])
	return h, nil
}

// humanPattern implements the regex from §6:
// ^tss~([ -~]{0,16})~([1-9][0-9]{0,2})~([A-Za-z0-9_-]+)$
var humanPattern = regexp.MustCompile(`^tss~([ -~]{0,16})~([1-9][0-9]{0,2})~([A-Za-z0-9_-]+)$`)

// ErrNotHuman is returned by FromHuman when the input does not match the
// human share regex.
var ErrNotHuman = errors.New("sharefmt: input does not match the human share format")

// LooksHuman reports whether s matches the human share regex, without
// decoding it. The Combiner uses this to decide whether an entire input
// list should be treated as human or binary; mixed inputs are rejected
// upstream of this package.
func LooksHuman(s string) bool {
	return humanPattern.MatchString(s)
}

// ToHuman renders a binary share (header included) as the human string
// form. The identifier embedded in the share's header must be printable
// ASCII (trailing NUL octets are trimmed); ToHuman returns an error
// otherwise. The core treats the identifier as opaque octets and checks
// printability only here (§9).
func ToHuman(binaryShare []byte) (string, error) {
	h, err := DecodeHeader(binaryShare)
	if err != nil {
		return "", err
	}
	idText, err := identifierText(h.Identifier)
	if err != nil {
		return "", err
	}
	if h.Threshold < 1 {
		return "", fmt.Errorf("sharefmt: invalid threshold %d", h.Threshold)
	}
	encoded := base64.RawURLEncoding.EncodeToString(binaryShare)
	return fmt.Sprintf("tss~%s~%d~%s", idText, h.Threshold, encoded), nil
}

// FromHuman parses a human share string back into its binary form.
func FromHuman(s string) ([]byte, error) {
	m := humanPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, ErrNotHuman
	}
	binaryShare, err := base64.RawURLEncoding.DecodeString(m[3])
	if err != nil {
		return nil, fmt.Errorf("sharefmt: invalid base64url payload: %w", err)
	}
	// m[2] (the threshold decimal) duplicates the header's own threshold
	// octet. It is range-checked here and otherwise unused: the Combiner
	// reads the header octet, and the two values are not compared.
	thresholdFromText, err := strconv.Atoi(m[2])
	if err != nil || thresholdFromText < 1 || thresholdFromText > 255 {
		return nil, fmt.Errorf("sharefmt: invalid threshold in human share: %q", m[2])
	}
	return binaryShare, nil
}

// identifierText renders an identifier as its printable-ASCII text form,
// trimming trailing NUL padding. It fails if any non-trailing-NUL byte
// falls outside the regex's `[ -~]` class, since such an identifier cannot
// round-trip through the human format.
func identifierText(id [IdentifierSize]byte) (string, error) {
	n := IdentifierSize
	for n > 0 && id[n-1] == 0 {
		n--
	}
	for i := 0; i < n; i++ {
		if id[i] < 0x20 || id[i] > 0x7e {
			return "", fmt.Errorf("sharefmt: identifier is not printable ASCII at octet %d", i)
		}
	}
	return string(id[:n]), nil
}
