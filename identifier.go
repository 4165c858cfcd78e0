package tss

import (
	"crypto/rand"

	"github.com/google/uuid"
)

// IdentifierSize is the fixed size, in octets, of a share set identifier.
const IdentifierSize = 16

// Identifier is the 16-octet label stamped into every share of one split
// call (§3). It is treated as opaque octets at the core; printability
// matters only for the human share encoding, where sharefmt.ToHuman rejects
// a non-printable identifier and Split generates a printable default (§9).
type Identifier [IdentifierSize]byte

// GenerateIdentifier returns a fresh random identifier. uuid.UUID is
// defined as exactly 16 bytes, which is also this type's wire size, so a
// random (version 4) UUID serves directly as the identifier's random
// octets without any reshaping.
func GenerateIdentifier() (Identifier, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return Identifier{}, err
	}
	return Identifier(u), nil
}

// printableIdentifierAlphabet is the character set used by
// GeneratePrintableIdentifier, chosen to land safely inside the human share
// regex's identifier class (`[ -~]`) without needing escaping.
const printableIdentifierAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GeneratePrintableIdentifier returns a fresh random identifier whose octets
// are all printable ASCII, so it survives the human share encoding's
// identifier-text round trip (§4.4, §9). Split uses this instead of
// GenerateIdentifier when producing FormatHuman output and no caller
// identifier was given.
func GeneratePrintableIdentifier() (Identifier, error) {
	var id Identifier
	raw := make([]byte, IdentifierSize)
	if _, err := rand.Read(raw); err != nil {
		return Identifier{}, err
	}
	for i, b := range raw {
		id[i] = printableIdentifierAlphabet[int(b)%len(printableIdentifierAlphabet)]
	}
	return id, nil
}
