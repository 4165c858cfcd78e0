package tss

// pkcs7Pad appends PKCS#7 padding to data so its length becomes a multiple
// of blockSize. Per §4.5 step 2, padding adds 1..blockSize octets whose
// value equals the count added; a full block is added when the input is
// already a multiple of blockSize. blockSize == 0 disables padding and
// returns data unchanged.
func pkcs7Pad(data []byte, blockSize int) []byte {
	if blockSize <= 0 {
		return data
	}
	padLen := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+padLen)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(padLen)
	}
	return out
}

// pkcs7Unpad reverses pkcs7Pad. It fails if the trailing octet is 0, if it
// exceeds blockSize or the body's own length, or if the trailing padLen
// octets are not all equal to padLen, per §4.6's PKCS#7 unpad rules.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if blockSize <= 0 {
		return data, nil
	}
	if len(data) == 0 {
		return nil, argumentFaultf("cannot unpad empty data")
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(data) {
		return nil, argumentFaultf("invalid PKCS#7 padding length %d", padLen)
	}
	for i := len(data) - padLen; i < len(data); i++ {
		if int(data[i]) != padLen {
			return nil, argumentFaultf("invalid PKCS#7 padding octet at offset %d", i)
		}
	}
	return data[:len(data)-padLen], nil
}
