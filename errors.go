package tss

import "fmt"

// Fault kinds, per §7 of the TSS core specification. Each satisfies error
// and carries a short English message; callers distinguish kinds with
// errors.As, e.g.:
//
//	var af *ArgumentFault
//	if errors.As(err, &af) { ... }
type (
	// ArgumentFault reports a malformed parameter: bad M/N, unknown hash
	// code, bad identifier length, inconsistent share headers,
	// duplicate/zero X, mixed format inputs, too-many-combinations.
	ArgumentFault struct{ Msg string }

	// FormatFault reports a share header or human string that failed to
	// parse, or a base64url decode failure.
	FormatFault struct{ Msg string }

	// NoSecretFault reports that reconstruction produced an empty or
	// unpad-invalid output with no embedded digest to fall back on.
	NoSecretFault struct{ Msg string }

	// DigestMismatchFault reports that an embedded digest did not verify
	// against the reconstructed secret.
	DigestMismatchFault struct{ Msg string }

	// TooLargeFault reports a secret exceeding 2^16-1 octets.
	TooLargeFault struct{ Msg string }
)

func (e *ArgumentFault) Error() string       { return "tss: argument fault: " + e.Msg }
func (e *FormatFault) Error() string         { return "tss: format fault: " + e.Msg }
func (e *NoSecretFault) Error() string       { return "tss: no secret fault: " + e.Msg }
func (e *DigestMismatchFault) Error() string { return "tss: digest mismatch fault: " + e.Msg }
func (e *TooLargeFault) Error() string       { return "tss: too large fault: " + e.Msg }

func argumentFaultf(format string, args ...any) error {
	return &ArgumentFault{Msg: fmt.Sprintf(format, args...)}
}

func formatFaultf(format string, args ...any) error {
	return &FormatFault{Msg: fmt.Sprintf(format, args...)}
}

func noSecretFaultf(format string, args ...any) error {
	return &NoSecretFault{Msg: fmt.Sprintf(format, args...)}
}

func digestMismatchFaultf(format string, args ...any) error {
	return &DigestMismatchFault{Msg: fmt.Sprintf(format, args...)}
}

func tooLargeFaultf(format string, args ...any) error {
	return &TooLargeFault{Msg: fmt.Sprintf(format, args...)}
}
