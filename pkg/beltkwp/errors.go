package beltkwp

import "errors"

// Wrap and unwrap failure kinds. Callers match them with errors.Is.
var (
	// ErrInvalidKeySize reports a KEK that is not 32 bytes.
	ErrInvalidKeySize = errors.New("invalid kek size")

	// ErrInvalidHeaderLength reports a header that is not 16 bytes.
	ErrInvalidHeaderLength = errors.New("invalid header length")

	// ErrInvalidDataLength reports input that violates the algorithm's
	// alignment or minimum length rules.
	ErrInvalidDataLength = errors.New("invalid data length")

	// ErrIntegrityCheckFailed reports an unwrap whose recovered header
	// did not match the expected one.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")

	// ErrBufferTooSmall reports a destination buffer shorter than the
	// operation requires.
	ErrBufferTooSmall = errors.New("output buffer too small")
)
