package keywrap

import "errors"

// Wrap and unwrap failure kinds. Callers match them with errors.Is.
var (
	// ErrInvalidKeySize reports a KEK that is not 16, 24 or 32 bytes.
	ErrInvalidKeySize = errors.New("invalid kek size")

	// ErrInvalidCipherBlock reports an engine cipher whose block size is
	// not 16 bytes.
	ErrInvalidCipherBlock = errors.New("cipher block size must be 16 bytes")

	// ErrInvalidDataLength reports input that violates the algorithm's
	// alignment, minimum or maximum length rules.
	ErrInvalidDataLength = errors.New("invalid data length")

	// ErrIntegrityCheckFailed reports an unwrap whose recovered integrity
	// value did not verify. Padding violations surface as this same error
	// so failure causes stay indistinguishable.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")

	// ErrBufferTooSmall reports a destination buffer shorter than the
	// operation's output.
	ErrBufferTooSmall = errors.New("output buffer too small")
)
