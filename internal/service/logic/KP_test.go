package logic

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/andrei-cloud/go_keywrap/internal/errorcodes"
)

// RFC 5649 section 6 vectors reused across the AES-KWP handler tests.
const (
	kwpKekHex     = "5840DF6E29B02AF1AB493B705BF16EA1AE8338F4DCC176A8"
	kwpDataHex    = "C37B7E6492584340BED12207808941155068F738"
	kwpWrappedHex = "138BDEAA9B8FA7FC61F97742E72248EE5AE6AE5360D1AE6A5F54F373FA543B6A"
	kwpShortHex   = "466F7250617369"
	kwpShortWrap  = "AFBEB0F07DFBF5419200F2CCB50BB24F"
)

func kwpTestKek(t *testing.T) []byte {
	t.Helper()
	key, err := hex.DecodeString(kwpKekHex)
	if err != nil {
		t.Fatalf("bad hex in test data: %v", err)
	}

	return key
}

// TestExecuteKP verifies the KP handler against both known-answer
// vectors, including the odd-length data that exercises padding.
func TestExecuteKP(t *testing.T) {
	t.Parallel()
	kek := mustKek(t, kwpTestKek(t))

	out, err := ExecuteKP([]byte(kwpDataHex), kek.WrapPaddedTo)
	if err != nil {
		t.Fatalf("ExecuteKP failed: %v", err)
	}
	if string(out) != "KQ00"+kwpWrappedHex {
		t.Errorf("unexpected response: %s", out)
	}

	out, err = ExecuteKP([]byte(kwpShortHex), kek.WrapPaddedTo)
	if err != nil {
		t.Fatalf("ExecuteKP failed: %v", err)
	}
	if string(out) != "KQ00"+kwpShortWrap {
		t.Errorf("unexpected response: %s", out)
	}
}

// TestExecuteKPErrors verifies hex validation on the padded path.
func TestExecuteKPErrors(t *testing.T) {
	t.Parallel()
	kek := mustKek(t, kwpTestKek(t))

	if _, err := ExecuteKP(nil, kek.WrapPaddedTo); !errors.Is(err, errorcodes.Err15) {
		t.Errorf("empty input: expected Err15, got %v", err)
	}
	if _, err := ExecuteKP([]byte("C3G"), kek.WrapPaddedTo); !errors.Is(err, errorcodes.Err15) {
		t.Errorf("bad hex: expected Err15, got %v", err)
	}
}

// TestExecuteKR verifies the KR handler recovers both vectors at their
// true lengths.
func TestExecuteKR(t *testing.T) {
	t.Parallel()
	kek := mustKek(t, kwpTestKek(t))

	out, err := ExecuteKR([]byte(kwpWrappedHex), kek.UnwrapPaddedTo)
	if err != nil {
		t.Fatalf("ExecuteKR failed: %v", err)
	}
	if string(out) != "KS00"+kwpDataHex {
		t.Errorf("unexpected response: %s", out)
	}

	out, err = ExecuteKR([]byte(kwpShortWrap), kek.UnwrapPaddedTo)
	if err != nil {
		t.Fatalf("ExecuteKR failed: %v", err)
	}
	if string(out) != "KS00"+kwpShortHex {
		t.Errorf("unexpected response: %s", out)
	}
}

// TestExecuteKRErrors verifies integrity and length failures map to wire
// statuses.
func TestExecuteKRErrors(t *testing.T) {
	t.Parallel()
	kek := mustKek(t, kwpTestKek(t))

	corrupt := []byte("FF" + kwpWrappedHex[2:])
	if _, err := ExecuteKR(corrupt, kek.UnwrapPaddedTo); !errors.Is(err, errorcodes.ErrA4) {
		t.Errorf("corrupt value: expected ErrA4, got %v", err)
	}

	if _, err := ExecuteKR([]byte("00112233445566"), kek.UnwrapPaddedTo); !errors.Is(
		err, errorcodes.Err27,
	) {
		t.Errorf("short value: expected Err27, got %v", err)
	}
}
