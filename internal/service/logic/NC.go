package logic

import (
	"github.com/andrei-cloud/go_keywrap/internal/errorcodes"
)

// ExecuteNC processes the NC diagnostics command and returns response
// bytes: "ND00" followed by the KEK check value and the service version.
func ExecuteNC(kcv, version string) ([]byte, error) {
	if kcv == "" || version == "" {
		return nil, errorcodes.Err41
	}

	resp := make([]byte, 0, 4+len(kcv)+len(version))
	resp = append(resp, "ND00"...)
	resp = append(resp, kcv...)
	resp = append(resp, version...)

	return resp, nil
}
