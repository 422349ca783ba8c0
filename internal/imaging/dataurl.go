// Package imaging handles the image wire formats at the system boundary:
// the data URL representation used to pass portraits between the pipeline
// and its caller, and validation of uploaded portrait payloads.
package imaging

import (
	"encoding/base64"
	"strings"

	"outfit-agent-demo/internal/apperr"
)

// EncodeDataURL renders bytes as data:<mime>;base64,<payload>.
func EncodeDataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL parses a data URL back into mime type and bytes. Anything
// that does not match the exact data:<mime>;base64,<payload> shape is a
// validation failure.
func DecodeDataURL(url string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(url, "data:")
	if !ok {
		return "", nil, apperr.Validationf("invalid data url: missing data: prefix")
	}
	mime, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return "", nil, apperr.Validationf("invalid data url: missing ;base64, marker")
	}
	if mime == "" {
		return "", nil, apperr.Validationf("invalid data url: empty mime type")
	}
	data, decodeErr := base64.StdEncoding.DecodeString(payload)
	if decodeErr != nil {
		return "", nil, apperr.Wrap(apperr.KindValidation, decodeErr, "invalid data url: bad base64 payload")
	}
	return mime, data, nil
}
