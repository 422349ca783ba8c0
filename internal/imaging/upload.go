package imaging

import (
	"strings"

	"outfit-agent-demo/internal/apperr"
)

// MaxPortraitBytes bounds uploaded portrait size.
const MaxPortraitBytes = 5 * 1024 * 1024

// acceptedMimes is the closed set of portrait encodings forwarded to the
// image model.
var acceptedMimes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
	"image/heic": true,
	"image/heif": true,
}

// ValidatePortrait checks an uploaded portrait before it is forwarded to
// any external call.
func ValidatePortrait(data []byte, mime string) error {
	if len(data) == 0 {
		return apperr.Validationf("portrait payload is empty")
	}
	if len(data) > MaxPortraitBytes {
		return apperr.Validationf("portrait exceeds %d byte limit", MaxPortraitBytes)
	}
	m, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(mime)), ";")
	if !acceptedMimes[m] {
		return apperr.Validationf("unsupported portrait type %q", mime)
	}
	return nil
}
