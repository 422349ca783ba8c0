package imaging

import (
	"bytes"
	"errors"
	"testing"

	"outfit-agent-demo/internal/apperr"
)

func TestDataURLRoundTrip(t *testing.T) {
	cases := []struct {
		mime string
		data []byte
	}{
		{"image/png", []byte{0x89, 0x50, 0x4e, 0x47}},
		{"image/jpeg", []byte("jpeg bytes")},
		{"image/webp", []byte{}},
	}

	for _, tc := range cases {
		t.Run(tc.mime, func(t *testing.T) {
			url := EncodeDataURL(tc.mime, tc.data)
			mime, data, err := DecodeDataURL(url)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if mime != tc.mime || !bytes.Equal(data, tc.data) {
				t.Fatalf("round trip changed payload: %s %v", mime, data)
			}
			// encode(decode(url)) == url for well-formed input
			if again := EncodeDataURL(mime, data); again != url {
				t.Fatalf("re-encode = %q, want %q", again, url)
			}
		})
	}
}

func TestDecodeDataURLRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		url  string
	}{
		{"missing prefix", "image/png;base64,AAAA"},
		{"missing marker", "data:image/png,AAAA"},
		{"empty mime", "data:;base64,AAAA"},
		{"bad base64", "data:image/png;base64,!!!"},
		{"empty string", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := DecodeDataURL(tc.url); !errors.Is(err, apperr.ErrValidation) {
				t.Fatalf("err = %v, want validation failure", err)
			}
		})
	}
}

func TestValidatePortrait(t *testing.T) {
	small := []byte("img")

	if err := ValidatePortrait(small, "image/png"); err != nil {
		t.Fatalf("png rejected: %v", err)
	}
	if err := ValidatePortrait(small, "IMAGE/JPEG"); err != nil {
		t.Fatalf("mime check is not case-insensitive: %v", err)
	}
	if err := ValidatePortrait(small, "image/heic; profile=x"); err != nil {
		t.Fatalf("mime parameters not tolerated: %v", err)
	}

	if err := ValidatePortrait(nil, "image/png"); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("empty payload: err = %v", err)
	}
	if err := ValidatePortrait(small, "image/gif"); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("gif accepted: err = %v", err)
	}
	big := make([]byte, MaxPortraitBytes+1)
	if err := ValidatePortrait(big, "image/png"); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("oversize accepted: err = %v", err)
	}
}
