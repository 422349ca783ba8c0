package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"outfit-agent-demo/internal/apperr"
	"outfit-agent-demo/internal/config"
)

func newTestGeminiClient(t *testing.T, handler http.HandlerFunc) (ImageGenClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewGeminiClient(&config.Gemini{
		BaseApiURL: srv.URL,
		APIKey:     "test-key",
		Model:      "test-model",
	})
	if err != nil {
		t.Fatalf("NewGeminiClient: %v", err)
	}
	return c, srv
}

func sseChunk(t *testing.T, w http.ResponseWriter, chunk any) {
	t.Helper()
	b, err := json.Marshal(chunk)
	if err != nil {
		t.Fatalf("marshal chunk: %v", err)
	}
	fmt.Fprintf(w, "data: %s\n\n", b)
}

func TestGenerateImageFirstImagePartWins(t *testing.T) {
	first := []byte("first-image")
	second := []byte("second-image")

	c, _ := newTestGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("api key header = %q", got)
		}

		var body struct {
			Contents []struct {
				Parts []geminiPart `json:"parts"`
			} `json:"contents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		// instruction text first, then base portrait, then garments
		if len(body.Contents) != 1 || len(body.Contents[0].Parts) != 3 {
			t.Errorf("unexpected request shape: %+v", body)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		sseChunk(t, w, geminiChunk{Candidates: []geminiCandidate{
			{Content: geminiContent{Parts: []geminiPart{{Text: "working on it"}}}},
		}})
		sseChunk(t, w, geminiChunk{Candidates: []geminiCandidate{{Content: geminiContent{Parts: []geminiPart{
			{InlineData: &geminiInlineData{MimeType: "image/png", Data: base64.StdEncoding.EncodeToString(first)}},
			{InlineData: &geminiInlineData{MimeType: "image/png", Data: base64.StdEncoding.EncodeToString(second)}},
		}}}}})
	})

	out, err := c.GenerateImage(context.Background(), &GenerateImageRequest{
		Instruction: "dress the person",
		Images: []InlineImage{
			{MimeType: "image/jpeg", Data: []byte("portrait")},
			{MimeType: "image/png", Data: []byte("garment")},
		},
	})
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if out == nil || !bytes.Equal(out.Data, first) || out.MimeType != "image/png" {
		t.Fatalf("out = %+v, want first image part", out)
	}
}

func TestGenerateImageNoImageInStream(t *testing.T) {
	c, _ := newTestGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		sseChunk(t, w, geminiChunk{Candidates: []geminiCandidate{
			{Content: geminiContent{Parts: []geminiPart{{Text: "sorry, text only"}}}},
		}})
	})

	out, err := c.GenerateImage(context.Background(), &GenerateImageRequest{Instruction: "x"})
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if out != nil {
		t.Fatalf("out = %+v, want nil for image-free stream", out)
	}
}

func TestGenerateImageHTTPError(t *testing.T) {
	c, _ := newTestGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := c.GenerateImage(context.Background(), &GenerateImageRequest{Instruction: "x"})
	if !errors.Is(err, apperr.ErrExternalCall) {
		t.Fatalf("err = %v, want external call failure", err)
	}
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	_, err := NewGeminiClient(&config.Gemini{BaseApiURL: "http://example.com"})
	if !errors.Is(err, apperr.ErrConfiguration) {
		t.Fatalf("err = %v, want configuration failure", err)
	}
}
