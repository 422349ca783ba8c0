package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"outfit-agent-demo/internal/apperr"
	"outfit-agent-demo/internal/config"
)

type ImageGenClient interface {
	// GenerateImage sends one instruction plus inlined images and returns
	// the first image part found across the response stream, or nil when
	// the stream carried no image at all.
	GenerateImage(ctx context.Context, req *GenerateImageRequest) (*GeneratedImage, error)
}

type GenerateImageRequest struct {
	Instruction string
	Images      []InlineImage
}

type InlineImage struct {
	MimeType string
	Data     []byte
}

type GeneratedImage struct {
	MimeType string
	Data     []byte
}

type geminiClientImpl struct {
	httpClient *http.Client
	baseApiURL string
	apiKey     string
	model      string
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiChunk struct {
	Candidates []geminiCandidate `json:"candidates"`
}

func NewGeminiClient(geminiCfg *config.Gemini) (ImageGenClient, error) {
	if geminiCfg.APIKey == "" {
		return nil, apperr.Configurationf("gemini api key is empty")
	}
	return &geminiClientImpl{
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		baseApiURL: strings.TrimSuffix(geminiCfg.BaseApiURL, "/"),
		apiKey:     geminiCfg.APIKey,
		model:      geminiCfg.Model,
	}, nil
}

func (c *geminiClientImpl) GenerateImage(ctx context.Context, genReq *GenerateImageRequest) (*GeneratedImage, error) {
	parts := make([]geminiPart, 0, len(genReq.Images)+1)
	parts = append(parts, geminiPart{Text: genReq.Instruction})
	for _, img := range genReq.Images {
		parts = append(parts, geminiPart{
			InlineData: &geminiInlineData{
				MimeType: img.MimeType,
				Data:     base64.StdEncoding.EncodeToString(img.Data),
			},
		})
	}

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": parts},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal req payload: %w", err)
	}

	url := fmt.Sprintf(
		"%s/v1beta/models/%s:streamGenerateContent?alt=sse",
		c.baseApiURL,
		c.model,
	)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.ExternalCallf(err, "image generation call")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, apperr.ExternalCallf(
			fmt.Errorf("gemini error %d: %s", resp.StatusCode, string(b)),
			"image generation call",
		)
	}

	// Chunks arrive as SSE data lines; the first image-bearing part across
	// the stream is authoritative and the rest is ignored.
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		data, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue
		}
		var chunk geminiChunk
		if err := json.Unmarshal([]byte(strings.TrimSpace(data)), &chunk); err != nil {
			continue
		}
		for _, cand := range chunk.Candidates {
			for _, part := range cand.Content.Parts {
				if part.InlineData == nil || part.InlineData.Data == "" {
					continue
				}
				raw, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
				if err != nil {
					return nil, apperr.ExternalCallf(err, "decode image part")
				}
				return &GeneratedImage{
					MimeType: part.InlineData.MimeType,
					Data:     raw,
				}, nil
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, apperr.ExternalCallf(err, "read image stream")
	}

	return nil, nil
}
