package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"outfit-agent-demo/internal/apperr"
	"outfit-agent-demo/internal/client"
	"outfit-agent-demo/internal/dto"
	"outfit-agent-demo/internal/imaging"
	"outfit-agent-demo/internal/obs"
	"outfit-agent-demo/internal/wardrobe"
)

// maxGarmentsPerPass caps how many garments one image-generation call may
// apply. Batching more degrades output fidelity, so larger outfits are
// applied over several passes with each pass's output feeding the next.
const maxGarmentsPerPass = 2

// SlotAsset pairs a slot with the garment image to composite into it.
type SlotAsset struct {
	Slot  wardrobe.SlotID
	Image dto.SlotImage
}

// RenderResult is the final composited portrait.
type RenderResult struct {
	Data   []byte
	Mime   string
	Passes int
}

type OutfitService interface {
	// Render composites the garments onto the portrait. Passes run
	// strictly sequentially: pass n+1's base portrait is pass n's output,
	// never the original upload.
	Render(ctx context.Context, portraitData []byte, portraitMime string, assets []SlotAsset) (*RenderResult, error)
}

type outfitServiceImpl struct {
	imageGen   client.ImageGenClient
	httpClient *http.Client // fetches garment images referenced by URL
}

func NewOutfitService(imageGen client.ImageGenClient) OutfitService {
	return &outfitServiceImpl{
		imageGen: imageGen,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *outfitServiceImpl) Render(ctx context.Context, portraitData []byte, portraitMime string, assets []SlotAsset) (*RenderResult, error) {
	if len(portraitData) == 0 {
		return nil, apperr.Validationf("missing portrait")
	}

	garments := s.resolveAssets(ctx, assets)
	if len(garments) == 0 {
		return nil, apperr.Validationf("no renderable assets: no equipped slot resolved to an image")
	}

	// Canonical layering keeps rendering reproducible regardless of the
	// order the user equipped things in.
	sort.SliceStable(garments, func(i, j int) bool {
		return wardrobe.LayerRank(garments[i].slot) < wardrobe.LayerRank(garments[j].slot)
	})

	base := client.InlineImage{MimeType: portraitMime, Data: portraitData}
	passes := 0
	for start := 0; start < len(garments); start += maxGarmentsPerPass {
		end := min(start+maxGarmentsPerPass, len(garments))
		batch := garments[start:end]

		req := &client.GenerateImageRequest{
			Instruction: buildPassInstruction(batch),
			Images:      make([]client.InlineImage, 0, len(batch)+1),
		}
		req.Images = append(req.Images, base)
		for _, g := range batch {
			req.Images = append(req.Images, client.InlineImage{MimeType: g.mime, Data: g.data})
		}

		out, err := s.imageGen.GenerateImage(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("render pass %d: %w", passes, err)
		}
		if out == nil {
			// A pass without an image aborts the whole render. Skipping
			// would desynchronize what is visually present from what the
			// caller believes is equipped.
			return nil, apperr.New(apperr.KindRenderIncomplete, "render pass %d returned no image", passes)
		}

		base = client.InlineImage{MimeType: out.MimeType, Data: out.Data}
		passes++
	}

	return &RenderResult{Data: base.Data, Mime: base.MimeType, Passes: passes}, nil
}

type resolvedGarment struct {
	slot wardrobe.SlotID
	data []byte
	mime string
}

// resolveAssets turns slot images into bytes. A slot whose image cannot be
// resolved is skipped, not fatal; the caller decides whether an empty
// result is an error.
func (s *outfitServiceImpl) resolveAssets(ctx context.Context, assets []SlotAsset) []resolvedGarment {
	var out []resolvedGarment
	for _, a := range assets {
		switch {
		case len(a.Image.Bytes) > 0:
			out = append(out, resolvedGarment{slot: a.Slot, data: a.Image.Bytes, mime: a.Image.Mime})
		case a.Image.URL != "":
			data, mime, err := s.fetchImage(ctx, a.Image.URL)
			if err != nil {
				obs.Logger.Warn("skipping slot: garment image fetch failed",
					"slot", a.Slot, "url", a.Image.URL, "error", err)
				continue
			}
			out = append(out, resolvedGarment{slot: a.Slot, data: data, mime: mime})
		default:
			obs.Logger.Warn("skipping slot: no image bytes or url", "slot", a.Slot)
		}
	}
	return out
}

func (s *outfitServiceImpl) fetchImage(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("http new request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", apperr.ExternalCallf(err, "fetch garment image")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", apperr.ExternalCallf(
			fmt.Errorf("image host error %d", resp.StatusCode),
			"fetch garment image",
		)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, imaging.MaxPortraitBytes+1))
	if err != nil {
		return nil, "", apperr.ExternalCallf(err, "read garment image")
	}
	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = http.DetectContentType(data)
	}
	return data, mime, nil
}

// buildPassInstruction writes the natural-language instruction for one
// pass: identity, pose, lighting, framing and background stay fixed; only
// the listed garments change; nothing but the composited portrait comes
// back.
func buildPassInstruction(batch []resolvedGarment) string {
	var b strings.Builder
	if len(batch) == 1 {
		b.WriteString("Dress the person in the first image in the following garment, shown in the attached product photo: ")
	} else {
		b.WriteString(fmt.Sprintf("Dress the person in the first image in the following %d garments, shown in the attached product photos in order: ", len(batch)))
	}
	for i, g := range batch {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(g.slot.DisplayLabel())
	}
	b.WriteString(". Keep the person's identity, face, pose, lighting, framing and background exactly as in the first image. ")
	b.WriteString("Any clothing already visible in the first image that is not being replaced stays as is. ")
	b.WriteString("Return only the edited portrait image, with no text, captions or additional images.")
	return b.String()
}
