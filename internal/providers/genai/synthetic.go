package genai

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pitchdeck/internal/imagegen"
)

// Synthetic renders deterministic striped PNGs so the deck runs end to end
// without credentials. The same prompt always yields the same bytes.
type Synthetic struct {
	latency time.Duration
	logger  zerolog.Logger
}

// NewSynthetic returns a synthetic client that waits latency before
// answering, to mimic a remote call.
func NewSynthetic(latency time.Duration, logger *zerolog.Logger) *Synthetic {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &Synthetic{latency: latency, logger: l}
}

// GenerateImage fulfils imagegen.Client.
func (s *Synthetic) GenerateImage(ctx context.Context, req imagegen.Request) (*imagegen.Response, error) {
	if s.latency > 0 {
		select {
		case <-time.After(s.latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	width, height := normalizeAspect(req.AspectRatio)
	seed := deterministicSeed(req.Prompt, req.AspectRatio)
	data, err := renderSyntheticImage(width, height, seed)
	if err != nil {
		return nil, fmt.Errorf("genai: render synthetic image: %w", err)
	}

	s.logger.Debug().
		Str("seed", seed).
		Int("width", width).
		Int("height", height).
		Msg("genai: generated synthetic image")

	return &imagegen.Response{Parts: []imagegen.Part{
		{Text: "synthetic placeholder"},
		{InlineData: &imagegen.InlineData{MIMEType: "image/png", Data: data}},
	}}, nil
}

var _ imagegen.Client = (*Synthetic)(nil)

func renderSyntheticImage(width, height int, seed string) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	base := colorFromSeed(seed, 0)
	accent := colorFromSeed(seed, 1)
	draw.Draw(img, img.Bounds(), &image.Uniform{base}, image.Point{}, draw.Src)

	stripeHeight := max(32, height/12)
	for y := 0; y < height; y += stripeHeight * 2 {
		stripe := image.Rect(0, y, width, min(height, y+stripeHeight))
		draw.Draw(img, stripe, &image.Uniform{accent}, image.Point{}, draw.Over)
	}

	diagonal := colorFromSeed(seed, 2)
	for x := 0; x < max(width, height); x += max(16, width/32) {
		for y := 0; y < height; y++ {
			xx := x + y
			if xx >= width {
				break
			}
			img.Set(xx, y, diagonal)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func colorFromSeed(seed string, shift int) color.RGBA {
	doubled := seed + seed
	start := (shift * 6) % len(seed)
	segment := doubled[start : start+6]
	return color.RGBA{
		R: parseHexByte(segment[0:2]),
		G: parseHexByte(segment[2:4]),
		B: parseHexByte(segment[4:6]),
		A: 255,
	}
}

func parseHexByte(s string) uint8 {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0
	}
	return uint8(v)
}

func deterministicSeed(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])[:16]
}

// normalizeAspect maps an aspect ratio to pixel dimensions, keeping the
// synthetic images small enough to render quickly.
func normalizeAspect(aspect string) (int, int) {
	switch strings.TrimSpace(strings.ToLower(aspect)) {
	case "16:9":
		return 1280, 720
	case "9:16":
		return 720, 1280
	case "4:3":
		return 1024, 768
	case "1:1", "square", "":
		return 1024, 1024
	default:
		parts := strings.Split(aspect, ":")
		if len(parts) == 2 {
			a, errA := strconv.Atoi(strings.TrimSpace(parts[0]))
			b, errB := strconv.Atoi(strings.TrimSpace(parts[1]))
			if errA == nil && errB == nil && a > 0 && b > 0 {
				return 1024, 1024 * b / a
			}
		}
		return 1024, 1024
	}
}
