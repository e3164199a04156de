package deck

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDeck = `
slides:
  - id: title
    title: UNFORBIDDEN
    subtitle: A feature film in development
    prompt: A rooftop in the rain at night
  - id: team
    title: The Team
    body:
      - Director
      - Producer
    prompt: An empty film set lit by a single work light
`

func TestParseDeck(t *testing.T) {
	slides, err := Parse([]byte(sampleDeck))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(slides) != 2 {
		t.Fatalf("len(slides) = %d, want 2", len(slides))
	}
	if slides[0].Subtitle != "A feature film in development" {
		t.Fatalf("unexpected subtitle %q", slides[0].Subtitle)
	}
	if len(slides[1].Body) != 2 || slides[1].Body[1] != "Producer" {
		t.Fatalf("unexpected body %#v", slides[1].Body)
	}
}

func TestParseDeckValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "empty", input: "slides: []", wantErr: "no slides"},
		{name: "missing id", input: "slides:\n  - title: x\n    prompt: y\n", wantErr: "id is required"},
		{name: "missing prompt", input: "slides:\n  - id: a\n", wantErr: "prompt is required"},
		{name: "duplicate id", input: "slides:\n  - id: a\n    prompt: x\n  - id: a\n    prompt: y\n", wantErr: "defined twice"},
		{name: "bad yaml", input: "slides: [", wantErr: "decode yaml"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.input))
			if err == nil {
				t.Fatalf("expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.yaml")
	if err := os.WriteFile(path, []byte(sampleDeck), 0o600); err != nil {
		t.Fatalf("write deck: %v", err)
	}

	slides, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if slides[1].ID != "team" {
		t.Fatalf("slides[1].ID = %q, want team", slides[1].ID)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestDefaultSlidesAreValid(t *testing.T) {
	slides := DefaultSlides()
	if len(slides) != 10 {
		t.Fatalf("len(DefaultSlides()) = %d, want 10", len(slides))
	}
	if err := Validate(slides); err != nil {
		t.Fatalf("DefaultSlides failed validation: %v", err)
	}
}
