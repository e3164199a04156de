package imagegen

import (
	"strings"
	"testing"
)

func TestComposePromptEmbedsScene(t *testing.T) {
	got := ComposePrompt("  A lone projector beam cutting through a dusty cinema.  ")

	checks := []string{
		"Cinematic film still",
		"Scene: A lone projector beam cutting through a dusty cinema.",
		"No text, no captions",
	}
	for _, expect := range checks {
		if !strings.Contains(got, expect) {
			t.Fatalf("prompt missing %q: %s", expect, got)
		}
	}
	if strings.Contains(got, "cinema..") {
		t.Fatalf("prompt should not double the trailing period: %s", got)
	}
}

func TestComposePromptIsDeterministic(t *testing.T) {
	if ComposePrompt("rooftop at dawn") != ComposePrompt("rooftop at dawn") {
		t.Fatalf("ComposePrompt must be deterministic")
	}
}

func TestBuildRequestDefaultsAspectRatio(t *testing.T) {
	req := BuildRequest(AssetRequest{Prompt: "city lights"})
	if req.AspectRatio != AspectRatioWidescreen {
		t.Fatalf("AspectRatio = %q, want %q", req.AspectRatio, AspectRatioWidescreen)
	}
	if !strings.Contains(req.Prompt, "Scene: city lights.") {
		t.Fatalf("composed prompt missing scene: %s", req.Prompt)
	}
}
