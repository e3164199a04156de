package imagegen

import "strings"

// styleDirectives wrap every slide prompt so the whole deck shares one look.
var styleDirectives = []string{
	"Cinematic film still for an independent feature film pitch deck.",
	"Anamorphic widescreen composition, shallow depth of field, dramatic low-key lighting.",
	"Moody teal and amber color grade, subtle 35mm film grain.",
}

var styleConstraints = []string{
	"Leave calm negative space on the left third for overlaid title text.",
	"No text, no captions, no logos, no watermark.",
}

// ComposePrompt embeds a slide's raw prompt in the deck's fixed style
// template. The result is deterministic for a given input.
func ComposePrompt(raw string) string {
	lines := make([]string, 0, len(styleDirectives)+len(styleConstraints)+1)
	lines = append(lines, styleDirectives...)
	if scene := strings.TrimSpace(raw); scene != "" {
		lines = append(lines, "Scene: "+strings.TrimRight(scene, ".")+".")
	}
	lines = append(lines, styleConstraints...)
	return strings.Join(lines, "\n")
}

// BuildRequest turns an AssetRequest into the Request sent to a Client.
func BuildRequest(ar AssetRequest) Request {
	aspect := strings.TrimSpace(ar.AspectRatio)
	if aspect == "" {
		aspect = AspectRatioWidescreen
	}
	return Request{
		Prompt:      ComposePrompt(ar.Prompt),
		AspectRatio: aspect,
	}
}
