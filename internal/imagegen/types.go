// Package imagegen defines the contract between the deck and any
// text-to-image service.
package imagegen

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// AspectRatioWidescreen is the only composition the deck requests.
const AspectRatioWidescreen = "16:9"

// ErrMissingAssetData marks a successful response that carried no image part.
var ErrMissingAssetData = errors.New("missing asset data")

// ErrUndecodableAsset marks image bytes a provider could not decode, such as
// malformed base64 in an inline part.
var ErrUndecodableAsset = errors.New("undecodable asset data")

// AssetRequest is one slide's background-generation intent. It is built
// once per slide and never mutated.
type AssetRequest struct {
	Prompt      string
	AspectRatio string
}

// NewAssetRequest returns a widescreen request for prompt.
func NewAssetRequest(prompt string) AssetRequest {
	return AssetRequest{Prompt: strings.TrimSpace(prompt), AspectRatio: AspectRatioWidescreen}
}

// Request is what a Client receives: the composed prompt text and the
// aspect-ratio hint.
type Request struct {
	Prompt      string
	AspectRatio string
}

// InlineData carries decoded image bytes.
type InlineData struct {
	MIMEType string
	Data     []byte
}

// Part is one piece of a generation response. At most one part carries an
// image in practice; text parts are model commentary.
type Part struct {
	Text       string
	InlineData *InlineData
}

// Response is a successful generation. Zero parts is a valid shape.
type Response struct {
	Parts []Part
}

// FirstImage returns the first part with non-empty inline bytes.
func (r *Response) FirstImage() (*InlineData, bool) {
	if r == nil {
		return nil, false
	}
	for _, part := range r.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData, true
		}
	}
	return nil, false
}

// Client is implemented by every image provider.
type Client interface {
	GenerateImage(ctx context.Context, req Request) (*Response, error)
}

// ClientFunc adapts a function to the Client interface.
type ClientFunc func(ctx context.Context, req Request) (*Response, error)

// GenerateImage calls f.
func (f ClientFunc) GenerateImage(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}

// StatusError is a classified service failure. Code is HTTP-like, Status is
// the service's enum name (for example RESOURCE_EXHAUSTED).
type StatusError struct {
	Code    int
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	var b strings.Builder
	b.WriteString("imagegen: ")
	switch {
	case e.Code != 0 && e.Status != "":
		fmt.Fprintf(&b, "status %d (%s)", e.Code, e.Status)
	case e.Code != 0:
		fmt.Fprintf(&b, "status %d", e.Code)
	case e.Status != "":
		b.WriteString(e.Status)
	default:
		b.WriteString("unclassified failure")
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		b.WriteString(": ")
		b.WriteString(msg)
	}
	return b.String()
}

// StatusCode returns the numeric code.
func (e *StatusError) StatusCode() int { return e.Code }

// StatusName returns the service status name.
func (e *StatusError) StatusName() string { return e.Status }
