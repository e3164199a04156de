// Package gemini implements imagegen.Client on top of the official
// google.golang.org/genai SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"pitchdeck/internal/imagegen"
)

const defaultModel = "gemini-2.5-flash-image"

// Options configures the SDK client.
type Options struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client generates slide backgrounds through Models.GenerateContent.
type Client struct {
	models contentGenerator
	model  string
	logger zerolog.Logger
}

// NewClient creates a Gemini API backed client.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini: api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: base}
	}

	sdk, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return newClient(sdk.Models, opts), nil
}

func newClient(models contentGenerator, opts Options) *Client {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Client{models: models, model: model, logger: logger}
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// GenerateImage fulfils imagegen.Client.
func (c *Client) GenerateImage(ctx context.Context, req imagegen.Request) (*imagegen.Response, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}
	if aspect := strings.TrimSpace(req.AspectRatio); aspect != "" {
		config.ImageConfig = &genai.ImageConfig{AspectRatio: aspect}
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), config)
	if err != nil {
		return nil, classify(err)
	}

	out := convertResponse(resp)
	c.logger.Debug().
		Str("model", c.model).
		Int("parts", len(out.Parts)).
		Msg("gemini: generateContent completed")
	return out, nil
}

func convertResponse(resp *genai.GenerateContentResponse) *imagegen.Response {
	out := &imagegen.Response{}
	if resp == nil {
		return out
	}
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			converted := imagegen.Part{Text: part.Text}
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				converted.InlineData = &imagegen.InlineData{
					MIMEType: part.InlineData.MIMEType,
					Data:     part.InlineData.Data,
				}
			}
			out.Parts = append(out.Parts, converted)
		}
	}
	return out
}

// classify turns SDK API errors into imagegen.StatusError so the retry
// helper can read the code and status. Other errors are wrapped.
func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &imagegen.StatusError{Code: apiErr.Code, Status: apiErr.Status, Message: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &imagegen.StatusError{Code: apiErrPtr.Code, Status: apiErrPtr.Status, Message: apiErrPtr.Message}
	}
	return fmt.Errorf("gemini: generate content: %w", err)
}

var _ imagegen.Client = (*Client)(nil)
