package image

import (
	"context"
	"testing"

	"pitchdeck/internal/infra"
	"pitchdeck/internal/providers/gemini"
	"pitchdeck/internal/providers/genai"
)

func TestNewSelectsProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     infra.Config
		check   func(t *testing.T, p *Provider)
		wantErr bool
	}{
		{
			name: "synthetic",
			cfg:  infra.Config{ImageProvider: infra.ProviderSynthetic},
			check: func(t *testing.T, p *Provider) {
				if _, ok := p.Client.(*genai.Synthetic); !ok {
					t.Fatalf("client = %T, want *genai.Synthetic", p.Client)
				}
			},
		},
		{
			name: "rest",
			cfg:  infra.Config{ImageProvider: infra.ProviderGeminiREST, GeminiAPIKey: "k", GeminiModel: "m"},
			check: func(t *testing.T, p *Provider) {
				if _, ok := p.Client.(*genai.Client); !ok {
					t.Fatalf("client = %T, want *genai.Client", p.Client)
				}
				if p.Model != "m" {
					t.Fatalf("Model = %q, want m", p.Model)
				}
			},
		},
		{
			name: "sdk",
			cfg:  infra.Config{ImageProvider: infra.ProviderGemini, GeminiAPIKey: "k"},
			check: func(t *testing.T, p *Provider) {
				if _, ok := p.Client.(*gemini.Client); !ok {
					t.Fatalf("client = %T, want *gemini.Client", p.Client)
				}
			},
		},
		{
			name:    "rest without key",
			cfg:     infra.Config{ImageProvider: infra.ProviderGeminiREST},
			wantErr: true,
		},
		{
			name:    "unknown",
			cfg:     infra.Config{ImageProvider: "dalle"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := New(context.Background(), &tc.cfg, nil)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}
			tc.check(t, p)
		})
	}
}
