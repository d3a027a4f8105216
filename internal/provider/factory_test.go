package provider

import (
	"context"
	"testing"
)

func TestNew_UnknownBackend(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), &Config{Backend: "smoke-signals"})
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestNew_MissingCredentials(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cfg  *Config
	}{
		{"openai without key", &Config{Backend: BackendOpenAI, Model: "gpt-4o"}},
		{"azure without key", &Config{Backend: BackendAzure, BaseURL: "https://x.openai.azure.com", AzureDeployment: "d"}},
		{"azure without endpoint", &Config{Backend: BackendAzure, APIKey: "k", AzureDeployment: "d"}},
		{"azure without deployment", &Config{Backend: BackendAzure, APIKey: "k", BaseURL: "https://x.openai.azure.com"}},
		{"gemini without key", &Config{Backend: BackendGemini, Model: "gemini-1.5-pro"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := New(context.Background(), tc.cfg); err == nil {
				t.Errorf("expected error for %s", tc.name)
			}
		})
	}
}
