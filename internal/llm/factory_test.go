package llm

import (
	"context"
	"strings"
	"testing"
)

func TestNewProvider_Mock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "mock"

	p, err := NewProvider(context.Background(), cfg, NopSink{})
	if err != nil {
		t.Fatal(err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}

func TestNewProvider_UnknownVendor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "abacus"

	_, err := NewProvider(context.Background(), cfg, nil)
	if err == nil || !strings.Contains(err.Error(), "abacus") {
		t.Fatalf("expected an unknown-provider error naming the vendor, got %v", err)
	}
}

func TestNewProvider_WrapsWithMiddleware(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "openai"
	cfg.OpenAI.APIKey = "sk-test"

	p, err := NewProvider(context.Background(), cfg, NopSink{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.(*RetryProvider); !ok {
		t.Errorf("expected the retry decorator on the outside, got %T", p)
	}
}
