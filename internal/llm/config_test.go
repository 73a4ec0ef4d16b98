package llm

import (
	"strings"
	"testing"
)

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"QUIZFORGE_LLM_PROVIDER", "QUIZFORGE_ANTHROPIC_API_KEY", "QUIZFORGE_OPENAI_API_KEY",
		"QUIZFORGE_GEMINI_API_KEY", "QUIZFORGE_OPENROUTER_API_KEY",
	} {
		t.Setenv(v, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "openai" {
		t.Errorf("default provider = %q", cfg.Provider)
	}
	if cfg.Retry.MaxAttempts != 3 || cfg.Retry.Multiplier != 2.0 {
		t.Errorf("unexpected retry defaults: %+v", cfg.Retry)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("QUIZFORGE_LLM_PROVIDER", "anthropic")
	t.Setenv("QUIZFORGE_ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("QUIZFORGE_ANTHROPIC_MODEL", "claude-custom")

	cfg := FromEnv()
	if cfg.Provider != "anthropic" {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.Anthropic.APIKey != "sk-test" || cfg.Anthropic.Model != "claude-custom" {
		t.Errorf("anthropic config = %+v", cfg.Anthropic)
	}
	// Untouched vendors keep their defaults.
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("openai model = %q", cfg.OpenAI.Model)
	}
}

func TestDiscover(t *testing.T) {
	clearKeyEnv(t)

	if _, ok := Discover(); ok {
		t.Fatal("expected no discovery with no keys set")
	}

	t.Setenv("OPENAI_API_KEY", "sk-openai")
	cfg, ok := Discover()
	if !ok || cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-openai" {
		t.Fatalf("got %+v ok=%t", cfg, ok)
	}

	// Gemini takes precedence when both are set.
	t.Setenv("GEMINI_API_KEY", "gm-key")
	cfg, ok = Discover()
	if !ok || cfg.Provider != "gemini" || cfg.Gemini.APIKey != "gm-key" {
		t.Fatalf("got %+v ok=%t", cfg, ok)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "mock"
	if err := cfg.Validate(); err != nil {
		t.Errorf("mock provider should validate without a key: %v", err)
	}

	cfg.Provider = "openai"
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for openai without a key")
	}
	cfg.OpenAI.APIKey = "sk-test"
	if err := cfg.Validate(); err != nil {
		t.Errorf("openai with key should validate: %v", err)
	}

	cfg.Provider = "frontier-9000"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "frontier-9000") {
		t.Errorf("expected an unknown-provider error naming the value, got %v", err)
	}
}
