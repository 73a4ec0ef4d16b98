// Package config assembles process configuration from defaults, an
// optional YAML file, and QUIZFORGE_* environment variables, in that
// precedence order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/quizforge/internal/llm"
	"github.com/abhisek/quizforge/internal/quizgen"
)

// Config is the full service configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`

	// AllowedOrigins are the CORS origins the API accepts.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// DefaultCounts are the per-tier question counts used when a request
	// does not specify its own.
	DefaultCounts quizgen.Counts `yaml:"default_counts"`

	// FallbackOnError regenerates a batch via the fallback path when the
	// model path fails a tier. When false the API surfaces the tier error.
	FallbackOnError bool `yaml:"fallback_on_error"`

	// RequestLog is the path of the LLM request log file. Empty disables
	// request logging.
	RequestLog string `yaml:"request_log"`

	// Engine tunes the generation engine.
	Engine quizgen.Config `yaml:"engine"`

	// LLM selects and configures the model provider.
	LLM llm.Config `yaml:"llm"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Addr: ":8000",
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://localhost:3000",
		},
		DefaultCounts:   quizgen.Counts{Easy: 3, Medium: 3, Hard: 2},
		FallbackOnError: true,
		Engine:          quizgen.DefaultConfig(),
		LLM:             llm.DefaultConfig(),
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty), then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays QUIZFORGE_* environment variables. LLM vars are handled
// by llm.FromEnv against the current values.
func (c *Config) applyEnv() {
	if v := os.Getenv("QUIZFORGE_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("QUIZFORGE_ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("QUIZFORGE_REQUEST_LOG"); v != "" {
		c.RequestLog = v
	}
	if v := os.Getenv("QUIZFORGE_FALLBACK_ON_ERROR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.FallbackOnError = b
		}
	}

	env := llm.FromEnv()
	if os.Getenv("QUIZFORGE_LLM_PROVIDER") != "" {
		c.LLM.Provider = env.Provider
	}
	overlayKey(&c.LLM.Anthropic.APIKey, env.Anthropic.APIKey, "QUIZFORGE_ANTHROPIC_API_KEY")
	overlayKey(&c.LLM.Anthropic.Model, env.Anthropic.Model, "QUIZFORGE_ANTHROPIC_MODEL")
	overlayKey(&c.LLM.OpenAI.APIKey, env.OpenAI.APIKey, "QUIZFORGE_OPENAI_API_KEY")
	overlayKey(&c.LLM.OpenAI.Model, env.OpenAI.Model, "QUIZFORGE_OPENAI_MODEL")
	overlayKey(&c.LLM.OpenAI.BaseURL, env.OpenAI.BaseURL, "QUIZFORGE_OPENAI_BASE_URL")
	overlayKey(&c.LLM.Gemini.APIKey, env.Gemini.APIKey, "QUIZFORGE_GEMINI_API_KEY")
	overlayKey(&c.LLM.Gemini.Model, env.Gemini.Model, "QUIZFORGE_GEMINI_MODEL")
	overlayKey(&c.LLM.OpenRouter.APIKey, env.OpenRouter.APIKey, "QUIZFORGE_OPENROUTER_API_KEY")
	overlayKey(&c.LLM.OpenRouter.Model, env.OpenRouter.Model, "QUIZFORGE_OPENROUTER_MODEL")
}

func overlayKey(dst *string, val, envVar string) {
	if os.Getenv(envVar) != "" {
		*dst = val
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks the configuration for a runnable server.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.DefaultCounts.Easy < 0 || c.DefaultCounts.Medium < 0 || c.DefaultCounts.Hard < 0 {
		return fmt.Errorf("default question counts must be non-negative")
	}
	return c.LLM.Validate()
}
