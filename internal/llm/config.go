package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use. Any catalog id
	// ("gemini", "anthropic", "openai", "openrouter", "mistral",
	// "groq") or "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Mistral    MistralConfig
	Groq       GroqConfig
	Retry      RetryConfig

	// Timeout is the maximum duration for a single LLM request
	// (excluding retries). Default: 60s — trivia batches are long.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	// Referer and Title are sent as the OpenRouter identifying
	// headers (HTTP-Referer, X-Title) on every request.
	Referer string
	Title   string
}

// MistralConfig holds Mistral-specific configuration.
type MistralConfig struct {
	APIKey string
	Model  string
}

// GroqConfig holds Groq-specific configuration.
type GroqConfig struct {
	APIKey string
	Model  string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64

	// MaxQuotaRetries bounds how many times a rate-limited call is
	// retried on the provider's say-so before the error surfaces.
	MaxQuotaRetries int
	// QuotaHintCap is the longest retry-after hint worth honoring;
	// hints above it surface immediately.
	QuotaHintCap time.Duration
	// QuotaPad is added on top of the provider's hint before retrying.
	QuotaPad time.Duration
}

// DefaultConfig returns a Config with sensible defaults. Model fields
// default to each provider's catalog default.
func DefaultConfig() Config {
	return Config{
		Provider: "openrouter",
		Anthropic: AnthropicConfig{
			Model: Lookup("anthropic").DefaultModel,
		},
		OpenAI: OpenAIConfig{
			Model: Lookup("openai").DefaultModel,
		},
		Gemini: GeminiConfig{
			Model: Lookup("gemini").DefaultModel,
		},
		OpenRouter: OpenRouterConfig{
			Model: Lookup("openrouter").DefaultModel,
			Title: "quizwiz",
		},
		Mistral: MistralConfig{
			Model: Lookup("mistral").DefaultModel,
		},
		Groq: GroqConfig{
			Model: Lookup("groq").DefaultModel,
		},
		Retry: RetryConfig{
			MaxAttempts:     3,
			InitialWait:     1 * time.Second,
			MaxWait:         10 * time.Second,
			Multiplier:      2.0,
			MaxQuotaRetries: 2,
			QuotaHintCap:    60 * time.Second,
			QuotaPad:        2 * time.Second,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling
// back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("QUIZWIZ_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	if k := os.Getenv("QUIZWIZ_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("QUIZWIZ_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	if k := os.Getenv("QUIZWIZ_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("QUIZWIZ_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("QUIZWIZ_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("QUIZWIZ_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("QUIZWIZ_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	if k := os.Getenv("QUIZWIZ_OPENROUTER_API_KEY"); k != "" {
		cfg.OpenRouter.APIKey = k
	}
	if m := os.Getenv("QUIZWIZ_OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}

	if k := os.Getenv("QUIZWIZ_MISTRAL_API_KEY"); k != "" {
		cfg.Mistral.APIKey = k
	}
	if m := os.Getenv("QUIZWIZ_MISTRAL_MODEL"); m != "" {
		cfg.Mistral.Model = m
	}

	if k := os.Getenv("QUIZWIZ_GROQ_API_KEY"); k != "" {
		cfg.Groq.APIKey = k
	}
	if m := os.Getenv("QUIZWIZ_GROQ_MODEL"); m != "" {
		cfg.Groq.Model = m
	}

	return cfg
}

// DiscoverConfig probes standard API key env vars in priority order
// (OpenRouter → Gemini → Groq → Mistral → OpenAI → Anthropic) and
// returns a Config for the first provider whose key is found.
// Free-tier providers come first so a fresh setup works without a
// paid key. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GROQ_API_KEY"); k != "" {
		cfg.Provider = "groq"
		cfg.Groq.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("MISTRAL_API_KEY"); k != "" {
		cfg.Provider = "mistral"
		cfg.Mistral.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("QUIZWIZ_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("QUIZWIZ_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("QUIZWIZ_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("QUIZWIZ_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mistral":
		if c.Mistral.APIKey == "" {
			return fmt.Errorf("QUIZWIZ_MISTRAL_API_KEY is required for the mistral provider")
		}
	case "groq":
		if c.Groq.APIKey == "" {
			return fmt.Errorf("QUIZWIZ_GROQ_API_KEY is required for the groq provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

// WithAPIKey returns a copy of c with the selected provider's key and
// model replaced. The UI hands the key and model over per call; this
// keeps that flow without spreading key plumbing through every config
// field.
func (c Config) WithAPIKey(key, model string) Config {
	switch c.Provider {
	case "anthropic":
		c.Anthropic.APIKey = key
		if model != "" {
			c.Anthropic.Model = model
		}
	case "openai":
		c.OpenAI.APIKey = key
		if model != "" {
			c.OpenAI.Model = model
		}
	case "gemini":
		c.Gemini.APIKey = key
		if model != "" {
			c.Gemini.Model = model
		}
	case "openrouter":
		c.OpenRouter.APIKey = key
		if model != "" {
			c.OpenRouter.Model = model
		}
	case "mistral":
		c.Mistral.APIKey = key
		if model != "" {
			c.Mistral.Model = model
		}
	case "groq":
		c.Groq.APIKey = key
		if model != "" {
			c.Groq.Model = model
		}
	}
	return c
}

// WithModel returns a copy of c with the selected provider's model
// replaced. Expert mode uses this to point a second provider instance
// at a different model of the same family.
func (c Config) WithModel(model string) Config {
	if model == "" {
		return c
	}
	switch c.Provider {
	case "anthropic":
		c.Anthropic.Model = model
	case "openai":
		c.OpenAI.Model = model
	case "gemini":
		c.Gemini.Model = model
	case "openrouter":
		c.OpenRouter.Model = model
	case "mistral":
		c.Mistral.Model = model
	case "groq":
		c.Groq.Model = model
	}
	return c
}
