package llm

import "fmt"

const (
	defaultMistralBaseURL = "https://api.mistral.ai/v1"
	defaultGroqBaseURL    = "https://api.groq.com/openai/v1"
)

// MistralProvider targets the Mistral API through the OpenAI-compatible
// chat-completion envelope.
type MistralProvider struct {
	*OpenAIProvider
}

// NewMistralProvider creates a provider targeting the Mistral API.
func NewMistralProvider(cfg MistralConfig) (*MistralProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("mistral API key is required")
	}

	inner, err := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: defaultMistralBaseURL,
	}, nil)
	if err != nil {
		return nil, err
	}

	return &MistralProvider{OpenAIProvider: inner}, nil
}

// GroqProvider targets the Groq API through the OpenAI-compatible
// chat-completion envelope.
type GroqProvider struct {
	*OpenAIProvider
}

// NewGroqProvider creates a provider targeting the Groq API.
func NewGroqProvider(cfg GroqConfig) (*GroqProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}

	inner, err := newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: defaultGroqBaseURL,
	}, nil)
	if err != nil {
		return nil, err
	}

	return &GroqProvider{OpenAIProvider: inner}, nil
}
