package llm

import "fmt"

// AuthScheme describes how a provider expects its API key.
type AuthScheme string

const (
	// AuthBearer sends the key as "Authorization: Bearer <key>".
	AuthBearer AuthScheme = "bearer"
	// AuthAPIKeyHeader sends the key in a provider-specific header
	// (Anthropic's x-api-key).
	AuthAPIKeyHeader AuthScheme = "api-key-header"
	// AuthQueryKey appends the key as a URL query parameter (Gemini).
	AuthQueryKey AuthScheme = "query-key"
)

// ModelInfo describes one selectable model of a provider.
type ModelInfo struct {
	ID   string
	Name string
	Free bool
}

// Descriptor is the static catalog entry for one provider. Instances
// are never mutated at runtime.
type Descriptor struct {
	ID           string
	Name         string
	Endpoint     string
	Auth         AuthScheme
	DefaultModel string
	Models       []ModelInfo
}

// catalog lists every supported provider. Order matters: it is the
// display order for `quizwiz models`.
var catalog = []Descriptor{
	{
		ID:           "gemini",
		Name:         "Google Gemini",
		Endpoint:     "https://generativelanguage.googleapis.com/v1beta",
		Auth:         AuthQueryKey,
		DefaultModel: "gemini-2.0-flash",
		Models: []ModelInfo{
			{ID: "gemini-2.0-flash", Name: "Gemini 2.0 Flash", Free: true},
			{ID: "gemini-2.0-flash-lite", Name: "Gemini 2.0 Flash Lite", Free: true},
			{ID: "gemini-2.0-pro", Name: "Gemini 2.0 Pro", Free: false},
		},
	},
	{
		ID:           "anthropic",
		Name:         "Anthropic",
		Endpoint:     "https://api.anthropic.com/v1/messages",
		Auth:         AuthAPIKeyHeader,
		DefaultModel: "claude-haiku-4-5-20251001",
		Models: []ModelInfo{
			{ID: "claude-haiku-4-5-20251001", Name: "Claude Haiku", Free: false},
			{ID: "claude-sonnet-4-20250514", Name: "Claude Sonnet", Free: false},
		},
	},
	{
		ID:           "openai",
		Name:         "OpenAI",
		Endpoint:     "https://api.openai.com/v1/chat/completions",
		Auth:         AuthBearer,
		DefaultModel: "gpt-4o-mini",
		Models: []ModelInfo{
			{ID: "gpt-4o-mini", Name: "GPT-4o mini", Free: false},
			{ID: "gpt-4o", Name: "GPT-4o", Free: false},
		},
	},
	{
		ID:           "openrouter",
		Name:         "OpenRouter",
		Endpoint:     "https://openrouter.ai/api/v1/chat/completions",
		Auth:         AuthBearer,
		DefaultModel: "google/gemini-2.0-flash-exp:free",
		Models: []ModelInfo{
			{ID: "google/gemini-2.0-flash-exp:free", Name: "Gemini 2.0 Flash (free)", Free: true},
			{ID: "meta-llama/llama-3.3-70b-instruct:free", Name: "Llama 3.3 70B (free)", Free: true},
			{ID: "anthropic/claude-3.5-haiku", Name: "Claude 3.5 Haiku", Free: false},
			{ID: "openai/gpt-4o-mini", Name: "GPT-4o mini", Free: false},
		},
	},
	{
		ID:           "mistral",
		Name:         "Mistral",
		Endpoint:     "https://api.mistral.ai/v1/chat/completions",
		Auth:         AuthBearer,
		DefaultModel: "mistral-small-latest",
		Models: []ModelInfo{
			{ID: "mistral-small-latest", Name: "Mistral Small", Free: true},
			{ID: "mistral-large-latest", Name: "Mistral Large", Free: false},
		},
	},
	{
		ID:           "groq",
		Name:         "Groq",
		Endpoint:     "https://api.groq.com/openai/v1/chat/completions",
		Auth:         AuthBearer,
		DefaultModel: "llama-3.3-70b-versatile",
		Models: []ModelInfo{
			{ID: "llama-3.3-70b-versatile", Name: "Llama 3.3 70B", Free: true},
			{ID: "mixtral-8x7b-32768", Name: "Mixtral 8x7B", Free: true},
		},
	},
}

// Providers returns all catalog entries in display order.
func Providers() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the descriptor for the given provider id. An unknown
// id is a programming error (ids come from the catalog itself), so
// Lookup panics rather than returning an error.
func Lookup(id string) Descriptor {
	for _, d := range catalog {
		if d.ID == id {
			return d
		}
	}
	panic(fmt.Sprintf("llm: unknown provider id %q", id))
}

// Known reports whether id names a catalog provider.
func Known(id string) bool {
	for _, d := range catalog {
		if d.ID == id {
			return true
		}
	}
	return false
}

// ListModels returns the known models for the given provider id.
func ListModels(id string) []ModelInfo {
	d := Lookup(id)
	out := make([]ModelInfo, len(d.Models))
	copy(out, d.Models)
	return out
}
