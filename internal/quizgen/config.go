package quizgen

// Config controls the behavior of the Generator and ExpertPipeline.
type Config struct {
	// MaxTokens is the token budget for a generation response.
	MaxTokens int

	// ResearchMaxTokens is the token budget for the expert pipeline's
	// fact-research stage.
	ResearchMaxTokens int

	// Temperature for generation. Runs hot to favor variety.
	Temperature float64
}

// DefaultConfig returns the recommended generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:         4096,
		ResearchMaxTokens: 2048,
		Temperature:       0.8,
	}
}
