package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit or quota
// error (429). RetryAfter holds the wait hint the provider embedded in
// its error message, when one could be parsed; zero otherwise.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Quota      bool
	Body       string
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrAPI indicates a non-2xx, non-rate-limit HTTP response from a
// provider. Body preserves the raw response for diagnostic display.
type ErrAPI struct {
	Status  int
	Message string
	Body    string
	Err     error
}

func (e *ErrAPI) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API error: %d", e.Status)
}

func (e *ErrAPI) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the LLM returned content that could not
// be parsed into the expected structure. Content holds the model's
// output verbatim so callers can surface exactly what it produced.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// retryAfterPatterns match the wait hints providers embed in quota
// error messages, e.g. "Please retry in 12.3s", "retryDelay":"7s",
// or "try again in 30 seconds".
var retryAfterPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)retry(?:ing)? in (\d+(?:\.\d+)?)\s*s`),
	regexp.MustCompile(`(?i)retryDelay"?\s*[:=]\s*"?(\d+(?:\.\d+)?)s`),
	regexp.MustCompile(`(?i)try again in (\d+(?:\.\d+)?)\s*(?:s\b|sec|second)`),
}

// parseRetryAfter extracts a retry-after hint from a provider error
// message. Returns zero when no hint is present.
func parseRetryAfter(msg string) time.Duration {
	for _, re := range retryAfterPatterns {
		m := re.FindStringSubmatch(msg)
		if m == nil {
			continue
		}
		secs, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return time.Duration(secs * float64(time.Second))
	}
	return 0
}
