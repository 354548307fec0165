package llm

import (
	"testing"
	"time"
)

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		msg  string
		want time.Duration
	}{
		{"Resource exhausted. Please retry in 5s.", 5 * time.Second},
		{"Rate limit reached, retrying in 12.5s", 12500 * time.Millisecond},
		{`"retryDelay":"7s"`, 7 * time.Second},
		{"Please try again in 30 seconds", 30 * time.Second},
		{"quota exceeded for this project", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := parseRetryAfter(tt.msg); got != tt.want {
			t.Errorf("parseRetryAfter(%q) = %s, want %s", tt.msg, got, tt.want)
		}
	}
}

func TestErrAPI_MessageFallback(t *testing.T) {
	e := &ErrAPI{Status: 503}
	if e.Error() != "API error: 503" {
		t.Fatalf("unexpected message: %q", e.Error())
	}

	e = &ErrAPI{Status: 400, Message: "model not found"}
	if e.Error() != "model not found" {
		t.Fatalf("unexpected message: %q", e.Error())
	}
}
