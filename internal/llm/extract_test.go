package llm

import (
	"errors"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "bare object",
			text: `{"questions":[]}`,
			want: `{"questions":[]}`,
		},
		{
			name: "markdown fenced",
			text: "Here you go:\n```json\n{\"questions\":[]}\n```\n",
			want: `{"questions":[]}`,
		},
		{
			name: "prose around object",
			text: `Sure! {"a":1} Hope that helps.`,
			want: `{"a":1}`,
		},
		{
			name: "nested braces take the widest slice",
			text: `{"a":{"b":2}}`,
			want: `{"a":{"b":2}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestExtractJSON_NoObjectPreservesRawText(t *testing.T) {
	text := "I'm sorry, I cannot generate questions right now."

	_, err := ExtractJSON(text)
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
	if string(inv.Content) != text {
		t.Fatalf("raw text not preserved: %q", inv.Content)
	}
}

func TestExtractJSON_InvalidBlockPreservesRawText(t *testing.T) {
	text := `prefix {"broken": } suffix`

	_, err := ExtractJSON(text)
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
	if string(inv.Content) != text {
		t.Fatalf("raw text not preserved: %q", inv.Content)
	}
}
