package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON pulls the first JSON object out of free-form model text.
// Models wrap their JSON in prose, markdown fences, or leading
// apologies no matter how firmly the prompt forbids it, so this takes
// the widest plausible slice: everything from the first '{' to the
// last '}' (the equivalent of a greedy /\{[\s\S]*\}/ match).
//
// On any failure (no braces, or the slice is not valid JSON) the
// returned error is an *ErrInvalidResponse whose Content holds the
// original text unchanged, so the caller can show exactly what the
// model produced.
func ExtractJSON(text string) (json.RawMessage, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return nil, &ErrInvalidResponse{
			Content: json.RawMessage(text),
			Err:     fmt.Errorf("no JSON object in response"),
		}
	}

	block := json.RawMessage(text[start : end+1])
	if !json.Valid(block) {
		return nil, &ErrInvalidResponse{
			Content: json.RawMessage(text),
			Err:     fmt.Errorf("extracted block is not valid JSON"),
		}
	}

	return block, nil
}
