// Package eval grades locked-in quiz answers against the correct
// answers, through the LLM for semantic judgment with a deterministic
// string-match fallback when the gateway is unreachable.
package eval

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/quizwiz/internal/llm"
	"github.com/abhisek/quizwiz/internal/quizgen"
)

const (
	maxTokens   = 2048
	temperature = 0.1
)

// Result is the graded outcome for one question.
type Result struct {
	QuestionID         string   `json:"questionId"`
	Question           string   `json:"question"`
	UserAnswer         string   `json:"userAnswer"`
	CorrectAnswer      string   `json:"correctAnswer"`
	AlternativeAnswers []string `json:"alternativeAnswers,omitempty"`
	IsCorrect          bool     `json:"isCorrect"`
	Explanation        string   `json:"explanation"`
	SourceURL          string   `json:"sourceUrl,omitempty"`
	SourceName         string   `json:"sourceName,omitempty"`
	ImageURL           string   `json:"imageUrl,omitempty"`

	// ManualOverride marks a verdict the player flipped after grading.
	ManualOverride bool `json:"manualOverride,omitempty"`
}

// Evaluator grades a full round of answers in a single LLM call.
type Evaluator struct {
	provider llm.Provider
}

// New creates an Evaluator.
func New(provider llm.Provider) *Evaluator {
	return &Evaluator{provider: provider}
}

// verdict is one parsed grading entry from the model.
type verdict struct {
	QuestionIndex int    `json:"questionIndex"`
	IsCorrect     bool   `json:"isCorrect"`
	Explanation   string `json:"explanation"`
}

type verdictsOutput struct {
	Evaluations []verdict `json:"evaluations"`
}

// Evaluate grades every answer. The returned slice always has one
// Result per question, in question order. Questions the model skipped
// come back ungraded (incorrect, with a note). If the provider call
// itself fails, grading falls back to exact string matching; a parse
// failure of a successful response does not, it propagates so the raw
// response stays inspectable.
func (e *Evaluator) Evaluate(ctx context.Context, questions []quizgen.Question, answers []quizgen.UserAnswer, lang string) ([]Result, error) {
	if len(questions) == 0 {
		return nil, nil
	}

	byID := make(map[string]string, len(answers))
	for _, a := range answers {
		byID[a.QuestionID] = a.Answer
	}

	ctx = llm.WithPurpose(ctx, "evaluation")

	resp, err := e.provider.Generate(ctx, llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildEvalPrompt(questions, byID, lang)}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return e.fallback(questions, byID, lang), nil
	}

	block, err := llm.ExtractJSON(string(resp.Content))
	if err != nil {
		return nil, fmt.Errorf("parse evaluation response: %w", err)
	}
	if err := llm.Validate(VerdictsSchema, block); err != nil {
		return nil, fmt.Errorf("parse evaluation response: %w", err)
	}

	var parsed verdictsOutput
	if err := json.Unmarshal(block, &parsed); err != nil {
		return nil, fmt.Errorf("parse evaluation response: %w", &llm.ErrInvalidResponse{Content: resp.Content, Err: err})
	}

	byIndex := make(map[int]verdict, len(parsed.Evaluations))
	for _, v := range parsed.Evaluations {
		byIndex[v.QuestionIndex] = v
	}

	t := evalTextFor(lang)
	results := make([]Result, 0, len(questions))
	for i, q := range questions {
		r := baseResult(q, byID[q.ID])
		if v, ok := byIndex[i]; ok {
			r.IsCorrect = v.IsCorrect
			r.Explanation = v.Explanation
		} else {
			r.IsCorrect = false
			r.Explanation = t.notEvaluated
		}
		results = append(results, r)
	}
	return results, nil
}

// fallback grades by normalized string comparison. It cannot judge
// semantics, so the explanation says which path graded the answer.
func (e *Evaluator) fallback(questions []quizgen.Question, byID map[string]string, lang string) []Result {
	t := evalTextFor(lang)

	results := make([]Result, 0, len(questions))
	for _, q := range questions {
		answer := byID[q.ID]
		r := baseResult(q, answer)
		r.IsCorrect = answerMatches(answer, q)
		if r.IsCorrect {
			r.Explanation = t.fallbackCorrect
		} else {
			r.Explanation = fmt.Sprintf(t.fallbackIncorrect, q.CorrectAnswer)
		}
		results = append(results, r)
	}
	return results
}

func baseResult(q quizgen.Question, answer string) Result {
	return Result{
		QuestionID:         q.ID,
		Question:           q.Text,
		UserAnswer:         answer,
		CorrectAnswer:      q.CorrectAnswer,
		AlternativeAnswers: q.AlternativeAnswers,
		SourceURL:          q.SourceURL,
		SourceName:         q.SourceName,
		ImageURL:           q.ImageURL,
	}
}

// answerMatches compares the given answer against the primary and all
// alternative answers after trimming and lowercasing. A non-trivial
// substring match counts, so "Paris" passes against "Paris, France".
func answerMatches(answer string, q quizgen.Question) bool {
	given := normalize(answer)
	if given == "" {
		return false
	}

	accepted := append([]string{q.CorrectAnswer}, q.AlternativeAnswers...)
	for _, a := range accepted {
		want := normalize(a)
		if want == "" {
			continue
		}
		if given == want {
			return true
		}
		if len(given) >= 3 && (strings.Contains(want, given) || strings.Contains(given, want)) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
