package eval

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizwiz/internal/llm"
	"github.com/abhisek/quizwiz/internal/quizgen"
)

func testQuestions() []quizgen.Question {
	return []quizgen.Question{
		{
			ID:            "q1",
			Text:          "What is the capital of France?",
			CorrectAnswer: "Paris",
			SourceURL:     "https://en.wikipedia.org/wiki/Paris",
			SourceName:    "Wikipedia",
		},
		{
			ID:                 "q2",
			Text:               "Which country landed the first human on the Moon?",
			CorrectAnswer:      "United States",
			AlternativeAnswers: []string{"USA", "United States of America"},
		},
	}
}

func verdictsJSON(verdicts ...map[string]any) json.RawMessage {
	raw, err := json.Marshal(map[string]any{"evaluations": verdicts})
	if err != nil {
		panic(err)
	}
	return raw
}

func TestEvaluate_GradesInQuestionOrder(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: verdictsJSON(
			map[string]any{"questionIndex": 1, "isCorrect": true, "explanation": "Apollo 11 landed in 1969."},
			map[string]any{"questionIndex": 0, "isCorrect": false, "explanation": "Lyon is not the capital."},
		),
	})
	e := New(mock)

	results, err := e.Evaluate(context.Background(), testQuestions(), []quizgen.UserAnswer{
		{QuestionID: "q1", Answer: "Lyon"},
		{QuestionID: "q2", Answer: "USA"},
	}, "en")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "q1", results[0].QuestionID)
	assert.False(t, results[0].IsCorrect)
	assert.Equal(t, "Lyon is not the capital.", results[0].Explanation)
	assert.Equal(t, "Lyon", results[0].UserAnswer)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Paris", results[0].SourceURL)

	assert.Equal(t, "q2", results[1].QuestionID)
	assert.True(t, results[1].IsCorrect)
}

func TestEvaluate_BackfillsSkippedVerdicts(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: verdictsJSON(
			map[string]any{"questionIndex": 0, "isCorrect": true, "explanation": "Correct."},
		),
	})
	e := New(mock)

	results, err := e.Evaluate(context.Background(), testQuestions(), []quizgen.UserAnswer{
		{QuestionID: "q1", Answer: "Paris"},
		{QuestionID: "q2", Answer: "USA"},
	}, "en")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[0].IsCorrect)
	assert.False(t, results[1].IsCorrect)
	assert.Contains(t, results[1].Explanation, "could not be automatically evaluated")
}

func TestEvaluate_ProviderErrorFallsBackToStringMatch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("gateway down")})
	e := New(mock)

	results, err := e.Evaluate(context.Background(), testQuestions(), []quizgen.UserAnswer{
		{QuestionID: "q1", Answer: "  paris "},
		{QuestionID: "q2", Answer: "Russia"},
	}, "en")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[0].IsCorrect)
	assert.False(t, results[1].IsCorrect)
	assert.Contains(t, results[1].Explanation, "United States")
}

func TestEvaluate_FallbackAcceptsAlternativeAnswers(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("gateway down")})
	e := New(mock)

	results, err := e.Evaluate(context.Background(), testQuestions(), []quizgen.UserAnswer{
		{QuestionID: "q2", Answer: "usa"},
	}, "en")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[1].IsCorrect)
	assert.False(t, results[0].IsCorrect, "missing answer is incorrect")
}

func TestEvaluate_ParseFailurePropagates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("no json here"),
	})
	e := New(mock)

	_, err := e.Evaluate(context.Background(), testQuestions(), nil, "en")
	require.Error(t, err)

	var invalid *llm.ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}

func TestEvaluate_EmptyQuestions(t *testing.T) {
	e := New(llm.NewMockProvider())
	results, err := e.Evaluate(context.Background(), nil, nil, "en")
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestEvaluate_PromptContainsQuestionsAndAnswers(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: verdictsJSON(
			map[string]any{"questionIndex": 0, "isCorrect": true, "explanation": "ok"},
			map[string]any{"questionIndex": 1, "isCorrect": true, "explanation": "ok"},
		),
	})
	e := New(mock)

	_, err := e.Evaluate(context.Background(), testQuestions(), []quizgen.UserAnswer{
		{QuestionID: "q1", Answer: "Paris"},
	}, "en")
	require.NoError(t, err)

	require.Len(t, mock.Calls, 1)
	prompt := mock.Calls[0].Messages[0].Content
	assert.Contains(t, prompt, "capital of France")
	assert.Contains(t, prompt, "Player's answer: Paris")
	assert.Contains(t, prompt, "(no answer)")
	assert.Contains(t, prompt, "Also accepted: USA, United States of America")
	assert.Equal(t, 0.1, mock.Calls[0].Temperature)
}

func TestAnswerMatches(t *testing.T) {
	q := quizgen.Question{
		CorrectAnswer:      "Angela Merkel",
		AlternativeAnswers: []string{"Merkel"},
	}

	assert.True(t, answerMatches("angela merkel", q))
	assert.True(t, answerMatches("  Merkel  ", q))
	assert.True(t, answerMatches("Angela Merkel was chancellor", q))
	assert.False(t, answerMatches("Scholz", q))
	assert.False(t, answerMatches("", q))
	assert.False(t, answerMatches("an", q), "short fragments never substring-match")
}
