package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizwiz/internal/eval"
	"github.com/abhisek/quizwiz/internal/quizgen"
)

func newTestSession() *Session {
	return NewSession(DefaultSettings(), []quizgen.Question{
		{ID: "q1", Text: "Q1?", CorrectAnswer: "A1"},
		{ID: "q2", Text: "Q2?", CorrectAnswer: "A2"},
	})
}

func TestSession_AnswerFlow(t *testing.T) {
	s := newTestSession()
	assert.False(t, s.Complete())

	require.NoError(t, s.Answer("q1", "first"))
	assert.False(t, s.Complete())

	require.NoError(t, s.Answer("q2", "second"))
	assert.True(t, s.Complete())

	answers := s.Answers()
	require.Len(t, answers, 2)
	assert.Equal(t, "first", answers[0].Answer)
	assert.False(t, answers[0].LockedAt.IsZero())
}

func TestSession_AnswerErrors(t *testing.T) {
	s := newTestSession()

	assert.ErrorIs(t, s.Answer("nope", "x"), ErrUnknownQuestion)

	require.NoError(t, s.Answer("q1", "first"))
	assert.ErrorIs(t, s.Answer("q1", "again"), ErrAlreadyAnswered)

	require.Len(t, s.Answers(), 1)
}

func TestSession_ScoreAndOverride(t *testing.T) {
	s := newTestSession()
	s.SetResults([]eval.Result{
		{QuestionID: "q1", IsCorrect: true},
		{QuestionID: "q2", IsCorrect: false},
	})

	assert.Equal(t, Score{Correct: 1, Total: 2}, s.Score())
	assert.Equal(t, 50, s.Score().Percent())

	require.NoError(t, s.Override("q2"))
	assert.Equal(t, 2, s.Score().Correct)

	results := s.Results()
	assert.True(t, results[1].IsCorrect)
	assert.True(t, results[1].ManualOverride)

	assert.ErrorIs(t, s.Override("nope"), ErrUnknownQuestion)
}

func TestScore_PercentEmptyRound(t *testing.T) {
	assert.Equal(t, 0, Score{}.Percent())
}
