// Package quizgen turns LLM output into verified trivia questions.
package quizgen

import "time"

// Difficulty grades a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"

	// DifficultyMixed is a request-side value only: the caller asks
	// for a spread and each question keeps its own difficulty.
	DifficultyMixed Difficulty = "mixed"
)

// QuestionType distinguishes plain text questions from image questions.
type QuestionType string

const (
	TypeText  QuestionType = "text"
	TypeImage QuestionType = "image"
)

// SourceType classifies where a question's source link points.
type SourceType string

const (
	SourceWikipedia   SourceType = "wikipedia"
	SourceSpecialized SourceType = "specialized-wiki"
	SourceOther       SourceType = "other"
)

// Question is one generated trivia question. Immutable once produced.
type Question struct {
	ID       string
	Category string
	Text     string

	CorrectAnswer      string
	AlternativeAnswers []string

	Difficulty Difficulty
	Type       QuestionType
	ImageURL   string
	ImageAlt   string

	SourceURL  string
	SourceType SourceType
	SourceName string
}

// UserAnswer is the player's committed answer to one question.
// Append-only: never mutated after the player locks it in.
type UserAnswer struct {
	QuestionID string
	Answer     string
	LockedAt   time.Time
}
