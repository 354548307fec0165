// Package quiz assembles generated questions, locked-in answers and
// grading results into one round of play.
package quiz

import (
	"errors"
	"time"

	"github.com/abhisek/quizwiz/internal/eval"
	"github.com/abhisek/quizwiz/internal/quizgen"
)

// Settings configures one round.
type Settings struct {
	Categories  []string
	PerCategory int
	Language    string
	Difficulty  quizgen.Difficulty
	Expert      bool
}

// DefaultSettings returns the settings used when the player just hits
// enter through the setup.
func DefaultSettings() Settings {
	return Settings{
		Categories:  quizgen.RandomCategories("en", 3),
		PerCategory: 3,
		Language:    "en",
		Difficulty:  quizgen.DifficultyMedium,
	}
}

var (
	ErrUnknownQuestion = errors.New("quiz: answer for unknown question")
	ErrAlreadyAnswered = errors.New("quiz: question already answered")
)

// Session is one round of play. Not safe for concurrent use; play is
// strictly sequential.
type Session struct {
	Settings  Settings
	Questions []quizgen.Question
	StartedAt time.Time

	answers []quizgen.UserAnswer
	byID    map[string]int
	results []eval.Result
}

// NewSession starts a round over the given questions.
func NewSession(settings Settings, questions []quizgen.Question) *Session {
	byID := make(map[string]int, len(questions))
	for i, q := range questions {
		byID[q.ID] = i
	}
	return &Session{
		Settings:  settings,
		Questions: questions,
		StartedAt: time.Now(),
		byID:      byID,
	}
}

// Answer locks in the player's answer for a question. Answers are
// final: re-answering is an error.
func (s *Session) Answer(questionID, answer string) error {
	if _, ok := s.byID[questionID]; !ok {
		return ErrUnknownQuestion
	}
	for _, a := range s.answers {
		if a.QuestionID == questionID {
			return ErrAlreadyAnswered
		}
	}
	s.answers = append(s.answers, quizgen.UserAnswer{
		QuestionID: questionID,
		Answer:     answer,
		LockedAt:   time.Now(),
	})
	return nil
}

// Answers returns the locked-in answers in answer order.
func (s *Session) Answers() []quizgen.UserAnswer {
	out := make([]quizgen.UserAnswer, len(s.answers))
	copy(out, s.answers)
	return out
}

// Complete reports whether every question has a locked-in answer.
func (s *Session) Complete() bool {
	return len(s.answers) == len(s.Questions)
}

// SetResults stores the grading results for the round.
func (s *Session) SetResults(results []eval.Result) {
	s.results = results
}

// Override flips the verdict for one graded question. Players use
// this when they disagree with the referee.
func (s *Session) Override(questionID string) error {
	for i := range s.results {
		if s.results[i].QuestionID == questionID {
			s.results[i].IsCorrect = !s.results[i].IsCorrect
			s.results[i].ManualOverride = true
			return nil
		}
	}
	return ErrUnknownQuestion
}

// Results returns the grading results, including any overrides.
func (s *Session) Results() []eval.Result {
	out := make([]eval.Result, len(s.results))
	copy(out, s.results)
	return out
}

// Score summarizes a graded round.
type Score struct {
	Correct int
	Total   int
}

// Percent returns the score as 0..100. An empty round scores 0.
func (sc Score) Percent() int {
	if sc.Total == 0 {
		return 0
	}
	return sc.Correct * 100 / sc.Total
}

// Score tallies the current results.
func (s *Session) Score() Score {
	sc := Score{Total: len(s.Questions)}
	for _, r := range s.results {
		if r.IsCorrect {
			sc.Correct++
		}
	}
	return sc
}
