package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizwiz/internal/llm"
	"github.com/abhisek/quizwiz/internal/store"
	"github.com/abhisek/quizwiz/internal/wiki"
)

// stubVerifier resolves every topic to a fixed Wikipedia-style URL
// without touching the network.
type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, topic, lang string) wiki.Verification {
	return wiki.Verification{
		URL:      "https://" + lang + ".wikipedia.org/wiki/" + wiki.Slug(topic),
		Verified: true,
	}
}

func questionsJSON(items ...map[string]any) json.RawMessage {
	body := map[string]any{"questions": items}
	raw, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	return raw
}

func item(question, answer string, extra map[string]any) map[string]any {
	m := map[string]any{
		"question":      question,
		"correctAnswer": answer,
	}
	for k, v := range extra {
		m[k] = v
	}
	return m
}

func TestGenerate_AssignsUniqueIDs(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: questionsJSON(
			item("In which year did the Berlin Wall fall?", "1989", map[string]any{"topic": "Berlin_Wall"}),
			item("Which composer wrote The Magic Flute?", "Mozart", map[string]any{"topic": "Wolfgang_Amadeus_Mozart"}),
		),
	})
	g := New(mock, stubVerifier{}, store.NewMemoryArticleRepo(), DefaultConfig())

	questions, err := g.Generate(context.Background(), Input{
		Categories:  []string{"History"},
		PerCategory: 2,
		Language:    "en",
		Difficulty:  DifficultyMedium,
	})
	require.NoError(t, err)
	require.Len(t, questions, 2)

	assert.NotEmpty(t, questions[0].ID)
	assert.NotEmpty(t, questions[1].ID)
	assert.NotEqual(t, questions[0].ID, questions[1].ID)
	assert.Equal(t, "History", questions[0].Category)
	assert.Equal(t, DifficultyMedium, questions[0].Difficulty)
}

func TestGenerate_WritesHistoryOnceForBuiltInCategories(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: questionsJSON(
			item("Q1?", "A1", map[string]any{"topic": "Topic_One"}),
		)},
		llm.MockResponse{Content: questionsJSON(
			item("Q2?", "A2", map[string]any{"topic": "Topic_Two"}),
		)},
	)
	repo := store.NewMemoryArticleRepo()
	g := New(mock, stubVerifier{}, repo, DefaultConfig())

	_, err := g.Generate(context.Background(), Input{
		Categories:  []string{"History", "Science"},
		PerCategory: 1,
		Language:    "en",
		Difficulty:  DifficultyEasy,
	})
	require.NoError(t, err)

	entries := repo.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Topic_One", entries[0].Topic)
	assert.Equal(t, "History", entries[0].Category)
	assert.Equal(t, "Topic_Two", entries[1].Topic)
	assert.Equal(t, "Science", entries[1].Category)
}

func TestGenerate_CustomCategorySkipsHistory(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: questionsJSON(
			item("Who trained Luke Skywalker on Dagobah?", "Yoda", nil),
		),
	})
	repo := store.NewMemoryArticleRepo()
	g := New(mock, stubVerifier{}, repo, DefaultConfig())

	questions, err := g.Generate(context.Background(), Input{
		Categories:  []string{"Star Wars"},
		PerCategory: 1,
		Language:    "en",
		Difficulty:  DifficultyMedium,
	})
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Empty(t, repo.Entries())
}

func TestGenerate_CustomCategoryUsesSpecializedWiki(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: questionsJSON(
			item("Who trained Luke Skywalker on Dagobah?", "Yoda", map[string]any{"topic": "Yoda"}),
		),
	})
	g := New(mock, stubVerifier{}, store.NewMemoryArticleRepo(), DefaultConfig())

	questions, err := g.Generate(context.Background(), Input{
		Categories:  []string{"Star Wars"},
		PerCategory: 1,
		Language:    "en",
		Difficulty:  DifficultyMedium,
	})
	require.NoError(t, err)
	require.Len(t, questions, 1)

	assert.Equal(t, SourceSpecialized, questions[0].SourceType)
	assert.Equal(t, "Wookieepedia", questions[0].SourceName)
	assert.Contains(t, questions[0].SourceURL, "Yoda")

	require.Len(t, mock.Calls, 1)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "Wookieepedia")
}

func TestGenerate_CustomCategoryTrustsNonWikipediaURL(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: questionsJSON(
			item("Q?", "A", map[string]any{"sourceUrl": "https://bulbapedia.bulbagarden.net/wiki/Pikachu"}),
		),
	})
	g := New(mock, stubVerifier{}, store.NewMemoryArticleRepo(), DefaultConfig())

	questions, err := g.Generate(context.Background(), Input{
		Categories:  []string{"Obscure Hobby"},
		PerCategory: 1,
		Language:    "en",
		Difficulty:  DifficultyMedium,
	})
	require.NoError(t, err)
	require.Len(t, questions, 1)

	assert.Equal(t, "https://bulbapedia.bulbagarden.net/wiki/Pikachu", questions[0].SourceURL)
	assert.Equal(t, SourceOther, questions[0].SourceType)
	assert.Equal(t, "bulbapedia.bulbagarden.net", questions[0].SourceName)
}

func TestGenerate_BuiltInCategoryIgnoresModelURL(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: questionsJSON(
			item("Q?", "Mozart", map[string]any{
				"topic":     "Wolfgang_Amadeus_Mozart",
				"sourceUrl": "https://some-random-blog.example.com/mozart",
			}),
		),
	})
	g := New(mock, stubVerifier{}, store.NewMemoryArticleRepo(), DefaultConfig())

	questions, err := g.Generate(context.Background(), Input{
		Categories:  []string{"Music"},
		PerCategory: 1,
		Language:    "en",
		Difficulty:  DifficultyMedium,
	})
	require.NoError(t, err)
	require.Len(t, questions, 1)

	assert.Equal(t, SourceWikipedia, questions[0].SourceType)
	assert.Contains(t, questions[0].SourceURL, "en.wikipedia.org")
}

func TestGenerate_MixedDifficultyDefaultsToMedium(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: questionsJSON(
			item("Q1?", "A1", map[string]any{"difficulty": "hard", "topic": "T1"}),
			item("Q2?", "A2", map[string]any{"difficulty": "bogus", "topic": "T2"}),
			item("Q3?", "A3", map[string]any{"topic": "T3"}),
		),
	})
	g := New(mock, stubVerifier{}, store.NewMemoryArticleRepo(), DefaultConfig())

	questions, err := g.Generate(context.Background(), Input{
		Categories:  []string{"History"},
		PerCategory: 3,
		Language:    "en",
		Difficulty:  DifficultyMixed,
	})
	require.NoError(t, err)
	require.Len(t, questions, 3)

	assert.Equal(t, DifficultyHard, questions[0].Difficulty)
	assert.Equal(t, DifficultyMedium, questions[1].Difficulty)
	assert.Equal(t, DifficultyMedium, questions[2].Difficulty)
}

func TestGenerate_ImageURLTurnsQuestionIntoImageType(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: questionsJSON(
			item("Which building is this?", "Eiffel Tower", map[string]any{
				"topic":    "Eiffel_Tower",
				"imageUrl": "https://upload.wikimedia.org/eiffel.jpg",
				"imageAlt": "A tall iron lattice tower",
			}),
		),
	})
	g := New(mock, stubVerifier{}, store.NewMemoryArticleRepo(), DefaultConfig())

	questions, err := g.Generate(context.Background(), Input{
		Categories:  []string{"Geography"},
		PerCategory: 1,
		Language:    "en",
		Difficulty:  DifficultyMedium,
	})
	require.NoError(t, err)
	require.Len(t, questions, 1)

	assert.Equal(t, TypeImage, questions[0].Type)
	assert.Equal(t, "https://upload.wikimedia.org/eiffel.jpg", questions[0].ImageURL)
	assert.Equal(t, "A tall iron lattice tower", questions[0].ImageAlt)
}

func TestGenerate_ParseFailureExposesRawText(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("The model rambled and produced no JSON at all."),
	})
	repo := store.NewMemoryArticleRepo()
	g := New(mock, stubVerifier{}, repo, DefaultConfig())

	_, err := g.Generate(context.Background(), Input{
		Categories:  []string{"History"},
		PerCategory: 1,
		Language:    "en",
		Difficulty:  DifficultyMedium,
	})
	require.Error(t, err)

	var invalid *llm.ErrInvalidResponse
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, string(invalid.Content), "rambled")
	assert.Empty(t, repo.Entries(), "failed batch must not write history")
}

func TestGenerate_ExclusionsAppearInPrompt(t *testing.T) {
	repo := store.NewMemoryArticleRepo()
	require.NoError(t, repo.AddBatch(context.Background(), []store.UsedArticle{
		{Topic: "Berlin_Wall", Category: "History", Question: "Old question?"},
	}))

	mock := llm.NewMockProvider(llm.MockResponse{
		Content: questionsJSON(item("Q?", "A", map[string]any{"topic": "T"})),
	})
	g := New(mock, stubVerifier{}, repo, DefaultConfig())

	_, err := g.Generate(context.Background(), Input{
		Categories:        []string{"History"},
		PerCategory:       1,
		Language:          "en",
		Difficulty:        DifficultyMedium,
		ExistingQuestions: []string{"Who painted the Mona Lisa?"},
	})
	require.NoError(t, err)

	require.Len(t, mock.Calls, 1)
	prompt := mock.Calls[0].Messages[0].Content
	assert.Contains(t, prompt, "Berlin_Wall")
	assert.Contains(t, prompt, "Who painted the Mona Lisa?")
}

func TestGenerate_ProviderErrorAbortsBatch(t *testing.T) {
	boom := errors.New("boom")
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: questionsJSON(item("Q1?", "A1", map[string]any{"topic": "T1"}))},
		llm.MockResponse{Err: boom},
	)
	repo := store.NewMemoryArticleRepo()
	g := New(mock, stubVerifier{}, repo, DefaultConfig())

	_, err := g.Generate(context.Background(), Input{
		Categories:  []string{"History", "Science"},
		PerCategory: 1,
		Language:    "en",
		Difficulty:  DifficultyMedium,
	})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, repo.Entries(), "aborted batch must not write partial history")
}

func TestGenerate_CancelledContextStopsBeforeNextCategory(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := llm.NewMockProvider()
	g := New(mock, stubVerifier{}, store.NewMemoryArticleRepo(), DefaultConfig())

	_, err := g.Generate(ctx, Input{
		Categories:  []string{"History"},
		PerCategory: 1,
		Language:    "en",
		Difficulty:  DifficultyMedium,
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, mock.CallCount())
}

func TestGenerate_HistoryTopicFallsBackToAnswer(t *testing.T) {
	// Source resolution yields a Wikipedia URL, so the stored topic is
	// the slug; an empty topic field falls back to the answer before
	// verification, which still produces a slugged URL.
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: questionsJSON(item("Q?", "Marie Curie", nil)),
	})
	repo := store.NewMemoryArticleRepo()
	g := New(mock, stubVerifier{}, repo, DefaultConfig())

	_, err := g.Generate(context.Background(), Input{
		Categories:  []string{"Science"},
		PerCategory: 1,
		Language:    "en",
		Difficulty:  DifficultyMedium,
	})
	require.NoError(t, err)

	entries := repo.Entries()
	require.Len(t, entries, 1)
	assert.True(t, strings.EqualFold(entries[0].Topic, "Marie_Curie"))
}
