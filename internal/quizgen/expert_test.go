package quizgen

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizwiz/internal/llm"
	"github.com/abhisek/quizwiz/internal/store"
)

const researchFacts = `1. The Berlin Wall fell in 1989.
2. The Hundred Years' War lasted 116 years.

3) Napoleon was exiled to Elba in 1814.`

func TestParseFactList(t *testing.T) {
	facts := parseFactList(researchFacts)
	require.Len(t, facts, 3)
	assert.Equal(t, "The Berlin Wall fell in 1989.", facts[0])
	assert.Equal(t, "The Hundred Years' War lasted 116 years.", facts[1])
	assert.Equal(t, "Napoleon was exiled to Elba in 1814.", facts[2])
}

func TestParseFactList_Empty(t *testing.T) {
	assert.Empty(t, parseFactList("\n  \n"))
}

func TestFilterFacts(t *testing.T) {
	facts := []string{
		"The Berlin Wall fell in 1989.",
		"Napoleon was exiled to Elba in 1814.",
		"Who painted the Mona Lisa is a common quiz staple.",
	}

	kept := filterFacts(facts, []string{"Berlin_Wall"}, []string{"Who painted the Mona Lisa?"})
	require.Len(t, kept, 1)
	assert.Equal(t, "Napoleon was exiled to Elba in 1814.", kept[0])
}

func TestFilterFacts_NoBlockListKeepsEverything(t *testing.T) {
	facts := []string{"a", "b"}
	assert.Equal(t, facts, filterFacts(facts, nil, nil))
}

func TestExpertGenerate_TwoStages(t *testing.T) {
	research := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(researchFacts),
	})
	generate := llm.NewMockProvider(llm.MockResponse{
		Content: questionsJSON(
			item("In which year did the Berlin Wall fall?", "1989", map[string]any{"topic": "Berlin_Wall"}),
		),
	})
	repo := store.NewMemoryArticleRepo()
	p := NewExpert(research, generate, stubVerifier{}, repo, DefaultConfig())

	questions, err := p.Generate(context.Background(), ExpertInput{
		Category:   "History",
		Count:      1,
		Language:   "en",
		Difficulty: DifficultyMedium,
	})
	require.NoError(t, err)
	require.Len(t, questions, 1)

	assert.Equal(t, SourceWikipedia, questions[0].SourceType)
	assert.Contains(t, questions[0].SourceURL, "en.wikipedia.org")
	assert.Equal(t, DifficultyMedium, questions[0].Difficulty)

	require.Len(t, research.Calls, 1)
	assert.Contains(t, research.Calls[0].Messages[0].Content, "3 concrete")

	require.Len(t, generate.Calls, 1)
	genPrompt := generate.Calls[0].Messages[0].Content
	assert.Contains(t, genPrompt, "Researched facts:")
	assert.Contains(t, genPrompt, "Berlin Wall fell in 1989")
	assert.Contains(t, genPrompt, "reason explicitly")

	entries := repo.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Berlin_Wall", entries[0].Topic)
}

func TestExpertGenerate_FiltersFactsAgainstHistory(t *testing.T) {
	repo := store.NewMemoryArticleRepo()
	require.NoError(t, repo.AddBatch(context.Background(), []store.UsedArticle{
		{Topic: "Berlin_Wall", Category: "History", Question: "Old?"},
	}))

	research := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(researchFacts),
	})
	generate := llm.NewMockProvider(llm.MockResponse{
		Content: questionsJSON(
			item("To which island was Napoleon exiled in 1814?", "Elba", map[string]any{"topic": "Elba"}),
		),
	})
	p := NewExpert(research, generate, stubVerifier{}, repo, DefaultConfig())

	_, err := p.Generate(context.Background(), ExpertInput{
		Category:   "History",
		Count:      1,
		Language:   "en",
		Difficulty: DifficultyMedium,
	})
	require.NoError(t, err)

	genPrompt := generate.Calls[0].Messages[0].Content
	assert.NotContains(t, genPrompt, "Berlin Wall fell in 1989")
	assert.Contains(t, genPrompt, "Napoleon was exiled")
}

func TestExpertGenerate_AllFactsFilteredFails(t *testing.T) {
	repo := store.NewMemoryArticleRepo()
	require.NoError(t, repo.AddBatch(context.Background(), []store.UsedArticle{
		{Topic: "Only_Fact", Category: "History", Question: "Old?"},
	}))

	research := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("1. Everything about the only fact."),
	})
	generate := llm.NewMockProvider()
	p := NewExpert(research, generate, stubVerifier{}, repo, DefaultConfig())

	_, err := p.Generate(context.Background(), ExpertInput{
		Category:   "History",
		Count:      1,
		Language:   "en",
		Difficulty: DifficultyMedium,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no usable facts")
	assert.Zero(t, generate.CallCount())
}

func TestExpertGenerate_EmptyResearchResponseFails(t *testing.T) {
	research := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("   \n"),
	})
	p := NewExpert(research, llm.NewMockProvider(), stubVerifier{}, store.NewMemoryArticleRepo(), DefaultConfig())

	_, err := p.Generate(context.Background(), ExpertInput{
		Category:   "History",
		Count:      1,
		Language:   "en",
		Difficulty: DifficultyMedium,
	})

	var invalid *llm.ErrInvalidResponse
	require.ErrorAs(t, err, &invalid)
}

func TestExpertGenerate_CustomCategorySkipsHistoryButStaysOnWikipedia(t *testing.T) {
	research := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage("1. Yoda trained Luke Skywalker on Dagobah."),
	})
	generate := llm.NewMockProvider(llm.MockResponse{
		Content: questionsJSON(
			item("Who trained Luke Skywalker on Dagobah?", "Yoda", map[string]any{"topic": "Yoda"}),
		),
	})
	repo := store.NewMemoryArticleRepo()
	p := NewExpert(research, generate, stubVerifier{}, repo, DefaultConfig())

	questions, err := p.Generate(context.Background(), ExpertInput{
		Category:   "Star Wars",
		Count:      1,
		Language:   "en",
		Difficulty: DifficultyMedium,
	})
	require.NoError(t, err)
	require.Len(t, questions, 1)

	assert.Equal(t, SourceWikipedia, questions[0].SourceType)
	assert.Empty(t, repo.Entries())
}
