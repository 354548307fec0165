package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestArticleRepo_AddAndQueryByCategory(t *testing.T) {
	s := openTestStore(t)
	repo := s.ArticleRepo()
	ctx := context.Background()

	err := repo.AddBatch(ctx, []UsedArticle{
		{Topic: "Albert_Einstein", Category: "Science", Question: "Who developed relativity?"},
		{Topic: "Berlin", Category: "Geography", Question: "What is the capital of Germany?"},
		{Topic: "Marie_Curie", Category: "science", Question: "Who discovered polonium?"},
	})
	require.NoError(t, err)

	// Case-insensitive category match.
	topics, err := repo.ForCategory(ctx, "SCIENCE")
	require.NoError(t, err)
	assert.Equal(t, []string{"Albert_Einstein", "Marie_Curie"}, topics)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestArticleRepo_CapKeepsMostRecent(t *testing.T) {
	s := openTestStore(t)
	repo := &articleRepo{db: s.DB(), max: 10}
	ctx := context.Background()

	for batch := 0; batch < 3; batch++ {
		var entries []UsedArticle
		for i := 0; i < 6; i++ {
			entries = append(entries, UsedArticle{
				Topic:    fmt.Sprintf("topic-%d-%d", batch, i),
				Category: "History",
				Question: "q",
			})
		}
		require.NoError(t, repo.AddBatch(ctx, entries))
	}

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	topics, err := repo.ForCategory(ctx, "History")
	require.NoError(t, err)
	// The oldest batch is fully evicted; the newest is fully retained.
	assert.NotContains(t, topics, "topic-0-0")
	assert.Contains(t, topics, "topic-2-5")
}

func TestArticleRepo_Clear(t *testing.T) {
	s := openTestStore(t)
	repo := s.ArticleRepo()
	ctx := context.Background()

	require.NoError(t, repo.AddBatch(ctx, []UsedArticle{
		{Topic: "Mona_Lisa", Category: "Art", Question: "q"},
	}))
	require.NoError(t, repo.Clear(ctx))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestArticleRepo_EmptyBatchIsNoop(t *testing.T) {
	s := openTestStore(t)
	repo := s.ArticleRepo()
	ctx := context.Background()

	require.NoError(t, repo.AddBatch(ctx, nil))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestEventRepo_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "openrouter",
		Model:        "google/gemini-2.0-flash-exp:free",
		Purpose:      "question-gen",
		InputTokens:  120,
		OutputTokens: 480,
		LatencyMs:    900,
		Success:      true,
		RequestBody:  "[user]\nprompt",
		ResponseBody: `{"questions":[]}`,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "openrouter",
		Model:        "google/gemini-2.0-flash-exp:free",
		Purpose:      "evaluation",
		Success:      false,
		ErrorMessage: "rate limited",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 10})
	require.NoError(t, err)
	require.Len(t, events, 2)
	// Newest first.
	assert.Equal(t, "evaluation", events[0].Purpose)
	assert.False(t, events[0].Success)
	assert.Equal(t, "question-gen", events[1].Purpose)
	assert.True(t, events[1].Success)

	e, err := repo.GetLLMEvent(ctx, events[1].ID)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, `{"questions":[]}`, e.ResponseBody)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestEventRepo_UsageByPurpose(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "question-gen",
			InputTokens: 100, OutputTokens: 200, LatencyMs: 500, Success: true,
		}))
	}

	stats, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 3, stats[0].Calls)
	assert.Equal(t, 300, stats[0].InputTokens)
	assert.Equal(t, 600, stats[0].OutputTokens)
}

func TestMemoryArticleRepo_MatchesSQLiteSemantics(t *testing.T) {
	repo := NewMemoryArticleRepo()
	repo.Max = 4
	ctx := context.Background()

	require.NoError(t, repo.AddBatch(ctx, []UsedArticle{
		{Topic: "a", Category: "Music"},
		{Topic: "b", Category: "music"},
		{Topic: "c", Category: "Sport"},
	}))
	require.NoError(t, repo.AddBatch(ctx, []UsedArticle{
		{Topic: "d", Category: "Music"},
		{Topic: "e", Category: "Music"},
	}))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	topics, err := repo.ForCategory(ctx, "MUSIC")
	require.NoError(t, err)
	// "a" was evicted by the cap.
	assert.Equal(t, []string{"b", "d", "e"}, topics)
}
