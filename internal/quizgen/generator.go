package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizwiz/internal/llm"
	"github.com/abhisek/quizwiz/internal/store"
	"github.com/abhisek/quizwiz/internal/wiki"
)

// SourceVerifier checks a topic against the knowledge base and returns
// a source link for it. *wiki.Client is the production implementation.
type SourceVerifier interface {
	Verify(ctx context.Context, topic, lang string) wiki.Verification
}

// Generator produces trivia questions through the LLM provider and
// enriches them with verified sources.
type Generator struct {
	provider llm.Provider
	verifier SourceVerifier
	history  store.ArticleRepo
	cfg      Config
}

// New creates a Generator.
func New(provider llm.Provider, verifier SourceVerifier, history store.ArticleRepo, cfg Config) *Generator {
	return &Generator{provider: provider, verifier: verifier, history: history, cfg: cfg}
}

// Input holds one generation request.
type Input struct {
	// Categories to generate for, in order. May mix built-in and
	// custom (user-defined) categories.
	Categories []string

	// PerCategory is the number of questions per category.
	PerCategory int

	// Language is the quiz language code ("de", "en", ...).
	Language string

	// Difficulty applies to every question, or DifficultyMixed to let
	// the model spread levels per question.
	Difficulty Difficulty

	// ExistingQuestions are question texts already asked this session,
	// excluded from generation.
	ExistingQuestions []string
}

// questionOutput is one raw parsed question before resolution.
type questionOutput struct {
	Question           string   `json:"question"`
	CorrectAnswer      string   `json:"correctAnswer"`
	AlternativeAnswers []string `json:"alternativeAnswers"`
	Difficulty         string   `json:"difficulty"`
	Topic              string   `json:"topic"`
	SourceURL          string   `json:"sourceUrl"`
	ImageURL           string   `json:"imageUrl"`
	ImageAlt           string   `json:"imageAlt"`
}

// questionsOutput is the full parsed generation response.
type questionsOutput struct {
	Questions []questionOutput `json:"questions"`
}

// Generate produces questions for every requested category. Categories
// are processed sequentially; any gateway or parse error aborts the
// whole batch and propagates unchanged. History entries for built-in
// categories are accumulated across categories and written once at the
// end, so a failure never leaves a partial history write behind.
func (g *Generator) Generate(ctx context.Context, in Input) ([]Question, error) {
	predefined := PredefinedCategories(in.Language)

	var questions []Question
	var historyEntries []store.UsedArticle

	for _, category := range in.Categories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		batch, entries, err := g.generateCategory(ctx, category, predefined, in)
		if err != nil {
			return nil, fmt.Errorf("generate category %q: %w", category, err)
		}

		questions = append(questions, batch...)
		historyEntries = append(historyEntries, entries...)
	}

	if len(historyEntries) > 0 {
		if err := g.history.AddBatch(ctx, historyEntries); err != nil {
			return nil, fmt.Errorf("record topic history: %w", err)
		}
	}

	return questions, nil
}

func (g *Generator) generateCategory(ctx context.Context, category string, predefined []string, in Input) ([]Question, []store.UsedArticle, error) {
	ignoreHistory := ShouldIgnoreHistory(category, predefined)

	var priorTopics []string
	if !ignoreHistory {
		var err error
		priorTopics, err = g.history.ForCategory(ctx, category)
		if err != nil {
			return nil, nil, fmt.Errorf("load topic history: %w", err)
		}
	}

	promptCfg := PromptConfig{
		Category:         category,
		Count:            in.PerCategory,
		Language:         in.Language,
		Difficulty:       in.Difficulty,
		ExcludeQuestions: in.ExistingQuestions,
		ExcludeTopics:    priorTopics,
	}
	if ignoreHistory {
		if w, ok := wiki.ResolveSpecialized(category); ok {
			promptCfg.CustomSource = &w
		}
	}

	parsed, err := g.callAndParse(ctx, buildPrompt(promptCfg))
	if err != nil {
		return nil, nil, err
	}

	var questions []Question
	var entries []store.UsedArticle
	now := time.Now().UTC()

	for _, item := range parsed.Questions {
		q := g.assembleQuestion(ctx, item, category, ignoreHistory, in)
		questions = append(questions, q)

		if !ignoreHistory {
			topic := wiki.TopicFromURL(q.SourceURL)
			if topic == "" {
				topic = q.CorrectAnswer
			}
			entries = append(entries, store.UsedArticle{
				Topic:    topic,
				Category: category,
				Question: q.Text,
				UsedAt:   now,
			})
		}
	}

	return questions, entries, nil
}

// callAndParse sends the prompt and parses the questions JSON block
// out of the response. Parse errors carry the model's raw text.
func (g *Generator) callAndParse(ctx context.Context, prompt string) (*questionsOutput, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	resp, err := g.provider.Generate(ctx, llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return nil, err
	}

	block, err := llm.ExtractJSON(string(resp.Content))
	if err != nil {
		return nil, err
	}
	if err := llm.Validate(QuestionsSchema, block); err != nil {
		return nil, err
	}

	var parsed questionsOutput
	if err := json.Unmarshal(block, &parsed); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	return &parsed, nil
}

// assembleQuestion resolves difficulty and source and builds the final
// immutable Question.
func (g *Generator) assembleQuestion(ctx context.Context, item questionOutput, category string, custom bool, in Input) Question {
	srcURL, srcType, srcName := g.resolveSource(ctx, item, category, custom, in.Language)

	q := Question{
		ID:                 uuid.NewString(),
		Category:           category,
		Text:               item.Question,
		CorrectAnswer:      item.CorrectAnswer,
		AlternativeAnswers: item.AlternativeAnswers,
		Difficulty:         resolveDifficulty(in.Difficulty, item.Difficulty),
		Type:               TypeText,
		SourceURL:          srcURL,
		SourceType:         srcType,
		SourceName:         srcName,
	}

	if item.ImageURL != "" {
		q.Type = TypeImage
		q.ImageURL = item.ImageURL
		q.ImageAlt = item.ImageAlt
	}

	return q
}

// resolveSource is the single source-trust policy. A model-supplied
// URL is trusted verbatim only for custom categories, and only when
// it does not point at Wikipedia (a Wikipedia link can be verified, so
// it is). Next preference is the specialized wiki matching the
// category, then Wikipedia verification.
func (g *Generator) resolveSource(ctx context.Context, item questionOutput, category string, custom bool, lang string) (string, SourceType, string) {
	if custom {
		if item.SourceURL != "" && !wiki.IsWikipediaURL(item.SourceURL) {
			return item.SourceURL, SourceOther, hostOf(item.SourceURL)
		}
		if w, ok := wiki.ResolveSpecialized(category); ok {
			topic := item.Topic
			if topic == "" {
				topic = item.CorrectAnswer
			}
			return w.BaseURL + wiki.Slug(topic), SourceSpecialized, w.Name
		}
	}

	topic := item.Topic
	if topic == "" {
		topic = item.CorrectAnswer
	}
	v := g.verifier.Verify(ctx, topic, lang)
	return v.URL, SourceWikipedia, "Wikipedia"
}

// resolveDifficulty applies the request-wide difficulty unless the
// caller asked for a mix, in which case the model's per-item value is
// trusted, defaulting to medium.
func resolveDifficulty(requested Difficulty, item string) Difficulty {
	if requested != DifficultyMixed {
		return requested
	}
	switch Difficulty(item) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return Difficulty(item)
	default:
		return DifficultyMedium
	}
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return u.Hostname()
}
