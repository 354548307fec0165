package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizwiz/internal/llm"
	"github.com/abhisek/quizwiz/internal/store"
	"github.com/abhisek/quizwiz/internal/wiki"
)

// factMultiplier oversamples the research stage so enough facts
// survive the history filter to back the requested question count.
const factMultiplier = 3

// ExpertPipeline is the two-stage generation variant: one model
// researches raw facts about the category, a second (possibly
// different) model turns the surviving facts into questions with
// explicit reasoning. Both stages share a provider family so one
// free-tier key covers the whole pipeline.
type ExpertPipeline struct {
	research llm.Provider
	generate llm.Provider
	verifier SourceVerifier
	history  store.ArticleRepo
	cfg      Config
}

// NewExpert creates an ExpertPipeline. research and generate may be
// the same provider.
func NewExpert(research, generate llm.Provider, verifier SourceVerifier, history store.ArticleRepo, cfg Config) *ExpertPipeline {
	return &ExpertPipeline{
		research: research,
		generate: generate,
		verifier: verifier,
		history:  history,
		cfg:      cfg,
	}
}

// ExpertInput holds one expert-mode generation request. Expert mode
// runs one category at a time.
type ExpertInput struct {
	Category          string
	Count             int
	Language          string
	Difficulty        Difficulty
	ExistingQuestions []string
}

// Generate runs research, filtering and question generation for one
// category. Sources always resolve through Wikipedia verification;
// expert mode does not consult specialized wikis.
func (p *ExpertPipeline) Generate(ctx context.Context, in ExpertInput) ([]Question, error) {
	predefined := PredefinedCategories(in.Language)
	ignoreHistory := ShouldIgnoreHistory(in.Category, predefined)

	var priorTopics []string
	if !ignoreHistory {
		var err error
		priorTopics, err = p.history.ForCategory(ctx, in.Category)
		if err != nil {
			return nil, fmt.Errorf("load topic history: %w", err)
		}
	}

	facts, err := p.researchFacts(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("research facts for %q: %w", in.Category, err)
	}

	facts = filterFacts(facts, priorTopics, in.ExistingQuestions)
	if len(facts) == 0 {
		return nil, fmt.Errorf("no usable facts left for %q after history filtering", in.Category)
	}

	parsed, err := p.generateFromFacts(ctx, facts, in)
	if err != nil {
		return nil, fmt.Errorf("generate questions for %q: %w", in.Category, err)
	}

	var questions []Question
	var entries []store.UsedArticle
	now := time.Now().UTC()

	for _, item := range parsed.Questions {
		topic := item.Topic
		if topic == "" {
			topic = item.CorrectAnswer
		}
		v := p.verifier.Verify(ctx, topic, in.Language)

		q := Question{
			ID:                 uuid.NewString(),
			Category:           in.Category,
			Text:               item.Question,
			CorrectAnswer:      item.CorrectAnswer,
			AlternativeAnswers: item.AlternativeAnswers,
			Difficulty:         resolveDifficulty(in.Difficulty, item.Difficulty),
			Type:               TypeText,
			SourceURL:          v.URL,
			SourceType:         SourceWikipedia,
			SourceName:         "Wikipedia",
		}
		questions = append(questions, q)

		if !ignoreHistory {
			historyTopic := wiki.TopicFromURL(q.SourceURL)
			if historyTopic == "" {
				historyTopic = q.CorrectAnswer
			}
			entries = append(entries, store.UsedArticle{
				Topic:    historyTopic,
				Category: in.Category,
				Question: q.Text,
				UsedAt:   now,
			})
		}
	}

	if len(entries) > 0 {
		if err := p.history.AddBatch(ctx, entries); err != nil {
			return nil, fmt.Errorf("record topic history: %w", err)
		}
	}

	return questions, nil
}

// researchFacts runs stage 1 and parses the numbered fact list.
func (p *ExpertPipeline) researchFacts(ctx context.Context, in ExpertInput) ([]string, error) {
	ctx = llm.WithPurpose(ctx, "expert-research")

	t := expertTextFor(in.Language)
	prompt := fmt.Sprintf(t.research, in.Count*factMultiplier, in.Category)

	resp, err := p.research.Generate(ctx, llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens:   p.cfg.ResearchMaxTokens,
		Temperature: p.cfg.Temperature,
	})
	if err != nil {
		return nil, err
	}

	facts := parseFactList(string(resp.Content))
	if len(facts) == 0 {
		return nil, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("no facts in research response"),
		}
	}
	return facts, nil
}

// generateFromFacts runs stage 2 and parses the questions block.
func (p *ExpertPipeline) generateFromFacts(ctx context.Context, facts []string, in ExpertInput) (*questionsOutput, error) {
	ctx = llm.WithPurpose(ctx, "expert-gen")

	t := expertTextFor(in.Language)

	var b strings.Builder
	fmt.Fprintf(&b, t.generate, in.Count, in.Category)
	b.WriteString("\n\n")
	b.WriteString(promptTextFor(in.Language).languageMandate)
	b.WriteString("\n")
	b.WriteString(promptTextFor(in.Language).difficulty[in.Difficulty])
	b.WriteString("\n\n")
	b.WriteString(t.factsHeader)
	b.WriteString("\n")
	for i, f := range facts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, f)
	}
	b.WriteString("\n")
	b.WriteString(t.reasoning)
	b.WriteString("\n\n")
	b.WriteString(promptTextFor(in.Language).jsonInstruction)
	b.WriteString("\n\n")
	b.WriteString(outputFormat)

	resp, err := p.generate.Generate(ctx, llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: b.String()}},
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
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

var factMarker = regexp.MustCompile(`^\s*\d+[.)]\s*`)

// parseFactList splits the research response into facts, stripping
// leading "1. " style markers from non-blank lines.
func parseFactList(text string) []string {
	var facts []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(factMarker.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		facts = append(facts, line)
	}
	return facts
}

// filterFacts drops facts overlapping already-used material, so stage
// 2 never builds questions on exhausted topics. Topics arrive as
// article slugs; underscores are folded back to spaces for matching.
func filterFacts(facts, priorTopics, existingQuestions []string) []string {
	var blocked []string
	for _, t := range priorTopics {
		t = strings.ToLower(strings.ReplaceAll(t, "_", " "))
		if t != "" {
			blocked = append(blocked, t)
		}
	}
	for _, q := range existingQuestions {
		q = strings.ToLower(strings.TrimSpace(q))
		if len(q) > 40 {
			q = q[:40]
		}
		if q != "" {
			blocked = append(blocked, q)
		}
	}

	var kept []string
	for _, f := range facts {
		lf := strings.ToLower(f)
		overlaps := false
		for _, b := range blocked {
			if strings.Contains(lf, b) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, f)
		}
	}
	return kept
}

// expertText is one language's expert-mode template pair.
type expertText struct {
	research    string // fmt: fact count, category
	generate    string // fmt: question count, category
	factsHeader string
	reasoning   string
}

var expertTexts = map[string]expertText{
	"de": {
		research: `Du bist ein Rechercheur für ein Quiz. Liste %d konkrete, einzeln überprüfbare Fakten zur Kategorie "%s" auf.
Jeder Fakt in einer eigenen Zeile, nummeriert ("1. ...").
Decke verschiedene Unterthemen der Kategorie ab, keine zwei Fakten zum selben Thema.
Nur Fakten, keine Fragen, keine Einleitung.`,
		generate: `Du bist ein erfahrener Pubquiz-Master. Erstelle aus den folgenden recherchierten Fakten %d Quizfragen für die Kategorie "%s".`,
		factsHeader: "Recherchierte Fakten:",
		reasoning: `Gehe für jede Frage explizit so vor, bevor du das JSON ausgibst:
1. Wähle einen Fakt aus der Liste.
2. Bestimme die eindeutige Antwort, die sich aus ihm ergibt.
3. Formuliere die Frage so, dass genau diese Antwort die einzig richtige ist.`,
	},
	"en": {
		research: `You are a researcher for a quiz show. List %d concrete, individually verifiable facts about the category "%s".
One fact per line, numbered ("1. ...").
Cover different subtopics of the category; no two facts about the same subject.
Facts only, no questions, no preamble.`,
		generate: `You are an experienced pub quiz master. Turn the researched facts below into %d trivia questions for the category "%s".`,
		factsHeader: "Researched facts:",
		reasoning: `For each question, reason explicitly before emitting the JSON:
1. Pick one fact from the list.
2. Determine the single unambiguous answer it supports.
3. Phrase the question so that exactly that answer is the only correct one.`,
	},
}

// expertTextFor returns the expert template for lang, falling back to
// English.
func expertTextFor(lang string) expertText {
	if t, ok := expertTexts[lang]; ok {
		return t
	}
	return expertTexts["en"]
}
