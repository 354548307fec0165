package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizwiz/internal/eval"
	"github.com/abhisek/quizwiz/internal/llm"
	"github.com/abhisek/quizwiz/internal/quiz"
	"github.com/abhisek/quizwiz/internal/quizgen"
	"github.com/abhisek/quizwiz/internal/store"
	"github.com/abhisek/quizwiz/internal/ui/theme"
	"github.com/abhisek/quizwiz/internal/wiki"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a quiz round",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// addPlayFlags registers the round flags. The root command plays a
// round too, so both commands carry them.
func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("categories", nil, "Categories to play (built-in or custom); random built-ins when omitted")
	cmd.Flags().IntP("count", "n", 3, "Questions per category")
	cmd.Flags().StringP("lang", "l", "en", "Quiz language (de, en)")
	cmd.Flags().StringP("difficulty", "d", "medium", "Difficulty: easy, medium, hard or mixed")
	cmd.Flags().Bool("expert", false, "Two-stage expert generation (research, then questions)")
	cmd.Flags().String("research-model", "", "Model for the expert research stage (defaults to the main model)")
}

func init() {
	addPlayFlags(playCmd)
}

func runPlay(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	settings, err := settingsFromFlags(cmd)
	if err != nil {
		return err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		return fmt.Errorf("configure LLM provider: %w", err)
	}

	questions, err := generateQuestions(ctx, cmd, provider, st, settings)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return fmt.Errorf("the model produced no questions")
	}

	session := quiz.NewSession(settings, questions)
	in := bufio.NewScanner(os.Stdin)

	fmt.Println(theme.Title.Render("Quizwiz"))
	fmt.Println(theme.Hint.Render(fmt.Sprintf("%d questions. Answers lock in when you press enter.", len(questions))))

	for i, q := range questions {
		fmt.Println()
		fmt.Println(theme.Category.Render(fmt.Sprintf("[%d/%d] %s (%s)", i+1, len(questions), q.Category, q.Difficulty)))
		fmt.Println(theme.QuestionCard.Render(theme.Body.Render(q.Text)))
		if q.Type == quizgen.TypeImage {
			fmt.Println(theme.Hint.Render("Image: " + q.ImageURL))
			if q.ImageAlt != "" {
				fmt.Println(theme.Hint.Render(q.ImageAlt))
			}
		}
		fmt.Print("> ")

		if !in.Scan() {
			return fmt.Errorf("read answer: %w", in.Err())
		}
		if err := session.Answer(q.ID, strings.TrimSpace(in.Text())); err != nil {
			return err
		}
	}

	fmt.Println()
	fmt.Println(theme.Hint.Render("Grading..."))

	evaluator := eval.New(provider)
	results, err := evaluator.Evaluate(ctx, session.Questions, session.Answers(), settings.Language)
	if err != nil {
		return fmt.Errorf("evaluate answers: %w", err)
	}
	session.SetResults(results)

	printResults(session)

	// Verdict disputes.
	for {
		fmt.Print(theme.Hint.Render("Flip a verdict? Question number, or enter to finish: "))
		if !in.Scan() {
			break
		}
		raw := strings.TrimSpace(in.Text())
		if raw == "" {
			break
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > len(questions) {
			fmt.Println(theme.Incorrect.Render("No such question."))
			continue
		}
		if err := session.Override(questions[n-1].ID); err != nil {
			return err
		}
		printResults(session)
	}

	score := session.Score()
	fmt.Println()
	fmt.Println(theme.ScoreBanner.Render(fmt.Sprintf("Score: %d/%d (%d%%)", score.Correct, score.Total, score.Percent())))
	return nil
}

func settingsFromFlags(cmd *cobra.Command) (quiz.Settings, error) {
	lang, _ := cmd.Flags().GetString("lang")
	count, _ := cmd.Flags().GetInt("count")
	categories, _ := cmd.Flags().GetStringSlice("categories")
	expert, _ := cmd.Flags().GetBool("expert")

	diffRaw, _ := cmd.Flags().GetString("difficulty")
	difficulty := quizgen.Difficulty(strings.ToLower(diffRaw))
	switch difficulty {
	case quizgen.DifficultyEasy, quizgen.DifficultyMedium, quizgen.DifficultyHard, quizgen.DifficultyMixed:
	default:
		return quiz.Settings{}, fmt.Errorf("unknown difficulty %q", diffRaw)
	}

	if count < 1 {
		return quiz.Settings{}, fmt.Errorf("count must be at least 1")
	}
	if len(categories) == 0 {
		categories = quizgen.RandomCategories(lang, 3)
	}

	return quiz.Settings{
		Categories:  categories,
		PerCategory: count,
		Language:    lang,
		Difficulty:  difficulty,
		Expert:      expert,
	}, nil
}

func generateQuestions(ctx context.Context, cmd *cobra.Command, provider llm.Provider, st *store.Store, settings quiz.Settings) ([]quizgen.Question, error) {
	verifier := wiki.NewClient()
	cfg := quizgen.DefaultConfig()

	if !settings.Expert {
		gen := quizgen.New(provider, verifier, st.ArticleRepo(), cfg)
		questions, err := gen.Generate(ctx, quizgen.Input{
			Categories:  settings.Categories,
			PerCategory: settings.PerCategory,
			Language:    settings.Language,
			Difficulty:  settings.Difficulty,
		})
		if err != nil {
			return nil, fmt.Errorf("generate questions: %w", err)
		}
		return questions, nil
	}

	research := provider
	if model, _ := cmd.Flags().GetString("research-model"); model != "" {
		llmCfg := llm.ConfigFromEnv()
		if err := llmCfg.Validate(); err != nil {
			discovered, ok := llm.DiscoverConfig()
			if !ok {
				return nil, err
			}
			llmCfg = discovered
		}
		var err error
		research, err = llm.NewProvider(ctx, llmCfg.WithModel(model), st.EventRepo())
		if err != nil {
			return nil, fmt.Errorf("configure research model: %w", err)
		}
	}

	pipeline := quizgen.NewExpert(research, provider, verifier, st.ArticleRepo(), cfg)

	var questions []quizgen.Question
	var existing []string
	for _, category := range settings.Categories {
		batch, err := pipeline.Generate(ctx, quizgen.ExpertInput{
			Category:          category,
			Count:             settings.PerCategory,
			Language:          settings.Language,
			Difficulty:        settings.Difficulty,
			ExistingQuestions: existing,
		})
		if err != nil {
			return nil, fmt.Errorf("generate questions: %w", err)
		}
		for _, q := range batch {
			existing = append(existing, q.Text)
		}
		questions = append(questions, batch...)
	}
	return questions, nil
}

func printResults(session *quiz.Session) {
	fmt.Println()
	for i, r := range session.Results() {
		mark := theme.Correct.Render("✓")
		if !r.IsCorrect {
			mark = theme.Incorrect.Render("✗")
		}
		fmt.Printf("%s %d. %s\n", mark, i+1, r.Question)

		answer := r.UserAnswer
		if answer == "" {
			answer = "(no answer)"
		}
		fmt.Printf("   %s → %s\n", answer, theme.Body.Render(r.CorrectAnswer))
		if r.Explanation != "" {
			fmt.Println("   " + theme.Hint.Render(r.Explanation))
		}
		if r.SourceURL != "" {
			fmt.Println("   " + theme.Source.Render(r.SourceURL))
		}
		if r.ManualOverride {
			fmt.Println("   " + theme.Hint.Render("(verdict flipped manually)"))
		}
	}
}
