package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizwiz/internal/wiki"
)

// PromptConfig carries everything buildPrompt needs. One explicit
// struct instead of language branching at every call site; the
// language only selects a template from the table below.
type PromptConfig struct {
	Category         string
	Count            int
	Language         string
	Difficulty       Difficulty
	ExcludeQuestions []string
	ExcludeTopics    []string
	CustomSource     *wiki.Wiki
}

// promptText is one language's generation template.
type promptText struct {
	role            string // fmt: count, category
	rules           []string
	difficulty      map[Difficulty]string
	languageMandate string
	exclusionHeader string
	exampleBlock    string
	customSource    string // fmt: wiki name, base URL
	jsonInstruction string
}

var promptTexts = map[string]promptText{
	"de": {
		role: `Du bist ein erfahrener Pubquiz-Master. Erstelle %d einzigartige Quizfragen für die Kategorie "%s".`,
		rules: []string{
			"Jede Frage muss eine eindeutige, faktisch korrekte Antwort haben",
			"Fragen sollen interessant und abwechslungsreich sein",
			"Bei Personen, Orten und Begriffen verwende die im Deutschen übliche Schreibweise",
			`Das Feld "topic" muss der exakte Wikipedia-Artikelname sein (z.B. "Albert_Einstein", "Berlin", "Zweiter_Weltkrieg")`,
			`Gib bekannte alternative Schreibweisen der Antwort in "alternativeAnswers" an`,
		},
		difficulty: map[Difficulty]string{
			DifficultyEasy:   "Alle Fragen sollen LEICHT sein: Allgemeinwissen, das die meisten Menschen haben.",
			DifficultyMedium: "Alle Fragen sollen MITTELSCHWER sein: machbar für regelmäßige Quizspieler, aber kein Allgemeinwissen.",
			DifficultyHard:   "Alle Fragen sollen SCHWER sein: nur Kenner der Kategorie sollen sie beantworten können.",
			DifficultyMixed:  "Mische die Schwierigkeitsgrade: etwa ein Drittel leicht, ein Drittel mittel, ein Drittel schwer. Gib den Grad pro Frage im Feld \"difficulty\" an (easy, medium oder hard).",
		},
		languageMandate: "ALLE Fragen und Antworten MÜSSEN auf DEUTSCH sein.",
		exclusionHeader: "Folgende Fragen und Themen wurden bereits verwendet und dürfen NICHT wiederholt oder umformuliert werden:",
		exampleBlock: `WICHTIGSTE REGEL: Jede Frage muss genau EINE unzweideutige richtige Antwort haben.
SCHLECHT: "Nenne einen berühmten Komponisten." (viele richtige Antworten)
SCHLECHT: "Welches Land hat die meisten Einwohner?" (ändert sich, mehrdeutig je nach Zeitpunkt)
GUT: "Welcher Komponist schrieb die Oper 'Die Zauberflöte'?" (genau eine Antwort: Mozart)
GUT: "In welchem Jahr fiel die Berliner Mauer?" (genau eine Antwort: 1989)`,
		customSource:    `Für diese Kategorie ist %s (%s) die beste Quelle. Wähle als "sourceUrl" wenn möglich einen Artikel von dort.`,
		jsonInstruction: "Antworte NUR mit validem JSON, kein anderer Text, keine Markdown-Zäune.",
	},
	"en": {
		role: `You are an experienced pub quiz master. Create %d unique trivia questions for the category "%s".`,
		rules: []string{
			"Every question must have a single, factually correct answer",
			"Questions should be interesting and varied",
			"Use the commonly accepted English spelling for people, places and terms",
			`The "topic" field must be the exact Wikipedia article name (e.g. "Albert_Einstein", "Berlin", "World_War_II")`,
			`List well-known alternative spellings of the answer in "alternativeAnswers"`,
		},
		difficulty: map[Difficulty]string{
			DifficultyEasy:   "All questions should be EASY: general knowledge most people have.",
			DifficultyMedium: "All questions should be MEDIUM: doable for regular quiz players, but beyond common knowledge.",
			DifficultyHard:   "All questions should be HARD: only enthusiasts of the category should be able to answer them.",
			DifficultyMixed:  "Mix the difficulty levels: roughly one third easy, one third medium, one third hard. State each question's level in the \"difficulty\" field (easy, medium or hard).",
		},
		languageMandate: "ALL questions and answers MUST be in ENGLISH.",
		exclusionHeader: "The following questions and topics have already been used and must NOT be repeated or rephrased:",
		exampleBlock: `MOST IMPORTANT RULE: every question must have exactly ONE unambiguous correct answer.
BAD: "Name a famous composer." (many correct answers)
BAD: "Which country has the largest population?" (changes over time, ambiguous)
GOOD: "Which composer wrote the opera 'The Magic Flute'?" (exactly one answer: Mozart)
GOOD: "In which year did the Berlin Wall fall?" (exactly one answer: 1989)`,
		customSource:    `For this category, %s (%s) is the best source. When possible, pick the "sourceUrl" from there.`,
		jsonInstruction: "Respond ONLY with valid JSON, no other text, no markdown fences.",
	},
}

// promptTextFor returns the template for lang, falling back to English.
func promptTextFor(lang string) promptText {
	if t, ok := promptTexts[lang]; ok {
		return t
	}
	return promptTexts["en"]
}

// buildPrompt assembles the generation prompt for one category.
func buildPrompt(cfg PromptConfig) string {
	t := promptTextFor(cfg.Language)

	var b strings.Builder

	fmt.Fprintf(&b, t.role, cfg.Count, cfg.Category)
	b.WriteString("\n\n")

	b.WriteString(t.languageMandate)
	b.WriteString("\n")
	b.WriteString(t.difficulty[cfg.Difficulty])
	b.WriteString("\n")
	for _, rule := range t.rules {
		b.WriteString("- ")
		b.WriteString(rule)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(t.exampleBlock)
	b.WriteString("\n")

	if cfg.CustomSource != nil {
		b.WriteString("\n")
		fmt.Fprintf(&b, t.customSource, cfg.CustomSource.Name, cfg.CustomSource.BaseURL)
		b.WriteString("\n")
	}

	exclusions := append(append([]string{}, cfg.ExcludeQuestions...), cfg.ExcludeTopics...)
	if len(exclusions) > 0 {
		b.WriteString("\n")
		b.WriteString(t.exclusionHeader)
		b.WriteString("\n")
		for _, e := range exclusions {
			b.WriteString("- ")
			b.WriteString(e)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(t.jsonInstruction)
	b.WriteString("\n\n")
	b.WriteString(outputFormat)

	return b.String()
}

// outputFormat shows the model the exact JSON shape. Language-neutral;
// the field values follow the language mandate above.
const outputFormat = `{
  "questions": [
    {
      "question": "...",
      "correctAnswer": "...",
      "alternativeAnswers": ["..."],
      "difficulty": "medium",
      "topic": "Exact_Wikipedia_Article_Name",
      "sourceUrl": "",
      "imageUrl": "",
      "imageAlt": ""
    }
  ]
}`
