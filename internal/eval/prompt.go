package eval

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizwiz/internal/quizgen"
)

// evalText is one language's grading template.
type evalText struct {
	role              string
	rules             []string
	itemHeader        string // fmt: index
	questionLabel     string
	correctLabel      string
	alternativesLabel string
	givenLabel        string
	noAnswer          string
	jsonInstruction   string
	notEvaluated      string
	fallbackCorrect   string
	fallbackIncorrect string // fmt: correct answer
}

var evalTexts = map[string]evalText{
	"de": {
		role: "Du bist ein fairer Quiz-Schiedsrichter. Bewerte die folgenden Antworten.",
		rules: []string{
			"Tippfehler und kleine Rechtschreibfehler gelten als richtig",
			"International übliche Schreibweisen und Übersetzungen der Antwort gelten als richtig",
			"Gängige Kurzformen gelten als richtig (z.B. \"Merkel\" für \"Angela Merkel\")",
			"Entscheidend ist, ob die Antwort inhaltlich dasselbe meint wie die richtige Antwort",
			"Die Begründung muss einen interessanten Zusatzfakt zur Frage enthalten, nicht nur das Urteil wiederholen",
		},
		itemHeader:        "Frage %d:",
		questionLabel:     "Frage:",
		correctLabel:      "Richtige Antwort:",
		alternativesLabel: "Auch akzeptiert:",
		givenLabel:        "Antwort des Spielers:",
		noAnswer:          "(keine Antwort)",
		jsonInstruction:   "Antworte NUR mit validem JSON, kein anderer Text, keine Markdown-Zäune.",
		notEvaluated:      "Diese Antwort konnte nicht automatisch bewertet werden.",
		fallbackCorrect:   "Die Antwort stimmt mit der richtigen Antwort überein (ohne KI-Bewertung geprüft).",
		fallbackIncorrect: "Die richtige Antwort wäre \"%s\" gewesen (ohne KI-Bewertung geprüft).",
	},
	"en": {
		role: "You are a fair quiz referee. Grade the following answers.",
		rules: []string{
			"Typos and minor spelling mistakes count as correct",
			"Internationally common spellings and translations of the answer count as correct",
			"Common short forms count as correct (e.g. \"Merkel\" for \"Angela Merkel\")",
			"What matters is whether the answer means the same thing as the correct answer",
			"The explanation must include an interesting extra fact about the question, not just restate the verdict",
		},
		itemHeader:        "Question %d:",
		questionLabel:     "Question:",
		correctLabel:      "Correct answer:",
		alternativesLabel: "Also accepted:",
		givenLabel:        "Player's answer:",
		noAnswer:          "(no answer)",
		jsonInstruction:   "Respond ONLY with valid JSON, no other text, no markdown fences.",
		notEvaluated:      "This answer could not be automatically evaluated.",
		fallbackCorrect:   "The answer matches the correct answer (checked without AI grading).",
		fallbackIncorrect: "The correct answer would have been \"%s\" (checked without AI grading).",
	},
}

func evalTextFor(lang string) evalText {
	if t, ok := evalTexts[lang]; ok {
		return t
	}
	return evalTexts["en"]
}

// buildEvalPrompt assembles the batch grading prompt. Questions are
// referenced by zero-based index so the verdicts map back positionally
// even when the model reorders them.
func buildEvalPrompt(questions []quizgen.Question, byID map[string]string, lang string) string {
	t := evalTextFor(lang)

	var b strings.Builder
	b.WriteString(t.role)
	b.WriteString("\n\n")
	for _, rule := range t.rules {
		b.WriteString("- ")
		b.WriteString(rule)
		b.WriteString("\n")
	}

	for i, q := range questions {
		b.WriteString("\n")
		fmt.Fprintf(&b, t.itemHeader, i)
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %s\n", t.questionLabel, q.Text)
		fmt.Fprintf(&b, "%s %s\n", t.correctLabel, q.CorrectAnswer)
		if len(q.AlternativeAnswers) > 0 {
			fmt.Fprintf(&b, "%s %s\n", t.alternativesLabel, strings.Join(q.AlternativeAnswers, ", "))
		}
		answer := byID[q.ID]
		if strings.TrimSpace(answer) == "" {
			answer = t.noAnswer
		}
		fmt.Fprintf(&b, "%s %s\n", t.givenLabel, answer)
	}

	b.WriteString("\n")
	b.WriteString(t.jsonInstruction)
	b.WriteString("\n\n")
	b.WriteString(verdictFormat)

	return b.String()
}

// verdictFormat shows the model the exact JSON shape. questionIndex is
// the zero-based index from the item headers above.
const verdictFormat = `{
  "evaluations": [
    {
      "questionIndex": 0,
      "isCorrect": true,
      "explanation": "..."
    }
  ]
}`
