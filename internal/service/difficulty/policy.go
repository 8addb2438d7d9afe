package difficulty

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/sprachtrainer/internal/domain"
)

type levelRules struct {
	bundle domain.ConstraintBundle
	notes  []string
}

// policy is the static level table. Index 0 is level 1.
var policy = [...]levelRules{
	{
		bundle: domain.ConstraintBundle{
			Level: 1, Title: "EINDEUTIGE WAHL",
			MinWords: 3, MaxWords: 5, MinOptions: 2, MaxOptions: 2,
			Similarity: domain.SimilarityUnrelated,
			Example:    `"Ich trinke ___." → "Optionen: Wasser / Auto"`,
		},
		notes: []string{"Verwende nur bekannte Grundwörter (Wasser, Brot, Auto, Haus)"},
	},
	{
		bundle: domain.ConstraintBundle{
			Level: 2, Title: "ÄHNLICHE ABLENKER",
			MinWords: 3, MaxWords: 5, MinOptions: 2, MaxOptions: 2,
			Similarity: domain.SimilaritySameCategory,
			Example:    `"Ich esse ___." → "Optionen: Brot / Saft" (beide Lebensmittel, aber nur Brot passt zu "essen")`,
		},
	},
	{
		bundle: domain.ConstraintBundle{
			Level: 3, Title: "LÄNGERE SÄTZE",
			MinWords: 6, MaxWords: 8, MinOptions: 2, MaxOptions: 2,
			Similarity: domain.SimilarityUnrelated,
			Example:    `"Heute Morgen habe ich meinen Kaffee ___." → "Optionen: getrunken / gefahren"`,
		},
		notes: []string{"Sätze mit Zeitangaben oder Adjektiven"},
	},
	{
		bundle: domain.ConstraintBundle{
			Level: 4, Title: "DREI OPTIONEN",
			MinWords: 4, MaxWords: 6, MinOptions: 3, MaxOptions: 3,
			Similarity: domain.SimilarityUnrelated,
			Example:    `"Am Computer arbeite ich mit der ___." → "Optionen: Maus / Schere / Gabel"`,
		},
	},
	{
		bundle: domain.ConstraintBundle{
			Level: 5, Title: "GRAMMATIK-FOKUS",
			MinWords: 5, MaxWords: 7, MinOptions: 2, MaxOptions: 3,
			Similarity: domain.SimilarityGrammaticalForms,
			Example:    `"Gestern habe ich einen Brief ___." → "Optionen: geschrieben / schreiben / schreibt"`,
		},
		notes: []string{"Fokus: Perfekt vs. Infinitiv vs. Präsens"},
	},
	{
		bundle: domain.ConstraintBundle{
			Level: 6, Title: "FREIE EINGABE",
			MinWords: 4, MaxWords: 6, MinOptions: 0, MaxOptions: 0,
			Similarity: domain.SimilarityNone,
			Example:    `"Ich arbeite am ___." (Akzeptiere: Computer, Schreibtisch, Laptop)`,
		},
	},
}

// BundleFor returns the constraint bundle of a canonical descriptor.
// Any other value yields ErrUnknownLevel.
func BundleFor(d domain.Descriptor) (domain.ConstraintBundle, error) {
	l, err := domain.ParseDescriptor(d.String())
	if err != nil {
		return domain.ConstraintBundle{}, fmt.Errorf("%w: %q", domain.ErrUnknownLevel, d)
	}
	return BundleForLevel(l)
}

// BundleForLevel returns the constraint bundle of l.
func BundleForLevel(l domain.Level) (domain.ConstraintBundle, error) {
	if !l.IsValid() {
		return domain.ConstraintBundle{}, fmt.Errorf("%w: %d", domain.ErrUnknownLevel, int(l))
	}
	return policy[l-1].bundle, nil
}

// BundleOrDefault is BundleFor with the level 1 bundle as fallback. The
// second result reports whether the fallback was used.
func BundleOrDefault(d domain.Descriptor) (domain.ConstraintBundle, bool) {
	b, err := BundleFor(d)
	if err != nil {
		return policy[domain.LevelDefault-1].bundle, true
	}
	return b, false
}

const dialogueRules = `DIALOGFLUSS:
1) Nutze das generate_task Tool (Parameter abhängig von der aktuellen Stufe)
2) Gib den String direkt aus
3) Bei richtiger Antwort: "Richtig. Sehr gut."
4) Bei falscher Antwort: "Das passt nicht. Richtig ist: <Wort>."
5) Sofort nächste Aufgabe
6) Bei "Stop"/"Pause": freundlich verabschieden

STIL: Deutsch, kurz (max 8 Wörter), warm, keine Erklärungen.
WÖRTER: Nur bekannte Grundwörter (Haushalt/Arbeit/Gefühle).
ERSTE NACHRICHT: Kurze Begrüßung + Beispiel + erste Aufgabe.`

// Instructions renders the full generation instructions for b.
func Instructions(b domain.ConstraintBundle) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Du bist Kyrills Sprachtrainer. %s\n\n", b.Level.Descriptor())
	sb.WriteString(Rules(b))
	sb.WriteString("\n")
	sb.WriteString(dialogueRules)
	return sb.String()
}

// Rules renders the level block of the instructions.
func Rules(b domain.ConstraintBundle) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SCHWIERIGKEIT STUFE %d - %s:\n", b.Level, b.Title)
	fmt.Fprintf(&sb, "- Sätze: EXAKT %d-%d Wörter, nie mehr\n", b.MinWords, b.MaxWords)
	sb.WriteString("- Lücke: GENAU eine Lücke mit ___\n")
	fmt.Fprintf(&sb, "- Optionen: %s\n", optionsRule(b))
	fmt.Fprintf(&sb, "- %s\n", similarityRule(b.Similarity))
	for _, n := range policy[b.Level-1].notes {
		fmt.Fprintf(&sb, "- %s\n", n)
	}
	fmt.Fprintf(&sb, "- Tool-Aufruf: %s\n", toolRule(b))
	fmt.Fprintf(&sb, "- Beispiel: %s\n", b.Example)
	return sb.String()
}

func optionsRule(b domain.ConstraintBundle) string {
	switch {
	case b.MaxOptions == 0:
		return "KEINE Optionen anbieten"
	case b.MinOptions == b.MaxOptions && b.MaxOptions == 2:
		return "EXAKT zwei Optionen mit /"
	case b.MinOptions == b.MaxOptions && b.MaxOptions == 3:
		return "EXAKT drei Optionen mit / zwischen allen"
	default:
		return fmt.Sprintf("EXAKT %d-%d Optionen mit /", b.MinOptions, b.MaxOptions)
	}
}

func similarityRule(s domain.OptionSimilarity) string {
	switch s {
	case domain.SimilaritySameCategory:
		return "Alle Optionen: gleiche Wortart, gleiche Kategorie, nur eine ist im Kontext sinnvoll"
	case domain.SimilarityGrammaticalForms:
		return "Optionen sind grammatische Formen desselben Wortes, nur eine ist im Satz korrekt"
	case domain.SimilarityNone:
		return "Erwarte Kyrills freie Eingabe und akzeptiere mehrere korrekte Antworten"
	default:
		return "Falsche Optionen: völlig andere Wortart oder Kategorie (z.B. Essen vs. Fahrzeug)"
	}
}

func toolRule(b domain.ConstraintBundle) string {
	switch {
	case b.MaxOptions == 0:
		return "generate_task nur mit sentence_with_blank, ALLE Optionen leer"
	case b.MinOptions == 3:
		return "generate_task mit correct_option, wrong_option1 und wrong_option2"
	case b.MaxOptions == 3:
		return "generate_task mit correct_option und wrong_option1, wrong_option2 nur für die dritte Form"
	default:
		return "generate_task mit correct_option und wrong_option1, wrong_option2 leer"
	}
}
