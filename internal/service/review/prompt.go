package review

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/sprachtrainer/internal/domain"
)

const systemPrompt = `Du bist ein Lernfortschritts-Analyst für Kyrills Sprachtraining.

DEINE AUFGABE:
Analysiere die Conversation History und empfehle eine passende Schwierigkeitsstufe von 1-6.

SCHWIERIGKEITSSTUFEN-ÜBERSICHT:
- Stufe 1: Eindeutige Wahl (2 Optionen, völlig unterschiedlich) - für Anfänger
- Stufe 2: Ähnliche Ablenker (2 Optionen, gleiche Kategorie) - leicht fortgeschritten
- Stufe 3: Längere Sätze (2 Optionen, mehr Kontext) - mehr Herausforderung
- Stufe 4: Drei Optionen (3 Optionen, verschiedene Kategorien) - deutlich schwerer
- Stufe 5: Grammatik-Fokus (2-3 Optionen, gleiche Grundform) - für Grammatik
- Stufe 6: Freie Eingabe (keine Optionen) - höchste Stufe

BEWERTUNGSKRITERIEN:
1. Erfolgsrate der letzten 5-10 Aufgaben
2. Antwortgeschwindigkeit/Zögern
3. Fehlerarten (zufällige Fehler vs. systematische Probleme)
4. Engagement-Level (lange vs. kurze Antworten, Motivation)

ENTSCHEIDUNGSLOGIK:
- 90%+ korrekt, schnelle Antworten → Stufe erhöhen
- 70-90% korrekt → Stufe beibehalten
- 50-70% korrekt → eine Stufe senken
- <50% korrekt → zwei Stufen senken
- Nie unter Stufe 1 oder über Stufe 6

ANTWORTFORMAT:
- recommendation: exakt einer der Sätze "Kyrills aktuelle Schwierigkeitsstufe ist N" mit N von 1 bis 6
- confidence: hoch, mittel oder niedrig
- reasoning: höchstens zwei Sätze`

func buildPrompt(conversation string, current domain.Descriptor) string {
	var sb strings.Builder
	sb.WriteString("Analysiere diese Conversation History von Kyrills Sprachtraining:\n\n")
	fmt.Fprintf(&sb, "AKTUELLE STUFE: %s\n\n", current)
	sb.WriteString("CONVERSATION HISTORY:\n")
	sb.WriteString(conversation)
	sb.WriteString("\n\nAnalysiere Kyrills Leistung und empfehle die passende Schwierigkeitsstufe.")
	return sb.String()
}
