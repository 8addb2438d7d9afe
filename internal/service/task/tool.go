package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/invopop/jsonschema"

	"github.com/heartmarshall/sprachtrainer/internal/domain"
)

// ToolName is the name under which the oracle calls the formatter.
const ToolName = "generate_task"

const toolDescription = `Erstellt eine formatierte Sprachtraining-Aufgabe für alle 6 Schwierigkeitsstufen.

FUNKTIONSWEISE:
- Nimmt einen Satz mit ___ Lücke und Antwortoptionen
- Gibt einen String zurück: 'Satz ___<br>Optionen: A / B' oder 'Satz ___<br>Schreib deine Antwort:'
- Randomisiert automatisch die Reihenfolge der Optionen

MODI (automatische Erkennung):
- Stufe 1, 2, 3, 5: zwei Optionen, wrong_option2 leer
- Stufe 4 und dritte Form auf Stufe 5: drei Optionen
- Stufe 6: freie Eingabe, ALLE Optionen leer`

// Input is the argument object of the generate_task tool.
type Input struct {
	SentenceWithBlank string `json:"sentence_with_blank" jsonschema:"required,description=Satz mit ___ als Platzhalter"`
	CorrectOption     string `json:"correct_option,omitempty" jsonschema:"description=Richtige Antwort (leer bei Stufe 6)"`
	WrongOption1      string `json:"wrong_option1,omitempty" jsonschema:"description=Erste falsche Option (leer bei Stufe 6)"`
	WrongOption2      string `json:"wrong_option2,omitempty" jsonschema:"description=Zweite falsche Option (nur bei drei Optionen)"`
}

var _ domain.Tool = (*Tool)(nil)

// Tool adapts Format to the oracle tool contract.
type Tool struct {
	log    *slog.Logger
	schema *jsonschema.Schema
}

// NewTool creates the generate_task tool.
func NewTool(log *slog.Logger) *Tool {
	return &Tool{
		log:    log.With("tool", ToolName),
		schema: ReflectSchema[Input](),
	}
}

func (t *Tool) Name() string                    { return ToolName }
func (t *Tool) Description() string             { return toolDescription }
func (t *Tool) InputSchema() *jsonschema.Schema { return t.schema }

// Call renders the task described by input.
func (t *Tool) Call(ctx context.Context, input json.RawMessage) (string, error) {
	var in Input
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("parse %s input: %w", ToolName, err)
	}

	out, err := Compose(in.SentenceWithBlank, in.CorrectOption, in.WrongOption1, in.WrongOption2)
	if err != nil {
		t.log.WarnContext(ctx, "task rendered with inline error", slog.String("error", err.Error()))
	}
	return out, nil
}

// ReflectSchema builds an inline JSON schema for T.
func ReflectSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}
