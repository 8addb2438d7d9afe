package domain

import (
	"context"
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Tool is a function the task oracle may call while generating a reply.
type Tool interface {
	Name() string
	Description() string
	InputSchema() *jsonschema.Schema
	Call(ctx context.Context, input json.RawMessage) (string, error)
}

// GenerationRequest is one task-generation call.
type GenerationRequest struct {
	Instructions string
	History      []Turn
	Message      string
	Tools        []Tool
}

// StructuredRequest asks the oracle for a single JSON object matching Schema.
type StructuredRequest struct {
	System      string
	Prompt      string
	SchemaName  string
	Description string
	Schema      *jsonschema.Schema
}
