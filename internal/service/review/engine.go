// Package review asks the oracle whether the learner's level should change.
package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"

	"github.com/heartmarshall/sprachtrainer/internal/domain"
)

type oracle interface {
	Complete(ctx context.Context, req domain.StructuredRequest) (json.RawMessage, error)
}

// output is the object the oracle must produce.
type output struct {
	Recommendation string `json:"recommendation" jsonschema:"required"`
	Confidence     string `json:"confidence" jsonschema:"required"`
	Reasoning      string `json:"reasoning" jsonschema:"required"`
}

// JSONSchemaExtend restricts recommendation and confidence to their closed sets.
func (output) JSONSchemaExtend(s *jsonschema.Schema) {
	if p, ok := s.Properties.Get("recommendation"); ok {
		p.Description = "Empfohlene Schwierigkeitsstufe"
		p.Enum = lo.Map(domain.AllLevels(), func(l domain.Level, _ int) any { return l.Descriptor().String() })
	}
	if p, ok := s.Properties.Get("confidence"); ok {
		p.Description = "Sicherheit der Empfehlung"
		p.Enum = []any{"hoch", "mittel", "niedrig"}
	}
	if p, ok := s.Properties.Get("reasoning"); ok {
		p.Description = "Kurze Begründung (max. 2 Sätze)"
	}
}

var confidences = map[string]domain.Confidence{
	"hoch":    domain.ConfidenceHigh,
	"mittel":  domain.ConfidenceMedium,
	"niedrig": domain.ConfidenceLow,
	"high":    domain.ConfidenceHigh,
	"medium":  domain.ConfidenceMedium,
	"low":     domain.ConfidenceLow,
}

// Engine runs one review per call. It keeps no state between calls.
type Engine struct {
	log     *slog.Logger
	oracle  oracle
	schema  *jsonschema.Schema
	timeout time.Duration
}

// NewEngine creates a review engine. A zero timeout disables the per-call deadline.
func NewEngine(log *slog.Logger, oracle oracle, timeout time.Duration) *Engine {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	return &Engine{
		log:     log.With("service", "review"),
		oracle:  oracle,
		schema:  reflector.Reflect(output{}),
		timeout: timeout,
	}
}

// Review returns the oracle's verdict on the conversation, or false when
// no usable verdict could be obtained. The recommendation is checked
// against the closed descriptor set before it is returned.
func (e *Engine) Review(ctx context.Context, conversation string, current domain.Descriptor) (*domain.ReviewVerdict, bool) {
	verdict, err := e.review(ctx, conversation, current)
	if err != nil {
		e.log.WarnContext(ctx, "review produced no verdict",
			slog.String("current", current.String()),
			slog.String("error", err.Error()),
		)
		return nil, false
	}

	e.log.InfoContext(ctx, "review verdict",
		slog.String("current", current.String()),
		slog.String("recommendation", verdict.Recommendation.String()),
		slog.String("confidence", verdict.Confidence.String()),
	)
	e.log.DebugContext(ctx, "review reasoning", slog.String("reasoning", verdict.Reasoning))
	return verdict, true
}

func (e *Engine) review(ctx context.Context, conversation string, current domain.Descriptor) (*domain.ReviewVerdict, error) {
	if strings.TrimSpace(conversation) == "" {
		return nil, fmt.Errorf("%w: empty conversation", domain.ErrReviewUnavailable)
	}
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	raw, err := e.oracle.Complete(ctx, domain.StructuredRequest{
		System:      systemPrompt,
		Prompt:      buildPrompt(conversation, current),
		SchemaName:  "difficulty_recommendation",
		Description: "Gibt die empfohlene Schwierigkeitsstufe für Kyrill zurück.",
		Schema:      e.schema,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrReviewUnavailable, err)
	}

	return parse(raw)
}

func parse(raw json.RawMessage) (*domain.ReviewVerdict, error) {
	var out output
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: decode verdict: %w", domain.ErrReviewUnavailable, err)
	}

	recommendation := domain.Descriptor(strings.TrimSpace(out.Recommendation))
	if _, err := recommendation.Level(); err != nil {
		return nil, errors.Join(domain.ErrReviewUnavailable, err)
	}

	confidence, ok := confidences[strings.ToLower(strings.TrimSpace(out.Confidence))]
	if !ok {
		return nil, fmt.Errorf("%w: unknown confidence %q", domain.ErrReviewUnavailable, out.Confidence)
	}

	return &domain.ReviewVerdict{
		Recommendation: recommendation,
		Confidence:     confidence,
		Reasoning:      strings.TrimSpace(out.Reasoning),
	}, nil
}
