// Package llm is the Anthropic-backed oracle: task generation with tool
// calls and structured review verdicts.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/invopop/jsonschema"
	"golang.org/x/time/rate"

	"github.com/heartmarshall/sprachtrainer/internal/domain"
)

// ErrNoReply is returned when the model produced no usable content.
var ErrNoReply = errors.New("llm: no reply")

// Config configures the Anthropic client.
type Config struct {
	APIKey            string
	TaskModel         string
	ReviewModel       string
	MaxTokens         int64
	RequestsPerMinute int
	MaxToolRounds     int
	Timeout           time.Duration
}

type messagesAPI interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

// Client talks to the Anthropic Messages API.
type Client struct {
	log      *slog.Logger
	messages messagesAPI
	limiter  *rate.Limiter
	cfg      Config
}

// New creates a client using cfg.APIKey.
func New(log *slog.Logger, cfg Config) *Client {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	client := anthropic.NewClient(opts...)
	return newClient(log, &client.Messages, cfg)
}

func newClient(log *slog.Logger, messages messagesAPI, cfg Config) *Client {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}
	if cfg.MaxToolRounds <= 0 {
		cfg.MaxToolRounds = 4
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60), 1)
	}

	return &Client{
		log:      log.With("adapter", "llm"),
		messages: messages,
		limiter:  limiter,
		cfg:      cfg,
	}
}

// ---------------------------------------------------------------------------
// Task generation
// ---------------------------------------------------------------------------

// Generate answers req.Message in the context of req.History, letting the
// model call req.Tools until it produces a text reply.
func (c *Client) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	messages := historyMessages(req.History)
	messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(req.Message)))

	tools := make(map[string]domain.Tool, len(req.Tools))
	for _, t := range req.Tools {
		tools[t.Name()] = t
	}

	for round := 0; round <= c.cfg.MaxToolRounds; round++ {
		msg, err := c.send(ctx, anthropic.MessageNewParams{
			Model:     anthropic.Model(c.cfg.TaskModel),
			MaxTokens: c.cfg.MaxTokens,
			System:    []anthropic.TextBlockParam{{Text: req.Instructions}},
			Messages:  messages,
			Tools:     toolParams(req.Tools),
		})
		if err != nil {
			return "", err
		}

		text, uses := splitContent(msg)
		if len(uses) == 0 {
			if strings.TrimSpace(text) == "" {
				return "", ErrNoReply
			}
			return text, nil
		}

		messages = append(messages, msg.ToParam())
		results := make([]anthropic.ContentBlockParamUnion, 0, len(uses))
		for _, use := range uses {
			results = append(results, c.callTool(ctx, tools, use))
		}
		messages = append(messages, anthropic.NewUserMessage(results...))
	}

	return "", fmt.Errorf("llm: tool loop exceeded %d rounds", c.cfg.MaxToolRounds)
}

func (c *Client) callTool(ctx context.Context, tools map[string]domain.Tool, use anthropic.ToolUseBlock) anthropic.ContentBlockParamUnion {
	tool, ok := tools[use.Name]
	if !ok {
		c.log.WarnContext(ctx, "model called unknown tool", slog.String("tool", use.Name))
		return anthropic.NewToolResultBlock(use.ID, "Fehler: unbekanntes Werkzeug "+use.Name, true)
	}

	input, err := json.Marshal(use.Input)
	if err != nil {
		return anthropic.NewToolResultBlock(use.ID, "Fehler: "+err.Error(), true)
	}

	out, err := tool.Call(ctx, input)
	if err != nil {
		c.log.WarnContext(ctx, "tool call failed",
			slog.String("tool", use.Name),
			slog.String("error", err.Error()),
		)
		return anthropic.NewToolResultBlock(use.ID, "Fehler: "+err.Error(), true)
	}
	return anthropic.NewToolResultBlock(use.ID, out, false)
}

// ---------------------------------------------------------------------------
// Structured output
// ---------------------------------------------------------------------------

// Complete asks for one JSON object matching req.Schema. The model is forced
// to answer through a tool whose input schema is req.Schema; a plain text
// answer is accepted when it contains a JSON object.
func (c *Client) Complete(ctx context.Context, req domain.StructuredRequest) (json.RawMessage, error) {
	name := req.SchemaName
	if name == "" {
		name = "answer"
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.cfg.ReviewModel),
		MaxTokens: c.cfg.MaxTokens,
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt))},
		Tools: []anthropic.ToolUnionParam{{
			OfTool: &anthropic.ToolParam{
				Name:        name,
				Description: anthropic.String(req.Description),
				InputSchema: inputSchema(req.Schema),
			},
		}},
		ToolChoice: anthropic.ToolChoiceUnionParam{
			OfTool: &anthropic.ToolChoiceToolParam{Name: name},
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := c.send(ctx, params)
	if err != nil {
		return nil, err
	}

	text, uses := splitContent(msg)
	for _, use := range uses {
		if use.Name != name {
			continue
		}
		raw, err := json.Marshal(use.Input)
		if err != nil {
			return nil, fmt.Errorf("llm: encode %s input: %w", name, err)
		}
		return raw, nil
	}

	obj, err := extractJSON(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoReply, err)
	}
	return json.RawMessage(obj), nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (c *Client) send(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("llm: rate limit wait: %w", err)
	}

	start := time.Now()
	msg, err := c.messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("llm: messages api: %w", err)
	}

	c.log.DebugContext(ctx, "llm call",
		slog.String("model", string(params.Model)),
		slog.String("stop_reason", string(msg.StopReason)),
		slog.Int64("input_tokens", msg.Usage.InputTokens),
		slog.Int64("output_tokens", msg.Usage.OutputTokens),
		slog.Duration("duration", time.Since(start)),
	)
	return msg, nil
}

func historyMessages(turns []domain.Turn) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(turns)+1)
	for _, t := range turns {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		block := anthropic.NewTextBlock(t.Text)
		if t.Role == domain.RoleAssistant {
			out = append(out, anthropic.NewAssistantMessage(block))
			continue
		}
		out = append(out, anthropic.NewUserMessage(block))
	}
	return out
}

func toolParams(tools []domain.Tool) []anthropic.ToolUnionParam {
	if len(tools) == 0 {
		return nil
	}
	out := make([]anthropic.ToolUnionParam, 0, len(tools))
	for _, t := range tools {
		out = append(out, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        t.Name(),
				Description: anthropic.String(t.Description()),
				InputSchema: inputSchema(t.InputSchema()),
			},
		})
	}
	return out
}

func inputSchema(s *jsonschema.Schema) anthropic.ToolInputSchemaParam {
	if s == nil {
		return anthropic.ToolInputSchemaParam{}
	}
	return anthropic.ToolInputSchemaParam{
		Properties: s.Properties,
		Required:   s.Required,
	}
}

func splitContent(msg *anthropic.Message) (string, []anthropic.ToolUseBlock) {
	var (
		text strings.Builder
		uses []anthropic.ToolUseBlock
	)
	for _, block := range msg.Content {
		switch b := block.AsAny().(type) {
		case anthropic.TextBlock:
			text.WriteString(b.Text)
		case anthropic.ToolUseBlock:
			uses = append(uses, b)
		}
	}
	return text.String(), uses
}

// extractJSON returns the outermost JSON object in s, ignoring code fences
// and surrounding prose.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", errors.New("no JSON object found in response")
	}
	obj := s[start : end+1]
	if !json.Valid([]byte(obj)) {
		return "", errors.New("response does not contain valid JSON")
	}
	return obj, nil
}
