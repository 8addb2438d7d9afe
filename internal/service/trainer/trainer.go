// Package trainer runs the drill conversation and keeps the learner's
// difficulty level in step with periodic reviews.
package trainer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/heartmarshall/sprachtrainer/internal/domain"
	"github.com/heartmarshall/sprachtrainer/internal/service/difficulty"
	"github.com/heartmarshall/sprachtrainer/pkg/keymutex"
)

// Apology is sent instead of a task when generation fails.
const Apology = "Entschuldigung, ich kann gerade nicht antworten. Bitte versuche es später noch einmal."

// ---------------------------------------------------------------------------
// Consumer interfaces
// ---------------------------------------------------------------------------

type levelStore interface {
	GetCurrent(ctx context.Context, learnerID string) (domain.DifficultyFact, error)
	ApplyRecommendation(ctx context.Context, observed domain.DifficultyFact, value domain.Descriptor) (domain.DifficultyFact, bool, error)
	OnChange(fn difficulty.Observer)
}

type taskOracle interface {
	Generate(ctx context.Context, req domain.GenerationRequest) (string, error)
}

type transcriptRepo interface {
	Append(ctx context.Context, turns ...domain.Turn) error
	Recent(ctx context.Context, sessionKey string, limit int) ([]domain.Turn, error)
}

type reviewer interface {
	Review(ctx context.Context, conversation string, current domain.Descriptor) (*domain.ReviewVerdict, bool)
}

type scheduler interface {
	Submit(name string, fn func(ctx context.Context) error) bool
}

// ---------------------------------------------------------------------------
// Trainer
// ---------------------------------------------------------------------------

// Reply is the learner-visible outcome of one turn.
type Reply struct {
	Text  string
	Level domain.Level
	// Turn is the number of the completed turn, zero for fallback replies.
	Turn     int64
	Fallback bool
}

// TurnResult carries the outcome of HandleTurnAsync.
type TurnResult struct {
	Reply Reply
	Err   error
}

// Trainer is the control loop of one learner.
type Trainer struct {
	log         *slog.Logger
	cfg         Config
	store       levelStore
	oracle      taskOracle
	transcripts transcriptRepo
	reviewer    reviewer
	worker      scheduler
	tools       []domain.Tool
	now         func() time.Time

	active   atomic.Pointer[ActiveConfig]
	counter  *Counter
	sessions keymutex.KeyMutex
}

// New creates a trainer and subscribes it to level changes of the store.
func New(
	log *slog.Logger,
	cfg Config,
	store levelStore,
	oracle taskOracle,
	transcripts transcriptRepo,
	reviewer reviewer,
	worker scheduler,
	tools ...domain.Tool,
) *Trainer {
	cfg = cfg.withDefaults()
	t := &Trainer{
		log:         log.With("service", "trainer", "learner_id", cfg.LearnerID),
		cfg:         cfg,
		store:       store,
		oracle:      oracle,
		transcripts: transcripts,
		reviewer:    reviewer,
		worker:      worker,
		tools:       tools,
		now:         time.Now,
		counter:     NewCounter(cfg.ReviewInterval),
	}
	store.OnChange(t.onLevelChange)
	return t
}

// Start reads the learner's level and publishes the first active config.
// It must run before the first turn is served; storage failures leave the
// trainer in degraded mode at the last known or default level.
func (t *Trainer) Start(ctx context.Context) ActiveConfig {
	fact, err := t.store.GetCurrent(ctx, t.cfg.LearnerID)
	if err != nil {
		t.log.ErrorContext(ctx, "read difficulty at startup, continuing degraded", slog.String("error", err.Error()))
	}
	cfg := t.publish(ctx, fact, err != nil)

	t.log.InfoContext(ctx, "trainer started",
		slog.String("level", cfg.Level.String()),
		slog.Bool("degraded", cfg.Degraded),
	)
	return *cfg
}

// Snapshot returns the active config, starting the trainer if needed.
func (t *Trainer) Snapshot(ctx context.Context) ActiveConfig {
	return *t.activeConfig(ctx)
}

// TurnCount returns the number of completed turns since process start.
func (t *Trainer) TurnCount() int64 { return t.counter.Count() }

// HandleTurn answers one learner message. Turns of the same session are
// processed one at a time in arrival order. Every failure after input
// validation is answered with a fallback reply instead of an error.
func (t *Trainer) HandleTurn(ctx context.Context, sessionKey, message string) (Reply, error) {
	message = strings.TrimSpace(message)
	sessionKey = strings.TrimSpace(sessionKey)
	if err := validateTurn(sessionKey, message); err != nil {
		return Reply{}, err
	}

	unlock := t.sessions.Lock(sessionKey)
	defer unlock()

	cfg := t.activeConfig(ctx)

	history, err := t.transcripts.Recent(ctx, sessionKey, t.cfg.HistoryTurns)
	if err != nil {
		t.log.WarnContext(ctx, "read history, answering without it",
			slog.String("session_key", sessionKey),
			slog.String("error", err.Error()),
		)
		history = nil
	}

	genCtx, cancel := context.WithTimeout(ctx, t.cfg.GenerationTimeout)
	text, err := t.oracle.Generate(genCtx, domain.GenerationRequest{
		Instructions: cfg.Instructions,
		History:      history,
		Message:      message,
		Tools:        t.tools,
	})
	cancel()
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("empty reply")
	}
	if err != nil {
		t.log.ErrorContext(ctx, "generate reply",
			slog.String("session_key", sessionKey),
			slog.String("error", err.Error()),
		)
		return Reply{Text: Apology, Level: cfg.Level, Fallback: true}, nil
	}

	now := t.now()
	if err := t.transcripts.Append(ctx,
		domain.NewTurn(sessionKey, domain.RoleUser, message, now),
		domain.NewTurn(sessionKey, domain.RoleAssistant, text, now),
	); err != nil {
		t.log.WarnContext(ctx, "append transcript",
			slog.String("session_key", sessionKey),
			slog.String("error", err.Error()),
		)
	}

	n, due := t.counter.Tick()
	if due {
		t.scheduleReview(ctx, sessionKey, n)
	}

	return Reply{Text: text, Level: cfg.Level, Turn: n}, nil
}

// HandleTurnAsync runs HandleTurn in its own goroutine. The channel
// receives exactly one result.
func (t *Trainer) HandleTurnAsync(ctx context.Context, sessionKey, message string) <-chan TurnResult {
	out := make(chan TurnResult, 1)
	go func() {
		reply, err := t.HandleTurn(ctx, sessionKey, message)
		out <- TurnResult{Reply: reply, Err: err}
	}()
	return out
}

func validateTurn(sessionKey, message string) error {
	var errs []domain.FieldError
	if sessionKey == "" {
		errs = append(errs, domain.FieldError{Field: "session_key", Message: "required"})
	}
	if message == "" {
		errs = append(errs, domain.FieldError{Field: "message", Message: "required"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Review
// ---------------------------------------------------------------------------

func (t *Trainer) scheduleReview(ctx context.Context, sessionKey string, turn int64) {
	name := fmt.Sprintf("review turn %d", turn)
	if t.worker.Submit(name, func(ctx context.Context) error {
		return t.runReview(ctx, sessionKey)
	}) {
		t.log.InfoContext(ctx, "review scheduled", slog.Int64("turn", turn), slog.String("session_key", sessionKey))
		return
	}
	t.log.WarnContext(ctx, "review skipped, worker unavailable", slog.Int64("turn", turn), slog.String("session_key", sessionKey))
}

// runReview is one review cycle: fresh read, verdict, conditional write.
func (t *Trainer) runReview(ctx context.Context, sessionKey string) error {
	turns, err := t.transcripts.Recent(ctx, sessionKey, t.cfg.ReviewWindow)
	if err != nil {
		return fmt.Errorf("read review window: %w", err)
	}
	if len(turns) == 0 {
		t.log.InfoContext(ctx, "review skipped, no history", slog.String("session_key", sessionKey))
		return nil
	}

	current, err := t.store.GetCurrent(ctx, t.cfg.LearnerID)
	if err != nil {
		return fmt.Errorf("read level for review: %w", err)
	}
	// Another process may have moved the level since this one last looked.
	t.publish(ctx, current, false)

	verdict, ok := t.reviewer.Review(ctx, flatten(turns, t.cfg.LearnerName), current.Value)
	if !ok {
		t.log.InfoContext(ctx, "no verdict, keeping level", slog.String("level", current.Value.String()))
		return nil
	}
	if verdict.Recommendation == current.Value {
		t.log.InfoContext(ctx, "review keeps level", slog.String("level", current.Value.String()))
		return nil
	}

	_, _, err = t.store.ApplyRecommendation(ctx, current, verdict.Recommendation)
	switch {
	case errors.Is(err, domain.ErrInvalidLevel):
		t.log.WarnContext(ctx, "rejected invalid recommendation",
			slog.String("recommendation", verdict.Recommendation.String()),
		)
		return nil
	case errors.Is(err, domain.ErrConflict):
		t.log.InfoContext(ctx, "level changed during review, skipping",
			slog.String("observed", current.Value.String()),
		)
		if fresh, gerr := t.store.GetCurrent(ctx, t.cfg.LearnerID); gerr == nil {
			t.publish(ctx, fresh, false)
		}
		return nil
	case err != nil:
		return fmt.Errorf("apply recommendation: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Active config
// ---------------------------------------------------------------------------

func (t *Trainer) activeConfig(ctx context.Context) *ActiveConfig {
	if cfg := t.active.Load(); cfg != nil {
		return cfg
	}
	t.Start(ctx)
	return t.active.Load()
}

func (t *Trainer) onLevelChange(ctx context.Context, fact domain.DifficultyFact) {
	if fact.LearnerID != t.cfg.LearnerID {
		return
	}
	t.publish(ctx, fact, false)
}

// publish installs a config built from fact unless a newer one is active.
// A degraded read never replaces a config that came from storage.
func (t *Trainer) publish(ctx context.Context, fact domain.DifficultyFact, degraded bool) *ActiveConfig {
	next, fellBack := newActiveConfig(fact, degraded, t.now())
	if fellBack {
		t.log.WarnContext(ctx, "unknown level, using default bundle", slog.String("value", fact.Value.String()))
	}

	for {
		old := t.active.Load()
		if old != nil {
			if degraded && !old.Degraded {
				return old
			}
			if !old.Degraded && old.Version > next.Version {
				return old
			}
			if old.Version == next.Version && old.Descriptor == next.Descriptor && old.Degraded == next.Degraded {
				return old
			}
		}
		if t.active.CompareAndSwap(old, next) {
			if old != nil && old.Level != next.Level {
				t.log.InfoContext(ctx, "active level switched",
					slog.String("from", old.Level.String()),
					slog.String("to", next.Level.String()),
				)
			}
			return next
		}
	}
}
