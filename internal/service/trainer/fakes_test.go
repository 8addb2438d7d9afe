package trainer

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/sprachtrainer/internal/adapter/sqlite"
	"github.com/heartmarshall/sprachtrainer/internal/domain"
	"github.com/heartmarshall/sprachtrainer/internal/service/difficulty"
)

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

// lockedBuffer is a log sink safe for the worker goroutines.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// oracleStub answers every generation with a numbered task.
type oracleStub struct {
	mu           sync.Mutex
	err          error
	text         string
	instructions []string
}

func (o *oracleStub) Generate(_ context.Context, req domain.GenerationRequest) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.instructions = append(o.instructions, req.Instructions)
	if o.err != nil {
		return "", o.err
	}
	if o.text != "" {
		return o.text, nil
	}
	return "Aufgabe: " + req.Message, nil
}

func (o *oracleStub) lastInstructions() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.instructions[len(o.instructions)-1]
}

// reviewerStub returns a fixed verdict. When gate is set it blocks until
// the gate is closed, after signalling entered.
type reviewerStub struct {
	mu            sync.Mutex
	recommend     domain.Descriptor
	absent        bool
	gate          chan struct{}
	entered       chan struct{}
	conversations []string
}

func (r *reviewerStub) Review(ctx context.Context, conversation string, current domain.Descriptor) (*domain.ReviewVerdict, bool) {
	r.mu.Lock()
	r.conversations = append(r.conversations, conversation)
	r.mu.Unlock()

	if r.gate != nil {
		close(r.entered)
		select {
		case <-r.gate:
		case <-ctx.Done():
			return nil, false
		}
	}
	if r.absent {
		return nil, false
	}
	return &domain.ReviewVerdict{Recommendation: r.recommend, Confidence: domain.ConfidenceHigh, Reasoning: "test"}, true
}

func (r *reviewerStub) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.conversations...)
}

// countingFacts counts writes reaching storage.
type countingFacts struct {
	*sqlite.FactRepo
	mu     sync.Mutex
	writes int
}

func (c *countingFacts) inc() {
	c.mu.Lock()
	c.writes++
	c.mu.Unlock()
}

func (c *countingFacts) Writes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writes
}

func (c *countingFacts) CreateIfAbsent(ctx context.Context, f domain.DifficultyFact) (*domain.DifficultyFact, error) {
	c.inc()
	return c.FactRepo.CreateIfAbsent(ctx, f)
}

func (c *countingFacts) Upsert(ctx context.Context, f domain.DifficultyFact) (*domain.DifficultyFact, error) {
	c.inc()
	return c.FactRepo.Upsert(ctx, f)
}

func (c *countingFacts) CompareAndSwap(ctx context.Context, learnerID, kind string, expectedVersion int64, value domain.Descriptor, now time.Time) (*domain.DifficultyFact, error) {
	c.inc()
	return c.FactRepo.CompareAndSwap(ctx, learnerID, kind, expectedVersion, value, now)
}

// fixture is a trainer over a real difficulty store in a temp SQLite file.
type fixture struct {
	db          *sqlite.DB
	facts       *countingFacts
	levels      *difficulty.Service
	transcripts *sqlite.TranscriptRepo
	oracle      *oracleStub
	reviewer    *reviewerStub
	worker      *ReviewWorker
	trainer     *Trainer
}

func newFixture(t *testing.T, log *slog.Logger, reviewer *reviewerStub) *fixture {
	t.Helper()

	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "trainer.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &fixture{
		db:          db,
		facts:       &countingFacts{FactRepo: sqlite.NewFactRepo(db)},
		transcripts: sqlite.NewTranscriptRepo(db),
		oracle:      &oracleStub{},
		reviewer:    reviewer,
		worker:      NewReviewWorker(log, 1, 10*time.Second),
	}
	t.Cleanup(func() { f.worker.Close(context.Background()) }) //nolint:errcheck

	f.levels = difficulty.NewService(log, f.facts, sqlite.NewTxManager(db))
	f.trainer = New(log, Config{LearnerID: "kyrill", LearnerName: "Kyrill", ReviewInterval: 5}, f.levels, f.oracle, f.transcripts, reviewer, f.worker)
	return f
}

func (f *fixture) turns(t *testing.T, key string, n int) []Reply {
	t.Helper()

	replies := make([]Reply, 0, n)
	for i := range n {
		r, err := f.trainer.HandleTurn(context.Background(), key, "Antwort "+string(rune('A'+i)))
		require.NoError(t, err)
		replies = append(replies, r)
	}
	return replies
}
