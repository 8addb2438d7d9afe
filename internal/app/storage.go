package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/sprachtrainer/internal/adapter/postgres"
	"github.com/heartmarshall/sprachtrainer/internal/adapter/postgres/botuser"
	"github.com/heartmarshall/sprachtrainer/internal/adapter/postgres/fact"
	"github.com/heartmarshall/sprachtrainer/internal/adapter/postgres/transcript"
	"github.com/heartmarshall/sprachtrainer/internal/adapter/sqlite"
	"github.com/heartmarshall/sprachtrainer/internal/config"
	"github.com/heartmarshall/sprachtrainer/internal/domain"
)

// Storage backend names.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// FactRepo stores difficulty facts.
type FactRepo interface {
	Get(ctx context.Context, learnerID, kind string) (*domain.DifficultyFact, error)
	GetForUpdate(ctx context.Context, learnerID, kind string) (*domain.DifficultyFact, error)
	CreateIfAbsent(ctx context.Context, fact domain.DifficultyFact) (*domain.DifficultyFact, error)
	Upsert(ctx context.Context, fact domain.DifficultyFact) (*domain.DifficultyFact, error)
	CompareAndSwap(ctx context.Context, learnerID, kind string, expectedVersion int64, value domain.Descriptor, now time.Time) (*domain.DifficultyFact, error)
	Count(ctx context.Context, learnerID string) (int, error)
}

// TranscriptRepo stores conversation turns.
type TranscriptRepo interface {
	Append(ctx context.Context, turns ...domain.Turn) error
	Recent(ctx context.Context, sessionKey string, limit int) ([]domain.Turn, error)
}

// BotUserRepo stores authenticated bot accounts.
type BotUserRepo interface {
	Get(ctx context.Context, userID int64) (*domain.BotUser, error)
	Upsert(ctx context.Context, u domain.BotUser) error
	Touch(ctx context.Context, userID int64, at time.Time) error
}

// TxManager runs fn in a transaction carried by ctx.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Storage is the opened persistence backend with its repositories.
type Storage struct {
	Backend     string
	Facts       FactRepo
	Transcripts TranscriptRepo
	BotUsers    BotUserRepo
	Tx          TxManager

	ping  func(ctx context.Context) error
	close func()
}

// Ping checks that the backend responds.
func (s *Storage) Ping(ctx context.Context) error { return s.ping(ctx) }

// Close releases the backend.
func (s *Storage) Close() { s.close() }

// OpenStorage opens Postgres in production and SQLite otherwise. A
// production Postgres that cannot be reached or migrated is logged and
// replaced by SQLite; only a failure of both is returned.
func OpenStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Storage, error) {
	if cfg.IsProduction() && cfg.Database.DSN != "" {
		s, err := openPostgres(ctx, cfg.Database, log)
		if err == nil {
			return s, nil
		}
		log.ErrorContext(ctx, "postgres unavailable, falling back to sqlite",
			slog.String("error", err.Error()),
			slog.String("path", cfg.SQLite.Path),
		)
	}
	return openSQLite(ctx, cfg.SQLite)
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*Storage, error) {
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	if err := postgres.Migrate(ctx, cfg.DSN, log); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Storage{
		Backend:     BackendPostgres,
		Facts:       fact.New(pool),
		Transcripts: transcript.New(pool),
		BotUsers:    botuser.New(pool),
		Tx:          postgres.NewTxManager(pool),
		ping:        pool.Ping,
		close:       pool.Close,
	}, nil
}

func openSQLite(ctx context.Context, cfg config.SQLiteConfig) (*Storage, error) {
	db, err := sqlite.Open(ctx, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", cfg.Path, err)
	}

	return &Storage{
		Backend:     BackendSQLite,
		Facts:       sqlite.NewFactRepo(db),
		Transcripts: sqlite.NewTranscriptRepo(db),
		BotUsers:    sqlite.NewBotUserRepo(db),
		Tx:          sqlite.NewTxManager(db),
		ping:        db.Ping,
		close:       func() { db.Close() }, //nolint:errcheck
	}, nil
}
