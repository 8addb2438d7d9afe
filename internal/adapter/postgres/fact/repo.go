// Package fact implements the difficulty fact repository using PostgreSQL.
// There is exactly one row per (learner_id, fact_kind); writes bump version.
package fact

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/sprachtrainer/internal/adapter/postgres"
	"github.com/heartmarshall/sprachtrainer/internal/domain"
)

// Repo provides difficulty fact persistence backed by PostgreSQL.
type Repo struct {
	pool postgres.Querier
}

// New creates a new fact repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Query building
// ---------------------------------------------------------------------------

const table = "difficulty_facts"

var columns = []string{"learner_id", "fact_kind", "value", "topics", "version", "created_at", "updated_at"}

const returning = "RETURNING learner_id, fact_kind, value, topics, version, created_at, updated_at"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func byKey(learnerID, kind string) sq.Eq {
	return sq.Eq{"learner_id": learnerID, "fact_kind": kind}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Get returns the fact of learnerID and kind, or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, learnerID, kind string) (*domain.DifficultyFact, error) {
	return r.get(ctx, learnerID, kind, false)
}

// GetForUpdate is Get that locks the row until the surrounding transaction ends.
func (r *Repo) GetForUpdate(ctx context.Context, learnerID, kind string) (*domain.DifficultyFact, error) {
	return r.get(ctx, learnerID, kind, true)
}

func (r *Repo) get(ctx context.Context, learnerID, kind string, lock bool) (*domain.DifficultyFact, error) {
	query := psql.Select(columns...).From(table).Where(byKey(learnerID, kind))
	if lock {
		query = query.Suffix("FOR UPDATE")
	}

	f, err := r.queryRow(ctx, query)
	if err != nil {
		return nil, postgres.MapError(err, "difficulty fact", learnerID)
	}
	return f, nil
}

// Count returns the number of facts stored for learnerID.
func (r *Repo) Count(ctx context.Context, learnerID string) (int, error) {
	sqlStr, args, err := psql.Select("count(*)").From(table).Where(sq.Eq{"learner_id": learnerID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "difficulty fact", learnerID)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// CreateIfAbsent inserts f at version 1 unless a fact already exists, and
// returns whichever fact is stored afterwards.
func (r *Repo) CreateIfAbsent(ctx context.Context, f domain.DifficultyFact) (*domain.DifficultyFact, error) {
	query := insertQuery(f).Suffix("ON CONFLICT (learner_id, fact_kind) DO NOTHING " + returning)

	created, err := r.queryRow(ctx, query)
	if errors.Is(err, pgx.ErrNoRows) {
		return r.Get(ctx, f.LearnerID, f.Kind)
	}
	if err != nil {
		return nil, postgres.MapError(err, "difficulty fact", f.LearnerID)
	}
	return created, nil
}

// Upsert stores f, replacing the value and topics of an existing fact.
func (r *Repo) Upsert(ctx context.Context, f domain.DifficultyFact) (*domain.DifficultyFact, error) {
	query := insertQuery(f).Suffix(`ON CONFLICT (learner_id, fact_kind) DO UPDATE
SET value = EXCLUDED.value,
    topics = EXCLUDED.topics,
    version = ` + table + `.version + 1,
    updated_at = EXCLUDED.updated_at
` + returning)

	saved, err := r.queryRow(ctx, query)
	if err != nil {
		return nil, postgres.MapError(err, "difficulty fact", f.LearnerID)
	}
	return saved, nil
}

// CompareAndSwap sets value only if the stored version equals expectedVersion.
// Otherwise it returns domain.ErrConflict and changes nothing.
func (r *Repo) CompareAndSwap(ctx context.Context, learnerID, kind string, expectedVersion int64, value domain.Descriptor, now time.Time) (*domain.DifficultyFact, error) {
	where := byKey(learnerID, kind)
	where["version"] = expectedVersion

	query := psql.Update(table).
		Set("value", string(value)).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", now).
		Where(where).
		Suffix(returning)

	updated, err := r.queryRow(ctx, query)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("difficulty fact %s: version %d: %w", learnerID, expectedVersion, domain.ErrConflict)
	}
	if err != nil {
		return nil, postgres.MapError(err, "difficulty fact", learnerID)
	}
	return updated, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func insertQuery(f domain.DifficultyFact) sq.InsertBuilder {
	topics := f.Topics
	if topics == nil {
		topics = []string{}
	}
	return psql.Insert(table).
		Columns(columns...).
		Values(f.LearnerID, f.Kind, string(f.Value), topics, int64(1), f.CreatedAt, f.UpdatedAt)
}

func (r *Repo) queryRow(ctx context.Context, query sq.Sqlizer) (*domain.DifficultyFact, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return scanFact(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sqlStr, args...))
}

func scanFact(row pgx.Row) (*domain.DifficultyFact, error) {
	var (
		f     domain.DifficultyFact
		value string
	)
	if err := row.Scan(&f.LearnerID, &f.Kind, &value, &f.Topics, &f.Version, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	f.Value = domain.Descriptor(value)
	return &f, nil
}
