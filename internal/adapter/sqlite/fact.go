package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/sprachtrainer/internal/domain"
)

const factColumns = "learner_id, fact_kind, value, topics, version, created_at, updated_at"

// FactRepo stores difficulty facts, one row per (learner_id, fact_kind).
type FactRepo struct {
	db *DB
}

// NewFactRepo creates a new fact repository.
func NewFactRepo(db *DB) *FactRepo {
	return &FactRepo{db: db}
}

func factKey(learnerID, kind string) sq.Eq {
	return sq.Eq{"learner_id": learnerID, "fact_kind": kind}
}

// Get returns the fact of learnerID and kind, or domain.ErrNotFound.
func (r *FactRepo) Get(ctx context.Context, learnerID, kind string) (*domain.DifficultyFact, error) {
	f, err := r.queryRow(ctx, sqlb.Select(factColumns).From("difficulty_facts").Where(factKey(learnerID, kind)))
	if err != nil {
		return nil, mapError(err, "difficulty fact", learnerID)
	}
	return f, nil
}

// GetForUpdate is Get. SQLite has no row locks; a transaction holding the
// only connection already excludes other writers.
func (r *FactRepo) GetForUpdate(ctx context.Context, learnerID, kind string) (*domain.DifficultyFact, error) {
	return r.Get(ctx, learnerID, kind)
}

// Count returns the number of facts stored for learnerID.
func (r *FactRepo) Count(ctx context.Context, learnerID string) (int, error) {
	sqlStr, args, err := sqlb.Select("count(*)").From("difficulty_facts").Where(sq.Eq{"learner_id": learnerID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var n int
	if err := r.db.querier(ctx).QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, mapError(err, "difficulty fact", learnerID)
	}
	return n, nil
}

// CreateIfAbsent inserts f at version 1 unless a fact already exists, and
// returns whichever fact is stored afterwards.
func (r *FactRepo) CreateIfAbsent(ctx context.Context, f domain.DifficultyFact) (*domain.DifficultyFact, error) {
	query, err := insertFact(f)
	if err != nil {
		return nil, err
	}

	created, err := r.queryRow(ctx, query.Suffix("ON CONFLICT (learner_id, fact_kind) DO NOTHING RETURNING "+factColumns))
	if errors.Is(err, sql.ErrNoRows) {
		return r.Get(ctx, f.LearnerID, f.Kind)
	}
	if err != nil {
		return nil, mapError(err, "difficulty fact", f.LearnerID)
	}
	return created, nil
}

// Upsert stores f, replacing the value and topics of an existing fact.
func (r *FactRepo) Upsert(ctx context.Context, f domain.DifficultyFact) (*domain.DifficultyFact, error) {
	query, err := insertFact(f)
	if err != nil {
		return nil, err
	}

	saved, err := r.queryRow(ctx, query.Suffix(`ON CONFLICT (learner_id, fact_kind) DO UPDATE
SET value = excluded.value,
    topics = excluded.topics,
    version = difficulty_facts.version + 1,
    updated_at = excluded.updated_at
RETURNING `+factColumns))
	if err != nil {
		return nil, mapError(err, "difficulty fact", f.LearnerID)
	}
	return saved, nil
}

// CompareAndSwap sets value only if the stored version equals expectedVersion.
// Otherwise it returns domain.ErrConflict and changes nothing.
func (r *FactRepo) CompareAndSwap(ctx context.Context, learnerID, kind string, expectedVersion int64, value domain.Descriptor, now time.Time) (*domain.DifficultyFact, error) {
	where := factKey(learnerID, kind)
	where["version"] = expectedVersion

	updated, err := r.queryRow(ctx, sqlb.Update("difficulty_facts").
		Set("value", string(value)).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", formatTime(now)).
		Where(where).
		Suffix("RETURNING "+factColumns))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("difficulty fact %s: version %d: %w", learnerID, expectedVersion, domain.ErrConflict)
	}
	if err != nil {
		return nil, mapError(err, "difficulty fact", learnerID)
	}
	return updated, nil
}

func insertFact(f domain.DifficultyFact) (sq.InsertBuilder, error) {
	topics := f.Topics
	if topics == nil {
		topics = []string{}
	}
	raw, err := json.Marshal(topics)
	if err != nil {
		return sq.InsertBuilder{}, fmt.Errorf("marshal topics: %w", err)
	}
	return sqlb.Insert("difficulty_facts").
		Columns("learner_id", "fact_kind", "value", "topics", "version", "created_at", "updated_at").
		Values(f.LearnerID, f.Kind, string(f.Value), string(raw), int64(1), formatTime(f.CreatedAt), formatTime(f.UpdatedAt)), nil
}

func (r *FactRepo) queryRow(ctx context.Context, query sq.Sqlizer) (*domain.DifficultyFact, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var (
		f                    domain.DifficultyFact
		value, topics        string
		createdAt, updatedAt string
	)
	err = r.db.querier(ctx).QueryRowContext(ctx, sqlStr, args...).
		Scan(&f.LearnerID, &f.Kind, &value, &topics, &f.Version, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	f.Value = domain.Descriptor(value)
	if err := json.Unmarshal([]byte(topics), &f.Topics); err != nil {
		return nil, fmt.Errorf("unmarshal topics: %w", err)
	}
	if f.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if f.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}
