// Package transcript implements the conversation transcript repository using
// PostgreSQL. Turns are append-only and ordered by insertion.
package transcript

import (
	"context"
	"fmt"
	"slices"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/sprachtrainer/internal/adapter/postgres"
	"github.com/heartmarshall/sprachtrainer/internal/domain"
)

// Repo provides transcript persistence backed by PostgreSQL.
type Repo struct {
	pool postgres.Querier
}

// New creates a new transcript repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

const table = "conversation_turns"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Append stores turns in the given order with a single statement.
func (r *Repo) Append(ctx context.Context, turns ...domain.Turn) error {
	if len(turns) == 0 {
		return nil
	}

	query := psql.Insert(table).Columns("id", "session_key", "role", "content", "created_at")
	for _, t := range turns {
		query = query.Values(t.ID, t.SessionKey, string(t.Role), t.Text, t.CreatedAt)
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build append query: %w", err)
	}
	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sqlStr, args...); err != nil {
		return postgres.MapError(err, "conversation turn", turns[0].SessionKey)
	}
	return nil
}

// Recent returns the last limit turns of sessionKey, oldest first.
func (r *Repo) Recent(ctx context.Context, sessionKey string, limit int) ([]domain.Turn, error) {
	if limit <= 0 {
		return nil, nil
	}

	sqlStr, args, err := psql.Select("id", "session_key", "role", "content", "created_at").
		From(table).
		Where(sq.Eq{"session_key": sessionKey}).
		OrderBy("seq DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recent query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, postgres.MapError(err, "conversation turn", sessionKey)
	}
	turns, err := pgx.CollectRows(rows, scanTurn)
	if err != nil {
		return nil, postgres.MapError(err, "conversation turn", sessionKey)
	}

	slices.Reverse(turns)
	return turns, nil
}

func scanTurn(row pgx.CollectableRow) (domain.Turn, error) {
	var (
		t    domain.Turn
		role string
	)
	if err := row.Scan(&t.ID, &t.SessionKey, &role, &t.Text, &t.CreatedAt); err != nil {
		return domain.Turn{}, err
	}
	t.Role = domain.Role(role)
	return t, nil
}
