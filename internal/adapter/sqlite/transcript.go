package sqlite

import (
	"context"
	"fmt"
	"slices"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/sprachtrainer/internal/domain"
)

// TranscriptRepo stores conversation turns in insertion order.
type TranscriptRepo struct {
	db *DB
}

// NewTranscriptRepo creates a new transcript repository.
func NewTranscriptRepo(db *DB) *TranscriptRepo {
	return &TranscriptRepo{db: db}
}

// Append stores turns in the given order with a single statement.
func (r *TranscriptRepo) Append(ctx context.Context, turns ...domain.Turn) error {
	if len(turns) == 0 {
		return nil
	}

	query := sqlb.Insert("conversation_turns").Columns("id", "session_key", "role", "content", "created_at")
	for _, t := range turns {
		query = query.Values(t.ID.String(), t.SessionKey, string(t.Role), t.Text, formatTime(t.CreatedAt))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build append query: %w", err)
	}
	if _, err := r.db.querier(ctx).ExecContext(ctx, sqlStr, args...); err != nil {
		return mapError(err, "conversation turn", turns[0].SessionKey)
	}
	return nil
}

// Recent returns the last limit turns of sessionKey, oldest first.
func (r *TranscriptRepo) Recent(ctx context.Context, sessionKey string, limit int) ([]domain.Turn, error) {
	if limit <= 0 {
		return nil, nil
	}

	sqlStr, args, err := sqlb.Select("id", "session_key", "role", "content", "created_at").
		From("conversation_turns").
		Where(sq.Eq{"session_key": sessionKey}).
		OrderBy("seq DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recent query: %w", err)
	}

	rows, err := r.db.querier(ctx).QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, mapError(err, "conversation turn", sessionKey)
	}
	defer rows.Close()

	var turns []domain.Turn
	for rows.Next() {
		var (
			t                   domain.Turn
			id, role, createdAt string
		)
		if err := rows.Scan(&id, &t.SessionKey, &role, &t.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		if t.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse turn id: %w", err)
		}
		if t.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		t.Role = domain.Role(role)
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "conversation turn", sessionKey)
	}

	slices.Reverse(turns)
	return turns, nil
}
