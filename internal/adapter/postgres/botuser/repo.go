// Package botuser implements the repository of authenticated bot accounts
// using PostgreSQL.
package botuser

import (
	"context"
	"fmt"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/sprachtrainer/internal/adapter/postgres"
	"github.com/heartmarshall/sprachtrainer/internal/domain"
)

// Repo provides bot user persistence backed by PostgreSQL.
type Repo struct {
	pool postgres.Querier
}

// New creates a new bot user repository.
func New(pool postgres.Querier) *Repo {
	return &Repo{pool: pool}
}

const table = "bot_users"

var columns = []string{"user_id", "username", "first_name", "authenticated_at", "last_activity_at"}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Get returns the bot user with userID, or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, userID int64) (*domain.BotUser, error) {
	sqlStr, args, err := psql.Select(columns...).From(table).Where(sq.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	var u domain.BotUser
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sqlStr, args...).
		Scan(&u.UserID, &u.Username, &u.FirstName, &u.AuthenticatedAt, &u.LastActivityAt)
	if err != nil {
		return nil, postgres.MapError(err, "bot user", key(userID))
	}
	return &u, nil
}

// Upsert stores u as authenticated, refreshing the profile of a known user.
func (r *Repo) Upsert(ctx context.Context, u domain.BotUser) error {
	sqlStr, args, err := psql.Insert(table).
		Columns(columns...).
		Values(u.UserID, u.Username, u.FirstName, u.AuthenticatedAt, u.LastActivityAt).
		Suffix(`ON CONFLICT (user_id) DO UPDATE
SET username = EXCLUDED.username,
    first_name = EXCLUDED.first_name,
    authenticated_at = EXCLUDED.authenticated_at,
    last_activity_at = EXCLUDED.last_activity_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sqlStr, args...); err != nil {
		return postgres.MapError(err, "bot user", key(u.UserID))
	}
	return nil
}

// Touch records activity of userID. Unknown users yield domain.ErrNotFound.
func (r *Repo) Touch(ctx context.Context, userID int64, at time.Time) error {
	sqlStr, args, err := psql.Update(table).
		Set("last_activity_at", at).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build touch query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sqlStr, args...)
	if err != nil {
		return postgres.MapError(err, "bot user", key(userID))
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "bot user", key(userID))
	}
	return nil
}

func key(userID int64) string { return strconv.FormatInt(userID, 10) }
