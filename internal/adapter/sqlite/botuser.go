package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/sprachtrainer/internal/domain"
)

// BotUserRepo stores authenticated bot accounts.
type BotUserRepo struct {
	db *DB
}

// NewBotUserRepo creates a new bot user repository.
func NewBotUserRepo(db *DB) *BotUserRepo {
	return &BotUserRepo{db: db}
}

// Get returns the bot user with userID, or domain.ErrNotFound.
func (r *BotUserRepo) Get(ctx context.Context, userID int64) (*domain.BotUser, error) {
	sqlStr, args, err := sqlb.Select("user_id", "username", "first_name", "authenticated_at", "last_activity_at").
		From("bot_users").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	var (
		u                  domain.BotUser
		authAt, lastSeenAt string
	)
	err = r.db.querier(ctx).QueryRowContext(ctx, sqlStr, args...).
		Scan(&u.UserID, &u.Username, &u.FirstName, &authAt, &lastSeenAt)
	if err != nil {
		return nil, mapError(err, "bot user", strconv.FormatInt(userID, 10))
	}
	if u.AuthenticatedAt, err = parseTime(authAt); err != nil {
		return nil, err
	}
	if u.LastActivityAt, err = parseTime(lastSeenAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Upsert stores u as authenticated, refreshing the profile of a known user.
func (r *BotUserRepo) Upsert(ctx context.Context, u domain.BotUser) error {
	sqlStr, args, err := sqlb.Insert("bot_users").
		Columns("user_id", "username", "first_name", "authenticated_at", "last_activity_at").
		Values(u.UserID, u.Username, u.FirstName, formatTime(u.AuthenticatedAt), formatTime(u.LastActivityAt)).
		Suffix(`ON CONFLICT (user_id) DO UPDATE
SET username = excluded.username,
    first_name = excluded.first_name,
    authenticated_at = excluded.authenticated_at,
    last_activity_at = excluded.last_activity_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert query: %w", err)
	}

	if _, err := r.db.querier(ctx).ExecContext(ctx, sqlStr, args...); err != nil {
		return mapError(err, "bot user", strconv.FormatInt(u.UserID, 10))
	}
	return nil
}

// Touch records activity of userID. Unknown users yield domain.ErrNotFound.
func (r *BotUserRepo) Touch(ctx context.Context, userID int64, at time.Time) error {
	sqlStr, args, err := sqlb.Update("bot_users").
		Set("last_activity_at", formatTime(at)).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build touch query: %w", err)
	}

	res, err := r.db.querier(ctx).ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return mapError(err, "bot user", strconv.FormatInt(userID, 10))
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return mapError(sql.ErrNoRows, "bot user", strconv.FormatInt(userID, 10))
	}
	return nil
}
