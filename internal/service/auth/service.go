// Package auth guards the trainer: the web UI logs in with the learner's
// password and holds a signed session cookie, bot accounts pass a password
// gate once and are remembered.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/sprachtrainer/internal/config"
	"github.com/heartmarshall/sprachtrainer/internal/domain"
)

// jwtManager defines the session token interface needed by auth service.
type jwtManager interface {
	GenerateSessionToken(learnerID string) (string, time.Time, error)
	ValidateSessionToken(token string) (string, error)
}

// botUserRepo defines the bot user repository interface needed by auth service.
type botUserRepo interface {
	Get(ctx context.Context, userID int64) (*domain.BotUser, error)
	Upsert(ctx context.Context, u domain.BotUser) error
	Touch(ctx context.Context, userID int64, at time.Time) error
}

// attemptLimiter defines the failed-attempt bookkeeping needed by auth service.
type attemptLimiter interface {
	Blocked(key int64) (time.Duration, bool)
	Fail(key int64) (left int, blockedFor time.Duration)
	Reset(key int64)
}

// Service implements auth operations.
type Service struct {
	log          *slog.Logger
	jwt          jwtManager
	bots         botUserRepo
	attempts     attemptLimiter
	passwordHash []byte
	learnerID    string
	now          func() time.Time
}

// NewService creates a new auth service instance for the single learner
// learnerID.
func NewService(
	logger *slog.Logger,
	cfg config.AuthConfig,
	learnerID string,
	jwt jwtManager,
	bots botUserRepo,
	attempts attemptLimiter,
) *Service {
	return &Service{
		log:          logger.With("service", "auth"),
		jwt:          jwt,
		bots:         bots,
		attempts:     attempts,
		passwordHash: []byte(cfg.PasswordHash),
		learnerID:    learnerID,
		now:          time.Now,
	}
}
