package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/sprachtrainer/internal/domain"
)

// IsBotUser reports whether the bot account userID passed the password gate
// and records its activity.
func (s *Service) IsBotUser(ctx context.Context, userID int64) (bool, error) {
	if err := s.bots.Touch(ctx, userID, s.now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("auth.IsBotUser: %w", err)
	}
	return true, nil
}

// AuthenticateBot checks a password attempt of a bot account. Failed
// attempts are counted per account; too many block it for a while.
func (s *Service) AuthenticateBot(ctx context.Context, input BotLoginInput) (*BotLoginResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if remaining, blocked := s.attempts.Blocked(input.UserID); blocked {
		return &BotLoginResult{BlockedFor: remaining}, nil
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(input.Password)); err != nil {
		left, blockedFor := s.attempts.Fail(input.UserID)
		if blockedFor > 0 {
			s.log.WarnContext(ctx, "bot account blocked",
				slog.Int64("user_id", input.UserID),
				slog.Duration("duration", blockedFor),
			)
		}
		return &BotLoginResult{AttemptsLeft: left, BlockedFor: blockedFor}, nil
	}

	now := s.now()
	err := s.bots.Upsert(ctx, domain.BotUser{
		UserID:          input.UserID,
		Username:        input.Username,
		FirstName:       input.FirstName,
		AuthenticatedAt: now,
		LastActivityAt:  now,
	})
	if err != nil {
		return nil, fmt.Errorf("auth.AuthenticateBot store user: %w", err)
	}
	s.attempts.Reset(input.UserID)

	s.log.InfoContext(ctx, "bot account authenticated", slog.Int64("user_id", input.UserID))

	return &BotLoginResult{Authenticated: true}, nil
}
