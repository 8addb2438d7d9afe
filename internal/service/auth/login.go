package auth

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/sprachtrainer/internal/domain"
)

// Login checks the learner password and issues a session token.
// Returns ErrUnauthorized if the password is wrong.
func (s *Service) Login(ctx context.Context, input LoginInput) (*SessionResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(input.Password)); err != nil {
		s.log.WarnContext(ctx, "web login rejected")
		return nil, domain.ErrUnauthorized
	}

	token, expires, err := s.jwt.GenerateSessionToken(s.learnerID)
	if err != nil {
		return nil, fmt.Errorf("auth.Login issue token: %w", err)
	}

	s.log.InfoContext(ctx, "learner logged in", slog.String("learner_id", s.learnerID))

	return &SessionResult{Token: token, LearnerID: s.learnerID, ExpiresAt: expires}, nil
}

// ValidateSession returns the learner id of a valid session token.
// Returns ErrUnauthorized for missing, invalid or expired tokens.
func (s *Service) ValidateSession(ctx context.Context, token string) (string, error) {
	learnerID, err := s.jwt.ValidateSessionToken(token)
	if err != nil {
		s.log.DebugContext(ctx, "session token rejected", slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	if learnerID != s.learnerID {
		return "", fmt.Errorf("%w: session of unknown learner", domain.ErrUnauthorized)
	}
	return learnerID, nil
}
