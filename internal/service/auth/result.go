package auth

import "time"

// SessionResult is returned by a successful web login.
type SessionResult struct {
	Token     string
	LearnerID string
	ExpiresAt time.Time
}

// BotLoginResult is the outcome of a bot password attempt.
type BotLoginResult struct {
	Authenticated bool
	// AttemptsLeft is the number of failures allowed before a block.
	AttemptsLeft int
	// BlockedFor is set while the account is blocked.
	BlockedFor time.Duration
}
