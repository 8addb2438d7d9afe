package domain

import "time"

// BotUser is a messaging-bot account that passed the password gate.
type BotUser struct {
	UserID          int64
	Username        string
	FirstName       string
	AuthenticatedAt time.Time
	LastActivityAt  time.Time
}
