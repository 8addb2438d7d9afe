package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Turn is one message of a session transcript.
type Turn struct {
	ID         uuid.UUID
	SessionKey string
	Role       Role
	Text       string
	CreatedAt  time.Time
}

// NewTurn returns an unsaved turn with a fresh id.
func NewTurn(sessionKey string, role Role, text string, now time.Time) Turn {
	return Turn{
		ID:         uuid.New(),
		SessionKey: sessionKey,
		Role:       role,
		Text:       text,
		CreatedAt:  now,
	}
}
