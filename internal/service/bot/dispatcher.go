// Package bot answers messaging-bot updates: a password gate for unknown
// accounts, then drill turns through the trainer.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/heartmarshall/sprachtrainer/internal/domain"
	"github.com/heartmarshall/sprachtrainer/internal/service/auth"
	"github.com/heartmarshall/sprachtrainer/internal/service/trainer"
)

// ---------------------------------------------------------------------------
// Consumer interfaces
// ---------------------------------------------------------------------------

type authenticator interface {
	IsBotUser(ctx context.Context, userID int64) (bool, error)
	AuthenticateBot(ctx context.Context, input auth.BotLoginInput) (*auth.BotLoginResult, error)
}

type turnHandler interface {
	HandleTurn(ctx context.Context, sessionKey, message string) (trainer.Reply, error)
}

// Update is one inbound bot message.
type Update struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	Text      string `json:"text"`
}

// Reply texts.
const (
	msgFailedAttempt = "Falsches Passwort. Bitte versuche es erneut."
	msgError         = "Es ist ein Fehler aufgetreten. Bitte versuche es erneut."
	msgEmpty         = "Keine Antwort erhalten."
)

// Dispatcher turns bot updates into reply texts.
type Dispatcher struct {
	log     *slog.Logger
	auth    authenticator
	trainer turnHandler
	now     func() time.Time
}

// NewDispatcher creates a new bot dispatcher.
func NewDispatcher(log *slog.Logger, auth authenticator, trainer turnHandler) *Dispatcher {
	return &Dispatcher{
		log:     log.With("service", "bot"),
		auth:    auth,
		trainer: trainer,
		now:     time.Now,
	}
}

// Handle returns the reply to u. Replies are plain text; an empty reply
// means the update is ignored.
func (d *Dispatcher) Handle(ctx context.Context, u Update) (string, error) {
	text := strings.TrimSpace(u.Text)
	if u.UserID == 0 || text == "" {
		return "", nil
	}

	authenticated, err := d.auth.IsBotUser(ctx, u.UserID)
	if err != nil {
		d.log.ErrorContext(ctx, "check bot user", slog.Int64("user_id", u.UserID), slog.String("error", err.Error()))
		return msgError, nil
	}

	if text == "/start" || strings.HasPrefix(text, "/start ") {
		return greeting(displayName(u), authenticated), nil
	}
	if !authenticated {
		return d.login(ctx, u, text), nil
	}
	return d.chat(ctx, u, text), nil
}

func (d *Dispatcher) login(ctx context.Context, u Update, password string) string {
	res, err := d.auth.AuthenticateBot(ctx, auth.BotLoginInput{
		UserID:    u.UserID,
		Username:  u.Username,
		FirstName: u.FirstName,
		Password:  password,
	})
	if errors.Is(err, domain.ErrValidation) {
		return msgFailedAttempt
	}
	if err != nil {
		d.log.ErrorContext(ctx, "authenticate bot user", slog.Int64("user_id", u.UserID), slog.String("error", err.Error()))
		return msgError
	}

	switch {
	case res.Authenticated:
		return fmt.Sprintf("Authentifizierung erfolgreich! Willkommen %s!", displayName(u))
	case res.BlockedFor > 0:
		return blockedMessage(res.BlockedFor)
	default:
		return msgFailedAttempt
	}
}

func (d *Dispatcher) chat(ctx context.Context, u Update, text string) string {
	key := trainer.SessionKey(trainer.TransportTelegram, fmt.Sprint(u.UserID), d.now())

	reply, err := d.trainer.HandleTurn(ctx, key, text)
	if err != nil {
		d.log.ErrorContext(ctx, "bot turn", slog.Int64("user_id", u.UserID), slog.String("error", err.Error()))
		return msgError
	}
	return FormatForChat(reply.Text)
}

func greeting(name string, authenticated bool) string {
	if authenticated {
		return fmt.Sprintf("Hallo %s! Du bist bereits eingeloggt.\n"+
			"Schreib mir eine Nachricht und wir können mit dem Sprachtraining beginnen!", name)
	}
	return fmt.Sprintf("Hallo %s! Willkommen beim Sprachtrainer.\n"+
		"Bitte gib das Passwort ein, um dich zu authentifizieren.", name)
}

func blockedMessage(remaining time.Duration) string {
	secs := int(remaining.Round(time.Second) / time.Second)
	return fmt.Sprintf("Zu viele fehlgeschlagene Versuche. Bitte warte noch %d:%02d Minuten.", secs/60, secs%60)
}

func displayName(u Update) string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return "User"
}

var (
	lineBreakTag = regexp.MustCompile(`(?i)<br\s*/?>`)
	anyTag       = regexp.MustCompile(`<[^>]+>`)
)

// FormatForChat converts a trainer reply to plain chat text: line break
// tags become newlines, other tags are dropped, blank lines removed.
func FormatForChat(reply string) string {
	s := lineBreakTag.ReplaceAllString(reply, "\n")
	s = anyTag.ReplaceAllString(s, "")

	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			kept = append(kept, l)
		}
	}
	if len(kept) == 0 {
		return msgEmpty
	}
	return strings.Join(kept, "\n")
}
