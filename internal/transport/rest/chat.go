package rest

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/heartmarshall/sprachtrainer/internal/domain"
	"github.com/heartmarshall/sprachtrainer/internal/service/trainer"
	"github.com/heartmarshall/sprachtrainer/pkg/ctxutil"
)

type chatTrainer interface {
	HandleTurn(ctx context.Context, sessionKey, message string) (trainer.Reply, error)
	Snapshot(ctx context.Context) trainer.ActiveConfig
}

// ChatHandler serves the drill conversation of the web UI.
type ChatHandler struct {
	trainer chatTrainer
	log     *slog.Logger
	now     func() time.Time
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(t chatTrainer, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{trainer: t, log: logger.With("handler", "chat"), now: time.Now}
}

// sessionIDPattern bounds client-chosen session ids. They only name a
// conversation inside the learner's own web namespace.
var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

type chatResponse struct {
	Reply    string `json:"reply"`
	Level    int    `json:"level"`
	Turn     int64  `json:"turn,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := ctxutil.LearnerIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		handleError(h.log, w, r, domain.NewValidationError("message", "required"))
		return
	}

	key, err := webSessionKey(learnerID, req.SessionID, h.now())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	reply, err := h.trainer.HandleTurn(r.Context(), key, req.Message)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Reply:    reply.Text,
		Level:    int(reply.Level),
		Turn:     reply.Turn,
		Fallback: reply.Fallback,
	})
}

// webSessionKey scopes a turn to the web transport and the signed-in
// learner, so a client can never address another transport's transcript.
func webSessionKey(learnerID, sessionID string, now time.Time) (string, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return trainer.SessionKey(trainer.TransportWeb, learnerID, now), nil
	}
	if !sessionIDPattern.MatchString(sessionID) {
		return "", domain.NewValidationError("session_id", "must be 1-64 letters, digits, '-' or '_'")
	}
	return trainer.SessionKey(trainer.TransportWeb, learnerID+":"+sessionID, now), nil
}

type levelResponse struct {
	Level      int       `json:"level"`
	Descriptor string    `json:"descriptor"`
	Title      string    `json:"title"`
	MinWords   int       `json:"min_words"`
	MaxWords   int       `json:"max_words"`
	MinOptions int       `json:"min_options"`
	MaxOptions int       `json:"max_options"`
	Similarity string    `json:"similarity"`
	Example    string    `json:"example"`
	Version    int64     `json:"version"`
	Degraded   bool      `json:"degraded"`
	Since      time.Time `json:"since"`
}

// Level handles GET /api/level.
func (h *ChatHandler) Level(w http.ResponseWriter, r *http.Request) {
	ac := h.trainer.Snapshot(r.Context())
	b := ac.Bundle

	writeJSON(w, http.StatusOK, levelResponse{
		Level:      int(ac.Level),
		Descriptor: ac.Descriptor.String(),
		Title:      b.Title,
		MinWords:   b.MinWords,
		MaxWords:   b.MaxWords,
		MinOptions: b.MinOptions,
		MaxOptions: b.MaxOptions,
		Similarity: b.Similarity.String(),
		Example:    b.Example,
		Version:    ac.Version,
		Degraded:   ac.Degraded,
		Since:      ac.PublishedAt,
	})
}
