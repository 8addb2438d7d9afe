package rest

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/sprachtrainer/internal/service/bot"
)

const botSecretHeader = "X-Bot-Secret"

type botDispatcher interface {
	Handle(ctx context.Context, u bot.Update) (string, error)
}

// BotHandler receives messaging-bot updates relayed by the bot gateway.
type BotHandler struct {
	dispatcher botDispatcher
	secret     []byte
	log        *slog.Logger
}

// NewBotHandler creates a BotHandler. An empty secret rejects every update.
func NewBotHandler(d botDispatcher, secret string, logger *slog.Logger) *BotHandler {
	return &BotHandler{dispatcher: d, secret: []byte(secret), log: logger.With("handler", "bot")}
}

type botResponse struct {
	Reply string `json:"reply"`
}

// Updates handles POST /bot/updates.
func (h *BotHandler) Updates(w http.ResponseWriter, r *http.Request) {
	got := []byte(r.Header.Get(botSecretHeader))
	if len(h.secret) == 0 || subtle.ConstantTimeCompare(got, h.secret) != 1 {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	var u bot.Update
	if err := decodeJSON(w, r, &u); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	reply, err := h.dispatcher.Handle(r.Context(), u)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if reply == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, botResponse{Reply: reply})
}
