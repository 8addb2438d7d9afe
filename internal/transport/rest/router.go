package rest

import (
	"net/http"

	"github.com/heartmarshall/sprachtrainer/internal/transport/middleware"
)

// Routes bundles the handlers and route-level middleware of the server.
type Routes struct {
	Health *HealthHandler
	Auth   *AuthHandler
	Chat   *ChatHandler
	// Bot is nil when the bot webhook is disabled.
	Bot *BotHandler

	RequireSession middleware.Middleware
	LoginLimit     middleware.Middleware
}

// NewRouter registers all routes on a new ServeMux.
func NewRouter(rt Routes) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", rt.Health.Live)
	mux.HandleFunc("GET /ready", rt.Health.Ready)
	mux.HandleFunc("GET /health", rt.Health.Health)

	login := http.Handler(http.HandlerFunc(rt.Auth.Login))
	if rt.LoginLimit != nil {
		login = rt.LoginLimit(login)
	}
	mux.Handle("POST /api/login", login)
	mux.HandleFunc("POST /api/logout", rt.Auth.Logout)

	session := middleware.Chain(rt.RequireSession)
	mux.Handle("POST /api/chat", session(http.HandlerFunc(rt.Chat.Chat)))
	mux.Handle("GET /api/level", session(http.HandlerFunc(rt.Chat.Level)))

	if rt.Bot != nil {
		mux.HandleFunc("POST /bot/updates", rt.Bot.Updates)
	}
	return mux
}
