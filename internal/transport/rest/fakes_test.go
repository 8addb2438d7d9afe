package rest

import (
	"context"
	"io"
	"log/slog"

	"github.com/heartmarshall/sprachtrainer/internal/domain"
	"github.com/heartmarshall/sprachtrainer/internal/service/auth"
	"github.com/heartmarshall/sprachtrainer/internal/service/bot"
	"github.com/heartmarshall/sprachtrainer/internal/service/trainer"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type pingerStub struct {
	err error
}

func (m *pingerStub) Ping(_ context.Context) error { return m.err }

type trainerStub struct {
	reply   trainer.Reply
	err     error
	active  trainer.ActiveConfig
	gotKey  string
	gotText string
}

func (s *trainerStub) HandleTurn(_ context.Context, sessionKey, message string) (trainer.Reply, error) {
	s.gotKey, s.gotText = sessionKey, message
	return s.reply, s.err
}

func (s *trainerStub) Snapshot(_ context.Context) trainer.ActiveConfig { return s.active }

func levelTwo() trainer.ActiveConfig {
	return trainer.ActiveConfig{
		Level:      domain.Level(2),
		Descriptor: domain.Level(2).Descriptor(),
		Bundle: domain.ConstraintBundle{
			Level:      2,
			Title:      "Kurze Sätze",
			MinWords:   3,
			MaxWords:   6,
			MinOptions: 2,
			MaxOptions: 2,
			Similarity: domain.SimilarityUnrelated,
			Example:    "Ich ___ Kaffee. (trinke / Haus)",
		},
		Version: 4,
	}
}

type authStub struct {
	res *auth.SessionResult
	err error
}

func (s *authStub) Login(_ context.Context, in auth.LoginInput) (*auth.SessionResult, error) {
	return s.res, s.err
}

type dispatcherStub struct {
	reply string
	got   bot.Update
}

func (s *dispatcherStub) Handle(_ context.Context, u bot.Update) (string, error) {
	s.got = u
	return s.reply, nil
}
