package app

import (
	"log/slog"

	"github.com/heartmarshall/sprachtrainer/internal/adapter/llm"
	"github.com/heartmarshall/sprachtrainer/internal/auth"
	"github.com/heartmarshall/sprachtrainer/internal/config"
	authsvc "github.com/heartmarshall/sprachtrainer/internal/service/auth"
	"github.com/heartmarshall/sprachtrainer/internal/service/bot"
	"github.com/heartmarshall/sprachtrainer/internal/service/difficulty"
	"github.com/heartmarshall/sprachtrainer/internal/service/review"
	"github.com/heartmarshall/sprachtrainer/internal/service/task"
	"github.com/heartmarshall/sprachtrainer/internal/service/trainer"
)

// Services is the assembled service layer on top of one storage backend.
type Services struct {
	Difficulty *difficulty.Service
	Trainer    *trainer.Trainer
	Worker     *trainer.ReviewWorker
	Auth       *authsvc.Service
	Bot        *bot.Dispatcher
}

// NewServices wires the oracle client, the difficulty store, the review
// engine and the trainer. Nothing here touches the network.
func NewServices(cfg *config.Config, log *slog.Logger, store *Storage) *Services {
	oracle := llm.New(log, llm.Config{
		APIKey:            cfg.LLM.APIKey,
		TaskModel:         cfg.LLM.TaskModel,
		ReviewModel:       cfg.LLM.ReviewModel,
		MaxTokens:         cfg.LLM.MaxTokens,
		RequestsPerMinute: cfg.LLM.RequestsPerMinute,
		MaxToolRounds:     cfg.LLM.MaxToolRounds,
		Timeout:           cfg.LLM.Timeout,
	})

	levels := difficulty.NewService(log, store.Facts, store.Tx)
	engine := review.NewEngine(log, oracle, cfg.Trainer.ReviewTimeout)
	worker := trainer.NewReviewWorker(log, cfg.Trainer.ReviewWorkers, cfg.Trainer.ReviewTimeout)

	tr := trainer.New(log,
		trainer.Config{
			LearnerID:         cfg.Trainer.LearnerID,
			LearnerName:       cfg.Trainer.LearnerName,
			ReviewInterval:    cfg.Trainer.ReviewInterval,
			ReviewWindow:      cfg.Trainer.ReviewWindow,
			HistoryTurns:      cfg.Trainer.HistoryTurns,
			GenerationTimeout: cfg.Trainer.GenerationTimeout,
		},
		levels, oracle, store.Transcripts, engine, worker,
		task.NewTool(log),
	)

	authService := authsvc.NewService(log, cfg.Auth, cfg.Trainer.LearnerID,
		auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.SessionTTL),
		store.BotUsers,
		auth.NewAttemptLimiter(cfg.Bot.MaxFailedAttempts, cfg.Bot.BlockDuration),
	)

	return &Services{
		Difficulty: levels,
		Trainer:    tr,
		Worker:     worker,
		Auth:       authService,
		Bot:        bot.NewDispatcher(log, authService, tr),
	}
}
