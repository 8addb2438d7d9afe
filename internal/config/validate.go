package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Environment) {
	case EnvDevelopment, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("environment must be %q or %q (got %q)", EnvDevelopment, EnvProduction, c.Environment))
	}

	if c.IsProduction() && c.Database.DSN == "" {
		errs = append(errs, errors.New("database.dsn is required in production"))
	}
	if c.Database.DSN == "" && c.SQLite.Path == "" {
		errs = append(errs, errors.New("sqlite.path is required without database.dsn"))
	}

	if err := c.Auth.validate(); err != nil {
		errs = append(errs, fmt.Errorf("auth: %w", err))
	}
	if err := c.Trainer.validate(); err != nil {
		errs = append(errs, fmt.Errorf("trainer: %w", err))
	}
	if err := c.Bot.validate(); err != nil {
		errs = append(errs, fmt.Errorf("bot: %w", err))
	}
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		errs = append(errs, errors.New("llm.api_key is required"))
	}
	if c.LLM.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("llm.max_tokens must be > 0 (got %d)", c.LLM.MaxTokens))
	}

	return errors.Join(errs...)
}

func (a *AuthConfig) validate() error {
	if len(a.JWTSecret) < 32 {
		return fmt.Errorf("jwt_secret must be at least 32 characters (got %d)", len(a.JWTSecret))
	}
	if _, err := bcrypt.Cost([]byte(a.PasswordHash)); err != nil {
		return fmt.Errorf("password_hash must be a bcrypt hash: %w", err)
	}
	if a.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be > 0 (got %s)", a.SessionTTL)
	}
	return nil
}

func (t *TrainerConfig) validate() error {
	if strings.TrimSpace(t.LearnerID) == "" {
		return errors.New("learner_id is required")
	}
	if t.ReviewInterval < 1 {
		return fmt.Errorf("review_interval must be >= 1 (got %d)", t.ReviewInterval)
	}
	if t.ReviewWindow < 1 {
		return fmt.Errorf("review_window must be >= 1 (got %d)", t.ReviewWindow)
	}
	if t.HistoryTurns < 0 {
		return fmt.Errorf("history_turns must be >= 0 (got %d)", t.HistoryTurns)
	}
	if t.ReviewWorkers < 1 {
		return fmt.Errorf("review_workers must be >= 1 (got %d)", t.ReviewWorkers)
	}
	return nil
}

func (b *BotConfig) validate() error {
	if !b.Enabled {
		return nil
	}
	if b.WebhookSecret == "" {
		return errors.New("webhook_secret is required when the bot is enabled")
	}
	if b.MaxFailedAttempts < 1 {
		return fmt.Errorf("max_failed_attempts must be >= 1 (got %d)", b.MaxFailedAttempts)
	}
	if b.BlockDuration <= 0 {
		return fmt.Errorf("block_duration must be > 0 (got %s)", b.BlockDuration)
	}
	return nil
}
