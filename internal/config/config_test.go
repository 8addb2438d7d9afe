package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const testSecret = "this-is-a-very-long-jwt-secret-for-testing-32+"

func testHash(t *testing.T) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte("geheim"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(h)
}

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("AUTH_PASSWORD_HASH", testHash(t))
	t.Setenv("AUTH_JWT_SECRET", testSecret)
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

func validYAML(t *testing.T) string {
	return fmt.Sprintf(`
environment: "production"

server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 4

llm:
  api_key: "sk-test"
  task_model: "task-model"
  requests_per_minute: 12

trainer:
  learner_id: "kyrill"
  review_interval: 3
  review_window: 12

auth:
  password_hash: %q
  jwt_secret: %q

bot:
  enabled: true
  webhook_secret: "hook"

log:
  level: "debug"
  format: "text"
`, testHash(t), testSecret)
}

func validConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		Environment: EnvDevelopment,
		SQLite:      SQLiteConfig{Path: "./data/trainer.db"},
		LLM:         LLMConfig{APIKey: "sk-test", MaxTokens: 1024},
		Trainer: TrainerConfig{
			LearnerID:      "kyrill",
			ReviewInterval: 5,
			ReviewWindow:   20,
			HistoryTurns:   10,
			ReviewWorkers:  2,
		},
		Auth: AuthConfig{
			PasswordHash: testHash(t),
			JWTSecret:    testSecret,
			SessionTTL:   time.Hour,
		},
		Bot: BotConfig{MaxFailedAttempts: 5, BlockDuration: 10 * time.Minute},
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_PATH", writeYAML(t, dir, validYAML(t)))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.IsProduction() {
		t.Errorf("environment = %q, want production", cfg.Environment)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	if cfg.Database.MaxConns != 4 {
		t.Errorf("database.max_conns = %d, want 4", cfg.Database.MaxConns)
	}
	if cfg.LLM.TaskModel != "task-model" {
		t.Errorf("llm.task_model = %q", cfg.LLM.TaskModel)
	}
	if cfg.LLM.MaxToolRounds != 4 {
		t.Errorf("llm.max_tool_rounds = %d, want default 4", cfg.LLM.MaxToolRounds)
	}
	if cfg.Trainer.ReviewInterval != 3 {
		t.Errorf("trainer.review_interval = %d, want 3", cfg.Trainer.ReviewInterval)
	}
	if cfg.Trainer.HistoryTurns != 10 {
		t.Errorf("trainer.history_turns = %d, want default 10", cfg.Trainer.HistoryTurns)
	}
	if cfg.Bot.MaxFailedAttempts != 5 || cfg.Bot.BlockDuration != 10*time.Minute {
		t.Errorf("bot limits = %d/%v, want 5/10m", cfg.Bot.MaxFailedAttempts, cfg.Bot.BlockDuration)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want text", cfg.Log.Format)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_PATH", writeYAML(t, dir, validYAML(t)))
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("TRAINER_REVIEW_INTERVAL", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Trainer.ReviewInterval != 7 {
		t.Errorf("trainer.review_interval = %d, want 7 (ENV override)", cfg.Trainer.ReviewInterval)
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Environment != EnvDevelopment {
		t.Errorf("environment = %q, want development (default)", cfg.Environment)
	}
	if cfg.SQLite.Path != "./data/trainer.db" {
		t.Errorf("sqlite.path = %q, want default", cfg.SQLite.Path)
	}
	if cfg.Trainer.ReviewInterval != 5 || cfg.Trainer.ReviewWindow != 20 {
		t.Errorf("trainer cadence = %d/%d, want 5/20", cfg.Trainer.ReviewInterval, cfg.Trainer.ReviewWindow)
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	validEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("CONFIG_PATH", "")
	t.Chdir(t.TempDir())

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_PATH", writeYAML(t, dir, `{{{invalid yaml`))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown environment", mutate: func(c *Config) { c.Environment = "staging" }, wantErr: "environment"},
		{name: "production without dsn", mutate: func(c *Config) { c.Environment = EnvProduction }, wantErr: "database.dsn"},
		{name: "no storage", mutate: func(c *Config) { c.SQLite.Path = "" }, wantErr: "sqlite.path"},
		{name: "short jwt secret", mutate: func(c *Config) { c.Auth.JWTSecret = "short" }, wantErr: "jwt_secret"},
		{name: "plain password", mutate: func(c *Config) { c.Auth.PasswordHash = "geheim" }, wantErr: "password_hash"},
		{name: "zero session ttl", mutate: func(c *Config) { c.Auth.SessionTTL = 0 }, wantErr: "session_ttl"},
		{name: "empty learner", mutate: func(c *Config) { c.Trainer.LearnerID = " " }, wantErr: "learner_id"},
		{name: "zero review interval", mutate: func(c *Config) { c.Trainer.ReviewInterval = 0 }, wantErr: "review_interval"},
		{name: "zero review window", mutate: func(c *Config) { c.Trainer.ReviewWindow = 0 }, wantErr: "review_window"},
		{name: "negative history", mutate: func(c *Config) { c.Trainer.HistoryTurns = -1 }, wantErr: "history_turns"},
		{name: "no review workers", mutate: func(c *Config) { c.Trainer.ReviewWorkers = 0 }, wantErr: "review_workers"},
		{name: "bot without secret", mutate: func(c *Config) { c.Bot.Enabled = true }, wantErr: "webhook_secret"},
		{name: "disabled bot ignores secret", mutate: func(c *Config) { c.Bot.Enabled = false; c.Bot.WebhookSecret = "" }},
		{name: "zero max tokens", mutate: func(c *Config) { c.LLM.MaxTokens = 0 }, wantErr: "max_tokens"},
		{name: "empty api key", mutate: func(c *Config) { c.LLM.APIKey = "" }, wantErr: "llm.api_key"},
		{name: "blank api key", mutate: func(c *Config) { c.LLM.APIKey = "  " }, wantErr: "llm.api_key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	t.Parallel()

	cfg := validConfig(t)
	cfg.Auth.JWTSecret = ""
	cfg.Trainer.ReviewInterval = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"jwt_secret", "review_interval"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error = %q, want it to mention %q", err, want)
		}
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DOTENV_PATH", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	os.Unsetenv("ANTHROPIC_API_KEY")
	t.Setenv("AUTH_PASSWORD_HASH", testHash(t))
	t.Setenv("AUTH_JWT_SECRET", testSecret)
	// set by the environment, must win over the file
	t.Setenv("TRAINER_REVIEW_WINDOW", "30")

	content := "ANTHROPIC_API_KEY=sk-from-file\nTRAINER_REVIEW_WINDOW=8\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LLM.APIKey != "sk-from-file" {
		t.Errorf("llm.api_key = %q, want value from .env", cfg.LLM.APIKey)
	}
	if cfg.Trainer.ReviewWindow != 30 {
		t.Errorf("trainer.review_window = %d, want 30 from environment", cfg.Trainer.ReviewWindow)
	}
}

func TestLoad_ExplicitDotEnvNotFound(t *testing.T) {
	t.Setenv("DOTENV_PATH", "/nonexistent/.env")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit dotenv path")
	}
}

func TestLoadStorage_WithoutSecrets(t *testing.T) {
	for _, k := range []string{"ANTHROPIC_API_KEY", "AUTH_PASSWORD_HASH", "AUTH_JWT_SECRET"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("SQLITE_PATH", "/tmp/cli.db")
	t.Setenv("TRAINER_LEARNER_ID", "anna")
	t.Chdir(t.TempDir())

	if _, err := Load(); err == nil {
		t.Fatal("full load should require secrets")
	}

	cfg, err := LoadStorage()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SQLite.Path != "/tmp/cli.db" {
		t.Errorf("sqlite.path = %q", cfg.SQLite.Path)
	}
	if cfg.Trainer.LearnerID != "anna" {
		t.Errorf("learner_id = %q", cfg.Trainer.LearnerID)
	}
	if cfg.IsProduction() {
		t.Error("default environment should be development")
	}
}

func TestLoadStorage_FromYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_PATH", writeYAML(t, dir, validYAML(t)))

	cfg, err := LoadStorage()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.IsProduction() || cfg.Database.DSN != "postgres://u:p@localhost:5432/testdb" {
		t.Errorf("unexpected storage config: %+v", cfg.Database)
	}
}
