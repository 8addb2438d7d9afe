package config

import (
	"strings"
	"time"
)

// Environment names.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the root application configuration.
type Config struct {
	Environment string         `yaml:"environment" env:"ENVIRONMENT" env-default:"development"`
	Server      ServerConfig   `yaml:"server"`
	Database    DatabaseConfig `yaml:"database"`
	SQLite      SQLiteConfig   `yaml:"sqlite"`
	Log         LogConfig      `yaml:"log"`
	LLM         LLMConfig      `yaml:"llm"`
	Trainer     TrainerConfig  `yaml:"trainer"`
	Auth        AuthConfig     `yaml:"auth"`
	Bot         BotConfig      `yaml:"bot"`
	CORS        CORSConfig     `yaml:"cors"`
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, EnvProduction)
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"90s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"15s"`
}

// DatabaseConfig holds PostgreSQL connection settings. An empty DSN
// selects SQLite.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"    env:"DATABASE_CONNECT_TIMEOUT"    env-default:"10s"`
}

// SQLiteConfig holds the local database used in development and as the
// production fallback.
type SQLiteConfig struct {
	Path string `yaml:"path" env:"SQLITE_PATH" env-default:"./data/trainer.db"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// LLMConfig holds Anthropic API settings.
type LLMConfig struct {
	APIKey            string        `yaml:"api_key"             env:"ANTHROPIC_API_KEY"       env-required:"true"`
	TaskModel         string        `yaml:"task_model"          env:"LLM_TASK_MODEL"          env-default:"claude-sonnet-4-5"`
	ReviewModel       string        `yaml:"review_model"        env:"LLM_REVIEW_MODEL"        env-default:"claude-sonnet-4-5"`
	MaxTokens         int64         `yaml:"max_tokens"          env:"LLM_MAX_TOKENS"          env-default:"1024"`
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"LLM_REQUESTS_PER_MINUTE" env-default:"30"`
	MaxToolRounds     int           `yaml:"max_tool_rounds"     env:"LLM_MAX_TOOL_ROUNDS"     env-default:"4"`
	Timeout           time.Duration `yaml:"timeout"             env:"LLM_TIMEOUT"             env-default:"60s"`
}

// TrainerConfig holds control loop settings.
type TrainerConfig struct {
	LearnerID         string        `yaml:"learner_id"         env:"TRAINER_LEARNER_ID"         env-default:"kyrill"`
	LearnerName       string        `yaml:"learner_name"       env:"TRAINER_LEARNER_NAME"       env-default:"Kyrill"`
	ReviewInterval    int           `yaml:"review_interval"    env:"TRAINER_REVIEW_INTERVAL"    env-default:"5"`
	ReviewWindow      int           `yaml:"review_window"      env:"TRAINER_REVIEW_WINDOW"      env-default:"20"`
	HistoryTurns      int           `yaml:"history_turns"      env:"TRAINER_HISTORY_TURNS"      env-default:"10"`
	GenerationTimeout time.Duration `yaml:"generation_timeout" env:"TRAINER_GENERATION_TIMEOUT" env-default:"60s"`
	ReviewTimeout     time.Duration `yaml:"review_timeout"     env:"TRAINER_REVIEW_TIMEOUT"     env-default:"90s"`
	ReviewWorkers     int           `yaml:"review_workers"     env:"TRAINER_REVIEW_WORKERS"     env-default:"2"`
}

// AuthConfig holds the single-learner password gate of the web UI.
type AuthConfig struct {
	PasswordHash string        `yaml:"password_hash" env:"AUTH_PASSWORD_HASH" env-required:"true"`
	JWTSecret    string        `yaml:"jwt_secret"    env:"AUTH_JWT_SECRET"    env-required:"true"`
	JWTIssuer    string        `yaml:"jwt_issuer"    env:"AUTH_JWT_ISSUER"    env-default:"sprachtrainer"`
	SessionTTL   time.Duration `yaml:"session_ttl"   env:"AUTH_SESSION_TTL"   env-default:"168h"`
	CookieName   string        `yaml:"cookie_name"   env:"AUTH_COOKIE_NAME"   env-default:"trainer_session"`
	CookieSecure bool          `yaml:"cookie_secure" env:"AUTH_COOKIE_SECURE" env-default:"true"`
	// LoginPerMinute bounds login attempts per client IP.
	LoginPerMinute int `yaml:"login_per_minute" env:"AUTH_LOGIN_PER_MINUTE" env-default:"10"`
}

// BotConfig holds the messaging bot webhook settings.
type BotConfig struct {
	Enabled           bool          `yaml:"enabled"             env:"BOT_ENABLED"             env-default:"false"`
	WebhookSecret     string        `yaml:"webhook_secret"      env:"BOT_WEBHOOK_SECRET"`
	MaxFailedAttempts int           `yaml:"max_failed_attempts" env:"BOT_MAX_FAILED_ATTEMPTS" env-default:"5"`
	BlockDuration     time.Duration `yaml:"block_duration"      env:"BOT_BLOCK_DURATION"      env-default:"10m"`
}
