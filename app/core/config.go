package core

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/sproutplan/sproutplan/app/core/srv"
)

func MustLoadBaseConfig(path string) CoreConfig {
	if path == "" {
		return LoadBaseConfigFromENV()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	conf := &CoreConfig{}
	if err = toml.Unmarshal(raw, conf); err != nil {
		panic(err)
	}

	return *conf
}

func LoadBaseConfigFromENV() CoreConfig {
	var c CoreConfig
	c.FromENV()
	return c
}

type CoreConfig struct {
	Addr     string       `toml:"addr"`
	Log      Log          `toml:"log"`
	Postgres PGConfig     `toml:"postgres"`
	Redis    RedisConfig  `toml:"redis"`
	AI       srv.AIConfig `toml:"ai"`

	Auth      AuthConfig      `toml:"auth"`
	Upload    UploadConfig    `toml:"upload"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Semaphore SemaphoreConfig `toml:"semaphore"`
}

func (c *CoreConfig) FromENV() {
	c.Addr = os.Getenv("SPROUT_API_SERVICE_ADDRESS")
	c.Log.FromENV()
	c.Postgres.FromENV()
	c.Redis.FromENV()
	c.AI.Driver = os.Getenv("SPROUT_AI_DRIVER")
	c.AI.OpenAI.Token = os.Getenv("SPROUT_OPENAI_TOKEN")
	c.AI.OpenAI.Endpoint = os.Getenv("SPROUT_OPENAI_ENDPOINT")
	c.AI.Gemini.Token = os.Getenv("SPROUT_GEMINI_TOKEN")
	c.Auth.AdminEmail = os.Getenv("SPROUT_ADMIN_EMAIL")
	c.Auth.AdminPassword = os.Getenv("SPROUT_ADMIN_PASSWORD")
}

type AuthConfig struct {
	// TokenTTLHours bounds how long a session token stays valid. Zero
	// means the 72 hour default.
	TokenTTLHours int `toml:"token_ttl_hours"`

	// AdminEmail and AdminPassword bootstrap the first admin account
	// when the seed command runs against an empty database.
	AdminEmail    string `toml:"admin_email"`
	AdminPassword string `toml:"admin_password"`
}

type UploadConfig struct {
	// Dir is where pdf uploads land. Relative paths resolve against the
	// working directory.
	Dir string `toml:"dir"`
}

func (c UploadConfig) Path() string {
	if c.Dir == "" {
		return "uploads"
	}
	return c.Dir
}

type RateLimitConfig struct {
	// GeneratePerMinute caps guide generations per user. Zero disables
	// the limiter.
	GeneratePerMinute int `toml:"generate_per_minute"`
}

type SemaphoreConfig struct {
	// GenerateMaxConcurrency caps concurrent provider calls across the
	// process. Zero means the default of 10.
	GenerateMaxConcurrency int `toml:"generate_max_concurrency"`
}

type PGConfig struct {
	DSN string `toml:"dsn"`
}

func (m *PGConfig) FromENV() {
	m.DSN = os.Getenv("SPROUT_API_POSTGRESQL_DSN")
}

func (c PGConfig) FormatDSN() string {
	return c.DSN
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

func (r *RedisConfig) FromENV() {
	r.Addr = os.Getenv("SPROUT_REDIS_ADDR")
	r.Password = os.Getenv("SPROUT_REDIS_PASSWORD")
	if dbStr := os.Getenv("SPROUT_REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			r.DB = db
		}
	}
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

func (l *Log) FromENV() {
	l.Level = os.Getenv("SPROUT_API_LOG_LEVEL")
	l.Path = os.Getenv("SPROUT_API_LOG_PATH")
}

func (l *Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
