package srv

import (
	"context"
	"time"

	"github.com/sproutplan/sproutplan/pkg/ai"
	"github.com/sproutplan/sproutplan/pkg/ai/gemini"
	"github.com/sproutplan/sproutplan/pkg/ai/openai"
	"github.com/sproutplan/sproutplan/pkg/types"
)

type AIConfig struct {
	Driver string `toml:"driver"`

	// Per-call deadlines in seconds. Zero falls back to the defaults.
	GenerateTimeout int `toml:"generate_timeout"`
	EmbedTimeout    int `toml:"embed_timeout"`

	OpenAI OpenAIConfig `toml:"openai"`
	Gemini GeminiConfig `toml:"gemini"`
}

type OpenAIConfig struct {
	Token          string `toml:"token"`
	Endpoint       string `toml:"endpoint"`
	ChatModel      string `toml:"chat_model"`
	EmbeddingModel string `toml:"embedding_model"`
}

type GeminiConfig struct {
	Token          string `toml:"token"`
	ChatModel      string `toml:"chat_model"`
	EmbeddingModel string `toml:"embedding_model"`
}

const (
	defaultGenerateTimeout = 45 * time.Second
	defaultEmbedTimeout    = 20 * time.Second
)

// AI wraps the configured driver and puts every call under its own
// deadline, detached from the incoming request context so an aborted
// request does not kill an in-flight provider call.
type AI struct {
	driver ai.Driver

	generateTimeout time.Duration
	embedTimeout    time.Duration
}

func SetupAI(cfg AIConfig) *AI {
	// A missing credential does not block startup, admins can still curate
	// the library. Every AI call fails with ErrNotConfigured instead.
	var driver ai.Driver = ai.Unconfigured{}
	switch cfg.Driver {
	case ai.DRIVER_GEMINI:
		if cfg.Gemini.Token != "" {
			driver = gemini.New(cfg.Gemini.Token, ai.ModelName{
				ChatModel:      cfg.Gemini.ChatModel,
				EmbeddingModel: cfg.Gemini.EmbeddingModel,
			})
		}
	default:
		if cfg.OpenAI.Token != "" {
			driver = openai.New(cfg.OpenAI.Token, cfg.OpenAI.Endpoint, ai.ModelName{
				ChatModel:      cfg.OpenAI.ChatModel,
				EmbeddingModel: cfg.OpenAI.EmbeddingModel,
			})
		}
	}

	s := &AI{
		driver:          driver,
		generateTimeout: defaultGenerateTimeout,
		embedTimeout:    defaultEmbedTimeout,
	}
	if cfg.GenerateTimeout > 0 {
		s.generateTimeout = time.Duration(cfg.GenerateTimeout) * time.Second
	}
	if cfg.EmbedTimeout > 0 {
		s.embedTimeout = time.Duration(cfg.EmbedTimeout) * time.Second
	}
	return s
}

func (s *AI) Name() string {
	return s.driver.Name()
}

func (s *AI) EmbeddingForQuery(ctx context.Context, content string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.embedTimeout)
	defer cancel()
	return s.driver.EmbeddingForQuery(ctx, content)
}

func (s *AI) EmbeddingForDocuments(ctx context.Context, title string, content []string) ([][]float32, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.embedTimeout)
	defer cancel()
	return s.driver.EmbeddingForDocuments(ctx, title, content)
}

func (s *AI) GenerateGuide(ctx context.Context, prompt string) (*types.Guide, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.generateTimeout)
	defer cancel()
	return s.driver.GenerateGuide(ctx, prompt)
}
