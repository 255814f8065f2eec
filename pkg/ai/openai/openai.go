package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/sproutplan/sproutplan/pkg/ai"
	"github.com/sproutplan/sproutplan/pkg/types"
)

const (
	NAME = "openai"

	// Embedding dimension is fixed and must match the chunks table column.
	EmbeddingDimensions = 1024

	embeddingBatchMax = 16
)

type Driver struct {
	client *openai.Client
	model  ai.ModelName
}

func New(token, proxy string, model ai.ModelName) *Driver {
	cfg := openai.DefaultConfig(token)
	if proxy != "" {
		cfg.BaseURL = proxy
	}

	if model.ChatModel == "" {
		model.ChatModel = openai.GPT4oMini
	}
	if model.EmbeddingModel == "" {
		model.EmbeddingModel = string(openai.LargeEmbedding3)
	}

	return &Driver{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (s *Driver) Name() string {
	return NAME
}

func (s *Driver) embedding(ctx context.Context, content []string) ([][]float32, error) {
	slog.Debug("Embedding", slog.String("driver", NAME), slog.Int("inputs", len(content)))
	queryReq := openai.EmbeddingRequest{
		Model:      openai.EmbeddingModel(s.model.EmbeddingModel),
		Dimensions: EmbeddingDimensions,
	}

	var groups [][]string
	for i, v := range content {
		if i%embeddingBatchMax == 0 {
			groups = append(groups, []string{})
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], v)
	}

	result := make([][]float32, 0, len(content))
	for _, group := range groups {
		queryReq.Input = group
		resp, err := s.client.CreateEmbeddings(ctx, queryReq)
		if err != nil {
			return nil, &ai.EmbeddingError{Err: err}
		}
		for _, item := range resp.Data {
			result = append(result, item.Embedding)
		}
	}

	return result, nil
}

func (s *Driver) EmbeddingForQuery(ctx context.Context, content string) ([]float32, error) {
	res, err := s.embedding(ctx, []string{content})
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, &ai.EmbeddingError{Err: fmt.Errorf("no embedding returned")}
	}
	return res[0], nil
}

func (s *Driver) EmbeddingForDocuments(ctx context.Context, title string, content []string) ([][]float32, error) {
	return s.embedding(ctx, content)
}

func (s *Driver) GenerateGuide(ctx context.Context, prompt string) (*types.Guide, error) {
	slog.Debug("GenerateGuide", slog.String("driver", NAME))

	schema := ai.GuideSchema()
	req := openai.ChatCompletionRequest{
		Model:       s.model.ChatModel,
		Temperature: ai.GenerateTemperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "activity_guide",
				Schema: &schema,
				Strict: true,
			},
		},
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, &ai.GenerationError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &ai.GenerationError{Err: fmt.Errorf("no choices returned")}
	}

	var guide types.Guide
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &guide); err != nil {
		return nil, &ai.GenerationError{Err: fmt.Errorf("unmarshal guide: %w", err)}
	}
	return &guide, nil
}
