package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/sproutplan/sproutplan/pkg/ai"
	"github.com/sproutplan/sproutplan/pkg/types"
)

const (
	NAME = "gemini"
)

type Driver struct {
	client *genai.Client
	model  ai.ModelName
}

func New(token string, model ai.ModelName) *Driver {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(token))
	if err != nil {
		panic(err)
	}

	if model.ChatModel == "" {
		model.ChatModel = "gemini-1.5-flash-latest"
	}
	if model.EmbeddingModel == "" {
		model.EmbeddingModel = "text-embedding-004"
	}

	return &Driver{
		client: client,
		model:  model,
	}
}

func (s *Driver) Name() string {
	return NAME
}

func (s *Driver) EmbeddingForQuery(ctx context.Context, content string) ([]float32, error) {
	slog.Debug("Embedding", slog.String("driver", NAME))
	em := s.client.EmbeddingModel(s.model.EmbeddingModel)
	em.TaskType = genai.TaskTypeRetrievalQuery

	res, err := em.EmbedContent(ctx, genai.Text(content))
	if err != nil {
		return nil, &ai.EmbeddingError{Err: err}
	}
	if res.Embedding == nil {
		return nil, &ai.EmbeddingError{Err: fmt.Errorf("no embedding returned")}
	}
	return res.Embedding.Values, nil
}

func (s *Driver) EmbeddingForDocuments(ctx context.Context, title string, content []string) ([][]float32, error) {
	slog.Debug("Embedding", slog.String("driver", NAME), slog.Int("inputs", len(content)))
	em := s.client.EmbeddingModel(s.model.EmbeddingModel)
	em.TaskType = genai.TaskTypeRetrievalDocument

	batch := em.NewBatch()
	for _, v := range content {
		batch = batch.AddContentWithTitle(title, genai.Text(v))
	}

	res, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, &ai.EmbeddingError{Err: err}
	}

	result := make([][]float32, 0, len(res.Embeddings))
	for _, item := range res.Embeddings {
		result = append(result, item.Values)
	}
	return result, nil
}

func (s *Driver) GenerateGuide(ctx context.Context, prompt string) (*types.Guide, error) {
	slog.Debug("GenerateGuide", slog.String("driver", NAME))

	model := s.client.GenerativeModel(s.model.ChatModel)
	temperature := float32(ai.GenerateTemperature)
	model.Temperature = &temperature
	// Ask the model to respond with JSON matching the guide schema.
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = guideSchema()

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, &ai.GenerationError{Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, &ai.GenerationError{Err: fmt.Errorf("empty response content")}
	}
	if resp.Candidates[0].FinishReason != genai.FinishReasonStop {
		slog.Warn("GenerateGuide, ai finished without stop",
			slog.String("reason", resp.Candidates[0].FinishReason.String()))
	}

	var raw []byte
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			raw = append(raw, []byte(txt)...)
		}
	}

	var guide types.Guide
	if err := json.Unmarshal(raw, &guide); err != nil {
		return nil, &ai.GenerationError{Err: fmt.Errorf("unmarshal guide: %w", err)}
	}
	return &guide, nil
}

func guideSchema() *genai.Schema {
	stringList := &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"guide_title":              {Type: genai.TypeString},
			"cognitive_outcomes":       stringList,
			"socio_emotional_outcomes": stringList,
			"activity_name":            {Type: genai.TypeString},
			"activity_description":     {Type: genai.TypeString},
			"recommended_content":      stringList,
			"setup_guidance":           {Type: genai.TypeString},
			"introduction_guidance":    {Type: genai.TypeString},
			"during_play_guidance":     {Type: genai.TypeString},
			"conclusion_guidance":      {Type: genai.TypeString},
			"materials":                stringList,
			"assessment_rubric":        {Type: genai.TypeString},
		},
		Required: []string{
			"guide_title", "cognitive_outcomes", "socio_emotional_outcomes",
			"activity_name", "activity_description", "recommended_content",
			"setup_guidance", "introduction_guidance", "during_play_guidance",
			"conclusion_guidance", "materials", "assessment_rubric",
		},
	}
}
