package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sproutplan/sproutplan/pkg/types"
)

const (
	DRIVER_OPENAI = "openai"
	DRIVER_GEMINI = "gemini"
)

// GenerateTemperature is fixed for guide generation.
const GenerateTemperature = 0.7

type ModelName struct {
	ChatModel      string
	EmbeddingModel string
}

// Embedder turns text into fixed-dimension vectors. Query and document
// embeddings are distinguished because some providers condition the
// embedding on the task type.
type Embedder interface {
	EmbeddingForQuery(ctx context.Context, content string) ([]float32, error)
	EmbeddingForDocuments(ctx context.Context, title string, content []string) ([][]float32, error)
}

// Generator produces a guide constrained to the output schema. The driver
// asks the provider to enforce the schema, but callers must still validate
// the parsed result before trusting it.
type Generator interface {
	GenerateGuide(ctx context.Context, prompt string) (*types.Guide, error)
}

// Driver is the full provider surface the service wires at startup.
type Driver interface {
	Embedder
	Generator
	Name() string
}

// ErrNotConfigured reports a missing provider credential. The service
// still starts so admins can curate the library, every AI call fails
// with this error until a credential is set.
var ErrNotConfigured = errors.New("ai provider credential is not configured")

// Unconfigured stands in for a driver when no credential is present.
type Unconfigured struct{}

func (Unconfigured) Name() string { return "unconfigured" }

func (Unconfigured) EmbeddingForQuery(ctx context.Context, content string) ([]float32, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) EmbeddingForDocuments(ctx context.Context, title string, content []string) ([][]float32, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) GenerateGuide(ctx context.Context, prompt string) (*types.Guide, error) {
	return nil, ErrNotConfigured
}

type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding request failed: %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation request failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// SchemaError reports a generation result with required fields missing or
// blank. It is treated exactly like a GenerationError by callers.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("generated guide is incomplete, missing: %s", strings.Join(e.Missing, ", "))
}

// ValidateGuide checks the validate-then-trust contract: every required
// field present and non-blank, every required list non-empty.
// RecommendedContent may be empty since the source library may carry no
// matching lesson titles.
func ValidateGuide(g *types.Guide) error {
	var missing []string

	requiredStrings := []struct {
		name  string
		value string
	}{
		{"guide_title", g.GuideTitle},
		{"activity_name", g.ActivityName},
		{"activity_description", g.ActivityDescription},
		{"setup_guidance", g.SetupGuidance},
		{"introduction_guidance", g.IntroductionGuidance},
		{"during_play_guidance", g.DuringPlayGuidance},
		{"conclusion_guidance", g.ConclusionGuidance},
		{"assessment_rubric", g.AssessmentRubric},
	}
	for _, field := range requiredStrings {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}

	requiredLists := []struct {
		name   string
		values []string
	}{
		{"cognitive_outcomes", g.CognitiveOutcomes},
		{"socio_emotional_outcomes", g.SocioEmotionalOutcomes},
		{"materials", g.Materials},
	}
	for _, field := range requiredLists {
		if len(field.values) == 0 {
			missing = append(missing, field.name)
		}
	}

	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}
