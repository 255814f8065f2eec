package ai_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sproutplan/sproutplan/pkg/ai"
	"github.com/sproutplan/sproutplan/pkg/types"
)

func completeGuide() *types.Guide {
	return &types.Guide{
		GuideTitle:             "Water Play for Toddlers",
		CognitiveOutcomes:      []string{"Explores cause and effect"},
		SocioEmotionalOutcomes: []string{"Takes turns with peers"},
		ActivityName:           "Splash Station",
		ActivityDescription:    "Children pour and measure water at a low table.",
		RecommendedContent:     []string{},
		SetupGuidance:          "Fill two tubs with warm water.",
		IntroductionGuidance:   "Gather the children and show the tools.",
		DuringPlayGuidance:     "Narrate what each child is doing.",
		ConclusionGuidance:     "Sing the tidy-up song together.",
		Materials:              []string{"plastic tubs", "measuring cups"},
		AssessmentRubric:       "Emerging: watches others. Secure: pours independently.",
	}
}

func TestValidateGuide(t *testing.T) {
	assert.NoError(t, ai.ValidateGuide(completeGuide()))
}

func TestValidateGuideEmptyRecommendedContent(t *testing.T) {
	g := completeGuide()
	g.RecommendedContent = nil
	assert.NoError(t, ai.ValidateGuide(g))
}

func TestValidateGuideMissingFields(t *testing.T) {
	g := completeGuide()
	g.ActivityName = "   "
	g.Materials = nil

	err := ai.ValidateGuide(g)
	assert.Error(t, err)

	schemaErr, ok := err.(*ai.SchemaError)
	assert.True(t, ok)
	assert.Contains(t, schemaErr.Missing, "activity_name")
	assert.Contains(t, schemaErr.Missing, "materials")
}

func TestUnconfiguredDriver(t *testing.T) {
	var driver ai.Driver = ai.Unconfigured{}

	_, err := driver.EmbeddingForQuery(context.Background(), "query")
	assert.ErrorIs(t, err, ai.ErrNotConfigured)

	_, err = driver.GenerateGuide(context.Background(), "prompt")
	assert.ErrorIs(t, err, ai.ErrNotConfigured)
}

func TestGuideSchemaCoversAllFields(t *testing.T) {
	schema := ai.GuideSchema()
	for _, field := range schema.Required {
		_, ok := schema.Properties[field]
		assert.True(t, ok, "required field %s has no property definition", field)
	}
	assert.Len(t, schema.Properties, 12)
}
