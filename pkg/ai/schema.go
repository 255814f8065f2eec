package ai

import (
	"encoding/json"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// GuideSchema describes the structured output every generation driver asks
// the provider to conform to. Field names mirror types.Guide json tags.
func GuideSchema() jsonschema.Definition {
	stringList := &jsonschema.Definition{Type: jsonschema.String}
	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"guide_title": {
				Type:        jsonschema.String,
				Description: "A short title for the whole guide, naming the age cohort, domain and play type.",
			},
			"cognitive_outcomes": {
				Type:        jsonschema.Array,
				Description: "Cognitive learning outcomes the activity supports, phrased as observable child behaviors.",
				Items:       stringList,
			},
			"socio_emotional_outcomes": {
				Type:        jsonschema.Array,
				Description: "Socio-emotional learning outcomes the activity supports.",
				Items:       stringList,
			},
			"activity_name": {
				Type:        jsonschema.String,
				Description: "A catchy, child-friendly name for the activity.",
			},
			"activity_description": {
				Type:        jsonschema.String,
				Description: "One or two sentences describing the activity for the teacher.",
			},
			"recommended_content": {
				Type:        jsonschema.Array,
				Description: "Titles of lessons from the provided source material that relate to this activity. Leave empty if none apply.",
				Items:       stringList,
			},
			"setup_guidance": {
				Type:        jsonschema.String,
				Description: "How the teacher prepares the space and materials before children arrive.",
			},
			"introduction_guidance": {
				Type:        jsonschema.String,
				Description: "How the teacher introduces the activity and hooks the children's interest.",
			},
			"during_play_guidance": {
				Type:        jsonschema.String,
				Description: "How the teacher scaffolds, observes and extends learning while children play.",
			},
			"conclusion_guidance": {
				Type:        jsonschema.String,
				Description: "How the teacher closes the activity and consolidates the learning.",
			},
			"materials": {
				Type:        jsonschema.Array,
				Description: "Concrete materials the teacher needs, each a single item.",
				Items:       stringList,
			},
			"assessment_rubric": {
				Type:        jsonschema.String,
				Description: "A short rubric describing what emerging, developing and secure mastery of the outcomes looks like.",
			},
		},
		Required: []string{
			"guide_title", "cognitive_outcomes", "socio_emotional_outcomes",
			"activity_name", "activity_description", "recommended_content",
			"setup_guidance", "introduction_guidance", "during_play_guidance",
			"conclusion_guidance", "materials", "assessment_rubric",
		},
	}
}

// GuideSchemaJSON renders the schema for providers that take format
// instructions as prompt text instead of a request parameter.
func GuideSchemaJSON() string {
	raw, _ := json.MarshalIndent(GuideSchema(), "", "  ")
	return string(raw)
}
