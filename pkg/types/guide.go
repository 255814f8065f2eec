package types

// PlanRequest is a teacher's generation input, one per request.
type PlanRequest struct {
	AgeCohort       string `json:"age_cohort"`
	Domain          string `json:"domain"`
	Component       string `json:"component"`
	PlayTypeName    string `json:"play_type_name"`
	PlayTypeContext string `json:"play_type_context"`
}

// Guide is the structured activity plan produced by the generation step.
// Field names are part of the output schema sent to the model.
type Guide struct {
	GuideTitle             string   `json:"guide_title"`
	CognitiveOutcomes      []string `json:"cognitive_outcomes"`
	SocioEmotionalOutcomes []string `json:"socio_emotional_outcomes"`
	ActivityName           string   `json:"activity_name"`
	ActivityDescription    string   `json:"activity_description"`
	RecommendedContent     []string `json:"recommended_content"`
	SetupGuidance          string   `json:"setup_guidance"`
	IntroductionGuidance   string   `json:"introduction_guidance"`
	DuringPlayGuidance     string   `json:"during_play_guidance"`
	ConclusionGuidance     string   `json:"conclusion_guidance"`
	Materials              []string `json:"materials"`
	AssessmentRubric       string   `json:"assessment_rubric"`
}
