package rag

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/sproutplan/sproutplan/pkg/types"
)

// ContextTokenBudget caps the expert context embedded in the generation
// prompt. Four chunks of a thousand characters sit well below this, so the
// cap only bites on pathological library content.
const ContextTokenBudget = 6000

const queryTemplate = "Activity ideas and pedagogical principles for '%s' within the '%s' domain for children aged %s, focusing on a '%s' play type."

// BuildQuery renders the retrieval query for a plan request. The same
// string is embedded and matched against the chunk library.
func BuildQuery(req *types.PlanRequest) string {
	return fmt.Sprintf(queryTemplate, req.Component, req.Domain, req.AgeCohort, req.PlayTypeName)
}

const promptTemplate = `You are an award-winning Early Childhood Education curriculum designer with 20 years of experience, specializing in play-based learning and socio-emotional development. Your task is to create an exceptionally detailed, practical, and comprehensive teacher guide. The user is a teacher who needs clear, step-by-step, actionable guidance. Your tone should be supportive, knowledgeable, and inspiring.

You MUST return a JSON object that strictly follows the provided schema.

**USER REQUEST:**
*   Age Cohort: {age_cohort}
*   Domain: {domain}
*   Component: {component}
*   Play Type: {play_type_name}
*   Special Context: {play_type_context}

**EXPERT-WRITTEN CONTEXT FROM YOUR ORGANIZATION'S RESOURCE LIBRARY:**
---
{expert_context}
---

**CRITICAL INSTRUCTIONS FOR QUALITY:**
1.  **Prioritize the Expert Context:** You MUST base your generated activity, facilitation guidance, and outcomes on the information provided in the "EXPERT-WRITTEN CONTEXT". Do not use generic information unless no context is provided.
2.  **Cite Your Sources:** In the 'activity_description', you MUST mention which source document(s) from the context inspired the activity. The available sources are: {sources}.
3.  **Be Comprehensive and Step-by-Step:** Each section must be detailed. Avoid short, one-sentence answers. The facilitation guidance and setup instructions should be a clear sequence of actions.
4.  **Be Practical:** The materials should be low-cost. The facilitation guidance should include exact, open-ended questions a teacher can use.
5.  **Create a High-Quality Rubric:** The 'assessment_rubric' is crucial. The descriptions for 'Emerging', 'Developing', and 'Secure' MUST be concrete, observable behaviors (e.g., "Child points to one object when asked 'how many?'"), not abstract concepts (e.g., "Child understands numbers").
6.  **Context Integration:** If the Special Context is 'Green Play' or 'Climate Vulnerability', this theme MUST be deeply and creatively woven into the activity description, materials, and facilitation guidance.

**Output Schema:**
{format_instructions}`

// BuildPrompt assembles the generation prompt from the request, the
// retrieved expert context and its source titles. The context is trimmed
// to ContextTokenBudget tokens before substitution.
func BuildPrompt(req *types.PlanRequest, expertContext string, sources []string, formatInstructions string) string {
	expertContext = truncateToTokens(expertContext, ContextTokenBudget)

	replacer := strings.NewReplacer(
		"{age_cohort}", req.AgeCohort,
		"{domain}", req.Domain,
		"{component}", req.Component,
		"{play_type_name}", req.PlayTypeName,
		"{play_type_context}", req.PlayTypeContext,
		"{expert_context}", expertContext,
		"{sources}", strings.Join(sources, ", "),
		"{format_instructions}", formatInstructions,
	)
	return replacer.Replace(promptTemplate)
}

func truncateToTokens(text string, budget int) string {
	tkm, err := tiktoken.GetEncoding(tiktoken.MODEL_CL100K_BASE)
	if err != nil {
		// counting is best effort, keep the full text
		slog.Warn("failed to load token encoding", slog.Any("error", err))
		return text
	}

	tokens := tkm.Encode(text, nil, nil)
	if len(tokens) <= budget {
		return text
	}
	slog.Warn("expert context over token budget, truncating",
		slog.Int("tokens", len(tokens)), slog.Int("budget", budget))
	return tkm.Decode(tokens[:budget])
}
