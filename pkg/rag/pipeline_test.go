package rag

import (
	"context"
	"strings"
	"testing"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"

	"github.com/sproutplan/sproutplan/pkg/ai"
	"github.com/sproutplan/sproutplan/pkg/types"
	"github.com/sproutplan/sproutplan/pkg/utils"
)

func init() {
	utils.SetupIDWorker(1)
}

type fakeEmbedder struct {
	queryVec []float32
	docVecs  [][]float32
	err      error
}

func (f *fakeEmbedder) EmbeddingForQuery(ctx context.Context, content string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.queryVec, nil
}

func (f *fakeEmbedder) EmbeddingForDocuments(ctx context.Context, title string, content []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.docVecs != nil {
		return f.docVecs, nil
	}
	vecs := make([][]float32, len(content))
	for i := range vecs {
		vecs[i] = []float32{1, 0, 0}
	}
	return vecs, nil
}

type fakeChunkStore struct {
	matches    []*types.ChunkMatch
	rebuilt    map[string][]*types.Chunk
	rebuildErr error
}

func (f *fakeChunkStore) Query(ctx context.Context, vector pgvector.Vector, limit int) ([]*types.ChunkMatch, error) {
	return f.matches, nil
}

func (f *fakeChunkStore) Rebuild(ctx context.Context, resourceID string, chunks []*types.Chunk) error {
	if f.rebuildErr != nil {
		return f.rebuildErr
	}
	if f.rebuilt == nil {
		f.rebuilt = make(map[string][]*types.Chunk)
	}
	f.rebuilt[resourceID] = chunks
	return nil
}

type fakeGenerator struct {
	lastPrompt string
	guide      *types.Guide
	err        error
}

func (f *fakeGenerator) GenerateGuide(ctx context.Context, prompt string) (*types.Guide, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return nil, f.err
	}
	return f.guide, nil
}

func validGuide() *types.Guide {
	return &types.Guide{
		GuideTitle:             "Saving Every Drop",
		CognitiveOutcomes:      []string{"Explains why water matters"},
		SocioEmotionalOutcomes: []string{"Cooperates at the water station"},
		ActivityName:           "The Drip Detectives",
		ActivityDescription:    "Children hunt for dripping taps, inspired by Water-Saving Tips.",
		SetupGuidance:          "1. Place cups near the sink.",
		IntroductionGuidance:   "Ask who has seen a dripping tap.",
		DuringPlayGuidance:     "What happens if we leave the tap running?",
		ConclusionGuidance:     "Count the drops caught together.",
		Materials:              []string{"cups", "stickers"},
		AssessmentRubric:       "Emerging: names water. Secure: explains saving.",
	}
}

func waterMatches() []*types.ChunkMatch {
	return []*types.ChunkMatch{
		{
			ID:         "c1",
			ResourceID: "r1",
			Title:      "Water-Saving Tips",
			Content:    "Turn off the tap while brushing teeth to save water.",
			Embedding:  pgvector.NewVector([]float32{1, 0, 0}),
			Cos:        0.98,
		},
		{
			ID:         "c2",
			ResourceID: "r1",
			Title:      "Water-Saving Tips",
			Content:    "Collect rainwater for the classroom garden.",
			Embedding:  pgvector.NewVector([]float32{0.9, 0.3, 0}),
			Cos:        0.91,
		},
	}
}

func waterRequest() *types.PlanRequest {
	return &types.PlanRequest{
		AgeCohort:       "3-4 years",
		Domain:          "Science",
		Component:       "Environmental Awareness",
		PlayTypeName:    "Water Play",
		PlayTypeContext: "Green Play",
	}
}

func TestRetrieveFallbackWithoutMatches(t *testing.T) {
	retriever := NewRetriever(&fakeEmbedder{queryVec: []float32{1, 0, 0}}, &fakeChunkStore{})

	res, err := retriever.Retrieve(context.Background(), waterRequest())
	assert.NoError(t, err)
	assert.Equal(t, types.NO_CONTEXT_SENTINEL, res.Context)
	assert.Equal(t, []string{types.FALLBACK_SOURCE}, res.Sources)
	assert.Empty(t, res.Chunks)
}

func TestRetrieveBuildsContextAndSources(t *testing.T) {
	store := &fakeChunkStore{matches: waterMatches()}
	retriever := NewRetriever(&fakeEmbedder{queryVec: []float32{1, 0, 0}}, store)

	res, err := retriever.Retrieve(context.Background(), waterRequest())
	assert.NoError(t, err)
	assert.Contains(t, res.Context, "Turn off the tap while brushing teeth")
	assert.Contains(t, res.Context, "Collect rainwater")
	assert.Contains(t, res.Context, "Source: Water-Saving Tips")
	// duplicate titles collapse to one source
	assert.Equal(t, []string{"Water-Saving Tips"}, res.Sources)
	assert.Len(t, res.Chunks, 2)
}

func TestGenerateEndToEnd(t *testing.T) {
	store := &fakeChunkStore{matches: waterMatches()}
	gen := &fakeGenerator{guide: validGuide()}
	orch := NewOrchestrator(NewRetriever(&fakeEmbedder{queryVec: []float32{1, 0, 0}}, store), gen)

	var transitions []Status
	orch.Progress = func(s Status) { transitions = append(transitions, s) }

	result, err := orch.Generate(context.Background(), waterRequest())
	assert.NoError(t, err)
	assert.Equal(t, "Saving Every Drop", result.Guide.GuideTitle)
	assert.NotNil(t, result.Guide.RecommendedContent)
	assert.Equal(t, []string{"Water-Saving Tips"}, result.Sources)
	assert.Equal(t, []Status{StatusRetrieving, StatusGenerating, StatusSucceeded}, transitions)

	// the prompt carries the request, the retrieved context and the schema
	assert.Contains(t, gen.lastPrompt, "Environmental Awareness")
	assert.Contains(t, gen.lastPrompt, "Green Play")
	assert.Contains(t, gen.lastPrompt, "Turn off the tap while brushing teeth")
	assert.Contains(t, gen.lastPrompt, "Water-Saving Tips")
	assert.Contains(t, gen.lastPrompt, "guide_title")
}

func TestGenerateRejectsIncompleteGuide(t *testing.T) {
	store := &fakeChunkStore{matches: waterMatches()}
	broken := validGuide()
	broken.Materials = nil
	orch := NewOrchestrator(NewRetriever(&fakeEmbedder{queryVec: []float32{1, 0, 0}}, store), &fakeGenerator{guide: broken})

	var transitions []Status
	orch.Progress = func(s Status) { transitions = append(transitions, s) }

	_, err := orch.Generate(context.Background(), waterRequest())
	assert.Error(t, err)
	var schemaErr *ai.SchemaError
	assert.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, StatusFailed, transitions[len(transitions)-1])
}

func TestIngestRebuildsChunks(t *testing.T) {
	store := &fakeChunkStore{}
	ingestor := NewIngestor(NewLoader(), &fakeEmbedder{}, store)

	resource := &types.Resource{
		ID:           "r9",
		Title:        "Water-Saving Tips",
		ResourceType: types.RESOURCE_TYPE_TEXT,
		ContentPath:  strings.Repeat("Save water every day. ", 100),
	}

	count, err := ingestor.Ingest(context.Background(), resource, []string{"Science"}, []string{"3-4 years"})
	assert.NoError(t, err)
	assert.Equal(t, len(store.rebuilt["r9"]), count)
	assert.Greater(t, count, 1)

	for _, c := range store.rebuilt["r9"] {
		assert.Equal(t, "r9", c.ResourceID)
		assert.Equal(t, "Water-Saving Tips", c.Title)
		assert.Equal(t, "Science", c.Domains)
		assert.Equal(t, "3-4 years", c.AgeCohorts)
		assert.NotEmpty(t, c.ID)
		assert.NotEmpty(t, c.Content)
	}
}

func TestIngestEmptyResourceFails(t *testing.T) {
	ingestor := NewIngestor(NewLoader(), &fakeEmbedder{}, &fakeChunkStore{})

	resource := &types.Resource{
		ID:           "r10",
		Title:        "Blank",
		ResourceType: types.RESOURCE_TYPE_TEXT,
		ContentPath:  "   ",
	}

	_, err := ingestor.Ingest(context.Background(), resource, nil, nil)
	var loadErr *LoadError
	assert.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "r10", loadErr.ResourceID)
}
