package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"

	"github.com/sproutplan/sproutplan/pkg/ai"
	"github.com/sproutplan/sproutplan/pkg/types"
	"github.com/sproutplan/sproutplan/pkg/utils"
)

// ChunkWriter replaces a resource's chunks atomically. Implementations
// delete the old rows and insert the new ones inside one transaction so a
// failed reindex never leaves a resource half indexed.
type ChunkWriter interface {
	Rebuild(ctx context.Context, resourceID string, chunks []*types.Chunk) error
}

// Ingestor runs the load, split, embed, store pipeline for one resource.
type Ingestor struct {
	loader   *Loader
	embedder ai.Embedder
	store    ChunkWriter
}

func NewIngestor(loader *Loader, embedder ai.Embedder, store ChunkWriter) *Ingestor {
	return &Ingestor{
		loader:   loader,
		embedder: embedder,
		store:    store,
	}
}

// Ingest rebuilds the chunk index for a resource and returns the number of
// chunks written. The domain and age cohort tags are denormalized onto
// each chunk so retrieval results carry them without a join.
func (s *Ingestor) Ingest(ctx context.Context, resource *types.Resource, domains, ageCohorts []string) (int, error) {
	text, err := s.loader.Load(ctx, resource)
	if err != nil {
		return 0, err
	}

	parts := SplitText(text)
	if len(parts) == 0 {
		return 0, &LoadError{ResourceID: resource.ID, Err: fmt.Errorf("resource produced no chunks")}
	}

	embeddings, err := s.embedder.EmbeddingForDocuments(ctx, resource.Title, parts)
	if err != nil {
		return 0, fmt.Errorf("rag.Ingest.EmbeddingForDocuments: %w", err)
	}
	if len(embeddings) != len(parts) {
		return 0, &ai.EmbeddingError{Err: fmt.Errorf("expected %d embeddings, got %d", len(parts), len(embeddings))}
	}

	now := time.Now().Unix()
	chunks := make([]*types.Chunk, 0, len(parts))
	for i, content := range parts {
		chunks = append(chunks, &types.Chunk{
			ID:         utils.GenUniqIDStr(),
			ResourceID: resource.ID,
			Title:      resource.Title,
			Domains:    strings.Join(domains, ","),
			AgeCohorts: strings.Join(ageCohorts, ","),
			Content:    content,
			Embedding:  pgvector.NewVector(embeddings[i]),
			CreatedAt:  now,
		})
	}

	if err := s.store.Rebuild(ctx, resource.ID, chunks); err != nil {
		return 0, fmt.Errorf("rag.Ingest.Rebuild: %w", err)
	}

	slog.Info("resource indexed",
		slog.String("resource_id", resource.ID),
		slog.String("title", resource.Title),
		slog.Int("chunks", len(chunks)))
	return len(chunks), nil
}

// Status tracks where a generation run is. Transitions only move forward.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusRetrieving Status = "retrieving"
	StatusGenerating Status = "generating"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// Orchestrator drives one plan request through retrieval and generation.
type Orchestrator struct {
	retriever *Retriever
	generator ai.Generator

	// Progress is called on every status change when set. Used for
	// logging and metrics, never for control flow.
	Progress func(Status)
}

func NewOrchestrator(retriever *Retriever, generator ai.Generator) *Orchestrator {
	return &Orchestrator{
		retriever: retriever,
		generator: generator,
	}
}

type GenerateResult struct {
	Guide   *types.Guide
	Sources []string
}

func (o *Orchestrator) setStatus(s Status) {
	if o.Progress != nil {
		o.Progress(s)
	}
}

// Generate retrieves expert context for the request, assembles the prompt
// and asks the model for a guide. The parsed guide is validated before it
// is returned, so callers can trust every required field is populated.
func (o *Orchestrator) Generate(ctx context.Context, req *types.PlanRequest) (*GenerateResult, error) {
	o.setStatus(StatusRetrieving)
	retrieved, err := o.retriever.Retrieve(ctx, req)
	if err != nil {
		o.setStatus(StatusFailed)
		return nil, err
	}

	o.setStatus(StatusGenerating)
	prompt := BuildPrompt(req, retrieved.Context, retrieved.Sources, ai.GuideSchemaJSON())

	guide, err := o.generator.GenerateGuide(ctx, prompt)
	if err != nil {
		o.setStatus(StatusFailed)
		return nil, err
	}
	if err := ai.ValidateGuide(guide); err != nil {
		o.setStatus(StatusFailed)
		return nil, err
	}
	if guide.RecommendedContent == nil {
		guide.RecommendedContent = []string{}
	}

	o.setStatus(StatusSucceeded)
	return &GenerateResult{
		Guide:   guide,
		Sources: retrieved.Sources,
	}, nil
}
