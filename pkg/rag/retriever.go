package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pgvector/pgvector-go"
	"github.com/samber/lo"

	"github.com/sproutplan/sproutplan/pkg/ai"
	"github.com/sproutplan/sproutplan/pkg/types"
)

// ChunkQuerier is the slice of the chunk store retrieval needs: the
// closest matches to a query vector, embeddings included so reranking can
// happen caller side.
type ChunkQuerier interface {
	Query(ctx context.Context, vector pgvector.Vector, limit int) ([]*types.ChunkMatch, error)
}

type RetrieveResult struct {
	// Context is the text block handed to the generation prompt. When the
	// library has no match it carries the general-knowledge fallback
	// instruction instead of chunk content.
	Context string
	Sources []string
	Chunks  []*types.ChunkMatch
}

type Retriever struct {
	embedder ai.Embedder
	store    ChunkQuerier
}

func NewRetriever(embedder ai.Embedder, store ChunkQuerier) *Retriever {
	return &Retriever{
		embedder: embedder,
		store:    store,
	}
}

// Retrieve embeds the request query, pulls the closest candidates and
// reranks them with maximal marginal relevance down to the final context
// window.
func (r *Retriever) Retrieve(ctx context.Context, req *types.PlanRequest) (RetrieveResult, error) {
	query := BuildQuery(req)

	vector, err := r.embedder.EmbeddingForQuery(ctx, query)
	if err != nil {
		return RetrieveResult{}, fmt.Errorf("rag.Retrieve.EmbeddingForQuery: %w", err)
	}

	matches, err := r.store.Query(ctx, pgvector.NewVector(vector), types.RETRIEVE_CANDIDATES)
	if err != nil {
		return RetrieveResult{}, fmt.Errorf("rag.Retrieve.Query: %w", err)
	}

	if len(matches) == 0 {
		slog.Debug("no chunks matched, falling back to general knowledge", slog.String("query", query))
		return RetrieveResult{
			Context: types.NO_CONTEXT_SENTINEL,
			Sources: []string{types.FALLBACK_SOURCE},
		}, nil
	}

	embeddings := lo.Map(matches, func(m *types.ChunkMatch, _ int) []float32 {
		return m.Embedding.Slice()
	})
	picked := MMR(vector, embeddings, types.RETRIEVE_TOP_K, types.RETRIEVE_LAMBDA)

	selected := lo.Map(picked, func(i int, _ int) *types.ChunkMatch {
		return matches[i]
	})

	return RetrieveResult{
		Context: buildContext(selected),
		Sources: lo.Uniq(lo.Map(selected, func(m *types.ChunkMatch, _ int) string {
			return m.Title
		})),
		Chunks: selected,
	}, nil
}

func buildContext(chunks []*types.ChunkMatch) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, fmt.Sprintf("Source: %s\n%s", c.Title, c.Content))
	}
	return strings.Join(parts, "\n\n---\n\n")
}
