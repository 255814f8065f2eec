package types

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/pgvector/pgvector-go"
)

// Chunk is one embedded text window of a resource. Title and tag metadata
// are denormalized onto the row so retrieval can report sources without a
// second lookup.
type Chunk struct {
	ID         string          `json:"id" db:"id"`
	ResourceID string          `json:"resource_id" db:"resource_id"`
	Title      string          `json:"title" db:"title"`
	Domains    string          `json:"domains" db:"domains"`         // csv of domain names
	AgeCohorts string          `json:"age_cohorts" db:"age_cohorts"` // csv of cohort names
	Content    string          `json:"content" db:"content"`
	Embedding  pgvector.Vector `json:"embedding" db:"embedding"`
	CreatedAt  int64           `json:"created_at" db:"created_at"`
}

// ChunkMatch is a query hit: the chunk plus its cosine similarity to the
// query vector. The embedding is selected too so marginal-relevance
// re-ranking can run on the caller side.
type ChunkMatch struct {
	ID         string          `json:"id" db:"id"`
	ResourceID string          `json:"resource_id" db:"resource_id"`
	Title      string          `json:"title" db:"title"`
	Content    string          `json:"content" db:"content"`
	Embedding  pgvector.Vector `json:"embedding" db:"embedding"`
	Cos        float32         `json:"cos" db:"cos"`
}

type GetChunksOptions struct {
	ID         string
	ResourceID string
}

func (opts GetChunksOptions) Apply(query *sq.SelectBuilder) {
	if opts.ID != "" {
		*query = query.Where(sq.Eq{"id": opts.ID})
	}
	if opts.ResourceID != "" {
		*query = query.Where(sq.Eq{"resource_id": opts.ResourceID})
	}
}
