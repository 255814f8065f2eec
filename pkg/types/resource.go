package types

const (
	RESOURCE_TYPE_TEXT = "text"
	RESOURCE_TYPE_LINK = "link"
	RESOURCE_TYPE_PDF  = "pdf"
)

type Resource struct {
	ID           string `json:"id" db:"id"`
	Title        string `json:"title" db:"title"`
	ResourceType string `json:"resource_type" db:"resource_type"`
	// ContentPath holds the raw text for text resources, the URL for link
	// resources and the stored file path for pdf resources.
	ContentPath string `json:"content_path" db:"content_path"`
	ChunkCount  int    `json:"chunk_count" db:"chunk_count"`
	CreatedAt   int64  `json:"created_at" db:"created_at"`
}

// ResourceDetail carries the tag links resolved to id lists.
type ResourceDetail struct {
	Resource
	AgeCohortIDs []int64 `json:"age_cohort_ids"`
	DomainIDs    []int64 `json:"domain_ids"`
}
