package types

type AgeCohort struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}

type Domain struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}

type Component struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	AgeCohortID int64  `json:"age_cohort_id" db:"age_cohort_id"`
	DomainID    int64  `json:"domain_id" db:"domain_id"`
	CreatedAt   int64  `json:"created_at" db:"created_at"`
}

// ComponentDetail joins in the cohort/domain names for list responses.
type ComponentDetail struct {
	Component
	AgeCohortName string `json:"age_cohort_name" db:"age_cohort_name"`
	DomainName    string `json:"domain_name" db:"domain_name"`
}

const PLAY_CONTEXT_STANDARD = "Standard"

type PlayType struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Context     string `json:"context" db:"context"`
	CreatedAt   int64  `json:"created_at" db:"created_at"`
}

// PlayTypeDetail carries the many-to-many links resolved to id lists.
type PlayTypeDetail struct {
	PlayType
	AgeCohortIDs []int64 `json:"age_cohort_ids"`
	DomainIDs    []int64 `json:"domain_ids"`
}

// GuideOptions is the nested feed for the plan wizard:
// cohort name -> domain name -> component names, plus the play types
// valid for each "{cohortID}-{domainID}" pair.
type GuideOptions struct {
	AgeCohorts map[string]map[string][]string `json:"age_cohorts"`
	PlayTypes  map[string][]PlayTypeDetail    `json:"play_types"`
}
