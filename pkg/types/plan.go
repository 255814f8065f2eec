package types

import "encoding/json"

type Plan struct {
	ID        string `json:"id" db:"id"`
	UserID    string `json:"user_id" db:"user_id"`
	Title     string `json:"title" db:"title"`
	Content   string `json:"content" db:"content"`
	AgeCohort string `json:"age_cohort" db:"age_cohort"`
	Subject   string `json:"subject" db:"subject"`
	PlayType  string `json:"play_type" db:"play_type"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}

type ActivityLog struct {
	ID        int64  `json:"id" db:"id"`
	UserID    string `json:"user_id" db:"user_id"`
	Action    string `json:"action" db:"action"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}

// ActivityLogDetail joins in the acting user's email for the admin view.
type ActivityLogDetail struct {
	ActivityLog
	UserEmail string `json:"user_email" db:"user_email"`
}

const (
	FEEDBACK_RATING_GOOD = 1
	FEEDBACK_RATING_BAD  = -1
)

type FeedbackLog struct {
	ID              int64           `json:"id" db:"id"`
	UserID          string          `json:"user_id" db:"user_id"`
	Rating          int             `json:"rating" db:"rating"`
	Selections      json.RawMessage `json:"selections" db:"selections"`
	GeneratedOutput json.RawMessage `json:"generated_output" db:"generated_output"`
	CreatedAt       int64           `json:"created_at" db:"created_at"`
}
