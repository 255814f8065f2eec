package types

const (
	USER_ROLE_TEACHER = "teacher"
	USER_ROLE_ADMIN   = "admin"
)

type User struct {
	ID                  string `json:"id" db:"id"`
	FirstName           string `json:"first_name" db:"first_name"`
	LastName            string `json:"last_name" db:"last_name"`
	Email               string `json:"email" db:"email"`
	Password            string `json:"-" db:"password"`
	City                string `json:"city" db:"city"`
	Country             string `json:"country" db:"country"`
	Role                string `json:"role" db:"role"`
	ForcePasswordChange bool   `json:"force_password_change" db:"force_password_change"`
	CreatedAt           int64  `json:"created_at" db:"created_at"`
	UpdatedAt           int64  `json:"updated_at" db:"updated_at"`
}

type AccessToken struct {
	ID        int64  `json:"id" db:"id"`
	UserID    string `json:"user_id" db:"user_id"`
	Token     string `json:"token" db:"token"`
	Info      string `json:"info" db:"info"`
	ExpiresAt int64  `json:"expires_at" db:"expires_at"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}

// UserTokenMeta is the cached shape of a resolved access token.
type UserTokenMeta struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"expires_at"`
}
