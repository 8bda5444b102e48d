package domain

// AccountType classifies a user account.
type AccountType string

const (
	Personal   AccountType = "Personal"
	Student    AccountType = "Student"
	Instructor AccountType = "Instructor"
)

// User is a classroom participant. Public controls leaderboard visibility.
type User struct {
	UserID       string      `json:"userID"` // Primary Key (UUID)
	Email        string      `json:"email"`  // Unique login identifier
	FirstName    string      `json:"firstName"`
	LastName     string      `json:"lastName"`
	AccountType  AccountType `json:"accountType"`
	Public       bool        `json:"public"`
	PasswordHash string      `json:"-"`
	Following    []string    `json:"following"` // BlockchainIDs the user follows
	AuditFields
}
