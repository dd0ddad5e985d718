package domain

import "time"

// User is a registered account. Email doubles as the login identifier and is
// unique across all users. The plaintext password never appears here; only
// the argon2id encoded hash is persisted.
type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string // argon2 encoded
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
