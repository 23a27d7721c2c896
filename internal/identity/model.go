package identity

import "time"

// User is a registered account holder. The ledger account of the same name is
// the source of truth for balances; this record only carries the local login.
type User struct {
	ID           string
	Username     string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Credentials request structure.
type Credentials struct {
	Username string
	Password string
}
