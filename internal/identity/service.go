package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/itorK/ilp-kit/internal/account"
	"github.com/itorK/ilp-kit/internal/ledger"
)

// Accounts provisions and fetches the ledger accounts backing local users.
// Satisfied by account.Gateway.
type Accounts interface {
	Create(ctx context.Context, user account.User) (ledger.Account, error)
	Get(ctx context.Context, user account.User, asAdmin bool) (ledger.Account, error)
}

// Service manages the local user registry and keeps it paired with ledger
// accounts.
type Service struct {
	repo     Repository
	accounts Accounts
}

// NewService creates a new identity service.
func NewService(repo Repository, accounts Accounts) *Service {
	return &Service{repo: repo, accounts: accounts}
}

// Register stores a new user with a hashed password and creates the matching
// ledger account with the same credentials. Ledger account creation is
// create-or-no-op, so re-registering a username that already has a ledger
// account fails on the local uniqueness check, not on the ledger.
func (s *Service) Register(ctx context.Context, creds Credentials) (User, error) {
	if creds.Username == "" {
		return User{}, errors.New("username is required")
	}
	if len(creds.Password) < 6 {
		return User{}, errors.New("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.New().String(),
		Username:     creds.Username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	if _, err := s.accounts.Create(ctx, account.User{Username: creds.Username, Password: creds.Password}); err != nil {
		return User{}, err
	}

	return user, nil
}

// Authenticate verifies the password against the stored hash.
func (s *Service) Authenticate(ctx context.Context, creds Credentials) (User, error) {
	user, err := s.repo.FindByUsername(ctx, creds.Username)
	if err != nil {
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(creds.Password)); err != nil {
		return User{}, errors.New("invalid password")
	}

	return user, nil
}

// Balance fetches the user's ledger account as administrator and returns its
// balance.
func (s *Service) Balance(ctx context.Context, username string) (string, error) {
	acct, err := s.accounts.Get(ctx, account.User{Username: username}, true)
	if err != nil {
		return "", err
	}
	return acct.Balance, nil
}
