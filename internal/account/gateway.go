package account

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/itorK/ilp-kit/internal/ledger"
)

const (
	// defaultBalance is the opening balance for accounts created without one.
	defaultBalance = "1000"

	// notFoundID is the error identifier the ledger uses for missing resources.
	notFoundID = "NotFoundError"
)

// ErrNotFound reports that the ledger has no account for the requested user.
// The ledger's message is preserved in the wrapping error.
var ErrNotFound = errors.New("account not found")

// User identifies a ledger account holder. Password doubles as the end-user
// ledger credential; Balance is only honored at creation time.
type User struct {
	Username string
	Password string
	Balance  string
}

// Gateway proxies account operations to the ledger.
type Gateway struct {
	client *ledger.Client
}

// NewGateway builds an account gateway on top of the ledger client.
func NewGateway(client *ledger.Client) *Gateway {
	return &Gateway{client: client}
}

// Get fetches the user's account, authenticating as the ledger administrator
// when asAdmin is set and as the user otherwise. A ledger not-found response
// is translated into ErrNotFound; all other failures propagate as-is.
func (g *Gateway) Get(ctx context.Context, user User, asAdmin bool) (ledger.Account, error) {
	creds := ledger.Credentials{Name: user.Username, Pass: user.Password}
	if asAdmin {
		creds = g.client.Admin()
	}

	var acct ledger.Account
	if err := g.client.Get(ctx, "/accounts/"+user.Username, creds, &acct); err != nil {
		var transport *ledger.TransportError
		if errors.As(err, &transport) && transport.Body != "" {
			var body ledger.ErrorBody
			if json.Unmarshal([]byte(transport.Body), &body) == nil && body.ID == notFoundID {
				return ledger.Account{}, fmt.Errorf("%w: %s", ErrNotFound, body.Message)
			}
		}
		return ledger.Account{}, err
	}
	return acct, nil
}

// Create registers the user's account on the ledger, administrator
// authenticated, with the default opening balance unless one is supplied.
//
// Create is create-or-no-op: the ledger answers a repeated creation with 422,
// which is suppressed here and yields a zero Account. The ledger is the source
// of truth, so a second call with different content is silently ignored --
// callers that need the stored representation must follow up with Get.
func (g *Gateway) Create(ctx context.Context, user User) (ledger.Account, error) {
	balance := user.Balance
	if balance == "" {
		balance = defaultBalance
	}

	body := ledger.Account{Name: user.Username, Balance: balance}
	if user.Password != "" {
		body.Password = user.Password
	}

	var created ledger.Account
	err := g.client.Put(ctx, "/accounts/"+user.Username, g.client.Admin(), body, &created)
	if errors.Is(err, ledger.ErrAlreadyExists) {
		return ledger.Account{}, nil
	}
	if err != nil {
		return ledger.Account{}, err
	}
	return created, nil
}
