package notify

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/itorK/ilp-kit/internal/ledger"
)

// ErrInvalidNotification reports a transfer notification referencing an
// account outside the configured ledger's namespace. A single foreign URI
// means misconfiguration or a spoofed notification, so the whole event is
// rejected and nothing is emitted.
var ErrInvalidNotification = errors.New("invalid notification")

// Handler consumes transfer events for a single account.
type Handler func(account string, transfer ledger.Transfer)

// Router fans inbound transfer notifications out to per-account handlers. The
// registry is keyed by account identifier; a wildcard list receives every
// event.
type Router struct {
	prefix string
	logger *slog.Logger

	mu       sync.RWMutex
	handlers map[string][]Handler
	wildcard []Handler
}

// NewRouter builds a router validating against the client's public accounts
// namespace.
func NewRouter(client *ledger.Client, logger *slog.Logger) *Router {
	return &Router{
		prefix:   client.AccountURI(""),
		logger:   logger,
		handlers: make(map[string][]Handler),
	}
}

// Subscribe registers a handler for one account's transfer events.
func (r *Router) Subscribe(account string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[account] = append(r.handlers[account], h)
}

// SubscribeAll registers a handler for every account's transfer events.
func (r *Router) SubscribeAll(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wildcard = append(r.wildcard, h)
}

// EmitTransferEvent delivers one event per distinct account referenced by the
// transfer's debits and credits, in discovery order (debits first). Every
// referenced URI must sit under the public accounts namespace; any violation
// fails the whole call with ErrInvalidNotification before any handler runs.
func (r *Router) EmitTransferEvent(transfer ledger.Transfer) error {
	r.logger.Debug("received notification for transfer", "transfer_id", transfer.ID)

	seen := make(map[string]bool)
	accounts := make([]string, 0, len(transfer.Debits)+len(transfer.Credits))
	for _, entry := range append(append([]ledger.Entry{}, transfer.Debits...), transfer.Credits...) {
		if !strings.HasPrefix(entry.Account, r.prefix) {
			return fmt.Errorf("%w: account %q is outside %s", ErrInvalidNotification, entry.Account, r.prefix)
		}
		name := entry.Account[len(r.prefix):]
		if seen[name] {
			continue
		}
		seen[name] = true
		accounts = append(accounts, name)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	r.logger.Debug("posting notification to accounts", "accounts", strings.Join(accounts, ","))
	for _, name := range accounts {
		for _, h := range r.handlers[name] {
			h(name, transfer)
		}
		for _, h := range r.wildcard {
			h(name, transfer)
		}
	}
	return nil
}
