package subscription

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/itorK/ilp-kit/internal/ledger"
)

// Manager registers this process as a wildcard transfer-event subscriber with
// the ledger. It runs once at startup; a failed registration blocks readiness.
type Manager struct {
	client *ledger.Client
	target string
	logger *slog.Logger
}

// NewManager builds a subscription manager delivering notifications to
// baseURI/notifications.
func NewManager(client *ledger.Client, baseURI string, logger *slog.Logger) *Manager {
	return &Manager{client: client, target: baseURI + "/notifications", logger: logger}
}

// Subscribe registers a wildcard subscription under a freshly generated
// identifier, administrator authenticated. The ledger answers a duplicate
// registration with 422, which is treated as already-subscribed; any other
// failure propagates without retry.
func (m *Manager) Subscribe(ctx context.Context) error {
	id := uuid.NewString()
	m.logger.Info("subscribing to ledger notifications", "subscription_id", id, "target", m.target)

	sub := ledger.Subscription{
		Owner:   m.client.Admin().Name,
		Event:   "*",
		Subject: "*",
		Target:  m.target,
	}

	err := m.client.Put(ctx, "/subscriptions/"+id, m.client.Admin(), sub, nil)
	if errors.Is(err, ledger.ErrAlreadyExists) {
		m.logger.Info("ledger subscription already registered")
		return nil
	}
	return err
}
