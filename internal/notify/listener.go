package notify

import (
	"log/slog"

	"github.com/itorK/ilp-kit/internal/ledger"
)

// LoggerListener is a wildcard subscriber that writes a structured notice per
// account event. Downstream consumers (balance refresh, user notifications)
// hang off the same registry.
type LoggerListener struct {
	logger *slog.Logger
}

// NewLoggerListener constructs a logging listener.
func NewLoggerListener(logger *slog.Logger) *LoggerListener {
	return &LoggerListener{logger: logger}
}

// Notify records the event. Implements the router Handler signature.
func (l *LoggerListener) Notify(account string, transfer ledger.Transfer) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Info("transfer notification", "account", account, "transfer_id", transfer.ID, "state", transfer.State)
}
