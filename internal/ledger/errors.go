package ledger

import (
	"errors"
	"fmt"
)

// ErrAlreadyExists reports a 422 response. The ledger signals idempotent
// replays (duplicate account creation, re-subscription) this way; callers that
// want create-or-no-op semantics suppress it with errors.Is. It never carries
// a payload.
var ErrAlreadyExists = errors.New("ledger resource already exists")

// TransportError is any non-2xx, non-422 response or a network-level failure.
// It is classified once at the transport boundary and propagated unchanged.
type TransportError struct {
	Status int
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ledger request failed: %v", e.Err)
	}
	return fmt.Sprintf("ledger responded with status %d: %s", e.Status, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
