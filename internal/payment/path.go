package payment

import (
	"github.com/itorK/ilp-kit/internal/ledger"
)

// Leg is one ledger-local hop of an interledger payment path: the transfers a
// connector receives on its source ledger and the transfers it issues on its
// destination ledger.
type Leg struct {
	SourceTransfers      []ledger.Transfer `json:"source_transfers"`
	DestinationTransfers []ledger.Transfer `json:"destination_transfers"`
}

// Path is an ordered sequence of legs produced by the path-finding
// collaborator. The orchestrator only consumes it; leg N's credit typically
// funds leg N+1's debit, so execution order is a correctness requirement.
type Path []Leg

// sourceDebit returns the first leg's source debit entry.
func (p Path) sourceDebit() (ledger.Entry, bool) {
	if len(p) == 0 || len(p[0].SourceTransfers) == 0 || len(p[0].SourceTransfers[0].Debits) == 0 {
		return ledger.Entry{}, false
	}
	return p[0].SourceTransfers[0].Debits[0], true
}

// destinationCredit returns the last leg's destination credit entry.
func (p Path) destinationCredit() (ledger.Entry, bool) {
	last := len(p) - 1
	if last < 0 || len(p[last].DestinationTransfers) == 0 || len(p[last].DestinationTransfers[0].Credits) == 0 {
		return ledger.Entry{}, false
	}
	return p[last].DestinationTransfers[0].Credits[0], true
}
