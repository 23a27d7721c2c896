package payment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/itorK/ilp-kit/internal/ledger"
)

const (
	// destinationForeign marks a destination living on another ledger.
	destinationForeign = "foreign"

	expiryFormat = "2006-01-02T15:04:05.000Z"
	expiryWindow = time.Minute
)

var (
	// ErrAmountAmbiguous reports a request that does not fix exactly one of
	// the source and destination amounts.
	ErrAmountAmbiguous = errors.New("exactly one of source amount and destination amount must be set")

	// ErrMalformedPath reports a payment path missing the entries the
	// orchestrator derives its metadata from.
	ErrMalformedPath = errors.New("payment path is missing transfer entries")

	// ErrEmptyResult reports a path execution that returned no transfers.
	ErrEmptyResult = errors.New("path execution returned no transfers")
)

// Destination describes where a payment should land: an account URI on this
// ledger, or a foreign-ledger descriptor paired with a precomputed path.
type Destination struct {
	Type       string
	AccountURI string
}

// Request is the orchestrator's input. Exactly one of SourceAmount and
// DestinationAmount must be set. Path is required for foreign destinations
// and ignored otherwise.
type Request struct {
	Username          string
	Password          string
	SourceAmount      string
	DestinationAmount string
	Destination       Destination
	Path              Path
}

// Orchestrator turns payment requests into ledger transfers. Direct transfers
// go straight to the ledger; cross-ledger payments are delegated whole to the
// Sender. Every call submits at most once and never retries.
type Orchestrator struct {
	client *ledger.Client
	sender Sender
	logger *slog.Logger
}

// NewOrchestrator builds a payment orchestrator.
func NewOrchestrator(client *ledger.Client, sender Sender, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{client: client, sender: sender, logger: logger}
}

// FindPath asks the sender collaborator for a payment path from the payer to
// the destination at the requested amount.
func (o *Orchestrator) FindPath(ctx context.Context, req Request) (Path, error) {
	if err := validateAmounts(req); err != nil {
		return nil, err
	}

	query := PathQuery{
		SourceAccount:      o.client.AccountURI(req.Username),
		DestinationAccount: req.Destination.AccountURI,
	}
	if req.SourceAmount != "" {
		query.SourceAmount = req.SourceAmount
	} else {
		query.DestinationAmount = req.DestinationAmount
	}
	return o.sender.FindPath(ctx, query)
}

// Send executes the payment and returns the resulting transfer record
// unchanged. Transport failures propagate uninterpreted.
func (o *Orchestrator) Send(ctx context.Context, req Request) (ledger.Transfer, error) {
	if err := validateAmounts(req); err != nil {
		return ledger.Transfer{}, err
	}

	if req.Destination.Type == destinationForeign {
		return o.sendForeign(ctx, req)
	}
	return o.sendDirect(ctx, req)
}

// sendDirect submits a single pre-authorized transfer on this ledger,
// authenticated as the payer.
func (o *Orchestrator) sendDirect(ctx context.Context, req Request) (ledger.Transfer, error) {
	amount := req.DestinationAmount
	if amount == "" {
		amount = req.SourceAmount
	}

	sourceAccount := o.client.AccountURI(req.Username)
	transfer := ledger.Transfer{
		Debits: []ledger.Entry{{
			Account:    sourceAccount,
			Amount:     amount,
			Authorized: true,
		}},
		Credits: []ledger.Entry{{
			Account: req.Destination.AccountURI,
			Amount:  amount,
		}},
		ExpiresAt: time.Now().UTC().Add(expiryWindow).Format(expiryFormat),
	}

	id := uuid.NewString()
	o.logger.Debug("submitting direct transfer", "transfer_id", id, "source", sourceAccount, "destination", req.Destination.AccountURI)

	var created ledger.Transfer
	creds := ledger.Credentials{Name: req.Username, Pass: req.Password}
	if err := o.client.Put(ctx, "/transfers/"+id, creds, transfer, &created); err != nil {
		return ledger.Transfer{}, err
	}
	return created, nil
}

// sendForeign hands the precomputed path to the sender. The source metadata
// comes from the first leg's debit, the destination metadata from the last
// leg's credit; the first transfer of the execution result is the canonical
// outcome.
func (o *Orchestrator) sendForeign(ctx context.Context, req Request) (ledger.Transfer, error) {
	debit, ok := req.Path.sourceDebit()
	if !ok {
		return ledger.Transfer{}, ErrMalformedPath
	}
	credit, ok := req.Path.destinationCredit()
	if !ok {
		return ledger.Transfer{}, ErrMalformedPath
	}

	sourceAccount := o.client.AccountURI(req.Username)
	o.logger.Debug("executing payment path", "source", sourceAccount, "destination", req.Destination.AccountURI, "legs", len(req.Path))

	results, err := o.sender.ExecutePayment(ctx, req.Path, ExecuteParams{
		SourceAccount:      sourceAccount,
		SourcePassword:     req.Password,
		DestinationAccount: req.Destination.AccountURI,
		AdditionalInfo: AdditionalInfo{
			SourceAccount:      sourceAccount,
			SourceAmount:       debit.Amount,
			DestinationAccount: req.Destination.AccountURI,
			DestinationAmount:  credit.Amount,
		},
	})
	if err != nil {
		return ledger.Transfer{}, err
	}
	if len(results) == 0 {
		return ledger.Transfer{}, ErrEmptyResult
	}
	return results[0], nil
}

func validateAmounts(req Request) error {
	if (req.SourceAmount == "") == (req.DestinationAmount == "") {
		return ErrAmountAmbiguous
	}
	return nil
}
