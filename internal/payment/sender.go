package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/itorK/ilp-kit/internal/ledger"
)

// PathQuery describes the endpoints and the single fixed amount of a wanted
// payment path.
type PathQuery struct {
	SourceAccount      string `json:"sourceAccount"`
	DestinationAccount string `json:"destinationAccount"`
	SourceAmount       string `json:"sourceAmount,omitempty"`
	DestinationAmount  string `json:"destinationAmount,omitempty"`
}

// ExecuteParams carries the payer identity and the derived payment metadata
// handed to the path executor.
type ExecuteParams struct {
	SourceAccount      string         `json:"sourceAccount"`
	SourcePassword     string         `json:"sourcePassword"`
	DestinationAccount string         `json:"destinationAccount"`
	AdditionalInfo     AdditionalInfo `json:"additionalInfo"`
}

// AdditionalInfo is attached to every transfer of an executed path so
// receiving ledgers can reconstruct the end-to-end payment.
type AdditionalInfo struct {
	SourceAccount      string `json:"source_account"`
	SourceAmount       string `json:"source_amount"`
	DestinationAccount string `json:"destination_account"`
	DestinationAmount  string `json:"destination_amount"`
}

// Sender is the external interledger collaborator: it discovers payment paths
// and executes all legs of a precomputed path in order. Path routing itself is
// out of this service's hands.
type Sender interface {
	FindPath(ctx context.Context, query PathQuery) (Path, error)
	ExecutePayment(ctx context.Context, path Path, params ExecuteParams) ([]ledger.Transfer, error)
}

// HTTPSender talks to a five-bells-sender compatible service.
type HTTPSender struct {
	uri    string
	client *http.Client
}

// NewHTTPSender builds a sender client for the given base URI.
func NewHTTPSender(uri string) *HTTPSender {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
	}
	return &HTTPSender{uri: uri, client: &http.Client{Transport: transport}}
}

// FindPath asks the sender service for a payment path matching the query.
func (s *HTTPSender) FindPath(ctx context.Context, query PathQuery) (Path, error) {
	var path Path
	if err := s.post(ctx, "/findPath", query, &path); err != nil {
		return nil, err
	}
	return path, nil
}

type executeRequest struct {
	Path Path `json:"path"`
	ExecuteParams
}

// ExecutePayment runs every leg of the path sequentially and returns the
// resulting transfers, first leg first.
func (s *HTTPSender) ExecutePayment(ctx context.Context, path Path, params ExecuteParams) ([]ledger.Transfer, error) {
	var transfers []ledger.Transfer
	if err := s.post(ctx, "/executePayment", executeRequest{Path: path, ExecuteParams: params}, &transfers); err != nil {
		return nil, err
	}
	return transfers, nil
}

func (s *HTTPSender) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode sender request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.uri+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build sender request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return &ledger.TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ledger.TransportError{Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ledger.TransportError{Status: resp.StatusCode, Body: string(raw)}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode sender response: %w", err)
	}
	return nil
}
