package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/itorK/ilp-kit/internal/ledger"
)

func TestHTTPSenderFindPath(t *testing.T) {
	var gotQuery PathQuery
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/findPath" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotQuery)
		w.Write([]byte(`[{"source_transfers":[{"debits":[{"account":"a","amount":"100"}],"credits":[]}],"destination_transfers":[]}]`))
	}))
	defer ts.Close()

	sender := NewHTTPSender(ts.URL)

	path, err := sender.FindPath(context.Background(), PathQuery{
		SourceAccount:      "https://red.example/accounts/alice",
		DestinationAccount: "https://blue.example/accounts/bob",
		SourceAmount:       "100",
	})
	if err != nil {
		t.Fatalf("find path: %v", err)
	}
	if len(path) != 1 {
		t.Fatalf("expected one leg, got %d", len(path))
	}
	if gotQuery.SourceAmount != "100" || gotQuery.DestinationAmount != "" {
		t.Fatalf("unexpected query forwarded: %+v", gotQuery)
	}
}

func TestHTTPSenderExecutePayment(t *testing.T) {
	var gotBody map[string]json.RawMessage
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/executePayment" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`[{"id":"t1"},{"id":"t2"}]`))
	}))
	defer ts.Close()

	sender := NewHTTPSender(ts.URL)

	results, err := sender.ExecutePayment(context.Background(), twoLegPath("100", "95"), ExecuteParams{
		SourceAccount:  "https://red.example/accounts/alice",
		SourcePassword: "alicepass",
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(results) != 2 || results[0].ID != "t1" {
		t.Fatalf("unexpected results: %+v", results)
	}
	if _, ok := gotBody["path"]; !ok {
		t.Fatal("expected the path in the request body")
	}
	if _, ok := gotBody["sourceAccount"]; !ok {
		t.Fatal("expected execute params in the request body")
	}
}

func TestHTTPSenderErrorPropagates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"message":"no path"}`))
	}))
	defer ts.Close()

	sender := NewHTTPSender(ts.URL)

	_, err := sender.FindPath(context.Background(), PathQuery{SourceAmount: "1"})
	var transport *ledger.TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if transport.Status != http.StatusBadGateway {
		t.Fatalf("unexpected status %d", transport.Status)
	}
}
