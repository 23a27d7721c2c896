package notify

import (
	"errors"
	"reflect"
	"testing"

	"github.com/itorK/ilp-kit/internal/config"
	"github.com/itorK/ilp-kit/internal/ledger"
	"github.com/itorK/ilp-kit/internal/logging"
)

const publicURI = "https://red.example"

func newTestRouter() *Router {
	client := ledger.New(config.Ledger{
		URI:       "http://internal.example",
		PublicURI: publicURI,
		AdminName: "admin",
		AdminPass: "adminpass",
	}, logging.Discard())
	return NewRouter(client, logging.Discard())
}

func accountURI(name string) string {
	return publicURI + "/accounts/" + name
}

func TestEmitOnePerDistinctAccountDebitsFirst(t *testing.T) {
	router := newTestRouter()

	var order []string
	router.SubscribeAll(func(account string, _ ledger.Transfer) {
		order = append(order, account)
	})

	transfer := ledger.Transfer{
		ID: "t1",
		Debits: []ledger.Entry{
			{Account: accountURI("alice"), Amount: "10"},
			{Account: accountURI("bob"), Amount: "5"},
		},
		Credits: []ledger.Entry{
			{Account: accountURI("carol"), Amount: "10"},
			{Account: accountURI("alice"), Amount: "5"},
		},
	}

	if err := router.EmitTransferEvent(transfer); err != nil {
		t.Fatalf("emit: %v", err)
	}

	want := []string{"alice", "bob", "carol"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("expected accounts %v in order, got %v", want, order)
	}
}

func TestEmitDeliversToAccountHandlers(t *testing.T) {
	router := newTestRouter()

	var aliceTransfers []ledger.Transfer
	var bobCalls int
	router.Subscribe("alice", func(_ string, transfer ledger.Transfer) {
		aliceTransfers = append(aliceTransfers, transfer)
	})
	router.Subscribe("bob", func(_ string, _ ledger.Transfer) {
		bobCalls++
	})

	transfer := ledger.Transfer{
		ID:      "t2",
		Debits:  []ledger.Entry{{Account: accountURI("alice"), Amount: "10"}},
		Credits: []ledger.Entry{{Account: accountURI("carol"), Amount: "10"}},
	}

	if err := router.EmitTransferEvent(transfer); err != nil {
		t.Fatalf("emit: %v", err)
	}

	if len(aliceTransfers) != 1 || aliceTransfers[0].ID != "t2" {
		t.Fatalf("expected alice to receive the original transfer, got %+v", aliceTransfers)
	}
	if bobCalls != 0 {
		t.Fatalf("bob is not referenced and must not be notified")
	}
}

func TestEmitRejectsForeignAccountEntirely(t *testing.T) {
	router := newTestRouter()

	events := 0
	router.SubscribeAll(func(string, ledger.Transfer) {
		events++
	})

	transfer := ledger.Transfer{
		ID:     "t3",
		Debits: []ledger.Entry{{Account: accountURI("alice"), Amount: "10"}},
		Credits: []ledger.Entry{
			{Account: "https://blue.example/accounts/mallory", Amount: "10"},
		},
	}

	err := router.EmitTransferEvent(transfer)
	if !errors.Is(err, ErrInvalidNotification) {
		t.Fatalf("expected ErrInvalidNotification, got %v", err)
	}
	if events != 0 {
		t.Fatalf("expected zero events on invalid notification, got %d", events)
	}
}
