package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/itorK/ilp-kit/internal/config"
	"github.com/itorK/ilp-kit/internal/ledger"
	"github.com/itorK/ilp-kit/internal/logging"
)

func newGateway(uri string) *Gateway {
	client := ledger.New(config.Ledger{
		URI:       uri,
		PublicURI: "https://red.example",
		AdminName: "admin",
		AdminPass: "adminpass",
	}, logging.Discard())
	return NewGateway(client)
}

func TestGetAsAdminUsesAdminCredentials(t *testing.T) {
	var gotUser, gotPass string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		w.Write([]byte(`{"name":"alice","balance":"1000"}`))
	}))
	defer ts.Close()

	gateway := newGateway(ts.URL)

	acct, err := gateway.Get(context.Background(), User{Username: "alice", Password: "alicepass"}, true)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotUser != "admin" || gotPass != "adminpass" {
		t.Fatalf("expected admin credentials, got %s:%s", gotUser, gotPass)
	}
	if acct.Name != "alice" {
		t.Fatalf("unexpected account: %+v", acct)
	}
}

func TestGetAsUserUsesUserCredentials(t *testing.T) {
	var gotUser string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _, _ = r.BasicAuth()
		w.Write([]byte(`{"name":"alice","balance":"1000"}`))
	}))
	defer ts.Close()

	gateway := newGateway(ts.URL)

	if _, err := gateway.Get(context.Background(), User{Username: "alice", Password: "alicepass"}, false); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotUser != "alice" {
		t.Fatalf("expected user credentials, got %s", gotUser)
	}
}

func TestGetTranslatesNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"id":"NotFoundError","message":"unknown account bob"}`))
	}))
	defer ts.Close()

	gateway := newGateway(ts.URL)

	_, err := gateway.Get(context.Background(), User{Username: "bob"}, true)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var transport *ledger.TransportError
	if errors.As(err, &transport) {
		t.Fatalf("not-found must not surface as transport error: %v", err)
	}
	if want := "unknown account bob"; err != nil && !strings.Contains(err.Error(), want) {
		t.Fatalf("expected ledger message %q preserved in %q", want, err.Error())
	}
}

func TestGetOtherErrorsPropagate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"id":"InternalError","message":"boom"}`))
	}))
	defer ts.Close()

	gateway := newGateway(ts.URL)

	_, err := gateway.Get(context.Background(), User{Username: "alice"}, true)
	var transport *ledger.TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestCreateDefaultsBalanceAndAuthenticatesAsAdmin(t *testing.T) {
	var gotUser string
	var gotBody ledger.Account
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _, _ = r.BasicAuth()
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if r.URL.Path != "/accounts/alice" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"name":"alice","balance":"1000"}`))
	}))
	defer ts.Close()

	gateway := newGateway(ts.URL)

	acct, err := gateway.Create(context.Background(), User{Username: "alice", Password: "alicepass"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if gotUser != "admin" {
		t.Fatalf("expected admin auth, got %s", gotUser)
	}
	if gotBody.Name != "alice" || gotBody.Balance != "1000" || gotBody.Password != "alicepass" {
		t.Fatalf("unexpected request body: %+v", gotBody)
	}
	if acct.Balance != "1000" {
		t.Fatalf("unexpected account: %+v", acct)
	}
}

func TestCreateTwiceIsNoOp(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"name":"alice","balance":"1000"}`))
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer ts.Close()

	gateway := newGateway(ts.URL)

	if _, err := gateway.Create(context.Background(), User{Username: "alice"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	acct, err := gateway.Create(context.Background(), User{Username: "alice"})
	if err != nil {
		t.Fatalf("second create must not fail: %v", err)
	}
	if acct != (ledger.Account{}) {
		t.Fatalf("replayed create must return zero account, got %+v", acct)
	}
}
