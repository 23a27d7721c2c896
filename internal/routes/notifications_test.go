package routes

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/itorK/ilp-kit/internal/config"
	"github.com/itorK/ilp-kit/internal/ledger"
	"github.com/itorK/ilp-kit/internal/logging"
	"github.com/itorK/ilp-kit/internal/notify"
)

func setupNotificationApp(t *testing.T) (*fiber.App, *int) {
	t.Helper()
	client := ledger.New(config.Ledger{
		URI:       "http://internal.example",
		PublicURI: "https://red.example",
		AdminName: "admin",
		AdminPass: "adminpass",
	}, logging.Discard())
	router := notify.NewRouter(client, logging.Discard())

	events := 0
	router.SubscribeAll(func(string, ledger.Transfer) {
		events++
	})

	app := fiber.New()
	RegisterNotificationRoutes(app, router)
	return app, &events
}

func TestNotificationWebhookEmitsEvents(t *testing.T) {
	app, events := setupNotificationApp(t)

	body := `{
		"event": "transfer.update",
		"resource": {
			"id": "t1",
			"debits": [{"account": "https://red.example/accounts/alice", "amount": "10"}],
			"credits": [{"account": "https://red.example/accounts/bob", "amount": "10"}]
		}
	}`
	req := httptest.NewRequest(fiber.MethodPost, "/notifications", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if *events != 2 {
		t.Fatalf("expected 2 events, got %d", *events)
	}
}

func TestNotificationWebhookRejectsForeignAccounts(t *testing.T) {
	app, events := setupNotificationApp(t)

	body := `{
		"event": "transfer.update",
		"resource": {
			"id": "t2",
			"debits": [{"account": "https://red.example/accounts/alice", "amount": "10"}],
			"credits": [{"account": "https://blue.example/accounts/mallory", "amount": "10"}]
		}
	}`
	req := httptest.NewRequest(fiber.MethodPost, "/notifications", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if *events != 0 {
		t.Fatalf("expected zero events, got %d", *events)
	}
}

func TestNotificationWebhookIgnoresOtherEvents(t *testing.T) {
	app, events := setupNotificationApp(t)

	req := httptest.NewRequest(fiber.MethodPost, "/notifications", strings.NewReader(`{"event":"account.update","resource":{}}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if *events != 0 {
		t.Fatalf("expected zero events, got %d", *events)
	}
}
