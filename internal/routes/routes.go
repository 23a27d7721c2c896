package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/itorK/ilp-kit/internal/account"
	"github.com/itorK/ilp-kit/internal/config"
	"github.com/itorK/ilp-kit/internal/identity"
	"github.com/itorK/ilp-kit/internal/ledger"
	"github.com/itorK/ilp-kit/internal/middleware"
	"github.com/itorK/ilp-kit/internal/notify"
	"github.com/itorK/ilp-kit/internal/payment"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Ledger *ledger.Client
	Router *notify.Router
	Sender payment.Sender
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	RegisterHealthRoutes(app, d)
	RegisterNotificationRoutes(app, d.Router)

	gateway := account.NewGateway(d.Ledger)

	var userRepo identity.Repository
	if d.DB != nil {
		userRepo = identity.NewPostgresRepository(d.DB)
	} else {
		userRepo = identity.NewMemoryRepository()
	}
	userSvc := identity.NewService(userRepo, gateway)

	orchestrator := payment.NewOrchestrator(d.Ledger, d.Sender, d.Logger)
	paymentHandler := payment.NewHandler(orchestrator)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterUserRoutes(api, userSvc, d.Logger)
	RegisterAccountRoutes(api, gateway)

	payments := api.Group("/payments")
	if d.Cache != nil {
		payments.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}
	RegisterPaymentRoutes(payments, paymentHandler)

	return nil
}
