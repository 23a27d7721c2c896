package routes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/itorK/ilp-kit/internal/ledger"
	"github.com/itorK/ilp-kit/internal/notify"
)

// notificationRequest is the ledger's webhook envelope. Transfers arrive under
// resource with an event name like transfer.update.
type notificationRequest struct {
	ID       string          `json:"id"`
	Event    string          `json:"event"`
	Resource ledger.Transfer `json:"resource"`
}

// RegisterNotificationRoutes wires the inbound ledger webhook into the
// notification router. The endpoint sits outside the API group because its
// target URI is registered verbatim with the ledger at subscription time.
func RegisterNotificationRoutes(app *fiber.App, router *notify.Router) {
	app.Post("/notifications", func(c *fiber.Ctx) error {
		var req notificationRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}

		if req.Event != "" && !strings.HasPrefix(req.Event, "transfer") {
			return c.SendStatus(http.StatusOK)
		}

		if err := router.EmitTransferEvent(req.Resource); err != nil {
			if errors.Is(err, notify.ErrInvalidNotification) {
				return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
			}
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(http.StatusOK)
	})
}
