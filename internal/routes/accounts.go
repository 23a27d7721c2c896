package routes

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/itorK/ilp-kit/internal/account"
	"github.com/itorK/ilp-kit/internal/ledger"
)

// RegisterAccountRoutes proxies ledger account lookups. The caller's basic
// auth credentials are forwarded to the ledger, so authorization stays the
// ledger's decision.
func RegisterAccountRoutes(r fiber.Router, gateway *account.Gateway) {
	r.Get("/accounts/:username", func(c *fiber.Ctx) error {
		username := c.Params("username")

		password := ""
		if name, pass, ok := basicAuth(c); ok && name == username {
			password = pass
		}
		if password == "" {
			return fiber.NewError(http.StatusUnauthorized, "basic auth credentials required")
		}

		acct, err := gateway.Get(c.UserContext(), account.User{Username: username, Password: password}, false)
		if err != nil {
			var transport *ledger.TransportError
			switch {
			case errors.Is(err, account.ErrNotFound):
				return fiber.NewError(http.StatusNotFound, err.Error())
			case errors.As(err, &transport) && transport.Status == http.StatusUnauthorized:
				return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
			case errors.As(err, &transport):
				return fiber.NewError(http.StatusBadGateway, err.Error())
			default:
				return fiber.NewError(http.StatusInternalServerError, err.Error())
			}
		}
		return c.Status(http.StatusOK).JSON(acct)
	})
}
