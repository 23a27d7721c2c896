package routes

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/itorK/ilp-kit/internal/identity"
)

// RegisterUserRoutes wires user registration and authentication; registering
// also provisions the ledger account.
func RegisterUserRoutes(r fiber.Router, users *identity.Service, logger *slog.Logger) {
	r.Post("/users", func(c *fiber.Ctx) error {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		user, err := users.Register(c.UserContext(), identity.Credentials{Username: req.Username, Password: req.Password})
		if err != nil {
			if errors.Is(err, identity.ErrUserExists) {
				return fiber.NewError(http.StatusConflict, err.Error())
			}
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if logger != nil {
			logger.Info("user registered",
				slog.String("user_id", user.ID),
				slog.String("username", user.Username),
			)
		}
		return c.Status(http.StatusCreated).JSON(fiber.Map{
			"user_id":    user.ID,
			"username":   user.Username,
			"created_at": user.CreatedAt,
		})
	})

	r.Get("/users/:username/balance", func(c *fiber.Ctx) error {
		username := c.Params("username")
		name, pass, ok := basicAuth(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, "basic auth credentials required")
		}
		if name != username {
			return fiber.NewError(http.StatusForbidden, "credentials do not match requested user")
		}
		if _, err := users.Authenticate(c.UserContext(), identity.Credentials{Username: name, Password: pass}); err != nil {
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		}
		balance, err := users.Balance(c.UserContext(), username)
		if err != nil {
			return fiber.NewError(http.StatusBadGateway, err.Error())
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{"username": username, "balance": balance})
	})

	r.Post("/users/authenticate", func(c *fiber.Ctx) error {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		user, err := users.Authenticate(c.UserContext(), identity.Credentials{Username: req.Username, Password: req.Password})
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"user_id":  user.ID,
			"username": user.Username,
		})
	})
}
