package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/itorK/ilp-kit/internal/payment"
)

// RegisterPaymentRoutes wires payment endpoints.
func RegisterPaymentRoutes(r fiber.Router, h *payment.Handler) {
	r.Post("/quote", h.Quote)
	r.Post("/", h.Send)
}
