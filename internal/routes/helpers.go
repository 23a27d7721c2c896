package routes

import (
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// basicAuth extracts the username and password from a Basic Authorization
// header.
func basicAuth(c *fiber.Ctx) (string, string, bool) {
	const prefix = "Basic "
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, prefix) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}
	name, pass, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return "", "", false
	}
	return name, pass, true
}
