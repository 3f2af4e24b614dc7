package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ClientIP derives the client identity used for rate limiting and captcha
// verification. Preference order: CDN-supplied header, first entry of the
// forwarded-for chain, raw transport peer address.
func ClientIP(c *fiber.Ctx) string {
	if ip := strings.TrimSpace(c.Get("CF-Connecting-IP")); ip != "" {
		return ip
	}
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	return c.IP()
}
