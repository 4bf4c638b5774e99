package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/smartservices-app/backend_api/internal/utils"
)

// JWTFromHeader authenticates via "Authorization: Bearer <token>". The
// mobile clients hold the token from /auth/login in app storage, so there
// is no cookie involved.
func JWTFromHeader(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get(fiber.HeaderAuthorization)
		if auth == "" {
			return fiber.ErrUnauthorized
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if tokenStr == "" || tokenStr == auth {
			return fiber.ErrUnauthorized
		}

		claims, err := utils.ParseJWT(secret, tokenStr)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		c.Locals("claims", claims)
		return c.Next()
	}
}
