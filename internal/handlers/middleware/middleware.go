package middleware

import (
	"time"

	"speedballhub/config"
	authController "speedballhub/internal/controllers/auth"
	"speedballhub/internal/database"
	"speedballhub/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type Middleware struct {
	auth   *authController.AuthController
	config config.Config
	log    logger.Logger
}

func New(db database.DB, config config.Config, auth *authController.AuthController) Middleware {
	return Middleware{
		auth:   auth,
		config: config,
		log:    logger.New("middleware"),
	}
}

// RequestLogger logs every request with its status and duration.
func (m Middleware) RequestLogger() fiber.Handler {
	log := m.log.Function("RequestLogger")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Info("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return err
	}
}

// RequireAdmin rejects requests without a valid admin session cookie and
// stores the authenticated user in locals for downstream handlers.
func (m Middleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(authController.SessionCookieName)

		user, ok := m.auth.Verify(c.Context(), token)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"message": "Authentication required"})
		}

		c.Locals("user", *user)
		return c.Next()
	}
}
