package handlers

import (
	"time"

	"speedballhub/internal/app"
	authController "speedballhub/internal/controllers/auth"
	"speedballhub/internal/logger"
	. "speedballhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	controller  *authController.AuthController
	environment string
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	log := logger.New("handlers").File("auth_handler")
	return &AuthHandler{
		controller:  app.AuthController,
		environment: app.Config.Environment,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")
	auth.Post("/login", h.login)
	auth.Post("/logout", h.logout)
	auth.Get("/verify", h.verify)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	log := h.log.Function("login")

	var request LoginRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse login request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse login request"})
	}

	session, err := h.controller.Login(c.Context(), &request)
	if err != nil {
		return respondError(c, log, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     authController.SessionCookieName,
		Value:    session.Token,
		HTTPOnly: true,
		Secure:   h.environment == "production",
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(authController.SESSION_EXPIRY),
	})

	return c.JSON(fiber.Map{"message": "Login successful", "user": session.User})
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	log := h.log.Function("logout")

	token := c.Cookies(authController.SessionCookieName)
	if err := h.controller.Logout(c.Context(), token); err != nil {
		return respondError(c, log, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     authController.SessionCookieName,
		Value:    "",
		HTTPOnly: true,
		Expires:  time.Now().Add(-time.Hour),
	})

	return c.JSON(fiber.Map{"message": "Logout successful"})
}

func (h *AuthHandler) verify(c *fiber.Ctx) error {
	token := c.Cookies(authController.SessionCookieName)

	user, ok := h.controller.Verify(c.Context(), token)
	if !ok {
		return c.JSON(fiber.Map{"authenticated": false})
	}

	return c.JSON(fiber.Map{"authenticated": true, "user": user})
}
