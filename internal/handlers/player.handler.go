package handlers

import (
	"speedballhub/internal/app"
	playersController "speedballhub/internal/controllers/players"
	"speedballhub/internal/logger"
	. "speedballhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

type PlayerHandler struct {
	Handler
	controller *playersController.PlayersController
}

func NewPlayerHandler(app app.App, router fiber.Router) *PlayerHandler {
	log := logger.New("handlers").File("player_handler")
	return &PlayerHandler{
		controller: app.PlayersController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *PlayerHandler) Register() {
	players := h.router.Group("/players")
	players.Get("/", h.getPlayers)
	players.Get("/:id", h.getPlayer)
	players.Post("/", h.middleware.RequireAdmin(), h.createPlayer)
	players.Put("/:id", h.middleware.RequireAdmin(), h.updatePlayer)
	players.Delete("/:id", h.middleware.RequireAdmin(), h.deletePlayer)
}

func (h *PlayerHandler) getPlayers(c *fiber.Ctx) error {
	log := h.log.Function("getPlayers")

	filter := PlayerListFilter{
		Search:   c.Query("search"),
		Gender:   c.Query("gender"),
		AgeGroup: c.Query("ageGroup"),
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 50),
	}

	players, err := h.controller.GetPlayers(c.Context(), filter)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(players)
}

func (h *PlayerHandler) getPlayer(c *fiber.Ctx) error {
	log := h.log.Function("getPlayer")

	player, err := h.controller.GetPlayer(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(player)
}

func (h *PlayerHandler) createPlayer(c *fiber.Ctx) error {
	log := h.log.Function("createPlayer")

	var request CreatePlayerRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse create player request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse player request"})
	}

	player, err := h.controller.CreatePlayer(c.Context(), &request)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(player)
}

func (h *PlayerHandler) updatePlayer(c *fiber.Ctx) error {
	log := h.log.Function("updatePlayer")

	var request UpdatePlayerRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse update player request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse player request"})
	}

	player, err := h.controller.UpdatePlayer(c.Context(), c.Params("id"), &request)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(player)
}

func (h *PlayerHandler) deletePlayer(c *fiber.Ctx) error {
	log := h.log.Function("deletePlayer")

	if err := h.controller.DeletePlayer(c.Context(), c.Params("id")); err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(fiber.Map{"message": "Player deleted successfully"})
}
