package handlers

import (
	"speedballhub/internal/app"
	resultsController "speedballhub/internal/controllers/results"
	"speedballhub/internal/logger"
	. "speedballhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ResultHandler struct {
	Handler
	controller *resultsController.ResultsController
}

func NewResultHandler(app app.App, router fiber.Router) *ResultHandler {
	log := logger.New("handlers").File("result_handler")
	return &ResultHandler{
		controller: app.ResultsController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ResultHandler) Register() {
	results := h.router.Group("/results")
	results.Get("/", h.getResults)
	results.Get("/player/:id", h.getResultsByPlayer)
	results.Get("/test/:id", h.getResultsByTest)
	results.Post("/", h.middleware.RequireAdmin(), h.createResult)
	results.Put("/:id", h.middleware.RequireAdmin(), h.updateResult)
	results.Delete("/:id", h.middleware.RequireAdmin(), h.deleteResult)
}

func (h *ResultHandler) getResults(c *fiber.Ctx) error {
	log := h.log.Function("getResults")

	filter := ResultListFilter{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 50),
	}

	results, err := h.controller.GetResults(c.Context(), filter)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(results)
}

func (h *ResultHandler) getResultsByPlayer(c *fiber.Ctx) error {
	log := h.log.Function("getResultsByPlayer")

	results, err := h.controller.GetResultsByPlayer(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(results)
}

func (h *ResultHandler) getResultsByTest(c *fiber.Ctx) error {
	log := h.log.Function("getResultsByTest")

	results, err := h.controller.GetResultsByTest(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(results)
}

func (h *ResultHandler) createResult(c *fiber.Ctx) error {
	log := h.log.Function("createResult")

	var request CreateResultRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse create result request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse result request"})
	}

	result, err := h.controller.CreateResult(c.Context(), &request)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *ResultHandler) updateResult(c *fiber.Ctx) error {
	log := h.log.Function("updateResult")

	var request UpdateResultRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse update result request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse result request"})
	}

	result, err := h.controller.UpdateResult(c.Context(), c.Params("id"), &request)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(result)
}

func (h *ResultHandler) deleteResult(c *fiber.Ctx) error {
	log := h.log.Function("deleteResult")

	if err := h.controller.DeleteResult(c.Context(), c.Params("id")); err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(fiber.Map{"message": "Test result deleted successfully"})
}
