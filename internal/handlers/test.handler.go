package handlers

import (
	"speedballhub/internal/app"
	testsController "speedballhub/internal/controllers/tests"
	"speedballhub/internal/logger"
	. "speedballhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

type TestHandler struct {
	Handler
	controller *testsController.TestsController
}

func NewTestHandler(app app.App, router fiber.Router) *TestHandler {
	log := logger.New("handlers").File("test_handler")
	return &TestHandler{
		controller: app.TestsController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *TestHandler) Register() {
	tests := h.router.Group("/tests")
	tests.Get("/", h.getTests)
	tests.Get("/:id", h.getTest)
	tests.Post("/", h.middleware.RequireAdmin(), h.createTest)
	tests.Put("/:id", h.middleware.RequireAdmin(), h.updateTest)
	tests.Delete("/:id", h.middleware.RequireAdmin(), h.deleteTest)
}

func (h *TestHandler) getTests(c *fiber.Ctx) error {
	log := h.log.Function("getTests")

	filter := TestListFilter{
		TestType: c.Query("testType"),
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 50),
	}

	tests, err := h.controller.GetTests(c.Context(), filter)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(tests)
}

func (h *TestHandler) getTest(c *fiber.Ctx) error {
	log := h.log.Function("getTest")

	if c.QueryBool("includeResults") {
		filter := TestResultFilter{
			Gender:   c.Query("gender"),
			AgeGroup: c.Query("ageGroup"),
		}

		test, err := h.controller.GetTestWithResults(c.Context(), c.Params("id"), filter)
		if err != nil {
			return respondError(c, log, err)
		}

		return c.JSON(test)
	}

	test, err := h.controller.GetTest(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(test)
}

func (h *TestHandler) createTest(c *fiber.Ctx) error {
	log := h.log.Function("createTest")

	var request CreateTestRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse create test request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse test request"})
	}

	test, err := h.controller.CreateTest(c.Context(), &request)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(test)
}

func (h *TestHandler) updateTest(c *fiber.Ctx) error {
	log := h.log.Function("updateTest")

	var request UpdateTestRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse update test request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse test request"})
	}

	test, err := h.controller.UpdateTest(c.Context(), c.Params("id"), &request)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(test)
}

func (h *TestHandler) deleteTest(c *fiber.Ctx) error {
	log := h.log.Function("deleteTest")

	if err := h.controller.DeleteTest(c.Context(), c.Params("id")); err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(fiber.Map{"message": "Test deleted successfully"})
}
