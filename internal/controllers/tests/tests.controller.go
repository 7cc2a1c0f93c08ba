package testsController

import (
	"context"
	"time"

	playersController "speedballhub/internal/controllers/players"
	"speedballhub/internal/events"
	"speedballhub/internal/logger"
	. "speedballhub/internal/models"
	"speedballhub/internal/repositories"

	"github.com/google/uuid"
)

type TestsController struct {
	testRepo   repositories.TestRepository
	resultRepo repositories.ResultRepository
	eventBus   *events.EventBus
	log        logger.Logger
	now        func() time.Time
}

func New(
	testRepo repositories.TestRepository,
	resultRepo repositories.ResultRepository,
	eventBus *events.EventBus,
) *TestsController {
	return &TestsController{
		testRepo:   testRepo,
		resultRepo: resultRepo,
		eventBus:   eventBus,
		log:        logger.New("TestsController"),
		now:        time.Now,
	}
}

func (tc *TestsController) GetTests(ctx context.Context, filter TestListFilter) ([]Test, error) {
	log := tc.log.Function("GetTests")

	filter.Page, filter.Limit = playersController.NormalizePagination(filter.Page, filter.Limit)

	tests, err := tc.testRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, log.Err("failed to get tests", err, "filter", filter)
	}

	return tests, nil
}

func (tc *TestsController) GetTest(ctx context.Context, id string) (*Test, error) {
	return tc.testRepo.GetByID(ctx, id)
}

// GetTestWithResults attaches every result of the test, nested with its
// player and the player's derived fields, then filters the nested array by
// gender and derived age group.
func (tc *TestsController) GetTestWithResults(ctx context.Context, id string, filter TestResultFilter) (*TestWithResults, error) {
	log := tc.log.Function("GetTestWithResults")

	test, err := tc.testRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	results, err := tc.resultRepo.GetByTestWithPlayers(ctx, id)
	if err != nil {
		return nil, log.Err("failed to get test results", err, "testID", id)
	}

	now := tc.now()
	withPlayers := make([]ResultWithPlayer, 0, len(results))
	for _, result := range results {
		var player *PlayerWithAge
		if result.Player != nil {
			derived := result.Player.WithAge(now)
			player = &derived
		}

		if filter.Gender != "" && (player == nil || player.Gender != filter.Gender) {
			continue
		}
		if filter.AgeGroup != "" && (player == nil || player.AgeGroup != filter.AgeGroup) {
			continue
		}

		derived := result.WithTotal()
		withPlayers = append(withPlayers, ResultWithPlayer{
			TestResult: derived.TestResult,
			TotalScore: derived.TotalScore,
			Player:     player,
		})
	}

	return &TestWithResults{
		Test:        *test,
		TestResults: withPlayers,
	}, nil
}

func (tc *TestsController) CreateTest(ctx context.Context, request *CreateTestRequest) (*Test, error) {
	test, err := request.Validate()
	if err != nil {
		return nil, err
	}

	if err := tc.testRepo.Create(ctx, test); err != nil {
		return nil, err
	}

	tc.publish(test.ID, events.ActionCreated)

	return test, nil
}

func (tc *TestsController) UpdateTest(ctx context.Context, id string, request *UpdateTestRequest) (*Test, error) {
	test, err := tc.testRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := request.Apply(test); err != nil {
		return nil, err
	}

	if err := tc.testRepo.Update(ctx, test); err != nil {
		return nil, err
	}

	tc.publish(test.ID, events.ActionUpdated)

	return test, nil
}

// DeleteTest removes the test; the database cascades the delete to the
// test's results.
func (tc *TestsController) DeleteTest(ctx context.Context, id string) error {
	if err := tc.testRepo.Delete(ctx, id); err != nil {
		return err
	}

	tc.publish(id, events.ActionDeleted)

	return nil
}

func (tc *TestsController) publish(testID, action string) {
	event := events.Event{
		ID:        uuid.New().String(),
		Entity:    "test",
		EntityID:  testID,
		Action:    action,
		Timestamp: tc.now(),
	}

	if err := tc.eventBus.Publish(events.BroadcastChannel, event); err != nil {
		tc.log.Function("publish").
			Warn("failed to publish test event", "testID", testID, "action", action, "error", err)
	}
}
