package resultsController

import (
	"context"
	"errors"
	"time"

	playersController "speedballhub/internal/controllers/players"
	"speedballhub/internal/events"
	"speedballhub/internal/logger"
	. "speedballhub/internal/models"
	"speedballhub/internal/repositories"
	"speedballhub/internal/services"

	"github.com/google/uuid"
)

type ResultsController struct {
	resultRepo repositories.ResultRepository
	playerRepo repositories.PlayerRepository
	testRepo   repositories.TestRepository
	txService  *services.TransactionService
	eventBus   *events.EventBus
	log        logger.Logger
	now        func() time.Time
}

func New(
	resultRepo repositories.ResultRepository,
	playerRepo repositories.PlayerRepository,
	testRepo repositories.TestRepository,
	txService *services.TransactionService,
	eventBus *events.EventBus,
) *ResultsController {
	return &ResultsController{
		resultRepo: resultRepo,
		playerRepo: playerRepo,
		testRepo:   testRepo,
		txService:  txService,
		eventBus:   eventBus,
		log:        logger.New("ResultsController"),
		now:        time.Now,
	}
}

func (rc *ResultsController) GetResults(ctx context.Context, filter ResultListFilter) ([]ResultWithTotal, error) {
	log := rc.log.Function("GetResults")

	filter.Page, filter.Limit = playersController.NormalizePagination(filter.Page, filter.Limit)

	results, err := rc.resultRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, log.Err("failed to get results", err, "filter", filter)
	}

	return withTotals(results), nil
}

func (rc *ResultsController) GetResultsByPlayer(ctx context.Context, playerID string) ([]ResultWithTotal, error) {
	log := rc.log.Function("GetResultsByPlayer")

	results, err := rc.resultRepo.GetByPlayer(ctx, playerID)
	if err != nil {
		return nil, log.Err("failed to get results by player", err, "playerID", playerID)
	}

	return withTotals(results), nil
}

// GetResultsByTest nests each result's player with its derived fields.
func (rc *ResultsController) GetResultsByTest(ctx context.Context, testID string) ([]ResultWithPlayer, error) {
	log := rc.log.Function("GetResultsByTest")

	results, err := rc.resultRepo.GetByTestWithPlayers(ctx, testID)
	if err != nil {
		return nil, log.Err("failed to get results by test", err, "testID", testID)
	}

	now := rc.now()
	withPlayers := make([]ResultWithPlayer, 0, len(results))
	for _, result := range results {
		var player *PlayerWithAge
		if result.Player != nil {
			derived := result.Player.WithAge(now)
			player = &derived
		}

		derived := result.WithTotal()
		withPlayers = append(withPlayers, ResultWithPlayer{
			TestResult: derived.TestResult,
			TotalScore: derived.TotalScore,
			Player:     player,
		})
	}

	return withPlayers, nil
}

// CreateResult rejects results whose player or test does not resolve, rather
// than letting the insert fail or silently succeed.
func (rc *ResultsController) CreateResult(ctx context.Context, request *CreateResultRequest) (*ResultWithTotal, error) {
	result, err := request.Validate()
	if err != nil {
		return nil, err
	}

	// The existence checks and the insert share one transaction so the
	// referenced player or test cannot disappear between check and write.
	err = rc.txService.Execute(ctx, func(txCtx context.Context) error {
		if _, err := rc.playerRepo.GetByID(txCtx, result.PlayerID); err != nil {
			if isNotFound(err) {
				return NewValidationError("playerId does not resolve to a player", nil)
			}
			return err
		}

		if _, err := rc.testRepo.GetByID(txCtx, result.TestID); err != nil {
			if isNotFound(err) {
				return NewValidationError("testId does not resolve to a test", nil)
			}
			return err
		}

		return rc.resultRepo.Create(txCtx, result)
	})
	if err != nil {
		return nil, err
	}

	rc.publish(result.ID, events.ActionCreated)

	derived := result.WithTotal()
	return &derived, nil
}

func (rc *ResultsController) UpdateResult(ctx context.Context, id string, request *UpdateResultRequest) (*ResultWithTotal, error) {
	result, err := rc.resultRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := request.Apply(result); err != nil {
		return nil, err
	}

	if err := rc.resultRepo.Update(ctx, result); err != nil {
		return nil, err
	}

	rc.publish(result.ID, events.ActionUpdated)

	derived := result.WithTotal()
	return &derived, nil
}

func (rc *ResultsController) DeleteResult(ctx context.Context, id string) error {
	if err := rc.resultRepo.Delete(ctx, id); err != nil {
		return err
	}

	rc.publish(id, events.ActionDeleted)

	return nil
}

func isNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

func withTotals(results []TestResult) []ResultWithTotal {
	derived := make([]ResultWithTotal, 0, len(results))
	for _, result := range results {
		derived = append(derived, result.WithTotal())
	}
	return derived
}

func (rc *ResultsController) publish(resultID, action string) {
	event := events.Event{
		ID:        uuid.New().String(),
		Entity:    "result",
		EntityID:  resultID,
		Action:    action,
		Timestamp: rc.now(),
	}

	if err := rc.eventBus.Publish(events.BroadcastChannel, event); err != nil {
		rc.log.Function("publish").
			Warn("failed to publish result event", "resultID", resultID, "action", action, "error", err)
	}
}
