package playersController

import (
	"context"
	"time"

	"speedballhub/internal/events"
	"speedballhub/internal/logger"
	. "speedballhub/internal/models"
	"speedballhub/internal/repositories"

	"github.com/google/uuid"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

type PlayersController struct {
	playerRepo repositories.PlayerRepository
	resultRepo repositories.ResultRepository
	eventBus   *events.EventBus
	log        logger.Logger
	now        func() time.Time
}

func New(
	playerRepo repositories.PlayerRepository,
	resultRepo repositories.ResultRepository,
	eventBus *events.EventBus,
) *PlayersController {
	return &PlayersController{
		playerRepo: playerRepo,
		resultRepo: resultRepo,
		eventBus:   eventBus,
		log:        logger.New("PlayersController"),
		now:        time.Now,
	}
}

// NormalizePagination clamps page and limit to their allowed ranges.
func NormalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// GetPlayers lists players with derived age fields. Search, gender, and
// pagination run in SQL; the age group filter runs here, after derivation,
// because age group is never stored.
func (pc *PlayersController) GetPlayers(ctx context.Context, filter PlayerListFilter) ([]PlayerWithAge, error) {
	log := pc.log.Function("GetPlayers")

	filter.Page, filter.Limit = NormalizePagination(filter.Page, filter.Limit)

	players, err := pc.playerRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, log.Err("failed to get players", err, "filter", filter)
	}

	now := pc.now()
	withAge := make([]PlayerWithAge, 0, len(players))
	for _, player := range players {
		derived := player.WithAge(now)
		if filter.AgeGroup != "" && derived.AgeGroup != filter.AgeGroup {
			continue
		}
		withAge = append(withAge, derived)
	}

	return withAge, nil
}

// GetPlayer returns a single player with its results, each carrying a derived
// total and the test it was recorded for.
func (pc *PlayersController) GetPlayer(ctx context.Context, id string) (*PlayerWithResults, error) {
	log := pc.log.Function("GetPlayer")

	player, err := pc.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	results, err := pc.resultRepo.GetByPlayerWithTests(ctx, id)
	if err != nil {
		return nil, log.Err("failed to get player results", err, "playerID", id)
	}

	withTotals := make([]ResultWithTotal, 0, len(results))
	for _, result := range results {
		derived := result.WithTotal()
		derived.Test = result.Test
		withTotals = append(withTotals, derived)
	}

	return &PlayerWithResults{
		PlayerWithAge: player.WithAge(pc.now()),
		TestResults:   withTotals,
	}, nil
}

func (pc *PlayersController) CreatePlayer(ctx context.Context, request *CreatePlayerRequest) (*PlayerWithAge, error) {
	player, err := request.Validate()
	if err != nil {
		return nil, err
	}

	if err := pc.playerRepo.Create(ctx, player); err != nil {
		return nil, err
	}

	pc.publish(player.ID, events.ActionCreated)

	derived := player.WithAge(pc.now())
	return &derived, nil
}

func (pc *PlayersController) UpdatePlayer(ctx context.Context, id string, request *UpdatePlayerRequest) (*PlayerWithAge, error) {
	player, err := pc.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := request.Apply(player); err != nil {
		return nil, err
	}

	if err := pc.playerRepo.Update(ctx, player); err != nil {
		return nil, err
	}

	pc.publish(player.ID, events.ActionUpdated)

	derived := player.WithAge(pc.now())
	return &derived, nil
}

// DeletePlayer removes the player; the database cascades the delete to the
// player's test results.
func (pc *PlayersController) DeletePlayer(ctx context.Context, id string) error {
	if err := pc.playerRepo.Delete(ctx, id); err != nil {
		return err
	}

	pc.publish(id, events.ActionDeleted)

	return nil
}

func (pc *PlayersController) publish(playerID, action string) {
	event := events.Event{
		ID:        uuid.New().String(),
		Entity:    "player",
		EntityID:  playerID,
		Action:    action,
		Timestamp: pc.now(),
	}

	if err := pc.eventBus.Publish(events.BroadcastChannel, event); err != nil {
		pc.log.Function("publish").
			Warn("failed to publish player event", "playerID", playerID, "action", action, "error", err)
	}
}
