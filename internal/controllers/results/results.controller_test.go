package resultsController

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"speedballhub/config"
	"speedballhub/internal/database"
	"speedballhub/internal/events"
	. "speedballhub/internal/models"
	"speedballhub/internal/repositories"
	"speedballhub/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testFixtures struct {
	controller *ResultsController
	db         database.DB
	player     *Player
	test       *Test
}

func newTestFixtures(t *testing.T) testFixtures {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.New().String())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	db := database.NewWithSQL(gormDB)
	_, err = db.Migrate()
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := gormDB.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	playerRepo := repositories.NewPlayer(db)
	testRepo := repositories.NewTest(db)
	resultRepo := repositories.NewResult(db)

	controller := New(resultRepo, playerRepo, testRepo, services.NewTransactionService(db), events.New(nil, config.Config{}))
	controller.now = func() time.Time {
		return time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	}

	player := &Player{Name: "Ahmed Hassan", DateOfBirth: NewDate(2010, time.June, 15), Gender: GenderMale}
	require.NoError(t, playerRepo.Create(context.Background(), player))

	test := &Test{Name: "Spring Assessment", TestType: TestType6030, DateConducted: NewDate(2024, time.March, 10)}
	require.NoError(t, testRepo.Create(context.Background(), test))

	return testFixtures{controller: controller, db: db, player: player, test: test}
}

func intPtr(v int) *int { return &v }

func TestCreateResult_ComputesTotal(t *testing.T) {
	f := newTestFixtures(t)

	result, err := f.controller.CreateResult(context.Background(), &CreateResultRequest{
		PlayerID:       f.player.ID,
		TestID:         f.test.ID,
		LeftHandScore:  intPtr(10),
		RightHandScore: intPtr(12),
		ForehandScore:  intPtr(8),
		BackhandScore:  intPtr(9),
	})
	require.NoError(t, err)
	assert.Equal(t, 39, result.TotalScore)
	assert.NotEmpty(t, result.ID)
}

func TestCreateResult_UnknownPlayerIsValidationError(t *testing.T) {
	f := newTestFixtures(t)

	_, err := f.controller.CreateResult(context.Background(), &CreateResultRequest{
		PlayerID:       "missing-player",
		TestID:         f.test.ID,
		LeftHandScore:  intPtr(1),
		RightHandScore: intPtr(1),
		ForehandScore:  intPtr(1),
		BackhandScore:  intPtr(1),
	})
	require.Error(t, err)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "playerId does not resolve to a player", validation.Message)
}

func TestCreateResult_UnknownTestIsValidationError(t *testing.T) {
	f := newTestFixtures(t)

	_, err := f.controller.CreateResult(context.Background(), &CreateResultRequest{
		PlayerID:       f.player.ID,
		TestID:         "missing-test",
		LeftHandScore:  intPtr(1),
		RightHandScore: intPtr(1),
		ForehandScore:  intPtr(1),
		BackhandScore:  intPtr(1),
	})
	require.Error(t, err)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "testId does not resolve to a test", validation.Message)
}

func TestCreateResult_RequiresAllScores(t *testing.T) {
	f := newTestFixtures(t)

	_, err := f.controller.CreateResult(context.Background(), &CreateResultRequest{
		PlayerID:      f.player.ID,
		TestID:        f.test.ID,
		LeftHandScore: intPtr(10),
	})
	require.Error(t, err)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Fields, "rightHandScore")
	assert.Contains(t, validation.Fields, "forehandScore")
	assert.Contains(t, validation.Fields, "backhandScore")
}

func TestCreateResult_RejectsNegativeScores(t *testing.T) {
	f := newTestFixtures(t)

	_, err := f.controller.CreateResult(context.Background(), &CreateResultRequest{
		PlayerID:       f.player.ID,
		TestID:         f.test.ID,
		LeftHandScore:  intPtr(-1),
		RightHandScore: intPtr(1),
		ForehandScore:  intPtr(1),
		BackhandScore:  intPtr(1),
	})
	require.Error(t, err)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Fields, "leftHandScore")
}

func TestGetResultsByTest_NestsDerivedPlayer(t *testing.T) {
	f := newTestFixtures(t)

	_, err := f.controller.CreateResult(context.Background(), &CreateResultRequest{
		PlayerID:       f.player.ID,
		TestID:         f.test.ID,
		LeftHandScore:  intPtr(10),
		RightHandScore: intPtr(12),
		ForehandScore:  intPtr(8),
		BackhandScore:  intPtr(9),
	})
	require.NoError(t, err)

	results, err := f.controller.GetResultsByTest(context.Background(), f.test.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 39, results[0].TotalScore)
	require.NotNil(t, results[0].Player)
	assert.Equal(t, 13, results[0].Player.Age)
	assert.Equal(t, "U-15", results[0].Player.AgeGroup)
}

func TestUpdateResult_PartialScoreUpdate(t *testing.T) {
	f := newTestFixtures(t)

	created, err := f.controller.CreateResult(context.Background(), &CreateResultRequest{
		PlayerID:       f.player.ID,
		TestID:         f.test.ID,
		LeftHandScore:  intPtr(10),
		RightHandScore: intPtr(12),
		ForehandScore:  intPtr(8),
		BackhandScore:  intPtr(9),
	})
	require.NoError(t, err)

	updated, err := f.controller.UpdateResult(context.Background(), created.ID, &UpdateResultRequest{
		LeftHandScore: intPtr(20),
	})
	require.NoError(t, err)
	assert.Equal(t, 20, updated.LeftHandScore)
	assert.Equal(t, 12, updated.RightHandScore)
	assert.Equal(t, 49, updated.TotalScore)
}

func TestDeleteResult_NotFound(t *testing.T) {
	f := newTestFixtures(t)

	var notFound *NotFoundError
	require.ErrorAs(t, f.controller.DeleteResult(context.Background(), "missing-id"), &notFound)
}

type failingPlayerRepo struct {
	repositories.PlayerRepository
	err error
}

func (r failingPlayerRepo) GetByID(ctx context.Context, id string) (*Player, error) {
	return nil, r.err
}

// A repository failure during the existence check is an internal error, not a
// bad request; only a missing row becomes a validation error.
func TestCreateResult_RepositoryFailurePropagates(t *testing.T) {
	f := newTestFixtures(t)

	repoErr := errors.New("database is on fire")
	controller := New(
		repositories.NewResult(f.db),
		failingPlayerRepo{err: repoErr},
		repositories.NewTest(f.db),
		services.NewTransactionService(f.db),
		events.New(nil, config.Config{}),
	)

	_, err := controller.CreateResult(context.Background(), &CreateResultRequest{
		PlayerID:       f.player.ID,
		TestID:         f.test.ID,
		LeftHandScore:  intPtr(1),
		RightHandScore: intPtr(1),
		ForehandScore:  intPtr(1),
		BackhandScore:  intPtr(1),
	})
	require.Error(t, err)
	require.ErrorIs(t, err, repoErr)

	var validation *ValidationError
	assert.False(t, errors.As(err, &validation))
}
