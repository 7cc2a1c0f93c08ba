package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"speedballhub/internal/database"
	. "speedballhub/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Each test gets its own named in-memory database so tests stay isolated.
func setupTestDB(t *testing.T) database.DB {
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

	return db
}

func seedPlayer(t *testing.T, repo PlayerRepository, name, gender string, birth Date) *Player {
	t.Helper()

	player := &Player{
		Name:        name,
		DateOfBirth: birth,
		Gender:      gender,
	}
	require.NoError(t, repo.Create(context.Background(), player))
	return player
}

func seedTest(t *testing.T, repo TestRepository, name, testType string) *Test {
	t.Helper()

	test := &Test{
		Name:          name,
		TestType:      testType,
		DateConducted: NewDate(2024, time.March, 10),
	}
	require.NoError(t, repo.Create(context.Background(), test))
	return test
}

func seedResult(t *testing.T, repo ResultRepository, playerID, testID string, scores [4]int) *TestResult {
	t.Helper()

	result := &TestResult{
		PlayerID:       playerID,
		TestID:         testID,
		LeftHandScore:  scores[0],
		RightHandScore: scores[1],
		ForehandScore:  scores[2],
		BackhandScore:  scores[3],
	}
	require.NoError(t, repo.Create(context.Background(), result))
	return result
}
