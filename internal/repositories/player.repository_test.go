package repositories

import (
	"context"
	"testing"
	"time"

	. "speedballhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerRepository_CreateAndGetByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlayer(db)

	player := seedPlayer(t, repo, "Ahmed Hassan", GenderMale, NewDate(2010, time.June, 15))
	require.NotEmpty(t, player.ID)
	require.False(t, player.CreatedAt.IsZero())

	found, err := repo.GetByID(context.Background(), player.ID)
	require.NoError(t, err)
	assert.Equal(t, player.ID, found.ID)
	assert.Equal(t, "Ahmed Hassan", found.Name)
	assert.Equal(t, GenderMale, found.Gender)
	assert.Equal(t, "2010-06-15", found.DateOfBirth.Format("2006-01-02"))
}

func TestPlayerRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlayer(db)

	_, err := repo.GetByID(context.Background(), "missing-id")
	require.Error(t, err)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestPlayerRepository_GetAll_SearchAndGender(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlayer(db)

	seedPlayer(t, repo, "Ahmed Hassan", GenderMale, NewDate(2010, time.June, 15))
	seedPlayer(t, repo, "Sara Ahmed", GenderFemale, NewDate(2012, time.January, 3))
	seedPlayer(t, repo, "Omar Khalil", GenderMale, NewDate(2008, time.September, 20))

	players, err := repo.GetAll(context.Background(), PlayerListFilter{Search: "ahmed", Limit: 50})
	require.NoError(t, err)
	assert.Len(t, players, 2)

	players, err = repo.GetAll(context.Background(), PlayerListFilter{Gender: GenderFemale, Limit: 50})
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Sara Ahmed", players[0].Name)

	players, err = repo.GetAll(context.Background(), PlayerListFilter{Search: "ahmed", Gender: GenderMale, Limit: 50})
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Ahmed Hassan", players[0].Name)
}

func TestPlayerRepository_GetAll_OrderingAndPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlayer(db)

	names := []string{"First", "Second", "Third", "Fourth", "Fifth"}
	for _, name := range names {
		seedPlayer(t, repo, name, GenderMale, NewDate(2010, time.June, 15))
		time.Sleep(2 * time.Millisecond)
	}

	players, err := repo.GetAll(context.Background(), PlayerListFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Fifth", players[0].Name)
	assert.Equal(t, "Fourth", players[1].Name)

	players, err = repo.GetAll(context.Background(), PlayerListFilter{Page: 3, Limit: 2})
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "First", players[0].Name)
}

func TestPlayerRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlayer(db)

	player := seedPlayer(t, repo, "Ahmed Hassan", GenderMale, NewDate(2010, time.June, 15))

	player.Name = "Ahmed H. Hassan"
	require.NoError(t, repo.Update(context.Background(), player))

	found, err := repo.GetByID(context.Background(), player.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ahmed H. Hassan", found.Name)
	assert.Equal(t, GenderMale, found.Gender)
}

func TestPlayerRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlayer(db)

	player := seedPlayer(t, repo, "Ahmed Hassan", GenderMale, NewDate(2010, time.June, 15))
	require.NoError(t, repo.Delete(context.Background(), player.ID))

	_, err := repo.GetByID(context.Background(), player.ID)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)

	err = repo.Delete(context.Background(), player.ID)
	require.ErrorAs(t, err, &notFound)
}

func TestPlayerRepository_Delete_CascadesResults(t *testing.T) {
	db := setupTestDB(t)
	playerRepo := NewPlayer(db)
	testRepo := NewTest(db)
	resultRepo := NewResult(db)

	player := seedPlayer(t, playerRepo, "Ahmed Hassan", GenderMale, NewDate(2010, time.June, 15))
	other := seedPlayer(t, playerRepo, "Omar Khalil", GenderMale, NewDate(2008, time.September, 20))
	test := seedTest(t, testRepo, "Spring Assessment", TestType6030)

	seedResult(t, resultRepo, player.ID, test.ID, [4]int{10, 12, 8, 9})
	kept := seedResult(t, resultRepo, other.ID, test.ID, [4]int{7, 7, 7, 7})

	require.NoError(t, playerRepo.Delete(context.Background(), player.ID))

	results, err := resultRepo.GetByPlayer(context.Background(), player.ID)
	require.NoError(t, err)
	assert.Empty(t, results)

	remaining, err := resultRepo.GetAll(context.Background(), ResultListFilter{Limit: 50})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, kept.ID, remaining[0].ID)
}
