package client

import (
	"context"
	"net/http"
	"testing"

	. "speedballhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult(id string, total int) ResultWithTotal {
	result := TestResult{LeftHandScore: total / 4, RightHandScore: total / 4, ForehandScore: total / 4, BackhandScore: total / 4}
	result.ID = id
	return ResultWithTotal{TestResult: result, TotalScore: total}
}

func TestResultsStore_FetchAndDelete(t *testing.T) {
	client := newFakeServer(t, map[string]http.HandlerFunc{
		"GET /api/results": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, []ResultWithTotal{
				sampleResult("r1", 40),
				sampleResult("r2", 20),
			})
		},
		"DELETE /api/results/r1": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]string{"message": "Test result deleted successfully"})
		},
	})

	store := NewResultsStore(client)
	require.NoError(t, store.FetchResults(context.Background(), 1, 50))
	require.Len(t, store.Results(), 2)

	require.NoError(t, store.DeleteResult(context.Background(), "r1"))
	results := store.Results()
	require.Len(t, results, 1)
	assert.Equal(t, "r2", results[0].ID)
}

func TestResultsStore_AccessorReturnsCopy(t *testing.T) {
	client := newFakeServer(t, map[string]http.HandlerFunc{
		"GET /api/results": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, []ResultWithTotal{sampleResult("r1", 40)})
		},
	})

	store := NewResultsStore(client)
	require.NoError(t, store.FetchResults(context.Background(), 1, 50))

	results := store.Results()
	results[0].TotalScore = 0

	assert.Equal(t, 40, store.Results()[0].TotalScore)
}

func TestResultsStore_UpdateReplacesByID(t *testing.T) {
	client := newFakeServer(t, map[string]http.HandlerFunc{
		"GET /api/results/player/p1": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, []ResultWithTotal{sampleResult("r1", 40)})
		},
		"PUT /api/results/r1": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, sampleResult("r1", 60))
		},
	})

	store := NewResultsStore(client)
	require.NoError(t, store.FetchByPlayer(context.Background(), "p1"))

	score := 15
	require.NoError(t, store.UpdateResult(context.Background(), "r1", UpdateResultRequest{LeftHandScore: &score}))

	results := store.Results()
	require.Len(t, results, 1)
	assert.Equal(t, 60, results[0].TotalScore)
}
