package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "speedballhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFakeServer serves canned handlers keyed by "METHOD /path".
func newFakeServer(t *testing.T, routes map[string]http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := New(server.URL)
	require.NoError(t, err)
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func samplePlayer(id, name string) PlayerWithAge {
	player := Player{Name: name, DateOfBirth: NewDate(2010, time.June, 15), Gender: GenderMale}
	player.ID = id
	return PlayerWithAge{Player: player, Age: 13, AgeGroup: "U-15"}
}

func TestClient_GetPlayers_EncodesQuery(t *testing.T) {
	var gotQuery map[string][]string
	client := newFakeServer(t, map[string]http.HandlerFunc{
		"GET /api/players": func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query()
			writeJSON(t, w, http.StatusOK, []PlayerWithAge{})
		},
	})

	_, err := client.GetPlayers(context.Background(), PlayerQuery{
		Search:   "ahmed",
		Gender:   GenderMale,
		AgeGroup: "U-13",
		Page:     2,
		Limit:    25,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"ahmed"}, gotQuery["search"])
	assert.Equal(t, []string{"male"}, gotQuery["gender"])
	assert.Equal(t, []string{"U-13"}, gotQuery["ageGroup"])
	assert.Equal(t, []string{"2"}, gotQuery["page"])
	assert.Equal(t, []string{"25"}, gotQuery["limit"])
}

func TestClient_SurfacesServerErrorMessage(t *testing.T) {
	client := newFakeServer(t, map[string]http.HandlerFunc{
		"GET /api/players/missing-id": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusNotFound, map[string]string{"message": "player not found"})
		},
	})

	_, err := client.GetPlayer(context.Background(), "missing-id")
	require.Error(t, err)
	assert.Equal(t, "player not found", err.Error())
}

func TestClient_FallbackErrorMessage(t *testing.T) {
	client := newFakeServer(t, map[string]http.HandlerFunc{
		"DELETE /api/players/some-id": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
	})

	err := client.DeletePlayer(context.Background(), "some-id")
	require.Error(t, err)
	assert.Equal(t, "request failed with status 502", err.Error())
}

func TestClient_CarriesSessionCookie(t *testing.T) {
	client := newFakeServer(t, map[string]http.HandlerFunc{
		"POST /api/auth/login": func(w http.ResponseWriter, r *http.Request) {
			http.SetCookie(w, &http.Cookie{Name: "speedball_session", Value: "session-token"})
			writeJSON(t, w, http.StatusOK, map[string]any{
				"message": "Login successful",
				"user":    AuthUser{Email: "admin@rowad.com"},
			})
		},
		"GET /api/auth/verify": func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("speedball_session")
			if err != nil || cookie.Value != "session-token" {
				writeJSON(t, w, http.StatusOK, VerifyResponse{Authenticated: false})
				return
			}
			writeJSON(t, w, http.StatusOK, VerifyResponse{
				Authenticated: true,
				User:          &AuthUser{Email: "admin@rowad.com"},
			})
		},
	})

	user, err := client.Login(context.Background(), "admin@rowad.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "admin@rowad.com", user.Email)

	verify, err := client.Verify(context.Background())
	require.NoError(t, err)
	assert.True(t, verify.Authenticated)
	require.NotNil(t, verify.User)
	assert.Equal(t, "admin@rowad.com", verify.User.Email)
}
