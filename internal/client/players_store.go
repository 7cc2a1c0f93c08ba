package client

import (
	"context"
	"sync"

	. "speedballhub/internal/models"
)

// PlayersStore mirrors the players slice of server state: the last fetched
// collection, an optional selected detail, a loading flag, and the last error
// message. Concurrent fetches race and the later response wins; there is no
// request fencing.
type PlayersStore struct {
	client *Client

	mu       sync.Mutex
	players  []PlayerWithAge
	selected *PlayerWithResults
	loading  bool
	err      string
}

func NewPlayersStore(client *Client) *PlayersStore {
	return &PlayersStore{client: client}
}

// FetchPlayers replaces the whole collection with the server's response.
func (s *PlayersStore) FetchPlayers(ctx context.Context, query PlayerQuery) error {
	s.setLoading()

	players, err := s.client.GetPlayers(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}

	s.players = players
	return nil
}

func (s *PlayersStore) FetchPlayer(ctx context.Context, id string) error {
	s.setLoading()

	player, err := s.client.GetPlayer(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}

	s.selected = player
	return nil
}

// CreatePlayer issues the request and appends the server's response to the
// collection.
func (s *PlayersStore) CreatePlayer(ctx context.Context, request CreatePlayerRequest) error {
	s.setLoading()

	player, err := s.client.CreatePlayer(ctx, request)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}

	s.players = append(s.players, *player)
	return nil
}

// UpdatePlayer reconciles local state from the server's response: the
// matching collection entry is replaced, and a selected detail keeps its
// previously fetched results.
func (s *PlayersStore) UpdatePlayer(ctx context.Context, id string, request UpdatePlayerRequest) error {
	s.setLoading()

	player, err := s.client.UpdatePlayer(ctx, id, request)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}

	for i := range s.players {
		if s.players[i].ID == id {
			s.players[i] = *player
		}
	}

	if s.selected != nil && s.selected.ID == id {
		s.selected = &PlayerWithResults{
			PlayerWithAge: *player,
			TestResults:   s.selected.TestResults,
		}
	}

	return nil
}

func (s *PlayersStore) DeletePlayer(ctx context.Context, id string) error {
	s.setLoading()

	err := s.client.DeletePlayer(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}

	players := s.players[:0]
	for _, player := range s.players {
		if player.ID != id {
			players = append(players, player)
		}
	}
	s.players = players

	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}

	return nil
}

// Players returns a copy so callers cannot mutate store state outside the
// lock.
func (s *PlayersStore) Players() []PlayerWithAge {
	s.mu.Lock()
	defer s.mu.Unlock()

	players := make([]PlayerWithAge, len(s.players))
	copy(players, s.players)
	return players
}

func (s *PlayersStore) Selected() *PlayerWithResults {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *PlayersStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *PlayersStore) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *PlayersStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

func (s *PlayersStore) ClearSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

func (s *PlayersStore) setLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = ""
}
