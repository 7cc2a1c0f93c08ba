package client

import (
	"context"
	"sync"

	. "speedballhub/internal/models"
)

// ResultsStore mirrors the results slice of server state. There is no selected
// detail; result views are always collections, flat or scoped to one player or
// test.
type ResultsStore struct {
	client *Client

	mu      sync.Mutex
	results []ResultWithTotal
	loading bool
	err     string
}

func NewResultsStore(client *Client) *ResultsStore {
	return &ResultsStore{client: client}
}

func (s *ResultsStore) FetchResults(ctx context.Context, page, limit int) error {
	s.setLoading()

	results, err := s.client.GetResults(ctx, page, limit)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}

	s.results = results
	return nil
}

// FetchByPlayer replaces the collection with one player's results.
func (s *ResultsStore) FetchByPlayer(ctx context.Context, playerID string) error {
	s.setLoading()

	results, err := s.client.GetResultsByPlayer(ctx, playerID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}

	s.results = results
	return nil
}

func (s *ResultsStore) CreateResult(ctx context.Context, request CreateResultRequest) error {
	s.setLoading()

	result, err := s.client.CreateResult(ctx, request)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}

	s.results = append(s.results, *result)
	return nil
}

func (s *ResultsStore) UpdateResult(ctx context.Context, id string, request UpdateResultRequest) error {
	s.setLoading()

	result, err := s.client.UpdateResult(ctx, id, request)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}

	for i := range s.results {
		if s.results[i].ID == id {
			s.results[i] = *result
		}
	}

	return nil
}

func (s *ResultsStore) DeleteResult(ctx context.Context, id string) error {
	s.setLoading()

	err := s.client.DeleteResult(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}

	results := s.results[:0]
	for _, result := range s.results {
		if result.ID != id {
			results = append(results, result)
		}
	}
	s.results = results

	return nil
}

// Results returns a copy so callers cannot mutate store state outside the
// lock.
func (s *ResultsStore) Results() []ResultWithTotal {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]ResultWithTotal, len(s.results))
	copy(results, s.results)
	return results
}

func (s *ResultsStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *ResultsStore) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *ResultsStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

func (s *ResultsStore) setLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = ""
}
