package client

import (
	"context"
	"sync"

	. "speedballhub/internal/models"
)

// TestsStore mirrors the tests slice of server state.
type TestsStore struct {
	client *Client

	mu       sync.Mutex
	tests    []Test
	selected *TestWithResults
	loading  bool
	err      string
}

func NewTestsStore(client *Client) *TestsStore {
	return &TestsStore{client: client}
}

func (s *TestsStore) FetchTests(ctx context.Context, query TestQuery) error {
	s.setLoading()

	tests, err := s.client.GetTests(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}

	s.tests = tests
	return nil
}

// FetchTest loads the detail with its nested, optionally filtered results.
func (s *TestsStore) FetchTest(ctx context.Context, id string, filter TestResultFilter) error {
	s.setLoading()

	test, err := s.client.GetTestWithResults(ctx, id, filter)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}

	s.selected = test
	return nil
}

func (s *TestsStore) CreateTest(ctx context.Context, request CreateTestRequest) error {
	s.setLoading()

	test, err := s.client.CreateTest(ctx, request)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}

	s.tests = append(s.tests, *test)
	return nil
}

// UpdateTest replaces the matching collection entry; a selected detail keeps
// its previously fetched result array.
func (s *TestsStore) UpdateTest(ctx context.Context, id string, request UpdateTestRequest) error {
	s.setLoading()

	test, err := s.client.UpdateTest(ctx, id, request)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}

	for i := range s.tests {
		if s.tests[i].ID == id {
			s.tests[i] = *test
		}
	}

	if s.selected != nil && s.selected.ID == id {
		s.selected = &TestWithResults{
			Test:        *test,
			TestResults: s.selected.TestResults,
		}
	}

	return nil
}

func (s *TestsStore) DeleteTest(ctx context.Context, id string) error {
	s.setLoading()

	err := s.client.DeleteTest(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}

	tests := s.tests[:0]
	for _, test := range s.tests {
		if test.ID != id {
			tests = append(tests, test)
		}
	}
	s.tests = tests

	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}

	return nil
}

// Tests returns a copy so callers cannot mutate store state outside the lock.
func (s *TestsStore) Tests() []Test {
	s.mu.Lock()
	defer s.mu.Unlock()

	tests := make([]Test, len(s.tests))
	copy(tests, s.tests)
	return tests
}

func (s *TestsStore) Selected() *TestWithResults {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *TestsStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *TestsStore) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *TestsStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

func (s *TestsStore) ClearSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

func (s *TestsStore) setLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = ""
}
