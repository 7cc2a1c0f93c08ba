package client

import (
	"context"
	"sync"

	. "speedballhub/internal/models"
)

// AuthStore tracks the admin session as seen by the client.
type AuthStore struct {
	client *Client

	mu            sync.Mutex
	user          *AuthUser
	authenticated bool
	loading       bool
	err           string
}

func NewAuthStore(client *Client) *AuthStore {
	return &AuthStore{client: client}
}

func (s *AuthStore) Login(ctx context.Context, email, password string) error {
	s.setLoading()

	user, err := s.client.Login(ctx, email, password)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}

	s.user = user
	s.authenticated = true
	return nil
}

func (s *AuthStore) Logout(ctx context.Context) error {
	s.setLoading()

	err := s.client.Logout(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}

	s.user = nil
	s.authenticated = false
	return nil
}

// CheckAuth refreshes the session state. Failures reset to unauthenticated
// without surfacing an error message.
func (s *AuthStore) CheckAuth(ctx context.Context) {
	s.setLoading()

	response, err := s.client.Verify(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.user = nil
		s.authenticated = false
		return
	}

	s.user = response.User
	s.authenticated = response.Authenticated
}

func (s *AuthStore) User() *AuthUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

func (s *AuthStore) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

func (s *AuthStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *AuthStore) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *AuthStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

func (s *AuthStore) setLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.err = ""
}
