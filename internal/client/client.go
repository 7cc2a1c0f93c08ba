// Package client is the Go SDK for the SpeedballHub API: a thin HTTP client
// carrying the session cookie, plus per-entity stores mirroring server state
// for a UI layer.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"

	"speedballhub/internal/logger"
	. "speedballhub/internal/models"
)

type Client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Jar: jar},
		log:     logger.New("client"),
	}, nil
}

// apiError carries the server's error message verbatim so stores can surface
// it unchanged.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return e.Message
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dest any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil || errBody.Message == "" {
			errBody.Message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return &apiError{Status: resp.StatusCode, Message: errBody.Message}
	}

	if dest == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}

// PlayerQuery mirrors the players collection query parameters.
type PlayerQuery struct {
	Search   string
	Gender   string
	AgeGroup string
	Page     int
	Limit    int
}

func (q PlayerQuery) values() url.Values {
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Gender != "" {
		values.Set("gender", q.Gender)
	}
	if q.AgeGroup != "" {
		values.Set("ageGroup", q.AgeGroup)
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	return values
}

func (c *Client) GetPlayers(ctx context.Context, query PlayerQuery) ([]PlayerWithAge, error) {
	var players []PlayerWithAge
	err := c.do(ctx, http.MethodGet, "/api/players", query.values(), nil, &players)
	return players, err
}

func (c *Client) GetPlayer(ctx context.Context, id string) (*PlayerWithResults, error) {
	var player PlayerWithResults
	err := c.do(ctx, http.MethodGet, "/api/players/"+id, nil, nil, &player)
	return &player, err
}

func (c *Client) CreatePlayer(ctx context.Context, request CreatePlayerRequest) (*PlayerWithAge, error) {
	var player PlayerWithAge
	err := c.do(ctx, http.MethodPost, "/api/players", nil, request, &player)
	return &player, err
}

func (c *Client) UpdatePlayer(ctx context.Context, id string, request UpdatePlayerRequest) (*PlayerWithAge, error) {
	var player PlayerWithAge
	err := c.do(ctx, http.MethodPut, "/api/players/"+id, nil, request, &player)
	return &player, err
}

func (c *Client) DeletePlayer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/players/"+id, nil, nil, nil)
}

// TestQuery mirrors the tests collection query parameters.
type TestQuery struct {
	TestType string
	Page     int
	Limit    int
}

func (q TestQuery) values() url.Values {
	values := url.Values{}
	if q.TestType != "" {
		values.Set("testType", q.TestType)
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	return values
}

func (c *Client) GetTests(ctx context.Context, query TestQuery) ([]Test, error) {
	var tests []Test
	err := c.do(ctx, http.MethodGet, "/api/tests", query.values(), nil, &tests)
	return tests, err
}

func (c *Client) GetTest(ctx context.Context, id string) (*Test, error) {
	var test Test
	err := c.do(ctx, http.MethodGet, "/api/tests/"+id, nil, nil, &test)
	return &test, err
}

// GetTestWithResults fetches the test detail with its nested result array,
// optionally narrowed by gender and derived age group.
func (c *Client) GetTestWithResults(ctx context.Context, id string, filter TestResultFilter) (*TestWithResults, error) {
	values := url.Values{}
	values.Set("includeResults", "true")
	if filter.Gender != "" {
		values.Set("gender", filter.Gender)
	}
	if filter.AgeGroup != "" {
		values.Set("ageGroup", filter.AgeGroup)
	}

	var test TestWithResults
	err := c.do(ctx, http.MethodGet, "/api/tests/"+id, values, nil, &test)
	return &test, err
}

func (c *Client) CreateTest(ctx context.Context, request CreateTestRequest) (*Test, error) {
	var test Test
	err := c.do(ctx, http.MethodPost, "/api/tests", nil, request, &test)
	return &test, err
}

func (c *Client) UpdateTest(ctx context.Context, id string, request UpdateTestRequest) (*Test, error) {
	var test Test
	err := c.do(ctx, http.MethodPut, "/api/tests/"+id, nil, request, &test)
	return &test, err
}

func (c *Client) DeleteTest(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tests/"+id, nil, nil, nil)
}

func (c *Client) GetResults(ctx context.Context, page, limit int) ([]ResultWithTotal, error) {
	values := url.Values{}
	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}

	var results []ResultWithTotal
	err := c.do(ctx, http.MethodGet, "/api/results", values, nil, &results)
	return results, err
}

func (c *Client) GetResultsByPlayer(ctx context.Context, playerID string) ([]ResultWithTotal, error) {
	var results []ResultWithTotal
	err := c.do(ctx, http.MethodGet, "/api/results/player/"+playerID, nil, nil, &results)
	return results, err
}

func (c *Client) GetResultsByTest(ctx context.Context, testID string) ([]ResultWithPlayer, error) {
	var results []ResultWithPlayer
	err := c.do(ctx, http.MethodGet, "/api/results/test/"+testID, nil, nil, &results)
	return results, err
}

func (c *Client) CreateResult(ctx context.Context, request CreateResultRequest) (*ResultWithTotal, error) {
	var result ResultWithTotal
	err := c.do(ctx, http.MethodPost, "/api/results", nil, request, &result)
	return &result, err
}

func (c *Client) UpdateResult(ctx context.Context, id string, request UpdateResultRequest) (*ResultWithTotal, error) {
	var result ResultWithTotal
	err := c.do(ctx, http.MethodPut, "/api/results/"+id, nil, request, &result)
	return &result, err
}

func (c *Client) DeleteResult(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/results/"+id, nil, nil, nil)
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthUser, error) {
	var response struct {
		User AuthUser `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, LoginRequest{Email: email, Password: password}, &response)
	if err != nil {
		return nil, err
	}
	return &response.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
}

type VerifyResponse struct {
	Authenticated bool      `json:"authenticated"`
	User          *AuthUser `json:"user"`
}

func (c *Client) Verify(ctx context.Context) (*VerifyResponse, error) {
	var response VerifyResponse
	err := c.do(ctx, http.MethodGet, "/api/auth/verify", nil, nil, &response)
	return &response, err
}
