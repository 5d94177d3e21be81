package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/osse101/CraftCalc_Go/internal/domain"
	"github.com/osse101/CraftCalc_Go/internal/handler"
)

// Retry defaults for calls to the calculator API
const (
	DefaultMaxRetries = 3
	DefaultRetryDelay = 500 * time.Millisecond
	DefaultTimeout    = 10 * time.Second
)

// APIClient handles communication with the CraftCalc API
type APIClient struct {
	BaseURL    string
	Client     *http.Client
	APIKey     string
	MaxRetries int
	RetryDelay time.Duration
}

// APIError is a non-2xx response from the API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return "API error: " + e.Message
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: DefaultTimeout,
		},
		APIKey:     apiKey,
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
	}
}

// IsSessionNotFound reports whether err means the user has no shopping list yet
func IsSessionNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		apiErr.StatusCode == http.StatusNotFound &&
		apiErr.Message == domain.ErrMsgSessionNotFound
}

// retryPolicy says whether a request may be sent again after a transport
// failure or 5xx, when the server may already have applied it.
type retryPolicy bool

const (
	retrySafe retryPolicy = true  // reads and pure calculations
	sendOnce  retryPolicy = false // requests that change a shopping list additively
)

// doRequest performs an HTTP request. Under retrySafe it retries transport
// failures and 5xx responses with exponential backoff.
func (c *APIClient) doRequest(ctx context.Context, method, path string, body interface{}, policy retryPolicy) (*http.Response, error) {
	var reqBody []byte
	if body != nil {
		var err error
		if reqBody, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	target := c.BaseURL + path

	maxRetries := c.MaxRetries
	if policy == sendOnce {
		maxRetries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond / 10
			delay := c.RetryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			slog.Warn("API request failed", "error", err, "attempt", attempt)
			continue
		}

		if resp.StatusCode < http.StatusInternalServerError {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		slog.Warn("Server error, will retry", "status", resp.StatusCode, "attempt", attempt)
	}

	if policy == sendOnce {
		return nil, fmt.Errorf("request failed, not retried: %w", lastErr)
	}
	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// call runs a request and decodes a 2xx body into out, or the error body into an *APIError
func (c *APIClient) call(ctx context.Context, method, path string, body, out interface{}, policy retryPolicy) error {
	resp, err := c.doRequest(ctx, method, path, body, policy)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var errResp handler.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Ping checks the API liveness endpoint
func (c *APIClient) Ping(ctx context.Context) error {
	return c.call(ctx, http.MethodGet, "/healthz", nil, nil, retrySafe)
}

// Calculate expands quantity units of item into raw materials
func (c *APIClient) Calculate(ctx context.Context, item string, quantity int) (*handler.CalculationResponse, error) {
	req := handler.CalculateRequest{Item: item, Quantity: quantity}
	var resp handler.CalculationResponse
	if err := c.call(ctx, http.MethodPost, "/api/v1/calculate", req, &resp, retrySafe); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SearchItems returns craftable items whose names contain query
func (c *APIClient) SearchItems(ctx context.Context, query string, limit int) ([]domain.ItemSummary, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	path := "/api/v1/items"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var resp handler.ItemsResponse
	if err := c.call(ctx, http.MethodGet, path, nil, &resp, retrySafe); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// GetList returns the shopping list for session
func (c *APIClient) GetList(ctx context.Context, session string) (*domain.ShoppingList, error) {
	var resp handler.ListResponse
	if err := c.call(ctx, http.MethodGet, listPath(session), nil, &resp, retrySafe); err != nil {
		return nil, err
	}
	return resp.List, nil
}

// AddListItem adds quantity units of item to the session's list
func (c *APIClient) AddListItem(ctx context.Context, session, item string, quantity int) (*domain.ShoppingList, error) {
	req := handler.AddListItemRequest{Item: item, Quantity: quantity}
	var resp handler.ListResponse
	if err := c.call(ctx, http.MethodPost, listPath(session)+"/items", req, &resp, sendOnce); err != nil {
		return nil, err
	}
	return resp.List, nil
}

// RemoveListItem drops item from the session's list
func (c *APIClient) RemoveListItem(ctx context.Context, session, item string) (*domain.ShoppingList, error) {
	var resp handler.ListResponse
	path := listPath(session) + "/items/" + url.PathEscape(item)
	if err := c.call(ctx, http.MethodDelete, path, nil, &resp, retrySafe); err != nil {
		return nil, err
	}
	return resp.List, nil
}

// ClearList empties the session's list
func (c *APIClient) ClearList(ctx context.Context, session string) error {
	return c.call(ctx, http.MethodDelete, listPath(session)+"/items", nil, nil, retrySafe)
}

// CalculateList totals the raw materials for the session's list
func (c *APIClient) CalculateList(ctx context.Context, session string) (*handler.CalculationResponse, error) {
	var resp handler.CalculationResponse
	if err := c.call(ctx, http.MethodPost, listPath(session)+"/calculate", nil, &resp, retrySafe); err != nil {
		return nil, err
	}
	return &resp, nil
}

func listPath(session string) string {
	return "/api/v1/lists/" + url.PathEscape(session)
}
