package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// APIClient calls the CRM HTTP API the same way an external consumer would.
// Scheduled jobs go through the public surface instead of reaching into the
// services directly.
type APIClient struct {
	baseURL       string
	httpClient    *http.Client
	retryAttempts int
	retryDelay    time.Duration
	logger        *zap.Logger
}

// NewAPIClient creates a client for the given base URL
func NewAPIClient(baseURL string, retryAttempts int, retryDelay time.Duration, logger *zap.Logger) *APIClient {
	return &APIClient{
		baseURL:       baseURL,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		retryAttempts: retryAttempts,
		retryDelay:    retryDelay,
		logger:        logger.Named("api_client"),
	}
}

// envelope mirrors the API response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CustomerSummary is the subset of customer fields the jobs care about
type CustomerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LowStockResult is the response of the low-stock restock endpoint
type LowStockResult struct {
	Message string `json:"message"`
	Products []struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Stock int    `json:"stock"`
	} `json:"products"`
}

// ReportResult is the response of the report endpoint
type ReportResult struct {
	Customers   int64  `json:"customers"`
	Orders      int64  `json:"orders"`
	Revenue     string `json:"revenue"`
	GeneratedAt string `json:"generated_at"`
}

// Health checks the service health endpoint
func (c *APIClient) Health(ctx context.Context) error {
	_, err := c.doWithRetry(ctx, http.MethodGet, "/health")
	return err
}

// ListCustomers fetches all customers
func (c *APIClient) ListCustomers(ctx context.Context) ([]CustomerSummary, error) {
	data, err := c.doWithRetry(ctx, http.MethodGet, "/api/v1/crm/customers")
	if err != nil {
		return nil, err
	}
	var customers []CustomerSummary
	if err := json.Unmarshal(data, &customers); err != nil {
		return nil, fmt.Errorf("failed to decode customers: %w", err)
	}
	return customers, nil
}

// UpdateLowStock triggers the low-stock restock operation
func (c *APIClient) UpdateLowStock(ctx context.Context) (*LowStockResult, error) {
	data, err := c.doWithRetry(ctx, http.MethodPost, "/api/v1/crm/products/low-stock")
	if err != nil {
		return nil, err
	}
	var result LowStockResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode low-stock result: %w", err)
	}
	return &result, nil
}

// Report fetches the aggregate business report
func (c *APIClient) Report(ctx context.Context) (*ReportResult, error) {
	data, err := c.doWithRetry(ctx, http.MethodGet, "/api/v1/crm/report")
	if err != nil {
		return nil, err
	}
	var result ReportResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &result, nil
}

// doWithRetry performs the request, retrying transient failures with a fixed
// delay. The last error is returned once attempts are exhausted.
func (c *APIClient) doWithRetry(ctx context.Context, method, path string) (json.RawMessage, error) {
	attempts := c.retryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		data, err := c.do(ctx, method, path)
		if err == nil {
			return data, nil
		}
		lastErr = err

		c.logger.Warn("API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		if attempt < attempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}
	}
	return nil, fmt.Errorf("%s %s failed after %d attempts: %w", method, path, attempts, lastErr)
}

func (c *APIClient) do(ctx context.Context, method, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("unexpected response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		if env.Error != nil {
			return nil, fmt.Errorf("API error %s: %s", env.Error.Code, env.Error.Message)
		}
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	return env.Data, nil
}
