// Package tabidoo provides a CRM connector for the Tabidoo API.
package tabidoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/melioro/connectai/internal/adapters/driven/crm"
	"github.com/melioro/connectai/internal/core/domain"
	"github.com/melioro/connectai/internal/core/ports/driven"
	"github.com/melioro/connectai/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.CRMConnector = (*Connector)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://app.tabidoo.cloud/api/v2"
	DefaultTimeout = 30 * time.Second
	DefaultLimit   = 100
)

// Config holds configuration for the Tabidoo connector.
type Config struct {
	// APIToken is the Tabidoo bearer token (required).
	APIToken string

	// AppID is the Tabidoo application identifier (required).
	AppID string

	// BaseURL is the API base URL (default: https://app.tabidoo.cloud/api/v2).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Connector loads CRM records from the Tabidoo API.
type Connector struct {
	client    *http.Client
	baseURL   string
	apiToken  string
	appID     string
	tables    driven.TableConfigSource
	limiter   *crm.RateLimiter
	connected bool
}

// appResponse is the GET /apps/{id} response format.
type appResponse struct {
	Data struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"data"`
}

// recordsResponse is the GET /apps/{id}/tables/{table}/data response format.
type recordsResponse struct {
	Data []map[string]any `json:"data"`
}

// NewConnector creates a new Tabidoo connector.
func NewConnector(cfg Config, tables driven.TableConfigSource) (*Connector, error) {
	if cfg.APIToken == "" {
		return nil, fmt.Errorf("tabidoo: %w: API token", domain.ErrMissingCredentials)
	}
	if cfg.AppID == "" {
		return nil, fmt.Errorf("tabidoo: %w: application ID", domain.ErrMissingCredentials)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Connector{
		client:   &http.Client{Timeout: cfg.Timeout},
		baseURL:  cfg.BaseURL,
		apiToken: cfg.APIToken,
		appID:    cfg.AppID,
		tables:   tables,
		limiter:  crm.NewRateLimiter(crm.DefaultRateLimit),
	}, nil
}

// Provider returns the provider name.
func (c *Connector) Provider() string {
	return domain.ProviderTabidoo
}

// Connect verifies the token and application by fetching the app metadata.
func (c *Connector) Connect(ctx context.Context) error {
	var app appResponse
	if err := c.get(ctx, fmt.Sprintf("/apps/%s", c.appID), &app); err != nil {
		return fmt.Errorf("tabidoo: connect: %w", err)
	}

	logger.Debug("Connected to Tabidoo app: %s", app.Data.Name)
	c.connected = true
	return nil
}

// LoadData fetches records for every configured table. A table that fails
// to load is skipped with a warning so a single broken table does not
// abort the whole sync.
func (c *Connector) LoadData(ctx context.Context, opts driven.LoadOptions) (map[string]domain.TableData, error) {
	if !c.connected {
		if err := c.Connect(ctx); err != nil {
			return nil, err
		}
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	result := make(map[string]domain.TableData)
	for _, table := range c.tables.Tables() {
		records, err := c.loadTable(ctx, table.ID, limit)
		if err != nil {
			logger.Warn("Skipping table %s (%s): %v", table.Name, table.ID, err)
			continue
		}

		result[table.ID] = domain.TableData{
			Name:        table.Name,
			EntityType:  table.EntityType,
			Data:        records,
			RecordCount: len(records),
		}
		logger.Debug("Loaded %d records from %s", len(records), table.Name)
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("tabidoo: %w: no tables could be loaded", domain.ErrCRMUnavailable)
	}
	return result, nil
}

// loadTable fetches up to limit records from a single table.
func (c *Connector) loadTable(ctx context.Context, tableID string, limit int) ([]map[string]any, error) {
	var resp recordsResponse
	path := fmt.Sprintf("/apps/%s/tables/%s/data?limit=%d", c.appID, tableID, limit)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// TestConnection checks credentials and reports per-table record counts.
func (c *Connector) TestConnection(ctx context.Context) (*driven.TestResult, error) {
	if err := c.Connect(ctx); err != nil {
		return &driven.TestResult{Success: false, Message: err.Error()}, nil
	}

	total := 0
	tables := c.tables.Tables()
	for _, table := range tables {
		records, err := c.loadTable(ctx, table.ID, 1)
		if err != nil {
			return &driven.TestResult{
				Success: false,
				Message: fmt.Sprintf("table %s unreachable: %v", table.Name, err),
			}, nil
		}
		total += len(records)
	}

	return &driven.TestResult{
		Success: true,
		Message: fmt.Sprintf("connected, %d tables reachable", len(tables)),
	}, nil
}

// get performs a rate-limited GET request and decodes the JSON response.
func (c *Connector) get(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w (status %d)", domain.ErrMissingCredentials, resp.StatusCode)
	case http.StatusTooManyRequests:
		c.limiter.RecordRateLimitError(retryAfter(resp))
		return fmt.Errorf("%w (status 429)", domain.ErrRateLimited)
	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// retryAfter parses the Retry-After header in seconds, 0 if absent.
func retryAfter(resp *http.Response) int {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	seconds, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return seconds
}

// Close releases resources.
func (c *Connector) Close() error {
	c.connected = false
	return nil
}
