// Package hubspot provides a CRM connector for the HubSpot API.
package hubspot

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
	DefaultBaseURL = "https://api.hubapi.com"
	DefaultTimeout = 30 * time.Second
	DefaultLimit   = 100
)

// objectTypes maps HubSpot CRM object types to entity types. HubSpot has
// a fixed object model, so the table list does not come from configuration.
var objectTypes = []struct {
	Object     string
	Name       string
	EntityType string
}{
	{Object: "companies", Name: "Companies", EntityType: "company"},
	{Object: "contacts", Name: "Contacts", EntityType: "contact"},
	{Object: "deals", Name: "Deals", EntityType: "deal"},
}

// Config holds configuration for the HubSpot connector.
type Config struct {
	// APIToken is the HubSpot private app token (required).
	APIToken string

	// BaseURL is the API base URL (default: https://api.hubapi.com).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Connector loads CRM records from the HubSpot API.
type Connector struct {
	client   *http.Client
	baseURL  string
	apiToken string
	limiter  *crm.RateLimiter
}

// objectsResponse is the GET /crm/v3/objects/{type} response format.
type objectsResponse struct {
	Results []struct {
		ID         string         `json:"id"`
		Properties map[string]any `json:"properties"`
	} `json:"results"`
	Total int `json:"total"`
}

// NewConnector creates a new HubSpot connector.
func NewConnector(cfg Config) (*Connector, error) {
	if cfg.APIToken == "" {
		return nil, fmt.Errorf("hubspot: %w: API token", domain.ErrMissingCredentials)
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
		limiter:  crm.NewRateLimiter(crm.DefaultRateLimit),
	}, nil
}

// Provider returns the provider name.
func (c *Connector) Provider() string {
	return domain.ProviderHubSpot
}

// Connect verifies the token by probing the contacts endpoint.
func (c *Connector) Connect(ctx context.Context) error {
	var resp objectsResponse
	if err := c.get(ctx, "/crm/v3/objects/contacts?limit=1", &resp); err != nil {
		return fmt.Errorf("hubspot: connect: %w", err)
	}
	return nil
}

// LoadData fetches records for every supported object type. Properties
// are flattened into the record so they index like any other CRM fields.
func (c *Connector) LoadData(ctx context.Context, opts driven.LoadOptions) (map[string]domain.TableData, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	result := make(map[string]domain.TableData)
	for _, obj := range objectTypes {
		records, err := c.loadObjects(ctx, obj.Object, limit)
		if err != nil {
			logger.Warn("Skipping %s: %v", obj.Name, err)
			continue
		}

		result[obj.Object] = domain.TableData{
			Name:        obj.Name,
			EntityType:  obj.EntityType,
			Data:        records,
			RecordCount: len(records),
		}
		logger.Debug("Loaded %d records from %s", len(records), obj.Name)
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("hubspot: %w: no object types could be loaded", domain.ErrCRMUnavailable)
	}
	return result, nil
}

// loadObjects fetches up to limit records for a single object type.
func (c *Connector) loadObjects(ctx context.Context, object string, limit int) ([]map[string]any, error) {
	var resp objectsResponse
	path := fmt.Sprintf("/crm/v3/objects/%s?limit=%d", object, limit)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}

	records := make([]map[string]any, 0, len(resp.Results))
	for _, res := range resp.Results {
		record := map[string]any{"id": res.ID}
		for k, v := range res.Properties {
			record[k] = v
		}
		records = append(records, record)
	}
	return records, nil
}

// TestConnection checks credentials against the object endpoints.
func (c *Connector) TestConnection(ctx context.Context) (*driven.TestResult, error) {
	if err := c.Connect(ctx); err != nil {
		return &driven.TestResult{Success: false, Message: err.Error()}, nil
	}
	return &driven.TestResult{
		Success: true,
		Message: fmt.Sprintf("connected, %d object types available", len(objectTypes)),
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
	return nil
}
