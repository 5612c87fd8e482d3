package fitbit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/datadonation/dds/internal/common"
	"github.com/datadonation/dds/internal/model"
	"github.com/datadonation/dds/internal/service"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/fitbit"
)

const apiBase = "https://api.fitbit.com"

// Config holds the OAuth2 application credentials.
type Config struct {
	ClientID     string
	ClientSecret string
}

// Client fetches a respondent's raw records from the Fitbit Web API. It
// implements model.Source; the resolution engine never sees HTTP.
type Client struct {
	httpClient *http.Client
	fetchDays  int
}

// NewClient builds a client for one connection. The oauth2 transport
// refreshes the access token transparently when it expires.
func NewClient(cfg Config, conn *model.Connection) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("fitbit client credentials: %w", common.ErrMissingConfig)
	}
	if conn.AccessToken == "" {
		return nil, fmt.Errorf("fitbit connection %q has no access token: %w",
			conn.ID, common.ErrMissingConfig)
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     fitbit.Endpoint,
		Scopes:       []string{"activity", "sleep"},
	}
	token := &oauth2.Token{
		AccessToken:  conn.AccessToken,
		RefreshToken: conn.RefreshToken,
		Expiry:       conn.TokenExpiry,
	}

	httpClient := oauthCfg.Client(context.Background(), token)
	httpClient.Timeout = 30 * time.Second

	return &Client{
		httpClient: httpClient,
		fetchDays:  30,
	}, nil
}

// FetchRecords retrieves the raw records of one data category.
func (c *Client) FetchRecords(ctx context.Context, category string) ([]model.Record, error) {
	switch category {
	case "activities":
		return c.fetchList(ctx, listRequest{
			path:     "/1/user/-/activities/list.json",
			afterKey: "afterDate",
			dataKey:  "activities",
		})
	case "sleep":
		return c.fetchList(ctx, listRequest{
			path:     "/1.2/user/-/sleep/list.json",
			afterKey: "afterDate",
			dataKey:  "sleep",
		})
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownCategory, category)
	}
}

type listRequest struct {
	path     string
	afterKey string
	dataKey  string
}

func (c *Client) fetchList(ctx context.Context, lr listRequest) ([]model.Record, error) {
	after := time.Now().AddDate(0, 0, -c.fetchDays).Format("2006-01-02")
	url := fmt.Sprintf("%s%s?%s=%s&sort=desc&limit=100&offset=0",
		apiBase, lr.path, lr.afterKey, after)

	var body []byte
	err := common.WithRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: false}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode == http.StatusTooManyRequests {
			return common.ErrRateLimit
		}
		if resp.StatusCode != http.StatusOK {
			raw, _ := io.ReadAll(resp.Body)
			return &common.RetryableError{
				Err:       fmt.Errorf("fitbit API error: %d - %s", resp.StatusCode, string(raw)),
				Retryable: resp.StatusCode >= 500,
			}
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}, service.RetryOptions{MaxAttempts: 3})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", lr.dataKey, err)
	}

	var payload map[string][]model.Record
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", lr.dataKey, err)
	}

	return payload[lr.dataKey], nil
}
