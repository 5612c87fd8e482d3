package github

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
)

const apiBase = "https://api.github.com"

// Client fetches a respondent's raw records from the GitHub REST API using
// the connection's OAuth token. It implements model.Source.
type Client struct {
	httpClient *http.Client
}

// NewClient builds a client for one connection.
func NewClient(conn *model.Connection) (*Client, error) {
	if conn.AccessToken == "" {
		return nil, fmt.Errorf("github connection %q has no access token: %w",
			conn.ID, common.ErrMissingConfig)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: conn.AccessToken})
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = 30 * time.Second

	return &Client{httpClient: httpClient}, nil
}

// FetchRecords retrieves the raw records of one data category.
func (c *Client) FetchRecords(ctx context.Context, category string) ([]model.Record, error) {
	if category != "repositories" {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownCategory, category)
	}

	url := apiBase + "/user/repos?per_page=100&sort=created&direction=desc"

	var records []model.Record
	err := common.WithRetry(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: false}
		}
		req.Header.Set("Accept", "application/vnd.github+json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0" {
			return common.ErrRateLimit
		}
		if resp.StatusCode != http.StatusOK {
			raw, _ := io.ReadAll(resp.Body)
			return &common.RetryableError{
				Err:       fmt.Errorf("github API error: %d - %s", resp.StatusCode, string(raw)),
				Retryable: resp.StatusCode >= 500,
			}
		}

		return json.NewDecoder(resp.Body).Decode(&records)
	}, service.RetryOptions{MaxAttempts: 3})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repositories: %w", err)
	}

	return records, nil
}
