package qloo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/trendulum/trendulum-api-go/internal/config"
	"github.com/trendulum/trendulum-api-go/pkg/errors"
	"go.uber.org/zap"
)

// Requester is the transport surface of the taste-graph API. Resolver and
// Aggregator depend on this interface so tests can substitute fakes.
type Requester interface {
	DoRequest(ctx context.Context, method, path string, params url.Values) ([]byte, error)
	Configured() bool
}

type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	logger     *zap.Logger
}

func NewClient(httpClient *http.Client, cfg config.QlooConfig, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		logger:     logger,
	}
}

// Configured reports whether a live API credential is present. Without one
// the aggregation stage substitutes the deterministic mock profile.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// DoRequest issues a single request against the taste-graph API. There is no
// retry here: a call either completes or fails outright, and each caller
// absorbs the failure at its own granularity (per keyword, per domain).
func (c *Client) DoRequest(ctx context.Context, method, path string, params url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if params != nil {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("Qloo request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("path", path),
		)
		return nil, errors.NewAPIError(fmt.Sprintf("Qloo API error: %d", resp.StatusCode), resp.StatusCode, map[string]any{
			"url":  reqURL,
			"body": string(body),
		})
	}

	return body, nil
}
