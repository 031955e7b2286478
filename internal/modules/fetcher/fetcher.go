package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"quote-scraper/internal/config"
	"quote-scraper/internal/failure"

	"go.uber.org/zap"
)

// Fetcher returns the rendered markup of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// RenderClient implements Fetcher against a realtime rendering API: one POST
// per page, the rendered HTML comes back in results[0].content.
type RenderClient struct {
	cfg    config.RenderConfig
	client *http.Client
	logger *zap.Logger
}

type renderRequest struct {
	Source string `json:"source"`
	Render string `json:"render"`
	URL    string `json:"url"`
}

type renderResponse struct {
	Results []struct {
		Content string `json:"content"`
	} `json:"results"`
}

// New creates a RenderClient. A nil client means http.DefaultClient, which
// has no timeout.
func New(cfg config.RenderConfig, client *http.Client, logger *zap.Logger) *RenderClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &RenderClient{cfg: cfg, client: client, logger: logger}
}

// Fetch asks the rendering service for the fully rendered page at url.
func (rc *RenderClient) Fetch(ctx context.Context, url string) (string, error) {
	payload, err := json.Marshal(renderRequest{
		Source: rc.cfg.Source,
		Render: rc.cfg.Mode,
		URL:    url,
	})
	if err != nil {
		return "", failure.New(failure.Network, "encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rc.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", failure.New(failure.Network, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(rc.cfg.Username, rc.cfg.Password)

	rc.logger.Debug("requesting render", zap.String("url", url), zap.String("endpoint", rc.cfg.Endpoint))

	resp, err := rc.client.Do(req)
	if err != nil {
		return "", failure.New(failure.Network, "fetch", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", failure.Newf(failure.Auth, "fetch", "credentials rejected: %s", resp.Status)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", failure.Newf(failure.Network, "fetch", "bad status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", failure.New(failure.Network, "read response", err)
	}

	var decoded renderResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", failure.New(failure.Network, "decode response", err)
	}
	if len(decoded.Results) == 0 {
		return "", failure.Newf(failure.Network, "decode response", "no results in response")
	}

	content := decoded.Results[0].Content
	if content == "" {
		return "", failure.Newf(failure.Network, "decode response", "empty content for %s", url)
	}

	rc.logger.Debug("fetched page",
		zap.String("url", url),
		zap.Int("bytes", len(content)))
	return content, nil
}

var _ Fetcher = (*RenderClient)(nil)

