package base

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const apiKeyHeader = "TRON-PRO-API-KEY"

// Client performs JSON calls against the TRON HTTP wallet API.
type Client struct {
	http   *http.Client
	config Config
	logger *zap.Logger
}

// New creates a base client for the given full node.
func New(cfg Config) (*Client, error) {
	if cfg.FullHost == "" {
		return nil, fmt.Errorf("full host is required")
	}
	cfg.FullHost = normalizeHost(cfg.FullHost)
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxResponseSize <= 0 {
		cfg.MaxResponseSize = 10 * 1024 * 1024 // 10MB
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		http:   &http.Client{Timeout: cfg.Timeout},
		config: cfg,
		logger: logger,
	}, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// FullHost returns the normalized endpoint.
func (c *Client) FullHost() string {
	return c.config.FullHost
}

// Post sends req as JSON to path and decodes the response into resp.
func (c *Client) Post(ctx context.Context, path string, req, resp interface{}) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}

	url := c.config.FullHost + "/" + strings.TrimLeft(path, "/")
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.config.APIKey != "" {
		httpReq.Header.Set(apiKeyHeader, c.config.APIKey)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("call %s: %w", path, err)
	}
	defer httpResp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, c.config.MaxResponseSize))
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return &StatusError{Path: path, Code: httpResp.StatusCode, Body: truncate(string(data), 256)}
	}

	c.logger.Debug("tron api call", zap.String("path", path), zap.Int("bytes", len(data)))

	if resp == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, resp); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// StatusError is returned for non-2xx HTTP responses.
type StatusError struct {
	Path string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Path, e.Code, e.Body)
}

// normalizeHost adds a scheme when missing. Local nodes default to plain
// http, anything else to https.
func normalizeHost(host string) string {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return host
	}
	if isLocal(host) {
		return "http://" + host
	}
	return "https://" + host
}

func isLocal(host string) bool {
	return strings.HasPrefix(host, "localhost") ||
		strings.HasPrefix(host, "127.0.0.1") ||
		strings.HasPrefix(host, "0.0.0.0") ||
		strings.HasPrefix(host, ":") // just port, implies localhost
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
