// Package eido is a client for the EIDO agent, the upstream service that owns
// incident records and ingests EIDO documents.
package eido

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/idx/pkg/domain"
)

const (
	incidentsPath = "/api/v1/incidents"
	ingestPath    = "/api/v1/ingest"

	// maxErrorBody bounds how much of an upstream error body is kept.
	maxErrorBody = 64 << 10
)

// Client talks to one EIDO agent. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the total timeout of each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithLogger sets the logger used for upstream diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a client for the EIDO agent at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    newHTTPClient(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newHTTPClient() *http.Client {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialer.DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   20,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   5 * time.Second,
			ResponseHeaderTimeout: 10 * time.Second,
		},
	}
}

// ListIncidents fetches every incident from the EIDO agent.
func (c *Client) ListIncidents(ctx context.Context) ([]domain.Incident, error) {
	body, err := c.do(ctx, http.MethodGet, incidentsPath, nil)
	if err != nil {
		return nil, err
	}

	var incidents []domain.Incident
	if err := json.Unmarshal(body, &incidents); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if incidents == nil {
		incidents = []domain.Incident{}
	}
	return incidents, nil
}

// Ingest forwards an EIDO document and returns the agent's JSON reply.
func (c *Client) Ingest(ctx context.Context, doc json.RawMessage) (map[string]any, error) {
	body, err := c.do(ctx, http.MethodPost, ingestPath, doc)
	if err != nil {
		return nil, err
	}

	var reply map[string]any
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if reply == nil {
		return nil, fmt.Errorf("%w: expected a JSON object, got null", ErrInvalidResponse)
	}
	return reply, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build EIDO request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("EIDO agent unreachable", "method", method, "path", path, "error", err)
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("EIDO agent call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(text)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return body, nil
}
