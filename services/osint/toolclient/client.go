// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package toolclient talks to the OSINT tool backend over JSON/HTTP using
// raw net/http. Every lookup tool the orchestrator dispatches has one
// method here; the internals of those tools are out of scope — the client
// only implements the calling discipline: request shaping, outbound rate
// limiting, and a three-way error taxonomy (network / HTTP / shape).
package toolclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultBackendURL = "http://localhost:8000"

// defaultCallsPerSecond bounds the outbound request rate. A full dispatch
// launches eleven calls at once; the backend shells out to CLI tools and
// falls over when hammered, so a short queue at the client is cheaper
// than retries.
const defaultCallsPerSecond = 8

// Client is the HTTP client for the OSINT tool backend.
//
// Thread Safety: Client is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
}

// NewClient creates a Client from environment variables.
//
// Description:
//
//	Reads OSINT_BACKEND_URL (default http://localhost:8000) and
//	OSINT_API_KEY (optional; sent as X-API-Key when set).
//
// Outputs:
//   - *Client: The configured client. Never nil.
func NewClient() *Client {
	baseURL := os.Getenv("OSINT_BACKEND_URL")
	if baseURL == "" {
		baseURL = defaultBackendURL
		slog.Warn("OSINT_BACKEND_URL not set, defaulting", slog.String("url", baseURL))
	}
	return NewClientWithConfig(baseURL, os.Getenv("OSINT_API_KEY"))
}

// NewClientWithConfig creates a Client with explicit configuration.
// Useful for tests with httptest servers.
func NewClientWithConfig(baseURL, apiKey string) *Client {
	return &Client{
		// No client-side timeout: the orchestrator imposes none either.
		// A slow tool simply stays Running; cancellation flows through ctx.
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Limit(defaultCallsPerSecond), defaultCallsPerSecond),
	}
}

// postJSON sends payload to path and decodes the response into out,
// classifying every failure into the CallError taxonomy.
func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &CallError{Kind: KindShape, Tool: path, Msg: "marshaling request", Err: err}
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(body), out)
}

// getJSON fetches path and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &CallError{Kind: KindNetwork, Tool: path, Msg: "rate limiter wait", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &CallError{Kind: KindNetwork, Tool: path, Msg: "creating request", Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &CallError{Kind: KindNetwork, Tool: path, Msg: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &CallError{Kind: KindNetwork, Tool: path, Msg: "reading response body", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := http.StatusText(resp.StatusCode)
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return &CallError{Kind: KindHTTP, Tool: path, Status: resp.StatusCode, Msg: msg}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &CallError{Kind: KindShape, Tool: path, Msg: "parsing response JSON", Err: err}
	}

	slog.Debug("Tool call completed",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}
