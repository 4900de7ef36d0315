// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package toolclient

import "context"

// HealthResult reports backend liveness and per-tool install status
// (tool name → "installed", "not installed", or an error string).
type HealthResult struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Tools   map[string]string `json:"tools"`
}

// Health fetches the backend health report.
func (c *Client) Health(ctx context.Context) (*HealthResult, error) {
	var out HealthResult
	if err := c.getJSON(ctx, "/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
