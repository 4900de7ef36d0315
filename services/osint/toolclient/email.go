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

// =============================================================================
// holehe — email registration discovery
// =============================================================================

type holeheRequest struct {
	Email string `json:"email"`
}

// RegisteredService is one service an email address is registered on.
type RegisteredService struct {
	Service string `json:"service"`
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
}

// HoleheResult is the response of the email registration checker.
type HoleheResult struct {
	Email         string              `json:"email"`
	RegisteredOn  []RegisteredService `json:"registered_on"`
	NotRegistered []string            `json:"not_registered,omitempty"`
	ExecutionTime float64             `json:"execution_time"`
}

// Holehe checks which services the email address is registered on.
//
// Outputs:
//   - *HoleheResult: Parsed result. Nil on error.
//   - error: A *CallError classifying the failure.
func (c *Client) Holehe(ctx context.Context, email string) (*HoleheResult, error) {
	var out HoleheResult
	if err := c.postJSON(ctx, "/api/holehe", holeheRequest{Email: email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
