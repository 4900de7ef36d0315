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
// sherlock — username enumeration
// =============================================================================

type usernameSearchRequest struct {
	Username string `json:"username"`
	Timeout  int    `json:"timeout"`
}

// FoundProfile is one confirmed profile for a username or email.
type FoundProfile struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// UsernameSearchResult is the response of the username enumerator.
type UsernameSearchResult struct {
	Username      string         `json:"username"`
	Found         []FoundProfile `json:"found"`
	TotalSites    int            `json:"total_sites"`
	ExecutionTime float64        `json:"execution_time"`
}

// UsernameSearch enumerates a single username across social platforms.
// timeoutSeconds is passed through to the backend tool; it is not a
// client-side deadline.
func (c *Client) UsernameSearch(ctx context.Context, username string, timeoutSeconds int) (*UsernameSearchResult, error) {
	var out UsernameSearchResult
	req := usernameSearchRequest{Username: username, Timeout: timeoutSeconds}
	if err := c.postJSON(ctx, "/api/sherlock", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// investigate — combined person investigation flow
// =============================================================================

// InvestigateRequest drives the backend's combined flow: people-search
// link generation, optional email check, and username-variation sweeps.
type InvestigateRequest struct {
	Name     string   `json:"name"`
	Email    string   `json:"email,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Location string   `json:"location,omitempty"`
	Aliases  []string `json:"usernames,omitempty"`
}

// InvestigateResult is the combined investigation response.
type InvestigateResult struct {
	Name                string         `json:"name"`
	DiscoveredUsernames []string       `json:"discovered_usernames"`
	ConfirmedProfiles   []FoundProfile `json:"confirmed_profiles"`
	PeopleSearchLinks   []NamedLink    `json:"people_search_links"`
	Summary             string         `json:"summary"`
	ExecutionTime       float64        `json:"execution_time"`
}

// Investigate runs the combined person investigation flow.
func (c *Client) Investigate(ctx context.Context, req InvestigateRequest) (*InvestigateResult, error) {
	var out InvestigateResult
	if err := c.postJSON(ctx, "/api/investigate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
