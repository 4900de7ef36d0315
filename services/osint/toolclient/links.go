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

// NamedLink is a labelled URL shared by several link-building tools.
// Type distinguishes free, paid, and social sources.
type NamedLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type,omitempty"`
}

// =============================================================================
// background check link builder
// =============================================================================

// BackgroundLinksRequest asks for categorized background-check links.
type BackgroundLinksRequest struct {
	Name  string `json:"name"`
	State string `json:"state,omitempty"`
	City  string `json:"city,omitempty"`
}

// BackgroundLinksResult groups links by category (people search, public
// records, social, ...).
type BackgroundLinksResult struct {
	Links map[string][]NamedLink `json:"links"`
}

// BackgroundLinks builds background-check links for the subject name.
func (c *Client) BackgroundLinks(ctx context.Context, req BackgroundLinksRequest) (*BackgroundLinksResult, error) {
	var out BackgroundLinksResult
	if err := c.postJSON(ctx, "/api/background-links", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// dork generator
// =============================================================================

type dorkRequest struct {
	Query string `json:"query"`
	Type  string `json:"type"`
}

// DorkItem is one engineered search-engine query.
type DorkItem struct {
	Category  string `json:"category"`
	Dork      string `json:"dork"`
	GoogleURL string `json:"google_url"`
}

// DorkResult is the dork generator response.
type DorkResult struct {
	Dorks []DorkItem `json:"dorks"`
}

// Dorks generates search-engine queries for query. dorkType selects the
// generator profile: "name", "email", or "phone".
func (c *Client) Dorks(ctx context.Context, query, dorkType string) (*DorkResult, error) {
	var out DorkResult
	if err := c.postJSON(ctx, "/api/dorks", dorkRequest{Query: query, Type: dorkType}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// vehicle search link builder
// =============================================================================

// VehicleSearchRequest asks for plate/VIN search links. At least one of
// Plate or VIN should be set; State scopes the registries consulted.
type VehicleSearchRequest struct {
	Plate string `json:"plate,omitempty"`
	VIN   string `json:"vin,omitempty"`
	State string `json:"state"`
}

// VehicleSearchResult is the vehicle search link builder response.
type VehicleSearchResult struct {
	SearchLinks []NamedLink `json:"search_links"`
}

// VehicleSearch builds vehicle registry search links.
func (c *Client) VehicleSearch(ctx context.Context, req VehicleSearchRequest) (*VehicleSearchResult, error) {
	var out VehicleSearchResult
	if err := c.postJSON(ctx, "/api/vehicle-search", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
