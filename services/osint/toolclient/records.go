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
// court records
// =============================================================================

type courtSearchRequest struct {
	Name string `json:"name"`
}

// CourtCase is one case returned by the court-record search.
type CourtCase struct {
	CaseName     string `json:"case_name"`
	Court        string `json:"court"`
	DateFiled    string `json:"date_filed"`
	DocketNumber string `json:"docket_number"`
	URL          string `json:"url"`
}

// CourtSearchResult is the court-record search response.
type CourtSearchResult struct {
	Query      string      `json:"query"`
	CasesFound []CourtCase `json:"cases_found"`
}

// CourtRecords searches federal court records for the subject name.
func (c *Client) CourtRecords(ctx context.Context, name string) (*CourtSearchResult, error) {
	var out CourtSearchResult
	if err := c.postJSON(ctx, "/api/court-records", courtSearchRequest{Name: name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// arrest records
// =============================================================================

type arrestSearchRequest struct {
	Name string `json:"name"`
}

// ArrestRecord is one arrest hit.
type ArrestRecord struct {
	Name   string `json:"name"`
	Date   string `json:"date"`
	Charge string `json:"charge"`
	Agency string `json:"agency"`
	URL    string `json:"url,omitempty"`
}

// ArrestSearchResult is the arrest-record search response. FTACount and
// WarrantCount are surfaced even when ArrestsFound is empty — a failure
// to appear with no booking record is still actionable.
type ArrestSearchResult struct {
	ArrestsFound []ArrestRecord `json:"arrests_found"`
	FTACount     int            `json:"fta_count"`
	WarrantCount int            `json:"warrant_count"`
	SearchURL    string         `json:"search_url"`
}

// Arrests searches arrest records for the subject name.
func (c *Client) Arrests(ctx context.Context, name string) (*ArrestSearchResult, error) {
	var out ArrestSearchResult
	if err := c.postJSON(ctx, "/api/arrests", arrestSearchRequest{Name: name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
