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
// phone intelligence
// =============================================================================

type phoneLookupRequest struct {
	Phone string `json:"phone"`
}

// PhoneLookupResult is the phone intelligence response.
type PhoneLookupResult struct {
	LineType      string   `json:"line_type"`
	Carrier       string   `json:"carrier"`
	Active        bool     `json:"active"`
	PhoneCity     string   `json:"phone_city"`
	PhoneState    string   `json:"phone_state"`
	AccountsFound []string `json:"accounts_found"`
	FraudScore    int      `json:"fraud_score"`
	Spammer       bool     `json:"spammer"`
}

// PhoneLookup fetches carrier, line type, and reputation data for a
// digits-only phone number.
func (c *Client) PhoneLookup(ctx context.Context, phone string) (*PhoneLookupResult, error) {
	var out PhoneLookupResult
	if err := c.postJSON(ctx, "/api/phone", phoneLookupRequest{Phone: phone}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// ignorant — phone registration discovery
// =============================================================================

type ignorantRequest struct {
	Phone       string `json:"phone"`
	CountryCode string `json:"country_code"`
}

// PlatformStatus is one platform's registration status for a phone number.
type PlatformStatus struct {
	Platform string `json:"platform"`
	Status   string `json:"status"`
}

// IgnorantResult is the phone registration checker response.
type IgnorantResult struct {
	AccountsFound []PlatformStatus `json:"accounts_found"`
}

// Ignorant checks which platforms a phone number is registered on.
// countryCode defaults to "US" when empty.
func (c *Client) Ignorant(ctx context.Context, phone, countryCode string) (*IgnorantResult, error) {
	if countryCode == "" {
		countryCode = "US"
	}
	var out IgnorantResult
	req := ignorantRequest{Phone: phone, CountryCode: countryCode}
	if err := c.postJSON(ctx, "/api/ignorant", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
