// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package osint implements the search orchestration core: it decides which
// lookup tools apply to a set of subject identifiers, fans the calls out
// concurrently, tracks each tool's lifecycle on a shared status board, and
// synthesizes one report from whatever settled.
//
// The lookup tools themselves (username enumeration, email-registration
// checks, court-record search, and so on) are black-box JSON-over-HTTP
// services consumed through the toolclient package; only the calling
// discipline lives here.
package osint

import "strings"

// SearchRequest carries the raw subject identifiers as the investigator
// entered them. All fields are optional; at least one of the four
// identifiers must be non-blank for a search to dispatch anything.
type SearchRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	State   string `json:"state"`
}

// Empty reports whether every identifier is blank after trimming.
// State alone does not make a request searchable; it only scopes
// court and vehicle links.
func (r SearchRequest) Empty() bool {
	return strings.TrimSpace(r.Name) == "" &&
		strings.TrimSpace(r.Email) == "" &&
		strings.TrimSpace(r.Phone) == "" &&
		strings.TrimSpace(r.Address) == ""
}

// Normalized returns a copy with the name and phone fields canonicalized.
// The raw request is kept for history and report headers; the normalized
// copy is what gets sent to the lookup tools.
func (r SearchRequest) Normalized() SearchRequest {
	out := r
	out.Name = NormalizeName(r.Name)
	out.Phone = NormalizePhone(r.Phone)
	return out
}

// Subject returns the best display identifier for the request: the name
// if present, otherwise the first non-blank identifier.
func (r SearchRequest) Subject() string {
	for _, v := range []string{r.Name, r.Email, r.Phone, r.Address} {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
