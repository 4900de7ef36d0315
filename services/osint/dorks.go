// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package osint

import (
	"fmt"
	"net/url"
)

// DorkEntry is one suggested search-engine query. URL is the canonical
// key: two entries with the same URL are the same suggestion regardless
// of which tool produced them.
type DorkEntry struct {
	Category string `json:"category"`
	Query    string `json:"query"`
	URL      string `json:"url"`
}

// MergeDorks merges dork batches into one deduplicated sequence.
//
// Description:
//
//	Batches are walked in the order given — callers pass them in
//	dispatch order — and within a batch in element order. An entry is
//	kept only if its URL has not been kept yet, so first-seen order is
//	preserved and no two kept entries share a URL. The output length is
//	at most the sum of the input lengths.
//
// Thread Safety: Pure function. Safe for concurrent use.
func MergeDorks(batches ...[]DorkEntry) []DorkEntry {
	seen := make(map[string]bool)
	var out []DorkEntry
	for _, batch := range batches {
		for _, entry := range batch {
			if seen[entry.URL] {
				continue
			}
			seen[entry.URL] = true
			out = append(out, entry)
		}
	}
	return out
}

// EmailWebSearches builds the googleLookup batch: quoted web searches
// for an email address across the major engines. Built locally — the
// suggestion is a URL the investigator opens, not a call this service
// makes.
func EmailWebSearches(email string) []DorkEntry {
	quoted := url.QueryEscape(fmt.Sprintf("%q", email))
	return []DorkEntry{
		{
			Category: "Web Search",
			Query:    fmt.Sprintf("%q", email),
			URL:      "https://www.google.com/search?q=" + quoted,
		},
		{
			Category: "Web Search",
			Query:    fmt.Sprintf("%q", email),
			URL:      "https://www.bing.com/search?q=" + quoted,
		},
		{
			Category: "Web Search",
			Query:    fmt.Sprintf("%q", email),
			URL:      "https://duckduckgo.com/?q=" + quoted,
		},
		{
			Category: "Social",
			Query:    fmt.Sprintf("%q site:facebook.com", email),
			URL:      "https://www.google.com/search?q=" + url.QueryEscape(fmt.Sprintf("%q site:facebook.com", email)),
		},
		{
			Category: "Social",
			Query:    fmt.Sprintf("%q site:linkedin.com", email),
			URL:      "https://www.google.com/search?q=" + url.QueryEscape(fmt.Sprintf("%q site:linkedin.com", email)),
		},
	}
}
