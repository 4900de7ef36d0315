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
	"strings"
	"testing"
)

func TestMergeDorksDeduplicatesByURL(t *testing.T) {
	batchA := []DorkEntry{
		{Category: "social", Query: `"john smith" site:facebook.com`, URL: "https://g.example/1"},
		{Category: "records", Query: `"john smith" arrest`, URL: "https://g.example/2"},
	}
	batchB := []DorkEntry{
		// Same URL as batchA's first entry, different category label.
		{Category: "profiles", Query: `"john smith" site:facebook.com`, URL: "https://g.example/1"},
		{Category: "documents", Query: `"john smith" filetype:pdf`, URL: "https://g.example/3"},
	}

	got := MergeDorks(batchA, batchB)

	if len(got) != 3 {
		t.Fatalf("merged %d entries, want 3: %v", len(got), got)
	}
	wantURLs := []string{"https://g.example/1", "https://g.example/2", "https://g.example/3"}
	for i, u := range wantURLs {
		if got[i].URL != u {
			t.Errorf("entry %d URL = %q, want %q (first-seen order)", i, got[i].URL, u)
		}
	}
	// First occurrence wins on collision.
	if got[0].Category != "social" {
		t.Errorf("collision kept %q, want first-seen %q", got[0].Category, "social")
	}
}

func TestMergeDorksEmpty(t *testing.T) {
	if got := MergeDorks(); len(got) != 0 {
		t.Errorf("MergeDorks() = %v, want empty", got)
	}
	if got := MergeDorks(nil, nil); len(got) != 0 {
		t.Errorf("MergeDorks(nil, nil) = %v, want empty", got)
	}
}

func TestEmailWebSearches(t *testing.T) {
	got := EmailWebSearches("j@example.com")

	if len(got) == 0 {
		t.Fatal("expected search entries for an email")
	}
	seen := make(map[string]bool)
	for _, e := range got {
		if e.URL == "" {
			t.Errorf("entry %+v has empty URL", e)
		}
		if seen[e.URL] {
			t.Errorf("duplicate URL %q", e.URL)
		}
		seen[e.URL] = true
		if !strings.Contains(e.Query, "j@example.com") {
			t.Errorf("query %q does not mention the email", e.Query)
		}
	}
}
