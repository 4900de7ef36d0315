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

import "strings"

// NormalizeName canonicalizes a subject name.
//
// Description:
//
//	Court and booking systems hand names back as "Last, First". If raw
//	contains a comma, the part before the first comma is treated as the
//	last name and everything after it as the first name, returned as
//	"First Last". Without a comma the input is returned trimmed.
//
//	The output never contains a comma (any extra commas collapse to
//	spaces), so the function is idempotent:
//	NormalizeName(NormalizeName(x)) == NormalizeName(x).
//
// Thread Safety: Pure function. Safe for concurrent use.
func NormalizeName(raw string) string {
	if !strings.Contains(raw, ",") {
		return strings.TrimSpace(raw)
	}
	before, after, _ := strings.Cut(raw, ",")
	last := collapseSpaces(before)
	first := collapseSpaces(strings.ReplaceAll(after, ",", " "))
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}

// NormalizePhone strips every non-digit character from raw.
//
// Thread Safety: Pure function. Safe for concurrent use.
func NormalizePhone(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// UsernameVariations generates candidate usernames from a full name, most
// likely first, deduplicated, capped at max (0 means no cap).
//
// Description:
//
//	People reuse predictable handle patterns: first+last joined, with
//	separators, initial forms, and reversed order. The investigate tool
//	takes these as the usernames to enumerate. A single-token name
//	yields just the lowercased token.
//
// Thread Safety: Pure function. Safe for concurrent use.
func UsernameVariations(fullName string, max int) []string {
	parts := strings.Fields(strings.ToLower(NormalizeName(fullName)))
	if len(parts) == 0 {
		return nil
	}
	if len(parts) == 1 {
		return []string{parts[0]}
	}

	first, last := parts[0], parts[len(parts)-1]
	candidates := []string{
		first + last,
		first + "_" + last,
		first + "." + last,
		string(first[0]) + last,
		last + first,
		last + "_" + first,
		first + string(last[0]),
	}

	seen := make(map[string]bool, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if len(c) < 3 || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out
}

// collapseSpaces trims s and squeezes internal whitespace runs to one space.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
