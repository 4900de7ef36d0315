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
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// ExportReport writes report to dir as <subject-slug>_<date>.txt and
// returns the full path. The directory is created if missing.
func ExportReport(dir, subject, report string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("osint: create export dir: %w", err)
	}
	name := fmt.Sprintf("%s_%s.txt", slug(subject), now.Format("2006-01-02"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		return "", fmt.Errorf("osint: write report file: %w", err)
	}
	return path, nil
}

// slug lowercases subject and replaces every non-alphanumeric run with
// a single underscore. An unusable subject falls back to "subject".
func slug(subject string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(subject) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "subject"
	}
	return out
}
