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
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExportReport(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC)

	path, err := ExportReport(dir, "John Smith", "report body\n", now)
	if err != nil {
		t.Fatalf("ExportReport: %v", err)
	}

	if want := filepath.Join(dir, "john_smith_2026-08-30.txt"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	if string(data) != "report body\n" {
		t.Errorf("file content = %q", data)
	}
}

func TestExportReportCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")

	if _, err := ExportReport(dir, "J", "x", time.Now()); err != nil {
		t.Fatalf("ExportReport with missing dir: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("export dir not created: %v", err)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"John Smith", "john_smith"},
		{"Smith, John", "smith_john"},
		{"  J.  Smith Jr. ", "j_smith_jr"},
		{"j@example.com", "j_example_com"},
		{"(504) 555-0123", "504_555_0123"},
		{"", "subject"},
		{"!!!", "subject"},
	}
	for _, tt := range tests {
		if got := slug(tt.input); got != tt.want {
			t.Errorf("slug(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
