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

func TestStateCourtLinksCuratedState(t *testing.T) {
	links := StateCourtLinks("John Smith", "la")

	var sawState, sawFederal bool
	for _, l := range links {
		switch l.Type {
		case "state", "offender":
			sawState = true
		case "federal":
			sawFederal = true
		}
		if l.URL == "" {
			t.Errorf("link %q has empty URL", l.Name)
		}
	}
	if !sawState {
		t.Error("curated state produced no state links")
	}
	if !sawFederal {
		t.Error("federal links missing")
	}
}

func TestStateCourtLinksEscapesName(t *testing.T) {
	links := StateCourtLinks("John Smith", "TX")

	for _, l := range links {
		if strings.Contains(l.URL, " ") {
			t.Errorf("unescaped space in URL %q", l.URL)
		}
	}
	// Offender searches key on the last name only.
	var tdcj string
	for _, l := range links {
		if strings.Contains(l.URL, "tdcj") {
			tdcj = l.URL
		}
	}
	if !strings.Contains(tdcj, "lastName=Smith") {
		t.Errorf("TDCJ link = %q, want lastName=Smith", tdcj)
	}
}

func TestStateCourtLinksUnknownState(t *testing.T) {
	links := StateCourtLinks("John Smith", "ZZ")

	var sawGeneric, sawFederal bool
	for _, l := range links {
		switch l.Type {
		case "generic":
			sawGeneric = true
		case "federal":
			sawFederal = true
		}
	}
	if !sawGeneric {
		t.Error("unknown state produced no generic search link")
	}
	if !sawFederal {
		t.Error("unknown state dropped the federal links")
	}
}

func TestStaticReferenceLinks(t *testing.T) {
	links := StaticReferenceLinks()
	if len(links) == 0 {
		t.Fatal("no reference links")
	}
	for _, l := range links {
		if l.Name == "" || l.URL == "" || l.Type == "" {
			t.Errorf("incomplete reference link %+v", l)
		}
	}
}
