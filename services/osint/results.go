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

import "github.com/recoveryops/skiptrace/services/osint/toolclient"

// ToolResult is a tagged union over the heterogeneous per-tool response
// shapes. Key names the variant; exactly one payload pointer (or the
// Dorks slice, for the dork-producing tools) is set. Consumers switch on
// Key instead of probing shapes at runtime.
type ToolResult struct {
	Key ToolKey `json:"key"`

	Investigate     *toolclient.InvestigateResult     `json:"investigate,omitempty"`
	CourtRecords    *toolclient.CourtSearchResult     `json:"court_records,omitempty"`
	Arrests         *toolclient.ArrestSearchResult    `json:"arrests,omitempty"`
	BackgroundLinks *toolclient.BackgroundLinksResult `json:"background_links,omitempty"`
	Holehe          *toolclient.HoleheResult          `json:"holehe,omitempty"`
	PhoneLookup     *toolclient.PhoneLookupResult     `json:"phone_lookup,omitempty"`
	Ignorant        *toolclient.IgnorantResult        `json:"ignorant,omitempty"`

	// Dorks carries the batch for nameDorks, emailDorks, phoneDorks,
	// and googleLookup — the four tools feeding the merged-queries view.
	Dorks []DorkEntry `json:"dorks,omitempty"`
}

// HasContent reports whether the result carries anything worth a report
// section. A Done task with an empty payload contributes nothing — the
// report never renders a "0 results" section.
func (r *ToolResult) HasContent() bool {
	if r == nil {
		return false
	}
	switch r.Key {
	case ToolInvestigate:
		return r.Investigate != nil &&
			(len(r.Investigate.ConfirmedProfiles) > 0 || len(r.Investigate.PeopleSearchLinks) > 0)
	case ToolCourtRecords:
		return r.CourtRecords != nil && len(r.CourtRecords.CasesFound) > 0
	case ToolArrests:
		return r.Arrests != nil &&
			(len(r.Arrests.ArrestsFound) > 0 || r.Arrests.FTACount > 0 || r.Arrests.WarrantCount > 0)
	case ToolBackgroundLinks:
		return r.BackgroundLinks != nil && len(r.BackgroundLinks.Links) > 0
	case ToolHolehe:
		return r.Holehe != nil && len(r.Holehe.RegisteredOn) > 0
	case ToolPhoneLookup:
		return r.PhoneLookup != nil &&
			(r.PhoneLookup.Carrier != "" || r.PhoneLookup.LineType != "" || r.PhoneLookup.PhoneCity != "")
	case ToolIgnorant:
		return r.Ignorant != nil && len(r.Ignorant.AccountsFound) > 0
	case ToolNameDorks, ToolEmailDorks, ToolPhoneDorks, ToolGoogleLookup:
		return len(r.Dorks) > 0
	default:
		return false
	}
}
