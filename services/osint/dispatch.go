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

// ToolKey identifies one lookup tool. Keys double as the wire identifiers
// used by the status API and the live stream.
type ToolKey string

const (
	// Unlocked by a non-blank name.
	ToolInvestigate     ToolKey = "investigate"
	ToolCourtRecords    ToolKey = "courtRecords"
	ToolArrests         ToolKey = "arrests"
	ToolBackgroundLinks ToolKey = "backgroundLinks"
	ToolNameDorks       ToolKey = "nameDorks"

	// Unlocked by a non-blank email.
	ToolHolehe       ToolKey = "holehe"
	ToolGoogleLookup ToolKey = "googleLookup"
	ToolEmailDorks   ToolKey = "emailDorks"

	// Unlocked by a non-blank phone.
	ToolPhoneLookup ToolKey = "phoneLookup"
	ToolIgnorant    ToolKey = "ignorant"
	ToolPhoneDorks  ToolKey = "phoneDorks"
)

// AllTools lists every registered tool key in canonical dispatch order:
// name tools, then email tools, then phone tools. Dispatch returns its
// subset in this order, which is also the order the dork aggregator
// merges batches in.
var AllTools = []ToolKey{
	ToolInvestigate,
	ToolCourtRecords,
	ToolArrests,
	ToolBackgroundLinks,
	ToolNameDorks,
	ToolHolehe,
	ToolGoogleLookup,
	ToolEmailDorks,
	ToolPhoneLookup,
	ToolIgnorant,
	ToolPhoneDorks,
}

// toolLabels maps tool keys to the human-readable labels shown in the
// status list and the report's error section.
var toolLabels = map[ToolKey]string{
	ToolInvestigate:     "Person Investigation",
	ToolCourtRecords:    "Court Records",
	ToolArrests:         "Arrest Records",
	ToolBackgroundLinks: "Background Check Links",
	ToolNameDorks:       "Name Search Queries",
	ToolHolehe:          "Email Registration Check",
	ToolGoogleLookup:    "Email Web Search",
	ToolEmailDorks:      "Email Search Queries",
	ToolPhoneLookup:     "Phone Intelligence",
	ToolIgnorant:        "Phone Account Check",
	ToolPhoneDorks:      "Phone Search Queries",
}

// ToolLabel returns the display label for key, or the key itself for an
// unregistered one.
func ToolLabel(key ToolKey) string {
	if label, ok := toolLabels[key]; ok {
		return label
	}
	return string(key)
}

// Dispatch maps the set of non-blank identifiers in req to the tools to
// launch.
//
// Description:
//
//	A tool is unlocked only when its required identifier is non-blank
//	after normalization; whitespace-only input unlocks nothing. The
//	address field unlocks no tool on its own — it narrows the people
//	search inside the investigate call. Static reference links are not
//	dispatched; they always render.
//
// Outputs:
//   - []ToolKey: Tools to launch, in canonical dispatch order. Empty for
//     an empty request.
//
// Thread Safety: Pure function. Safe for concurrent use.
func Dispatch(req SearchRequest) []ToolKey {
	var keys []ToolKey
	if NormalizeName(req.Name) != "" {
		keys = append(keys, ToolInvestigate, ToolCourtRecords, ToolArrests, ToolBackgroundLinks, ToolNameDorks)
	}
	if strings.TrimSpace(req.Email) != "" {
		keys = append(keys, ToolHolehe, ToolGoogleLookup, ToolEmailDorks)
	}
	if NormalizePhone(req.Phone) != "" {
		keys = append(keys, ToolPhoneLookup, ToolIgnorant, ToolPhoneDorks)
	}
	return keys
}
