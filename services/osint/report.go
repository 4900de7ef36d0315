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
	"sort"
	"strings"
	"time"

	"github.com/recoveryops/skiptrace/services/osint/toolclient"
)

// ReportInput carries everything the report builder reads. Tasks is a
// board snapshot; Vehicle is optional and appended when a vehicle
// search ran alongside the person search.
type ReportInput struct {
	Request SearchRequest
	Tasks   []ToolTask
	Vehicle *toolclient.VehicleSearchResult
	Now     time.Time
}

// BuildReport renders a plain-text skip trace report.
//
// Description:
//
//	The header and the searched-identifier block are always present. A
//	finding section appears only when its tool settled Done with
//	non-empty content; tools that errored are collected into a trailing
//	errors section. With no settled tasks the output is the minimal
//	header document. BuildReport never fails: absent or partial data
//	produces a shorter report, not an error.
func BuildReport(in ReportInput) string {
	var b strings.Builder

	b.WriteString("==================================================\n")
	b.WriteString("           SKIP TRACE REPORT\n")
	b.WriteString("==================================================\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", in.Now.Format("2006-01-02 15:04 MST"))

	writeIdentifiers(&b, in.Request)

	var errored []ToolTask
	for _, task := range in.Tasks {
		switch task.Status {
		case StatusError:
			errored = append(errored, task)
		case StatusDone:
			if task.Result != nil && task.Result.HasContent() {
				writeSection(&b, task)
			}
		}
	}

	if in.Vehicle != nil && len(in.Vehicle.SearchLinks) > 0 {
		writeVehicle(&b, in.Vehicle)
	}

	writeDorks(&b, in.Tasks)

	if len(errored) > 0 {
		writeHeading(&b, "TOOL ERRORS")
		for _, task := range errored {
			fmt.Fprintf(&b, "  %s: %s\n", task.Label, task.Err)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func writeHeading(b *strings.Builder, title string) {
	b.WriteString("--------------------------------------------------\n")
	b.WriteString(title)
	b.WriteString("\n--------------------------------------------------\n")
}

func writeIdentifiers(b *strings.Builder, req SearchRequest) {
	// A board with no search yet has nothing to list; the minimal
	// document carries no section headings at all.
	if req.Empty() && strings.TrimSpace(req.State) == "" {
		return
	}
	writeHeading(b, "SEARCHED IDENTIFIERS")
	if v := strings.TrimSpace(req.Name); v != "" {
		fmt.Fprintf(b, "  Name:    %s\n", v)
	}
	if v := strings.TrimSpace(req.Email); v != "" {
		fmt.Fprintf(b, "  Email:   %s\n", v)
	}
	if v := strings.TrimSpace(req.Phone); v != "" {
		fmt.Fprintf(b, "  Phone:   %s\n", v)
	}
	if v := strings.TrimSpace(req.Address); v != "" {
		fmt.Fprintf(b, "  Address: %s\n", v)
	}
	if v := strings.TrimSpace(req.State); v != "" {
		fmt.Fprintf(b, "  State:   %s\n", v)
	}
	b.WriteString("\n")
}

// writeSection dispatches one Done task to its renderer. Dork batches
// are skipped here; they are merged across tools by writeDorks.
func writeSection(b *strings.Builder, task ToolTask) {
	res := task.Result
	switch task.Key {
	case ToolInvestigate:
		writeInvestigate(b, res.Investigate)
	case ToolCourtRecords:
		writeCourtRecords(b, res.CourtRecords)
	case ToolArrests:
		writeArrests(b, res.Arrests)
	case ToolBackgroundLinks:
		writeBackgroundLinks(b, res.BackgroundLinks)
	case ToolHolehe:
		writeHolehe(b, res.Holehe)
	case ToolPhoneLookup:
		writePhoneLookup(b, res.PhoneLookup)
	case ToolIgnorant:
		writeIgnorant(b, res.Ignorant)
	}
}

func writeInvestigate(b *strings.Builder, r *toolclient.InvestigateResult) {
	writeHeading(b, "PERSON INVESTIGATION")
	if r.Summary != "" {
		fmt.Fprintf(b, "  %s\n", r.Summary)
	}
	if len(r.DiscoveredUsernames) > 0 {
		fmt.Fprintf(b, "  Discovered usernames: %s\n", strings.Join(r.DiscoveredUsernames, ", "))
	}
	for _, p := range r.ConfirmedProfiles {
		fmt.Fprintf(b, "  [%s] %s\n", p.Platform, p.URL)
	}
	for _, l := range r.PeopleSearchLinks {
		fmt.Fprintf(b, "  %s: %s\n", l.Name, l.URL)
	}
	b.WriteString("\n")
}

func writeCourtRecords(b *strings.Builder, r *toolclient.CourtSearchResult) {
	writeHeading(b, "COURT RECORDS")
	for _, c := range r.CasesFound {
		fmt.Fprintf(b, "  %s\n", c.CaseName)
		if c.Court != "" {
			fmt.Fprintf(b, "    Court: %s\n", c.Court)
		}
		if c.DateFiled != "" {
			fmt.Fprintf(b, "    Filed: %s\n", c.DateFiled)
		}
		if c.DocketNumber != "" {
			fmt.Fprintf(b, "    Docket: %s\n", c.DocketNumber)
		}
		if c.URL != "" {
			fmt.Fprintf(b, "    %s\n", c.URL)
		}
	}
	b.WriteString("\n")
}

func writeArrests(b *strings.Builder, r *toolclient.ArrestSearchResult) {
	writeHeading(b, "ARREST RECORDS")
	if r.FTACount > 0 {
		fmt.Fprintf(b, "  Failures to appear: %d\n", r.FTACount)
	}
	if r.WarrantCount > 0 {
		fmt.Fprintf(b, "  Warrants: %d\n", r.WarrantCount)
	}
	for _, a := range r.ArrestsFound {
		fmt.Fprintf(b, "  %s", a.Name)
		if a.Date != "" {
			fmt.Fprintf(b, " (%s)", a.Date)
		}
		b.WriteString("\n")
		if a.Charge != "" {
			fmt.Fprintf(b, "    Charge: %s\n", a.Charge)
		}
		if a.Agency != "" {
			fmt.Fprintf(b, "    Agency: %s\n", a.Agency)
		}
		if a.URL != "" {
			fmt.Fprintf(b, "    %s\n", a.URL)
		}
	}
	if r.SearchURL != "" {
		fmt.Fprintf(b, "  Full results: %s\n", r.SearchURL)
	}
	b.WriteString("\n")
}

func writeBackgroundLinks(b *strings.Builder, r *toolclient.BackgroundLinksResult) {
	writeHeading(b, "BACKGROUND CHECK LINKS")
	categories := make([]string, 0, len(r.Links))
	for cat := range r.Links {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	for _, cat := range categories {
		fmt.Fprintf(b, "  %s:\n", cat)
		for _, l := range r.Links[cat] {
			fmt.Fprintf(b, "    %s: %s\n", l.Name, l.URL)
		}
	}
	b.WriteString("\n")
}

func writeHolehe(b *strings.Builder, r *toolclient.HoleheResult) {
	writeHeading(b, "EMAIL REGISTRATIONS")
	fmt.Fprintf(b, "  %s is registered on %d service(s):\n", r.Email, len(r.RegisteredOn))
	for _, s := range r.RegisteredOn {
		fmt.Fprintf(b, "    %s", s.Service)
		if s.Details != "" {
			fmt.Fprintf(b, " (%s)", s.Details)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writePhoneLookup(b *strings.Builder, r *toolclient.PhoneLookupResult) {
	writeHeading(b, "PHONE INTELLIGENCE")
	if r.LineType != "" {
		fmt.Fprintf(b, "  Line type: %s\n", r.LineType)
	}
	if r.Carrier != "" {
		fmt.Fprintf(b, "  Carrier: %s\n", r.Carrier)
	}
	if loc := joinNonEmpty(", ", r.PhoneCity, r.PhoneState); loc != "" {
		fmt.Fprintf(b, "  Location: %s\n", loc)
	}
	if r.FraudScore > 0 {
		fmt.Fprintf(b, "  Fraud score: %d\n", r.FraudScore)
	}
	if r.Spammer {
		b.WriteString("  Flagged as spammer\n")
	}
	if len(r.AccountsFound) > 0 {
		fmt.Fprintf(b, "  Linked accounts: %s\n", strings.Join(r.AccountsFound, ", "))
	}
	b.WriteString("\n")
}

func writeIgnorant(b *strings.Builder, r *toolclient.IgnorantResult) {
	writeHeading(b, "PHONE-LINKED ACCOUNTS")
	for _, p := range r.AccountsFound {
		fmt.Fprintf(b, "  %s: %s\n", p.Platform, p.Status)
	}
	b.WriteString("\n")
}

func writeVehicle(b *strings.Builder, r *toolclient.VehicleSearchResult) {
	writeHeading(b, "VEHICLE SEARCH LINKS")
	for _, l := range r.SearchLinks {
		fmt.Fprintf(b, "  %s: %s\n", l.Name, l.URL)
	}
	b.WriteString("\n")
}

// writeDorks merges every Done dork batch, in dispatch order, into one
// deduplicated section.
func writeDorks(b *strings.Builder, tasks []ToolTask) {
	var batches [][]DorkEntry
	for _, task := range tasks {
		if task.Status == StatusDone && task.Result != nil && len(task.Result.Dorks) > 0 {
			batches = append(batches, task.Result.Dorks)
		}
	}
	merged := MergeDorks(batches...)
	if len(merged) == 0 {
		return
	}
	writeHeading(b, "SEARCH QUERIES")
	for _, d := range merged {
		if d.Category != "" {
			fmt.Fprintf(b, "  [%s] %s\n", d.Category, d.Query)
		} else {
			fmt.Fprintf(b, "  %s\n", d.Query)
		}
		fmt.Fprintf(b, "    %s\n", d.URL)
	}
	b.WriteString("\n")
}
