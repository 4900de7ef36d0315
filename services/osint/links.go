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
	"net/url"
	"strings"

	"github.com/recoveryops/skiptrace/services/osint/toolclient"
)

// StateCourtLinks builds search links into a state's court and offender
// systems for the given subject name. States without a curated entry
// get the federal links plus a notice link pointing at a generic web
// search. The builder always returns at least the federal links.
func StateCourtLinks(name, state string) []toolclient.NamedLink {
	q := url.QueryEscape(strings.TrimSpace(name))
	last := lastNamePart(name)
	state = strings.ToUpper(strings.TrimSpace(state))

	var links []toolclient.NamedLink
	switch state {
	case "LA":
		links = []toolclient.NamedLink{
			{Name: "Louisiana Supreme Court", URL: "https://www.lasc.org/search?q=" + q, Type: "state"},
			{Name: "Louisiana District Courts", URL: "https://www.laed.uscourts.gov/search/node/" + q, Type: "state"},
			{Name: "Louisiana Case Search", URL: "https://www.lacourt.org/", Type: "state"},
			{Name: "Louisiana DOC Offender Search", URL: "https://www.doc.la.gov/offender-search?name=" + q, Type: "offender"},
		}
	case "TX":
		links = []toolclient.NamedLink{
			{Name: "Texas Courts Online", URL: "https://search.txcourts.gov/CaseSearch.aspx?coa=cossup&s=" + q, Type: "state"},
			{Name: "TDCJ Offender Search", URL: "https://offender.tdcj.texas.gov/OffenderSearch/search.action?lastName=" + last, Type: "offender"},
		}
	case "FL":
		links = []toolclient.NamedLink{
			{Name: "Florida County Clerk Search", URL: "https://www.myfloridacounty.com/", Type: "state"},
			{Name: "Florida DOC Offender Search", URL: "https://www.dc.state.fl.us/offenderSearch/search.aspx?TypeSearch=IR&LastName=" + last, Type: "offender"},
		}
	case "CA":
		links = []toolclient.NamedLink{
			{Name: "California Courts", URL: "https://www.courts.ca.gov/find-my-court.htm", Type: "state"},
			{Name: "CDCR Inmate Locator", URL: "https://inmatelocator.cdcr.ca.gov/search.aspx", Type: "offender"},
		}
	case "GA":
		links = []toolclient.NamedLink{
			{Name: "Georgia Supreme Court", URL: "https://www.gasupreme.us/search/?q=" + q, Type: "state"},
			{Name: "Georgia DOC Offender Query", URL: "https://gdc.ga.gov/GDC/Offender/Query", Type: "offender"},
		}
	case "NY":
		links = []toolclient.NamedLink{
			{Name: "New York eCourts", URL: "https://iapps.courts.state.ny.us/webcrim_attorney/AttorneyWelcome", Type: "state"},
			{Name: "NYS DOCCS Lookup", URL: "https://nysdoccslookup.doccs.ny.gov/", Type: "offender"},
		}
	case "AL":
		links = []toolclient.NamedLink{
			{Name: "Alacourt", URL: "https://pa.alacourt.com/", Type: "state"},
			{Name: "Alabama DOC Inmate Search", URL: "https://www.doc.alabama.gov/InmateSearch", Type: "offender"},
		}
	case "MS":
		links = []toolclient.NamedLink{
			{Name: "Mississippi Courts", URL: "https://courts.ms.gov/", Type: "state"},
			{Name: "MDOC Inmate Search", URL: "https://www.mdoc.ms.gov/Inmate-Search", Type: "offender"},
		}
	default:
		if state != "" {
			links = []toolclient.NamedLink{
				{Name: "Web Search (" + state + " court records)", URL: "https://www.google.com/search?q=" + url.QueryEscape(state+" court records "+name), Type: "generic"},
			}
		}
	}

	links = append(links,
		toolclient.NamedLink{Name: "PACER", URL: "https://pacer.uscourts.gov/", Type: "federal"},
		toolclient.NamedLink{Name: "CourtListener", URL: "https://www.courtlistener.com/?q=" + q, Type: "federal"},
	)
	return links
}

// StaticReferenceLinks returns portals useful on any trace, independent
// of the searched identifiers.
func StaticReferenceLinks() []toolclient.NamedLink {
	return []toolclient.NamedLink{
		{Name: "TruePeopleSearch", URL: "https://www.truepeoplesearch.com/", Type: "free"},
		{Name: "FastPeopleSearch", URL: "https://www.fastpeoplesearch.com/", Type: "free"},
		{Name: "Whitepages", URL: "https://www.whitepages.com/", Type: "free"},
		{Name: "ThatsThem", URL: "https://thatsthem.com/", Type: "free"},
		{Name: "Spokeo", URL: "https://www.spokeo.com/", Type: "paid"},
		{Name: "BeenVerified", URL: "https://www.beenverified.com/", Type: "paid"},
		{Name: "Intelius", URL: "https://www.intelius.com/", Type: "paid"},
		{Name: "PACER", URL: "https://pacer.uscourts.gov/", Type: "federal"},
		{Name: "CourtListener", URL: "https://www.courtlistener.com/", Type: "federal"},
		{Name: "NamUs", URL: "https://www.namus.gov/", Type: "federal"},
	}
}

// lastNamePart returns the query-escaped last whitespace-separated
// token of name, matching offender searches keyed by last name.
func lastNamePart(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return url.QueryEscape(fields[len(fields)-1])
}
