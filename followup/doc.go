// Package followup turns extracted entities into prioritized, actionable
// follow-up investigation suggestions.
//
// The Generator is a pure function over a report's entity set: each entity
// category has a rule that may emit suggestions (investigate a person's
// likely usernames, check an email against account databases and breach
// corpora, harvest a domain, ...). Every suggestion carries concrete search
// entries naming the tool to run and the query to feed it, plus a one-click
// action describing the API call that launches the search.
//
// Suggestions are sorted by a priority score combining the suggestion's
// priority tier, the weight of the originating entity category, and the
// entity's extraction confidence, then assigned sequential IDs.
package followup
