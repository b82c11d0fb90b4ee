// Package entity defines the typed entity model used across the intelgraph SDK.
//
// An Entity is a single categorized piece of information extracted from an
// investigation report: a person, organization, email address, domain,
// location, social handle, phone number, event, or keyword. Entities carry a
// generic attribute map together with category-aware accessors, an advisory
// confidence score, and a free-form source label describing where the
// observation came from.
//
// # Identity and Deduplication
//
// Two observations refer to the same real-world entity when their normalized
// dedup keys are equal. The dedup key is derived per category (a person's
// lowercased name, an email's lowercased address, a phone's symbol-stripped
// number, and so on) and feeds the deterministic EntityID:
//
//	{category}:{hex(sha256(key)[:4])}
//
// The same logical entity always produces the same ID, across reports and
// across process restarts. This is the join key that links reports in the
// knowledge graph.
//
// # Entity Sets
//
// A Set groups entities by category and is the unit exchanged between the
// extractor, the store, and the follow-up generator. Sets deduplicate within
// a category by dedup key, keeping the first occurrence.
package entity
