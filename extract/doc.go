// Package extract turns investigation reports into categorized entity sets.
//
// The Extractor is a pure function over a report: it scans the discovered
// profiles, their enrichment data, and the optional aggregated intelligence
// section, and emits entities (people, organizations, emails, domains,
// locations, social handles, phones, events) with per-heuristic confidence
// scores. Explicit contact data is emitted at confidence 1.0; inferred data
// carries lower scores.
//
// Extraction never fails on missing or malformed optional fields; absent
// sections simply contribute no entities. Each call builds a fresh result
// set, so a single Extractor is safe for concurrent use across reports.
package extract
