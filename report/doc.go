// Package report defines the investigation report shape consumed by the
// intelgraph core and provides Redis-backed report persistence.
//
// A Report is the aggregated output of several independent lookup tools run
// against a single search subject. The upstream pipeline that launches those
// tools and parses their raw output is outside this SDK; this package only
// models the fields the entity extractor reads: the discovered profile list
// (with optional per-profile enrichment data) and the optional aggregated
// intelligence section.
//
// Unknown or missing optional fields are always tolerated: absent sections
// decode to nil and are treated as empty downstream.
//
// The Store persists reports under the report:{id} key with a recency-sorted
// index and a per-username set, and is what graph traversal consults for node
// metadata.
package report
