// Package store persists extracted entities in Redis and maintains the
// bidirectional indices that turn individual reports into a cross-report
// knowledge graph.
//
// # Key Namespace
//
// The store reproduces a fixed Redis schema:
//
//	report:{id}:entities:{category}  per-report, per-category entity snapshot (JSON)
//	report:{id}:meta                 hash with entity-count summary and extraction timestamp
//	entity:{id}:reports              set of report IDs mentioning the entity (reverse index)
//	entity:{id}:data                 canonical entity record (JSON)
//	entities:by_category:{category}  set of entity IDs per category registry
//	reports:with_entities            set of reports that have stored entities
//
// # Consistency Model
//
// There is no multi-key transaction: a crash mid-Store can leave the forward
// snapshot written without the reverse index updated. Every operation is
// idempotent and set-based, so re-running Store for the same report restores
// consistency, and concurrent Store calls for different reports touching the
// same entity are safe without locking (set-add and create-if-absent
// commute).
//
// Canonical entity records follow first-occurrence-wins: the attributes from
// the first sighting are immutable, and later sightings only refresh the
// last_updated timestamp. Deleting a report's entities garbage-collects any
// entity whose report set becomes empty, so entities are never orphaned.
package store
