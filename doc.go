// Package intelgraph builds a cross-report knowledge graph from OSINT
// reports.
//
// The library turns individual username-investigation reports into a
// connected body of intelligence: entities mentioned in a report (people,
// organizations, emails, domains, locations, social handles, phones, events)
// are extracted, canonicalized, and indexed so that reports sharing entities
// can be discovered and traversed as a graph.
//
// # Core Concepts
//
// The module is organized around a small pipeline:
//
//   - Extraction: the extract package scans a report's profiles, free text,
//     enrichment data, and intelligence summary and produces categorized
//     entities with confidence scores.
//   - Canonicalization: the entity package derives a deterministic ID for
//     every entity from its category and identity attributes, so the same
//     real-world entity found in different reports maps to the same node.
//   - Storage: the store package persists entities in Redis with
//     bidirectional report/entity indices, answers linked-report and
//     entity-search queries, and walks the investigation graph.
//   - Follow-ups: the followup package turns extracted entities into
//     prioritized, actionable next searches.
//
// # Getting Started
//
// The Pipeline wires the stages together behind one entry point:
//
//	cfg, err := intelgraph.LoadConfig("intelgraph.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	pipeline, err := intelgraph.NewPipeline(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pipeline.Close()
//
//	result, err := pipeline.ProcessReport(ctx, rpt)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, s := range result.Suggestions {
//		fmt.Println(s.Priority, s.Title)
//	}
//
// Individual stages remain usable on their own: extract.New().Extract(rpt)
// needs no Redis, and store.New can share an existing go-redis client.
package intelgraph
