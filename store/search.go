package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/obscura-osint/intelgraph/entity"
)

// SearchResult is a single entity matched by SearchEntities.
type SearchResult struct {
	EntityID    string `json:"entity_id"`
	Record      Record `json:"entity_data"`
	ReportCount int64  `json:"report_count"`
}

// SearchEntities scans a category registry for entities whose serialized
// canonical record contains the search term (case-insensitive substring
// match), stopping once limit matches are found.
//
// The registry is scanned in sorted entity-ID order for deterministic
// results. This is a linear scan over the category, acceptable at the
// intended scale of a few thousand entities per category.
func (s *Store) SearchEntities(ctx context.Context, category entity.Category, term string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 50
	}

	ctx, span := s.tracer.Start(ctx, "store.SearchEntities", trace.WithAttributes(
		attribute.String("entity.category", string(category)),
		attribute.Int("limit", limit),
	))
	defer span.End()

	entityIDs, err := s.rdb.SMembers(ctx, categoryKey(category)).Result()
	if err != nil {
		return nil, s.fail(span, fmt.Errorf("failed to read %s registry: %w", category, err))
	}
	sort.Strings(entityIDs)

	needle := strings.ToLower(term)
	results := make([]SearchResult, 0, limit)

	for _, entityID := range entityIDs {
		record, err := s.EntityData(ctx, entityID)
		if err != nil {
			if errors.Is(err, ErrEntityNotFound) {
				continue
			}
			return nil, s.fail(span, err)
		}

		serialized, err := json.Marshal(record.Data)
		if err != nil {
			return nil, s.fail(span, fmt.Errorf("failed to serialize entity %s: %w", entityID, err))
		}
		if !strings.Contains(strings.ToLower(string(serialized)), needle) {
			continue
		}

		count, err := s.rdb.SCard(ctx, entityReportsKey(entityID)).Result()
		if err != nil {
			return nil, s.fail(span, fmt.Errorf("failed to count reports for entity %s: %w", entityID, err))
		}

		results = append(results, SearchResult{
			EntityID:    entityID,
			Record:      *record,
			ReportCount: count,
		})
		if len(results) >= limit {
			break
		}
	}

	span.SetAttributes(attribute.Int("results", len(results)))
	return results, nil
}
