package store

import (
	"context"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/obscura-osint/intelgraph/entity"
)

// SharedEntity describes one entity shared between two linked reports.
type SharedEntity struct {
	Category entity.Category `json:"category"`
	EntityID string          `json:"entity_id"`
	Entity   entity.Entity   `json:"entity_data"`
}

// LinkedReport describes a report connected to the queried report through
// shared entities. ConnectionStrength counts the distinct shared entities.
type LinkedReport struct {
	ReportID           string         `json:"report_id"`
	ConnectionStrength int            `json:"connection_strength"`
	SharedEntities     []SharedEntity `json:"shared_entities"`
}

// LinkedReports finds every report sharing at least one entity with the
// given report, using the entity reverse index.
//
// Results are sorted by descending connection strength, with ascending
// report ID as the deterministic tie-break.
func (s *Store) LinkedReports(ctx context.Context, reportID string) ([]LinkedReport, error) {
	if reportID == "" {
		return nil, ErrInvalidReportID
	}

	ctx, span := s.tracer.Start(ctx, "store.LinkedReports", trace.WithAttributes(
		attribute.String("report.id", reportID),
	))
	defer span.End()

	snapshot, err := s.ReportEntities(ctx, reportID)
	if err != nil {
		return nil, s.fail(span, err)
	}

	linked := make(map[string]*LinkedReport)
	for _, category := range entity.AllCategories() {
		for _, e := range snapshot[category] {
			entityID := e.ID()

			reports, err := s.rdb.SMembers(ctx, entityReportsKey(entityID)).Result()
			if err != nil {
				return nil, s.fail(span, fmt.Errorf("failed to read reports for entity %s: %w", entityID, err))
			}

			for _, other := range reports {
				if other == reportID {
					continue
				}
				link, ok := linked[other]
				if !ok {
					link = &LinkedReport{ReportID: other}
					linked[other] = link
				}
				link.SharedEntities = append(link.SharedEntities, SharedEntity{
					Category: category,
					EntityID: entityID,
					Entity:   e,
				})
				link.ConnectionStrength++
			}
		}
	}

	results := make([]LinkedReport, 0, len(linked))
	for _, link := range linked {
		results = append(results, *link)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].ConnectionStrength != results[j].ConnectionStrength {
			return results[i].ConnectionStrength > results[j].ConnectionStrength
		}
		return results[i].ReportID < results[j].ReportID
	})

	if s.linkQueries != nil {
		s.linkQueries.Add(ctx, 1)
	}
	span.SetAttributes(attribute.Int("linked.count", len(results)))
	s.logger.Info("found linked reports", "report_id", reportID, "count", len(results))
	return results, nil
}
