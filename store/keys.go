package store

import "github.com/obscura-osint/intelgraph/entity"

const reportsWithEntitiesKey = "reports:with_entities"

func reportEntitiesKey(reportID string, category entity.Category) string {
	return "report:" + reportID + ":entities:" + string(category)
}

func reportMetaKey(reportID string) string {
	return "report:" + reportID + ":meta"
}

func entityReportsKey(entityID string) string {
	return "entity:" + entityID + ":reports"
}

func entityDataKey(entityID string) string {
	return "entity:" + entityID + ":data"
}

func categoryKey(category entity.Category) string {
	return "entities:by_category:" + string(category)
}
