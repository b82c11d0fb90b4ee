package entity

import "fmt"

// Category identifies the kind of extracted entity.
type Category string

const (
	// CategoryPeople holds person entities (names, roles, profile URLs).
	CategoryPeople Category = "people"

	// CategoryOrganizations holds organization entities (companies, employers).
	CategoryOrganizations Category = "organizations"

	// CategoryEmails holds email address entities.
	CategoryEmails Category = "emails"

	// CategoryDomains holds domain entities derived from URLs.
	CategoryDomains Category = "domains"

	// CategoryLocations holds location entities, optionally with coordinates.
	CategoryLocations Category = "locations"

	// CategorySocialHandles holds platform/username handle entities.
	CategorySocialHandles Category = "social_handles"

	// CategoryPhones holds phone number entities.
	CategoryPhones Category = "phones"

	// CategoryEvents holds named, dated event entities.
	CategoryEvents Category = "events"

	// CategoryKeywords holds free-text keywords extracted from bios and
	// descriptions. Keywords are indexed but never drive follow-ups.
	CategoryKeywords Category = "keywords"
)

// categoryWeights biases follow-up prioritization toward entity kinds that
// historically produce the most actionable leads.
var categoryWeights = map[Category]int{
	CategoryPeople:        10,
	CategoryOrganizations: 8,
	CategoryEmails:        9,
	CategoryDomains:       7,
	CategoryLocations:     5,
	CategorySocialHandles: 6,
	CategoryPhones:        8,
	CategoryEvents:        4,
}

// defaultWeight applies to categories without an explicit weight entry.
const defaultWeight = 5

// IsValid returns true if the category is one of the known entity categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryPeople, CategoryOrganizations, CategoryEmails, CategoryDomains,
		CategoryLocations, CategorySocialHandles, CategoryPhones, CategoryEvents,
		CategoryKeywords:
		return true
	default:
		return false
	}
}

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// Weight returns the numeric weight used when scoring follow-up suggestions
// for entities of this category.
func (c Category) Weight() int {
	if w, ok := categoryWeights[c]; ok {
		return w
	}
	return defaultWeight
}

// DisplayName returns a human-readable display name for the category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryPeople:
		return "People"
	case CategoryOrganizations:
		return "Organizations"
	case CategoryEmails:
		return "Email Addresses"
	case CategoryDomains:
		return "Domains"
	case CategoryLocations:
		return "Locations"
	case CategorySocialHandles:
		return "Social Handles"
	case CategoryPhones:
		return "Phone Numbers"
	case CategoryEvents:
		return "Events"
	case CategoryKeywords:
		return "Keywords"
	default:
		return string(c)
	}
}

// ParseCategory parses a string into a Category value.
// Returns an error if the string is not a known category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid entity category: %s", s)
	}
	return c, nil
}

// AllCategories returns every known category in canonical order.
func AllCategories() []Category {
	return []Category{
		CategoryPeople,
		CategoryOrganizations,
		CategoryEmails,
		CategoryDomains,
		CategoryLocations,
		CategorySocialHandles,
		CategoryPhones,
		CategoryEvents,
		CategoryKeywords,
	}
}
