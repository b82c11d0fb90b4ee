package entity

import (
	"fmt"
	"strconv"
	"strings"
)

// DedupKey derives the normalized string that identifies this entity within
// its category. Two observations with equal dedup keys refer to the same
// real-world entity and resolve to the same ID, whichever report they came
// from.
//
// The key ignores confidence and source: those are advisory metadata, not
// identity.
func (e Entity) DedupKey() string {
	switch e.Category {
	case CategoryPeople, CategoryOrganizations:
		return normalize(e.Name())
	case CategoryEmails:
		return normalize(e.Address())
	case CategoryDomains:
		return normalize(e.Domain())
	case CategoryLocations:
		return normalize(e.Location()) + ":" + formatCoordinates(e.Attributes["coordinates"])
	case CategorySocialHandles:
		return strings.ToLower(e.Platform()) + ":" + strings.ToLower(e.Username())
	case CategoryPhones:
		return stripPhoneSymbols(e.Number())
	case CategoryEvents:
		return strings.ToLower(e.Name()) + ":" + e.Date()
	case CategoryKeywords:
		return normalize(e.Keyword())
	default:
		return normalize(fmt.Sprintf("%v", e.Attributes))
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// formatCoordinates renders a coordinate list into a stable string so the
// same pair produces the same key whether it arrives as []float64 from the
// extractor or as []any from a JSON round trip.
func formatCoordinates(v any) string {
	var coords []float64
	switch c := v.(type) {
	case []float64:
		coords = c
	case []any:
		for _, item := range c {
			if f, ok := item.(float64); ok {
				coords = append(coords, f)
			}
		}
	}

	parts := make([]string, len(coords))
	for i, f := range coords {
		parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// stripPhoneSymbols keeps digits and a leading plus, dropping spacing and
// punctuation so formatting differences never split a phone entity.
func stripPhoneSymbols(number string) string {
	var b strings.Builder
	for i, r := range number {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
