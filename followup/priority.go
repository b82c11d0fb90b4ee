package followup

import "fmt"

// Priority is the coarse urgency tier of a follow-up suggestion.
type Priority string

const (
	// PriorityHigh marks suggestions likely to produce immediate leads.
	PriorityHigh Priority = "HIGH"

	// PriorityMedium marks suggestions worth running once the high-priority
	// work is done.
	PriorityMedium Priority = "MEDIUM"

	// PriorityLow marks opportunistic suggestions.
	PriorityLow Priority = "LOW"
)

// priorityBases maps priority tiers to the base component of the priority
// score.
var priorityBases = map[Priority]int{
	PriorityHigh:   100,
	PriorityMedium: 50,
	PriorityLow:    10,
}

// IsValid returns true if the priority is a known tier.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// Base returns the base score for the priority tier. Unknown tiers score as
// PriorityLow.
func (p Priority) Base() int {
	if base, ok := priorityBases[p]; ok {
		return base
	}
	return priorityBases[PriorityLow]
}

// ParsePriority parses a string into a Priority value.
// Returns an error if the string is not a known tier.
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority: %s", s)
	}
	return p, nil
}
