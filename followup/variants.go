package followup

import (
	"regexp"
	"strings"
)

var nonWordPattern = regexp.MustCompile(`[^\w\s]`)

const (
	minVariantLength = 3
	maxVariants      = 10
)

// UsernameVariants derives likely usernames from a person or organization
// name. The name is stripped of punctuation, lowercased, and split on
// whitespace; the variant patterns depend on how many tokens remain:
//
//	1 token:  the token itself
//	2 tokens: first.last, firstlast, first+l, f+last, first_last,
//	          first-last, lastfirst
//	3 tokens: first.last, firstlast, first+m+last, first.middle.last
//	4+ tokens: initials, first+lastToken, all tokens concatenated
//
// Duplicates are removed preserving first-seen order, variants shorter than
// three characters are dropped, and the result is capped at ten entries.
func UsernameVariants(name string) []string {
	if name == "" {
		return nil
	}

	clean := strings.ToLower(nonWordPattern.ReplaceAllString(name, ""))
	parts := strings.Fields(clean)
	if len(parts) == 0 {
		return nil
	}

	var variants []string
	switch len(parts) {
	case 1:
		variants = parts

	case 2:
		first, last := parts[0], parts[1]
		variants = []string{
			first + "." + last,
			first + last,
			first + last[:1],
			first[:1] + last,
			first + "_" + last,
			first + "-" + last,
			last + first,
		}

	case 3:
		first, middle, last := parts[0], parts[1], parts[2]
		variants = []string{
			first + "." + last,
			first + last,
			first + middle[:1] + last,
			first + "." + middle + "." + last,
		}

	default:
		initials := make([]byte, 0, len(parts))
		for _, p := range parts {
			initials = append(initials, p[0])
		}
		variants = []string{
			string(initials),
			parts[0] + parts[len(parts)-1],
			strings.Join(parts, ""),
		}
	}

	seen := make(map[string]struct{}, len(variants))
	unique := make([]string, 0, len(variants))
	for _, v := range variants {
		if len(v) < minVariantLength {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, v)
	}

	if len(unique) > maxVariants {
		unique = unique[:maxVariants]
	}
	return unique
}
