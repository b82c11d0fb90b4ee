package followup

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/obscura-osint/intelgraph/entity"
)

// Generator builds follow-up suggestions from extracted entities.
//
// A Generator holds no per-report state and is safe for concurrent use.
type Generator struct {
	logger *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{logger: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate derives prioritized follow-up suggestions from a report's
// entities. subjectUsername is the username the report was built for; it is
// excluded from username-variant suggestions so the original search is never
// re-suggested.
//
// Suggestions are sorted by descending priority score (ties keep generation
// order) and assigned sequential IDs.
func (g *Generator) Generate(reportID string, entities entity.Set, subjectUsername string) []Suggestion {
	var suggestions []Suggestion

	for _, person := range entities[entity.CategoryPeople] {
		suggestions = append(suggestions, g.personSuggestions(person, subjectUsername)...)
	}
	for _, org := range entities[entity.CategoryOrganizations] {
		suggestions = append(suggestions, g.organizationSuggestions(org)...)
	}
	for _, email := range entities[entity.CategoryEmails] {
		suggestions = append(suggestions, g.emailSuggestions(email)...)
	}
	for _, domain := range entities[entity.CategoryDomains] {
		suggestions = append(suggestions, g.domainSuggestions(domain)...)
	}
	for _, location := range entities[entity.CategoryLocations] {
		suggestions = append(suggestions, g.locationSuggestions(location)...)
	}
	for _, handle := range entities[entity.CategorySocialHandles] {
		suggestions = append(suggestions, g.socialSuggestions(handle, subjectUsername)...)
	}
	for _, phone := range entities[entity.CategoryPhones] {
		suggestions = append(suggestions, g.phoneSuggestions(phone)...)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].score() > suggestions[j].score()
	})
	for i := range suggestions {
		suggestions[i].ID = fmt.Sprintf("followup-%d", i+1)
	}

	g.logger.Info("generated follow-up suggestions",
		"report_id", reportID, "count", len(suggestions))
	return suggestions
}

func (g *Generator) personSuggestions(person entity.Entity, subjectUsername string) []Suggestion {
	name := person.Name()

	var suggestions []Suggestion

	variants := excludeVariant(UsernameVariants(name), subjectUsername)
	if len(variants) > 0 {
		description := "Search for personal accounts"
		if role := person.Role(); role != "" {
			description += " of " + role
		}

		top := variants
		if len(top) > 3 {
			top = top[:3]
		}
		searches := make([]SuggestedSearch, 0, len(top))
		for _, v := range top {
			searches = append(searches, SuggestedSearch{
				Tool:      "Obscura (All Tools)",
				Query:     v,
				Reasoning: fmt.Sprintf("Username variant from name '%s'", name),
			})
		}

		suggestions = append(suggestions, Suggestion{
			Type:        TypePersonInvestigation,
			Priority:    PriorityHigh,
			Title:       "Investigate " + name,
			Description: description,
			EntityType:  "person",
			Entity:      person,
			Searches:    searches,
			OneClickAction: OneClickAction{
				Endpoint: "/api/obscura/search",
				Method:   "POST",
				Params: map[string]any{
					"username": variants[0],
					"tools":    []string{"maigret", "sherlock", "whatsmyname", "blackbird"},
				},
				ButtonText: fmt.Sprintf("Search '%s' →", variants[0]),
			},
		})
	}

	if profileURL := person.ProfileURL(); profileURL != "" {
		suggestions = append(suggestions, Suggestion{
			Type:        TypeProfileScraping,
			Priority:    PriorityMedium,
			Title:       "Profile Deep Dive: " + name,
			Description: "Scrape full profile for connections and content",
			EntityType:  "person",
			Entity:      person,
			Searches: []SuggestedSearch{{
				Tool:      "Profile Scraper",
				Query:     profileURL,
				Reasoning: "Extract detailed information from profile",
			}},
			OneClickAction: OneClickAction{
				Endpoint:   "/api/enrichment/scrape-profile",
				Method:     "POST",
				Params:     map[string]any{"url": profileURL},
				ButtonText: "Scrape Profile →",
			},
		})
	}

	return suggestions
}

func (g *Generator) organizationSuggestions(org entity.Entity) []Suggestion {
	name := org.Name()

	variants := UsernameVariants(name)
	if len(variants) == 0 {
		return nil
	}
	top := variants
	if len(top) > 2 {
		top = top[:2]
	}

	searches := make([]SuggestedSearch, 0, len(top))
	for _, v := range top {
		searches = append(searches, SuggestedSearch{
			Tool:      "Social Media Search",
			Query:     v,
			Reasoning: "Potential handle for " + name,
		})
	}

	return []Suggestion{{
		Type:        TypeOrganizationInvestigation,
		Priority:    PriorityMedium,
		Title:       "Find Social Media: " + name,
		Description: "Search for organization's official accounts",
		EntityType:  "organization",
		Entity:      org,
		Searches:    searches,
		OneClickAction: OneClickAction{
			Endpoint: "/api/obscura/search",
			Method:   "POST",
			Params: map[string]any{
				"username": variants[0],
				"tools":    []string{"maigret", "sherlock"},
			},
			ButtonText: fmt.Sprintf("Search '%s' →", variants[0]),
		},
	}}
}

func (g *Generator) emailSuggestions(email entity.Entity) []Suggestion {
	address := email.Address()

	suggestions := []Suggestion{{
		Type:        TypeEmailInvestigation,
		Priority:    PriorityHigh,
		Title:       "Check Email: " + address,
		Description: "Find accounts registered with this email",
		EntityType:  "email",
		Entity:      email,
		Searches: []SuggestedSearch{
			{
				Tool:      "Holehe",
				Query:     address,
				Reasoning: "Check which platforms this email is registered on",
			},
			{
				Tool:      "Have I Been Pwned",
				Query:     address,
				Reasoning: "Check if email appears in data breaches",
			},
		},
		OneClickAction: OneClickAction{
			Endpoint:   "/api/holehe/check",
			Method:     "POST",
			Params:     map[string]any{"email": address},
			ButtonText: "Check Email →",
		},
	}}

	// A separator-free local part is likely a username reused elsewhere.
	local, _, _ := strings.Cut(address, "@")
	if local != "" && !strings.ContainsAny(local, ".-_") {
		suggestions = append(suggestions, Suggestion{
			Type:        TypeUsernameInvestigation,
			Priority:    PriorityMedium,
			Title:       "Search Username: " + local,
			Description: fmt.Sprintf("Email username '%s' might be used on social media", local),
			EntityType:  "email",
			Entity:      email,
			Searches: []SuggestedSearch{{
				Tool:      "Username Search",
				Query:     local,
				Reasoning: "Username extracted from email address",
			}},
			OneClickAction: OneClickAction{
				Endpoint: "/api/obscura/search",
				Method:   "POST",
				Params: map[string]any{
					"username": local,
					"tools":    []string{"sherlock", "maigret"},
				},
				ButtonText: fmt.Sprintf("Search '%s' →", local),
			},
		})
	}

	return suggestions
}

func (g *Generator) domainSuggestions(domain entity.Entity) []Suggestion {
	name := domain.Domain()

	return []Suggestion{{
		Type:        TypeDomainInvestigation,
		Priority:    PriorityMedium,
		Title:       "Investigate Domain: " + name,
		Description: "Extract emails, subdomains, and infrastructure info",
		EntityType:  "domain",
		Entity:      domain,
		Searches: []SuggestedSearch{
			{
				Tool:      "TheHarvester",
				Query:     name,
				Reasoning: "Gather emails, names, and subdomains from domain",
			},
			{
				Tool:      "WHOIS Lookup",
				Query:     name,
				Reasoning: "Get registration info and admin contacts",
			},
			{
				Tool:      "DNS Enumeration",
				Query:     name,
				Reasoning: "Find subdomains and infrastructure",
			},
		},
		OneClickAction: OneClickAction{
			Endpoint:   "/api/theharvester/search",
			Method:     "POST",
			Params:     map[string]any{"domain": name},
			ButtonText: "Harvest Domain →",
		},
	}}
}

func (g *Generator) locationSuggestions(location entity.Entity) []Suggestion {
	coords, ok := location.Coordinates()
	if !ok {
		return nil
	}
	name := location.Location()

	return []Suggestion{{
		Type:        TypeLocationInvestigation,
		Priority:    PriorityLow,
		Title:       "Investigate Location: " + name,
		Description: "Gather geospatial intelligence on this location",
		EntityType:  "location",
		Entity:      location,
		Searches: []SuggestedSearch{
			{
				Tool:      "Google Maps / Street View",
				Query:     fmt.Sprintf("%v, %v", coords[0], coords[1]),
				Reasoning: "Visual confirmation and nearby intel",
			},
			{
				Tool:      "Geospatial OSINT",
				Query:     name,
				Reasoning: "Find businesses, events, and people at this location",
			},
		},
		OneClickAction: OneClickAction{
			Endpoint:   "/api/geoint/location",
			Method:     "POST",
			Params:     map[string]any{"lat": coords[0], "lon": coords[1]},
			ButtonText: "Investigate Location →",
		},
	}}
}

func (g *Generator) socialSuggestions(handle entity.Entity, subjectUsername string) []Suggestion {
	username := handle.Username()
	if username == "" || username == subjectUsername {
		return nil
	}
	platform := handle.Platform()

	return []Suggestion{{
		Type:        TypeCrossPlatformSearch,
		Priority:    PriorityMedium,
		Title:       fmt.Sprintf("Search '%s' Across Platforms", username),
		Description: fmt.Sprintf("Found on %s, search other platforms", platform),
		EntityType:  "social_handle",
		Entity:      handle,
		Searches: []SuggestedSearch{{
			Tool:      "Cross-Platform Search",
			Query:     username,
			Reasoning: fmt.Sprintf("Username found on %s, may be used elsewhere", platform),
		}},
		OneClickAction: OneClickAction{
			Endpoint: "/api/obscura/search",
			Method:   "POST",
			Params: map[string]any{
				"username": username,
				"tools":    []string{"all"},
			},
			ButtonText: fmt.Sprintf("Search '%s' →", username),
		},
	}}
}

func (g *Generator) phoneSuggestions(phone entity.Entity) []Suggestion {
	number := phone.Number()

	return []Suggestion{{
		Type:        TypePhoneInvestigation,
		Priority:    PriorityMedium,
		Title:       "Investigate Phone: " + number,
		Description: "Look up phone number for owner and carrier info",
		EntityType:  "phone",
		Entity:      phone,
		Searches: []SuggestedSearch{
			{
				Tool:      "Phone Lookup",
				Query:     number,
				Reasoning: "Get carrier, location, and owner information",
			},
			{
				Tool:      "Reverse Phone Search",
				Query:     number,
				Reasoning: "Find associated accounts and records",
			},
		},
		OneClickAction: OneClickAction{
			Endpoint:   "/api/phone/lookup",
			Method:     "POST",
			Params:     map[string]any{"number": number},
			ButtonText: "Lookup Phone →",
		},
	}}
}

func excludeVariant(variants []string, subjectUsername string) []string {
	if subjectUsername == "" {
		return variants
	}
	filtered := variants[:0]
	for _, v := range variants {
		if v != subjectUsername {
			filtered = append(filtered, v)
		}
	}
	return filtered
}
