package followup

import "github.com/obscura-osint/intelgraph/entity"

// Suggestion types emitted by the generator.
const (
	TypePersonInvestigation       = "person_investigation"
	TypeProfileScraping           = "profile_scraping"
	TypeOrganizationInvestigation = "organization_investigation"
	TypeEmailInvestigation        = "email_investigation"
	TypeUsernameInvestigation     = "username_investigation"
	TypeDomainInvestigation       = "domain_investigation"
	TypeLocationInvestigation     = "location_investigation"
	TypeCrossPlatformSearch       = "cross_platform_search"
	TypePhoneInvestigation        = "phone_investigation"
)

// SuggestedSearch is one concrete search to run: the tool, the query to feed
// it, and why the search is worth running.
type SuggestedSearch struct {
	Tool      string `json:"tool"`
	Query     string `json:"query"`
	Reasoning string `json:"reasoning"`
}

// OneClickAction describes the API call that launches a suggestion's primary
// search directly from the UI.
type OneClickAction struct {
	Endpoint   string         `json:"endpoint"`
	Method     string         `json:"method"`
	Params     map[string]any `json:"params"`
	ButtonText string         `json:"button_text"`
}

// Suggestion is one actionable follow-up recommendation derived from a
// single extracted entity.
type Suggestion struct {
	ID             string            `json:"id"`
	Type           string            `json:"type"`
	Priority       Priority          `json:"priority"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	EntityType     string            `json:"entity_type"`
	Entity         entity.Entity     `json:"entity_data"`
	Searches       []SuggestedSearch `json:"suggested_searches"`
	OneClickAction OneClickAction    `json:"one_click_action"`
}

// score computes the sort key for a suggestion: the priority tier base, a
// weight biasing actionable entity categories, and the entity's extraction
// confidence scaled to at most 20 points.
func (s Suggestion) score() int {
	return s.Priority.Base() + s.Entity.Category.Weight() + int(s.Entity.Confidence*20)
}
