package extract

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/obscura-osint/intelgraph/entity"
	"github.com/obscura-osint/intelgraph/report"
)

// Patterns used to pull entities out of free text and URLs.
var (
	emailPattern  = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	urlPattern    = regexp.MustCompile(`https?://(?:www\.)?([^/\s]+)`)
	handlePattern = regexp.MustCompile(`@([A-Za-z0-9_]{1,15})\b`)
)

// socialPlatforms are the platform names matched against profile URLs to
// decide whether a profile represents a social handle of the subject.
var socialPlatforms = []string{"twitter", "instagram", "facebook", "linkedin", "github"}

// Field name groups scanned in enrichment profile_data.
var (
	organizationFields = []string{"company", "organization", "employer", "workplace"}
	personFields       = []string{"full_name", "display_name", "name"}
	locationFields     = []string{"location", "city", "address", "headquarters"}
	freeTextFields     = []string{"bio", "description", "about"}

	// organizationWords mark person-field values that actually name an
	// organization, which are skipped.
	organizationWords = []string{"federation", "company", "corp", "inc", "ltd"}
)

// Extractor extracts categorized entities from reports.
//
// The zero value is not usable; construct with New. An Extractor holds no
// per-report state and is safe for concurrent use.
type Extractor struct {
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(x *Extractor) {
		x.logger = logger
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	x := &Extractor{logger: slog.Default()}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Extract scans a complete report and returns its entities grouped by
// category, deduplicated within each category (first occurrence kept).
func (x *Extractor) Extract(r *report.Report) entity.Set {
	set := entity.NewSet()
	if r == nil {
		return set
	}

	for _, profile := range r.Report.AllProfiles {
		x.extractFromProfile(set, profile, r.Username)
	}

	if r.Intelligence != nil {
		x.extractFromIntelligence(set, r.Intelligence)
	}

	set.Dedupe()

	x.logger.Info("extracted entities from report",
		"report_id", r.ReportID, "total", set.Total())
	return set
}

func (x *Extractor) extractFromProfile(set entity.Set, p report.Profile, username string) {
	if host := urlHost(p.URL); host != "" {
		set.Add(entity.New(entity.CategoryDomains, 0.9, p.Site+" profile").
			With("domain", host).
			With("url", p.URL))
	}

	if p.URL != "" && matchesSocialPlatform(p.URL) {
		set.Add(entity.New(entity.CategorySocialHandles, 1.0, "profile_url").
			With("platform", p.Site).
			With("url", p.URL).
			With("username", username))
	}

	if p.Enrichment != nil {
		x.extractFromEnrichment(set, p.Enrichment, p.Site)
	}
}

func (x *Extractor) extractFromEnrichment(set entity.Set, enr *report.Enrichment, source string) {
	data := enr.ProfileData

	for _, field := range organizationFields {
		if v, ok := data[field].(string); ok && v != "" {
			set.Add(entity.New(entity.CategoryOrganizations, 0.85, fmt.Sprintf("%s - %s", source, field)).
				With("name", v).
				With("type", "employer"))
		}
	}

	for _, field := range personFields {
		v, ok := data[field].(string)
		if !ok || v == "" || looksLikeOrganization(v) {
			continue
		}
		set.Add(entity.New(entity.CategoryPeople, 0.80, fmt.Sprintf("%s - %s", source, field)).
			With("name", v))
	}

	for _, field := range locationFields {
		if v, ok := data[field].(string); ok && v != "" {
			set.Add(entity.New(entity.CategoryLocations, 0.75, fmt.Sprintf("%s - %s", source, field)).
				With("location", v).
				With("type", field))
		}
	}

	for _, field := range freeTextFields {
		if v, ok := data[field].(string); ok && v != "" {
			x.extractFromText(set, v, source, field)
		}
	}

	if enr.ContactInfo != nil {
		x.extractFromContactInfo(set, enr.ContactInfo, source+" - contact_info", "contact")
	}

	for _, emp := range employees(enr) {
		if emp.Name == "" {
			continue
		}
		set.Add(entity.New(entity.CategoryPeople, 0.95, source+" - employees").
			With("name", emp.Name).
			With("role", emp.Title()).
			With("profile_url", emp.ProfileURL))
	}
}

// extractFromText scans free-text enrichment fields for email addresses and
// @handle mentions.
func (x *Extractor) extractFromText(set entity.Set, text, source, field string) {
	for _, email := range emailPattern.FindAllString(text, -1) {
		set.Add(entity.New(entity.CategoryEmails, 0.95, fmt.Sprintf("%s - %s", source, field)).
			With("address", strings.ToLower(email)).
			With("type", "found_in_text"))
	}

	for _, idx := range handlePattern.FindAllStringSubmatchIndex(text, -1) {
		// Skip matches whose "@" is the separator of an email address.
		if start := idx[0]; start > 0 && isWordByte(text[start-1]) {
			continue
		}
		handle := text[idx[2]:idx[3]]
		set.Add(entity.New(entity.CategorySocialHandles, 0.85, fmt.Sprintf("%s - mentioned in %s", source, field)).
			With("platform", "Twitter").
			With("handle", "@"+handle).
			With("username", handle))
	}
}

func (x *Extractor) extractFromContactInfo(set entity.Set, ci *report.ContactInfo, source, emailType string) {
	for _, email := range ci.Emails {
		if email.String() == "" {
			continue
		}
		set.Add(entity.New(entity.CategoryEmails, 1.0, source).
			With("address", strings.ToLower(email.String())).
			With("type", emailType))
	}

	for _, website := range ci.Websites {
		url := website.String()
		if host := urlHost(url); host != "" {
			set.Add(entity.New(entity.CategoryDomains, 1.0, source).
				With("domain", host).
				With("url", url))
		}
	}

	for _, phone := range ci.Phones {
		if phone.String() == "" {
			continue
		}
		set.Add(entity.New(entity.CategoryPhones, 1.0, source).
			With("number", phone.String()))
	}
}

func (x *Extractor) extractFromIntelligence(set entity.Set, intel *report.Intelligence) {
	officialName := ""
	if intel.Identity != nil {
		officialName = intel.Identity.OfficialName

		if intel.Identity.OfficialName != "" {
			orgType := intel.Identity.Type
			if orgType == "" {
				orgType = "unknown"
			}
			set.Add(entity.New(entity.CategoryOrganizations, 0.98, "intelligence_summary").
				With("name", intel.Identity.OfficialName).
				With("type", orgType))
		}

		if intel.Identity.FullName != "" {
			set.Add(entity.New(entity.CategoryPeople, 0.98, "intelligence_summary").
				With("name", intel.Identity.FullName))
		}
	}

	if intel.ContactInformation != nil {
		x.extractFromContactInfo(set, intel.ContactInformation, "intelligence_contact", "official")
	}

	for _, person := range intel.KeyPersonnel {
		confidence := person.Confidence
		if confidence == 0 {
			confidence = 0.95
		}
		set.Add(entity.New(entity.CategoryPeople, confidence, "intelligence_personnel").
			With("name", person.Name).
			With("role", person.Role).
			With("organization", officialName))
	}

	for _, loc := range intel.GeolocationTimeline {
		confidence := loc.Confidence
		if confidence == 0 {
			confidence = 0.75
		}
		locType := loc.Context
		if locType == "" {
			locType = "unknown"
		}
		set.Add(entity.New(entity.CategoryLocations, confidence, "intelligence_geolocation").
			With("location", loc.Location).
			With("coordinates", loc.Coordinates).
			With("type", locType).
			With("date", loc.Date))
	}

	for _, ev := range intel.UpcomingEvents {
		evType := ev.Type
		if evType == "" {
			evType = "unknown"
		}
		set.Add(entity.New(entity.CategoryEvents, 0.90, "intelligence_events").
			With("name", ev.Event).
			With("date", ev.Date).
			With("location", ev.Location).
			With("type", evType))
	}
}

// employees merges the two places enrichment scrapers put employee lists:
// the typed employees_found field and a raw list nested inside profile_data.
func employees(enr *report.Enrichment) []report.Employee {
	if raw, ok := enr.ProfileData["employees_found"].([]any); ok && len(raw) > 0 {
		result := make([]report.Employee, 0, len(raw))
		for _, item := range raw {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			emp := report.Employee{}
			emp.Name, _ = m["name"].(string)
			emp.Position, _ = m["position"].(string)
			emp.Role, _ = m["role"].(string)
			emp.ProfileURL, _ = m["profile_url"].(string)
			result = append(result, emp)
		}
		return result
	}
	return enr.EmployeesFound
}

func urlHost(url string) string {
	m := urlPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

func matchesSocialPlatform(url string) bool {
	lower := strings.ToLower(url)
	for _, platform := range socialPlatforms {
		if strings.Contains(lower, platform) {
			return true
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func looksLikeOrganization(name string) bool {
	lower := strings.ToLower(name)
	for _, word := range organizationWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
