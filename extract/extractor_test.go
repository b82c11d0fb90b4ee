package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obscura-osint/intelgraph/entity"
	"github.com/obscura-osint/intelgraph/report"
)

func testReport(profiles ...report.Profile) *report.Report {
	return &report.Report{
		ReportID:  "agg-1",
		Username:  "alice",
		CreatedAt: time.Now().UTC(),
		Report:    report.Payload{AllProfiles: profiles},
	}
}

func TestExtractProfileBasics(t *testing.T) {
	x := New()

	r := testReport(report.Profile{
		Site: "GitHub",
		URL:  "https://github.com/alice123",
		Enrichment: &report.Enrichment{
			ContactInfo: &report.ContactInfo{
				Emails: []report.FlexValue{"alice@example.com"},
			},
		},
	})

	set := x.Extract(r)

	t.Run("contact email at full confidence", func(t *testing.T) {
		emails := set[entity.CategoryEmails]
		require.Len(t, emails, 1)
		assert.Equal(t, "alice@example.com", emails[0].Address())
		assert.Equal(t, 1.0, emails[0].Confidence)
	})

	t.Run("domain derived from profile URL", func(t *testing.T) {
		domains := set[entity.CategoryDomains]
		require.Len(t, domains, 1)
		assert.Equal(t, "github.com", domains[0].Domain())
		assert.Equal(t, "GitHub profile", domains[0].Source)
	})

	t.Run("social handle tied to subject username", func(t *testing.T) {
		handles := set[entity.CategorySocialHandles]
		require.Len(t, handles, 1)
		assert.Equal(t, "GitHub", handles[0].Platform())
		assert.Equal(t, "alice", handles[0].Username())
		assert.Equal(t, 1.0, handles[0].Confidence)
	})
}

func TestExtractProfileData(t *testing.T) {
	x := New()

	r := testReport(report.Profile{
		Site: "LinkedIn",
		URL:  "https://linkedin.com/in/alice",
		Enrichment: &report.Enrichment{
			ProfileData: map[string]any{
				"company":   "ACME Corp",
				"full_name": "Alice Smith",
				"location":  "Berlin",
			},
		},
	})

	set := x.Extract(r)

	t.Run("organization field", func(t *testing.T) {
		orgs := set[entity.CategoryOrganizations]
		require.Len(t, orgs, 1)
		assert.Equal(t, "ACME Corp", orgs[0].Name())
		assert.Equal(t, 0.85, orgs[0].Confidence)
		assert.Equal(t, "LinkedIn - company", orgs[0].Source)
	})

	t.Run("person field", func(t *testing.T) {
		people := set[entity.CategoryPeople]
		require.Len(t, people, 1)
		assert.Equal(t, "Alice Smith", people[0].Name())
		assert.Equal(t, 0.80, people[0].Confidence)
	})

	t.Run("location field", func(t *testing.T) {
		locations := set[entity.CategoryLocations]
		require.Len(t, locations, 1)
		assert.Equal(t, "Berlin", locations[0].Location())
		assert.Equal(t, 0.75, locations[0].Confidence)
	})
}

func TestExtractSkipsOrganizationLikePersonNames(t *testing.T) {
	x := New()

	r := testReport(report.Profile{
		Site: "Twitter",
		URL:  "https://twitter.com/wcf",
		Enrichment: &report.Enrichment{
			ProfileData: map[string]any{
				"display_name": "World Chess Federation",
			},
		},
	})

	set := x.Extract(r)
	assert.Empty(t, set[entity.CategoryPeople])
}

func TestExtractFreeText(t *testing.T) {
	x := New()

	r := testReport(report.Profile{
		Site: "GitHub",
		URL:  "https://github.com/alice123",
		Enrichment: &report.Enrichment{
			ProfileData: map[string]any{
				"bio": "Reach me at Alice@Example.com or ping @alicedev",
			},
		},
	})

	set := x.Extract(r)

	t.Run("email found in text", func(t *testing.T) {
		emails := set[entity.CategoryEmails]
		require.Len(t, emails, 1)
		assert.Equal(t, "alice@example.com", emails[0].Address())
		assert.Equal(t, 0.95, emails[0].Confidence)
	})

	t.Run("handle mention", func(t *testing.T) {
		// The profile URL itself also yields a handle for the subject.
		handles := set[entity.CategorySocialHandles]
		require.Len(t, handles, 2)
		mention := handles[1]
		assert.Equal(t, "Twitter", mention.Platform())
		assert.Equal(t, "alicedev", mention.Username())
		assert.Equal(t, "@alicedev", mention.Attr("handle"))
		assert.Equal(t, 0.85, mention.Confidence)
	})
}

func TestExtractEmployees(t *testing.T) {
	x := New()

	t.Run("typed employees_found list", func(t *testing.T) {
		r := testReport(report.Profile{
			Site: "LinkedIn",
			URL:  "https://linkedin.com/company/acme",
			Enrichment: &report.Enrichment{
				EmployeesFound: []report.Employee{
					{Name: "Bob Ray", Position: "CTO", ProfileURL: "https://linkedin.com/in/bobray"},
				},
			},
		})

		people := x.Extract(r)[entity.CategoryPeople]
		require.Len(t, people, 1)
		assert.Equal(t, "Bob Ray", people[0].Name())
		assert.Equal(t, "CTO", people[0].Role())
		assert.Equal(t, "https://linkedin.com/in/bobray", people[0].ProfileURL())
		assert.Equal(t, 0.95, people[0].Confidence)
	})

	t.Run("raw list nested in profile_data", func(t *testing.T) {
		r := testReport(report.Profile{
			Site: "LinkedIn",
			URL:  "https://linkedin.com/company/acme",
			Enrichment: &report.Enrichment{
				ProfileData: map[string]any{
					"employees_found": []any{
						map[string]any{"name": "Cara Lee", "role": "Engineer"},
						map[string]any{"position": "nameless entry skipped"},
					},
				},
			},
		})

		people := x.Extract(r)[entity.CategoryPeople]
		require.Len(t, people, 1)
		assert.Equal(t, "Cara Lee", people[0].Name())
		assert.Equal(t, "Engineer", people[0].Role())
	})
}

func TestExtractIntelligence(t *testing.T) {
	x := New()

	r := testReport()
	r.Intelligence = &report.Intelligence{
		Identity: &report.Identity{
			OfficialName: "ACME Corp",
			FullName:     "Alice Smith",
			Type:         "company",
		},
		ContactInformation: &report.ContactInfo{
			Emails:   []report.FlexValue{"info@acme.com"},
			Websites: []report.FlexValue{"https://www.acme.com/about"},
		},
		KeyPersonnel: []report.Personnel{
			{Name: "Bob Ray", Role: "CTO", Confidence: 0.9},
			{Name: "Cara Lee", Role: "CFO"},
		},
		GeolocationTimeline: []report.Geolocation{
			{Location: "Berlin", Coordinates: []float64{52.52, 13.405}, Date: "2026-07-01", Context: "office"},
		},
		UpcomingEvents: []report.Event{
			{Event: "Annual Summit", Date: "2026-09-12", Location: "Berlin"},
		},
	}

	set := x.Extract(r)

	t.Run("identity", func(t *testing.T) {
		orgs := set[entity.CategoryOrganizations]
		require.Len(t, orgs, 1)
		assert.Equal(t, "ACME Corp", orgs[0].Name())
		assert.Equal(t, 0.98, orgs[0].Confidence)

		people := set[entity.CategoryPeople]
		require.Len(t, people, 3)
		assert.Equal(t, "Alice Smith", people[0].Name())
		assert.Equal(t, 0.98, people[0].Confidence)
	})

	t.Run("contact information", func(t *testing.T) {
		emails := set[entity.CategoryEmails]
		require.Len(t, emails, 1)
		assert.Equal(t, "info@acme.com", emails[0].Address())
		assert.Equal(t, 1.0, emails[0].Confidence)

		domains := set[entity.CategoryDomains]
		require.Len(t, domains, 1)
		assert.Equal(t, "acme.com", domains[0].Domain())
	})

	t.Run("key personnel with default confidence", func(t *testing.T) {
		people := set[entity.CategoryPeople]
		assert.Equal(t, "Bob Ray", people[1].Name())
		assert.Equal(t, 0.9, people[1].Confidence)
		assert.Equal(t, "ACME Corp", people[1].Attr("organization"))
		assert.Equal(t, "Cara Lee", people[2].Name())
		assert.Equal(t, 0.95, people[2].Confidence)
	})

	t.Run("geolocation timeline", func(t *testing.T) {
		locations := set[entity.CategoryLocations]
		require.Len(t, locations, 1)
		coords, ok := locations[0].Coordinates()
		require.True(t, ok)
		assert.Equal(t, []float64{52.52, 13.405}, coords)
		assert.Equal(t, "office", locations[0].Attr("type"))
		assert.Equal(t, 0.75, locations[0].Confidence)
	})

	t.Run("upcoming events", func(t *testing.T) {
		events := set[entity.CategoryEvents]
		require.Len(t, events, 1)
		assert.Equal(t, "Annual Summit", events[0].Name())
		assert.Equal(t, "2026-09-12", events[0].Date())
		assert.Equal(t, 0.90, events[0].Confidence)
	})
}

func TestExtractDeduplicates(t *testing.T) {
	x := New()

	r := testReport(
		report.Profile{
			Site: "GitHub",
			URL:  "https://github.com/alice123",
			Enrichment: &report.Enrichment{
				ProfileData: map[string]any{"bio": "mail: alice@example.com"},
				ContactInfo: &report.ContactInfo{Emails: []report.FlexValue{"Alice@Example.com"}},
			},
		},
		report.Profile{
			Site: "GitLab",
			URL:  "https://github.com/alice123",
		},
	)

	set := x.Extract(r)

	t.Run("first email occurrence kept", func(t *testing.T) {
		emails := set[entity.CategoryEmails]
		require.Len(t, emails, 1)
		// The bio scan runs before contact_info for the same profile.
		assert.Equal(t, 0.95, emails[0].Confidence)
	})

	t.Run("duplicate domain collapsed", func(t *testing.T) {
		assert.Len(t, set[entity.CategoryDomains], 1)
	})
}

func TestExtractToleratesEmptyInput(t *testing.T) {
	x := New()

	t.Run("nil report", func(t *testing.T) {
		set := x.Extract(nil)
		assert.Equal(t, 0, set.Total())
	})

	t.Run("empty report", func(t *testing.T) {
		set := x.Extract(testReport())
		assert.Equal(t, 0, set.Total())
	})

	t.Run("profile without URL or enrichment", func(t *testing.T) {
		set := x.Extract(testReport(report.Profile{Site: "Pastebin"}))
		assert.Equal(t, 0, set.Total())
	})
}
