package report

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Report is a complete investigation report for a single search subject.
type Report struct {
	// ReportID is the aggregation identifier assigned by the upstream pipeline.
	ReportID string `json:"report_id"`

	// Username is the search subject the lookup tools were run against.
	Username string `json:"username"`

	// CreatedAt is the report creation timestamp.
	CreatedAt time.Time `json:"created_at"`

	// Report holds the parsed tool output.
	Report Payload `json:"report"`

	// Intelligence is the optional aggregated intelligence section produced
	// by a downstream summarization step. Nil when absent.
	Intelligence *Intelligence `json:"intelligence,omitempty"`
}

// NewID returns a fresh aggregation identifier.
func NewID() string {
	return uuid.NewString()
}

// Payload is the parsed output of the lookup tools: the discovered profiles
// plus whatever summary statistics the upstream parsers attached.
type Payload struct {
	AllProfiles []Profile      `json:"all_profiles"`
	Summary     map[string]any `json:"summary,omitempty"`
}

// Profile is a single discovered account on some site.
type Profile struct {
	Site       string         `json:"site"`
	URL        string         `json:"url"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Enrichment *Enrichment    `json:"enrichment,omitempty"`
}

// Enrichment carries per-profile data gathered by enrichment scrapers.
//
// ProfileData is deliberately schemaless: each scraper emits its own field
// names (company, full_name, bio, employees_found, ...). The extractor scans
// it by well-known field name.
type Enrichment struct {
	ProfileData    map[string]any `json:"profile_data,omitempty"`
	ContactInfo    *ContactInfo   `json:"contact_info,omitempty"`
	EmployeesFound []Employee     `json:"employees_found,omitempty"`
}

// ContactInfo lists explicit contact data found on a profile.
type ContactInfo struct {
	Emails   []FlexValue `json:"emails,omitempty"`
	Websites []FlexValue `json:"websites,omitempty"`
	Phones   []FlexValue `json:"phones,omitempty"`
}

// Employee is an entry from an employees_found enrichment list.
type Employee struct {
	Name       string `json:"name"`
	Position   string `json:"position,omitempty"`
	Role       string `json:"role,omitempty"`
	ProfileURL string `json:"profile_url,omitempty"`
}

// Title returns the employee's position, falling back to role.
func (e Employee) Title() string {
	if e.Position != "" {
		return e.Position
	}
	return e.Role
}

// Intelligence is the aggregated intelligence section of a report.
type Intelligence struct {
	Identity            *Identity     `json:"identity,omitempty"`
	ContactInformation  *ContactInfo  `json:"contact_information,omitempty"`
	KeyPersonnel        []Personnel   `json:"key_personnel,omitempty"`
	GeolocationTimeline []Geolocation `json:"geolocation_timeline,omitempty"`
	UpcomingEvents      []Event       `json:"upcoming_events,omitempty"`
}

// Identity describes who or what the subject resolved to.
type Identity struct {
	OfficialName string `json:"official_name,omitempty"`
	FullName     string `json:"full_name,omitempty"`
	Type         string `json:"type,omitempty"`
}

// Personnel is an entry from the key_personnel intelligence list.
type Personnel struct {
	Name       string  `json:"name"`
	Role       string  `json:"role,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Geolocation is an entry from the geolocation_timeline intelligence list.
type Geolocation struct {
	Location    string    `json:"location"`
	Coordinates []float64 `json:"coordinates,omitempty"`
	Date        string    `json:"date,omitempty"`
	Context     string    `json:"context,omitempty"`
	Confidence  float64   `json:"confidence,omitempty"`
}

// Event is an entry from the upcoming_events intelligence list.
type Event struct {
	Event    string `json:"event"`
	Date     string `json:"date,omitempty"`
	Location string `json:"location,omitempty"`
	Type     string `json:"type,omitempty"`
}

// FlexValue decodes contact entries that upstream parsers emit either as a
// bare string or as an object carrying the actual value under "value",
// "address", or "url".
type FlexValue string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexValue(s)
		return nil
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	for _, key := range []string{"value", "address", "url"} {
		if s, ok := obj[key].(string); ok && s != "" {
			*f = FlexValue(s)
			return nil
		}
	}
	*f = ""
	return nil
}

// String returns the decoded value.
func (f FlexValue) String() string {
	return string(f)
}
