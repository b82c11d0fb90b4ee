package entity

// Entity is a single categorized observation extracted from a report.
//
// Attributes hold the category-specific fields (a person's "name", an email's
// "address", a handle's "platform" and "username"). The typed accessors below
// read the well-known attributes; arbitrary extra attributes survive storage
// round trips untouched.
//
// Confidence is advisory metadata in [0,1] describing how reliable the
// extraction heuristic that produced the observation is. It never participates
// in identity: two observations with equal dedup keys are the same entity
// regardless of confidence.
type Entity struct {
	Category   Category       `json:"category"`
	Attributes map[string]any `json:"attributes"`
	Confidence float64        `json:"confidence"`
	Source     string         `json:"source"`
}

// New creates an Entity of the given category with an initialized attribute map.
func New(category Category, confidence float64, source string) Entity {
	return Entity{
		Category:   category,
		Attributes: make(map[string]any),
		Confidence: confidence,
		Source:     source,
	}
}

// With sets a single attribute and returns the entity for chaining.
func (e Entity) With(key string, value any) Entity {
	if e.Attributes == nil {
		e.Attributes = make(map[string]any)
	}
	e.Attributes[key] = value
	return e
}

// Attr returns the string value of an attribute, or "" if the attribute is
// absent or not a string.
func (e Entity) Attr(key string) string {
	if s, ok := e.Attributes[key].(string); ok {
		return s
	}
	return ""
}

// Name returns the "name" attribute (people, organizations, events).
func (e Entity) Name() string { return e.Attr("name") }

// Address returns the "address" attribute (emails).
func (e Entity) Address() string { return e.Attr("address") }

// Domain returns the "domain" attribute (domains).
func (e Entity) Domain() string { return e.Attr("domain") }

// URL returns the "url" attribute.
func (e Entity) URL() string { return e.Attr("url") }

// Location returns the "location" attribute (locations, events).
func (e Entity) Location() string { return e.Attr("location") }

// Platform returns the "platform" attribute (social handles).
func (e Entity) Platform() string { return e.Attr("platform") }

// Username returns the "username" attribute (social handles).
func (e Entity) Username() string { return e.Attr("username") }

// Number returns the "number" attribute (phones).
func (e Entity) Number() string { return e.Attr("number") }

// Date returns the "date" attribute (events, geolocation entries).
func (e Entity) Date() string { return e.Attr("date") }

// Role returns the "role" attribute (people).
func (e Entity) Role() string { return e.Attr("role") }

// ProfileURL returns the "profile_url" attribute (people).
func (e Entity) ProfileURL() string { return e.Attr("profile_url") }

// Keyword returns the "keyword" attribute (keywords).
func (e Entity) Keyword() string { return e.Attr("keyword") }

// Coordinates returns the "coordinates" attribute as a [lat, lon] pair.
// The second return value is false unless exactly two numeric coordinates are
// present. Values that passed through JSON storage arrive as []any and are
// normalized here.
func (e Entity) Coordinates() ([]float64, bool) {
	switch v := e.Attributes["coordinates"].(type) {
	case []float64:
		if len(v) == 2 {
			return v, true
		}
	case []any:
		if len(v) != 2 {
			return nil, false
		}
		coords := make([]float64, 0, 2)
		for _, c := range v {
			f, ok := c.(float64)
			if !ok {
				return nil, false
			}
			coords = append(coords, f)
		}
		return coords, true
	}
	return nil, false
}
