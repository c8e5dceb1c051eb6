package hubspot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"integration-service/internal/integration"
)

const itemType = "contact"

// UnnamedItem is the name given to a record with neither a display-name
// property nor an id.
const UnnamedItem = "(unnamed contact)"

// DisplayNameKeys lists, highest priority first, the record properties
// that may serve as an item's display name.
var DisplayNameKeys = []string{
	"name", "firstname", "lastname", "title", "subject", "email", "domain", "company",
}

// Property names consulted when the top-level timestamps are missing.
const (
	createdProperty  = "createdate"
	modifiedProperty = "lastmodifieddate"
)

// Record is one CRM object as returned by the HubSpot v3 objects API.
// Every field is optional.
type Record struct {
	ID         RecordID       `json:"id"`
	Properties map[string]any `json:"properties"`
	CreatedAt  *string        `json:"createdAt"`
	UpdatedAt  *string        `json:"updatedAt"`
	Archived   *bool          `json:"archived"`
}

// RecordID accepts the object id as either a JSON string or number.
type RecordID string

func (id *RecordID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = RecordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("hubspot: record id: %w", err)
	}
	*id = RecordID(n.String())
	return nil
}

// Normalize maps a record onto the canonical item. It is a pure function
// of the record.
func Normalize(r Record) integration.Item {
	name := firstNonEmpty(r.Properties, DisplayNameKeys...)
	if name == "" {
		name = string(r.ID)
	}
	if name == "" {
		name = UnnamedItem
	}

	return integration.Item{
		ID:               string(r.ID),
		Type:             itemType,
		Name:             name,
		CreationTime:     firstTimestamp(r.CreatedAt, r.Properties[createdProperty]),
		LastModifiedTime: firstTimestamp(r.UpdatedAt, r.Properties[modifiedProperty]),
		Visibility:       r.Archived == nil || !*r.Archived,
	}
}

func firstNonEmpty(props map[string]any, keys ...string) string {
	for _, k := range keys {
		if v := propertyString(props[k]); v != "" {
			return v
		}
	}
	return ""
}

// propertyString renders a property value, or "" when it is absent or
// carries no content.
func propertyString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if !t {
			return ""
		}
		return "true"
	case float64:
		if t == 0 {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func firstTimestamp(primary *string, fallback any) *time.Time {
	if primary != nil {
		if ts, err := ParseTimestamp(*primary); err == nil {
			return &ts
		}
	}
	if s, ok := fallback.(string); ok {
		if ts, err := ParseTimestamp(s); err == nil {
			return &ts
		}
	}
	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 style timestamp. A trailing "Z" is
// read as +00:00 and values without an offset are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, integration.ErrMalformedTimestamp
	}
	if strings.HasSuffix(s, "Z") || strings.HasSuffix(s, "z") {
		s = s[:len(s)-1] + "+00:00"
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", integration.ErrMalformedTimestamp, s)
}
