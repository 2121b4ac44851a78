// Package profile builds a typed view over the dynamic user payload the
// backend returns. Recognized scalar kinds are whitelisted by field name;
// unrecognized keys and kinds are dropped rather than propagated.
package profile

import (
	"time"
)

type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindDate
)

type Field struct {
	Name   string
	Kind   Kind
	String string
	Number float64
	Date   time.Time
}

// editableFields is the whitelist of profile keys the client may show and
// edit, with the scalar kind each is expected to carry.
var editableFields = []struct {
	name string
	kind Kind
}{
	{"name", KindString},
	{"email", KindString},
	{"address", KindString},
	{"phone_number", KindString},
	{"birthday", KindDate},
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Profile is the parsed result: the point identifier plus the editable
// fields actually present in the payload, in whitelist order.
type Profile struct {
	PointID string
	Fields  []Field
}

func Parse(raw map[string]any) Profile {
	result := Profile{}

	if pointID, ok := raw["point_id"].(string); ok {
		result.PointID = pointID
	}

	for _, editable := range editableFields {
		value, ok := raw[editable.name]
		if !ok || value == nil {
			continue
		}

		field, ok := coerce(editable.name, editable.kind, value)
		if !ok {
			continue
		}

		result.Fields = append(result.Fields, field)
	}

	return result
}

func coerce(name string, kind Kind, value any) (Field, bool) {
	switch kind {
	case KindString:
		s, ok := value.(string)
		if !ok {
			return Field{}, false
		}
		return Field{Name: name, Kind: KindString, String: s}, true

	case KindNumber:
		n, ok := value.(float64)
		if !ok {
			return Field{}, false
		}
		return Field{Name: name, Kind: KindNumber, Number: n}, true

	case KindDate:
		s, ok := value.(string)
		if !ok {
			return Field{}, false
		}
		for _, layout := range dateLayouts {
			if date, err := time.Parse(layout, s); err == nil {
				return Field{Name: name, Kind: KindDate, Date: date}, true
			}
		}
		return Field{}, false
	}

	return Field{}, false
}

// Get returns the parsed field by name, if the payload carried it.
func (p Profile) Get(name string) (Field, bool) {
	for _, field := range p.Fields {
		if field.Name == name {
			return field, true
		}
	}

	return Field{}, false
}
