package definition

import (
	"time"

	"github.com/viant/reqflow/model"
	"github.com/viant/toolbox"
)

// FieldKind describes the value space of a business field.
type FieldKind string

const (
	// KindText holds free-form or enumerated text.
	KindText FieldKind = "text"
	// KindNumber holds an integer or decimal amount.
	KindNumber FieldKind = "number"
	// KindFlag holds a boolean toggle.
	KindFlag FieldKind = "flag"
	// KindDate holds a calendar date in dateLayout format.
	KindDate FieldKind = "date"
	// KindActor holds an actor identifier (e.g. an assignee).
	KindActor FieldKind = "actor"
)

const dateLayout = "2006-01-02"

// Field declares one business field of a request type.
type Field struct {
	Name     string    `json:"name" yaml:"name"`
	Kind     FieldKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Required bool      `json:"required,omitempty" yaml:"required,omitempty"`

	// Choices restricts text values to an enumerated set.
	Choices []string `json:"choices,omitempty" yaml:"choices,omitempty"`

	// Default is applied on create when the field is absent.
	Default interface{} `json:"default,omitempty" yaml:"default,omitempty"`
}

func (f *Field) kind() FieldKind {
	if f.Kind == "" {
		return KindText
	}
	return f.Kind
}

// check validates a single non-nil value against the field schema.
func (f *Field) check(value interface{}, violations *model.ValidationError) {
	switch f.kind() {
	case KindNumber:
		if _, err := toolbox.ToFloat(value); err != nil {
			violations.Add(f.Name, "expected a number, got %v", value)
		}
	case KindFlag:
		switch value.(type) {
		case bool:
		default:
			violations.Add(f.Name, "expected a flag, got %v", value)
		}
	case KindDate:
		text := toolbox.AsString(value)
		if _, err := time.Parse(dateLayout, text); err != nil {
			violations.Add(f.Name, "expected a %v date, got %v", dateLayout, text)
		}
	default:
		text := toolbox.AsString(value)
		if f.Required && text == "" {
			violations.Add(f.Name, "is required")
			return
		}
		if len(f.Choices) > 0 && !f.hasChoice(text) {
			violations.Add(f.Name, "%q is not one of %v", text, f.Choices)
		}
	}
}

func (f *Field) hasChoice(value string) bool {
	for _, choice := range f.Choices {
		if choice == value {
			return true
		}
	}
	return false
}

// ApplyDefaults fills absent fields that declare a default value.  The
// supplied map is mutated in place; a nil map is returned unchanged.
func (d *Definition) ApplyDefaults(fields map[string]interface{}) map[string]interface{} {
	if fields == nil {
		fields = map[string]interface{}{}
	}
	for _, field := range d.Fields {
		if field.Default == nil {
			continue
		}
		if _, ok := fields[field.Name]; !ok {
			fields[field.Name] = field.Default
		}
	}
	return fields
}

// ValidateFields checks the supplied business fields against the schema.
// When partial is true absent required fields are tolerated (update path);
// on create every required field must be present.  Unknown fields are
// rejected so that typos do not silently persist.
func (d *Definition) ValidateFields(fields map[string]interface{}, partial bool) error {
	violations := &model.ValidationError{}
	for name := range fields {
		if d.Field(name) == nil {
			violations.Add(name, "is not a known field of %v", d.Type)
		}
	}
	for _, field := range d.Fields {
		value, ok := fields[field.Name]
		if !ok || value == nil {
			if field.Required && !partial {
				violations.Add(field.Name, "is required")
			}
			continue
		}
		field.check(value, violations)
	}
	if violations.HasViolations() {
		return violations
	}
	return nil
}
