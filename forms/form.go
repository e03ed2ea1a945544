package forms

import (
	"fmt"

	"github.com/marcelsud/formie-filemaker/filemaker"
	"github.com/marcelsud/formie-filemaker/payload"
)

/* FieldType drives the placeholder value a fake submission gets
 * Mirrors the field kinds the form host offers
 */
type FieldType int

const (
	Text FieldType = iota + 1
	Email
	Number
	Phone
	Date
	Checkbox
	URL
)

// String returns the string representation of the field type
func (f FieldType) String() string {
	switch f {
	case Text:
		return "text"
	case Email:
		return "email"
	case Number:
		return "number"
	case Phone:
		return "phone"
	case Date:
		return "date"
	case Checkbox:
		return "checkbox"
	case URL:
		return "url"
	default:
		return "unknown"
	}
}

// NewFieldType creates a FieldType from a string. An empty string means text.
func NewFieldType(s string) FieldType {
	switch s {
	case "", "text":
		return Text
	case "email":
		return Email
	case "number":
		return Number
	case "phone":
		return Phone
	case "date":
		return Date
	case "checkbox":
		return Checkbox
	case "url":
		return URL
	default:
		return 0
	}
}

// Validate checks if the field type is valid
func (f FieldType) Validate() error {
	if f < Text || f > URL {
		return fmt.Errorf("invalid field type: %d", f)
	}
	return nil
}

// Field is one input of a form
type Field struct {
	Handle string
	Type   FieldType
	Sample any // optional fixed value for fake submissions
}

/* Form is a host form the integration is attached to
 * Webhook overrides the global webhook URL when set
 */
type Form struct {
	FormID  string
	Handle  string
	Title   string
	Webhook string
	Fields  []Field
}

// Validate checks if the form configuration is valid
func (f *Form) Validate() error {
	if f.FormID == "" {
		return fmt.Errorf("form_id cannot be empty")
	}
	if f.Handle == "" {
		return fmt.Errorf("handle cannot be empty for form %s", f.FormID)
	}
	if f.Webhook != "" {
		if err := filemaker.ValidateURL(f.Webhook); err != nil {
			return fmt.Errorf("invalid webhook for form %s: %w", f.FormID, err)
		}
	}

	seen := make(map[string]bool, len(f.Fields))
	for _, field := range f.Fields {
		if err := payload.ValidateHandle(field.Handle); err != nil {
			return fmt.Errorf("invalid field for form %s: %w", f.FormID, err)
		}
		if seen[field.Handle] {
			return fmt.Errorf("duplicate field %s for form %s", field.Handle, f.FormID)
		}
		seen[field.Handle] = true
		if err := field.Type.Validate(); err != nil {
			return fmt.Errorf("invalid type for field %s of form %s: %w", field.Handle, f.FormID, err)
		}
	}
	return nil
}

// Target converts the form into the core's view of it
func (f *Form) Target() filemaker.Form {
	return filemaker.Form{
		ID:      f.FormID,
		Handle:  f.Handle,
		Title:   f.Title,
		Webhook: f.Webhook,
	}
}
