package forms

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/marcelsud/formie-filemaker/filemaker"
	"gopkg.in/yaml.v3"
)

/* Loader manages form configuration from forms.yaml
 * Provides in-memory lookup and fake submissions for settings previews
 */

// Config represents the structure of forms.yaml
type Config struct {
	Forms []FormConfig `yaml:"forms"`
}

// FormConfig represents a single form in the YAML file
type FormConfig struct {
	FormID  string        `yaml:"form_id"`
	Handle  string        `yaml:"handle"`
	Title   string        `yaml:"title"`
	Webhook string        `yaml:"webhook"` // Optional: overrides the global webhook URL
	Fields  []FieldConfig `yaml:"fields"`
}

// FieldConfig represents a single field of a form
type FieldConfig struct {
	Handle string `yaml:"handle"`
	Type   string `yaml:"type"`
	Sample any    `yaml:"sample"`
}

// Loader holds the loaded forms
type Loader struct {
	forms map[string]*Form
	now   func() time.Time
}

// NewLoader creates a new form loader
func NewLoader() *Loader {
	return &Loader{
		forms: make(map[string]*Form),
		now:   time.Now,
	}
}

// SetClock replaces the time source used for fake submissions
func (l *Loader) SetClock(c filemaker.Clock) {
	l.now = c.Now
}

// Load reads and parses the forms.yaml file
func (l *Loader) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading forms file: %w", err)
	}
	return l.Parse(data)
}

// Parse loads forms from YAML bytes
func (l *Loader) Parse(data []byte) error {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parsing forms YAML: %w", err)
	}

	loaded := make(map[string]*Form, len(config.Forms))
	for _, fc := range config.Forms {
		form := &Form{
			FormID:  fc.FormID,
			Handle:  fc.Handle,
			Title:   fc.Title,
			Webhook: fc.Webhook,
		}
		for _, field := range fc.Fields {
			form.Fields = append(form.Fields, Field{
				Handle: field.Handle,
				Type:   NewFieldType(field.Type),
				Sample: field.Sample,
			})
		}

		if err := form.Validate(); err != nil {
			return fmt.Errorf("validating form: %w", err)
		}
		if _, exists := loaded[form.FormID]; exists {
			return fmt.Errorf("duplicate form_id: %s", form.FormID)
		}
		loaded[form.FormID] = form
	}

	for id, form := range loaded {
		l.forms[id] = form
	}
	return nil
}

// Get retrieves a form by its ID
func (l *Loader) Get(formID string) (*Form, error) {
	form, exists := l.forms[formID]
	if !exists {
		return nil, fmt.Errorf("form not found: %s", formID)
	}
	return form, nil
}

// List returns all loaded forms ordered by ID
func (l *Loader) List() []*Form {
	forms := make([]*Form, 0, len(l.forms))
	for _, form := range l.forms {
		forms = append(forms, form)
	}
	sort.Slice(forms, func(i, j int) bool { return forms[i].FormID < forms[j].FormID })
	return forms
}

// Exists checks if a form ID exists
func (l *Loader) Exists(formID string) bool {
	_, exists := l.forms[formID]
	return exists
}

// Form implements filemaker.FormSource
func (l *Loader) Form(ctx context.Context, formID string) (filemaker.Form, error) {
	form, err := l.Get(formID)
	if err != nil {
		return filemaker.Form{}, err
	}
	return form.Target(), nil
}

// FakeSubmission fills every field of the form with its sample or a placeholder for its type
func (l *Loader) FakeSubmission(ctx context.Context, target filemaker.Form) (filemaker.Submission, error) {
	form, err := l.Get(target.ID)
	if err != nil {
		return filemaker.Submission{}, err
	}

	now := l.now()
	values := make(map[string]any, len(form.Fields))
	for _, field := range form.Fields {
		if field.Sample != nil {
			values[field.Handle] = field.Sample
			continue
		}
		values[field.Handle] = placeholder(field.Type, now)
	}

	return filemaker.Submission{
		ID:         uuid.New().String(),
		FormID:     form.FormID,
		FormHandle: form.Handle,
		Title:      now.Format("2006-01-02 15:04:05"),
		Values:     values,
		CreatedAt:  now,
	}, nil
}

func placeholder(t FieldType, now time.Time) any {
	switch t {
	case Email:
		return "test@example.com"
	case Number:
		return 1234
	case Phone:
		return "+1 555 0100"
	case Date:
		return now.Format("2006-01-02")
	case Checkbox:
		return true
	case URL:
		return "https://example.com"
	default:
		return "Lorem ipsum dolor sit amet"
	}
}
