package payload

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/marcelsud/formie-filemaker/filemaker"
)

// handlePattern validates field handles: a letter followed by [a-zA-Z0-9_]
var handlePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

/* Builder is the default PayloadBuilder
 * It renders a submission the way the form host's generic webhook integration does:
 * {"json": {"submission": {...attributes, ...field values}, "form": {...}}}
 */
type Builder struct{}

// NewBuilder creates the default payload builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Values renders the submission attributes merged with its field values.
// Field values win over attributes with the same name.
func (b *Builder) Values(ctx context.Context, s filemaker.Submission) (map[string]any, error) {
	submission := map[string]any{
		"id":     s.ID,
		"title":  s.Title,
		"formId": s.FormID,
	}
	if !s.CreatedAt.IsZero() {
		submission["dateCreated"] = s.CreatedAt.UTC().Format(time.RFC3339Nano)
	}

	for handle, value := range s.Values {
		if err := ValidateHandle(handle); err != nil {
			return nil, fmt.Errorf("validating field %q: %w", handle, err)
		}
		if _, err := json.Marshal(value); err != nil {
			return nil, fmt.Errorf("marshaling field %q: %w", handle, err)
		}
		submission[handle] = value
	}

	return map[string]any{
		"json": map[string]any{
			"submission": submission,
			"form": map[string]any{
				"id":     s.FormID,
				"handle": s.FormHandle,
			},
		},
	}, nil
}

// ValidateHandle validates a field handle format
func ValidateHandle(handle string) error {
	if handle == "" {
		return fmt.Errorf("handle cannot be empty")
	}
	if !handlePattern.MatchString(handle) {
		return fmt.Errorf("handle must start with a letter and contain only [a-zA-Z0-9_]: %s", handle)
	}
	return nil
}
