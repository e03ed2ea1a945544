package report

import (
	"context"
	"errors"
	"time"

	"github.com/marcelsud/formie-filemaker/filemaker"
)

// ErrNotFound is returned when no report exists for an id
var ErrNotFound = errors.New("report not found")

/* Report is a stored integration failure
 * Text is the administrator message rendered in the configured language
 */
type Report struct {
	ID          string    `json:"id"`
	Integration string    `json:"integration"`
	Operation   string    `json:"operation"`
	Kind        string    `json:"kind"`
	Message     string    `json:"message"`
	Text        string    `json:"text"`
	Location    string    `json:"location"`
	AuthURL     string    `json:"auth_url,omitempty"`
	Payload     string    `json:"payload,omitempty"`
	Response    string    `json:"response,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromDetail converts a core failure record into a Report
func FromDetail(id, text string, d filemaker.ErrorDetail) Report {
	return Report{
		ID:          id,
		Integration: d.Integration,
		Operation:   d.Operation,
		Kind:        d.Kind.String(),
		Message:     d.Message,
		Text:        text,
		Location:    d.Location,
		AuthURL:     d.AuthURL,
		Payload:     d.Payload,
		Response:    d.Response,
		CreatedAt:   d.CreatedAt,
	}
}

// Reader provides read operations for stored reports
type Reader interface {
	Get(ctx context.Context, id string) (Report, error)
	/* List returns the most recent reports first
	 * A limit <= 0 means every retained report
	 */
	List(ctx context.Context, limit int) ([]Report, error)
	CountByKind(ctx context.Context) (map[string]int64, error)
}

// Writer provides write operations for reports
type Writer interface {
	Store(ctx context.Context, r Report) error
}

type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}
