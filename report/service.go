package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/marcelsud/formie-filemaker/filemaker"
	"github.com/rs/zerolog"
)

/* Service is the host error surface for the integration
 * It renders, logs and stores every failure the dispatcher reports
 */
type Service struct {
	Repo       Repository
	translator *Translator
	logger     zerolog.Logger
	newID      func() string
}

// NewService creates a report service. A nil repo only logs; a nil
// translator renders English.
func NewService(repo Repository, translator *Translator, logger zerolog.Logger) *Service {
	if translator == nil {
		translator = englishTranslator()
	}
	return &Service{
		Repo:       repo,
		translator: translator,
		logger:     logger,
		newID:      func() string { return uuid.New().String() },
	}
}

// Report implements filemaker.ErrorReporter. Storage failures are logged and dropped.
func (s *Service) Report(ctx context.Context, d filemaker.ErrorDetail) {
	id := d.ID
	if id == "" {
		id = s.newID()
	}
	text := s.translator.Render(d)

	s.logger.Error().
		Str("report_id", id).
		Str("integration", d.Integration).
		Str("operation", d.Operation).
		Str("error_kind", d.Kind.String()).
		Str("location", d.Location).
		Msg(text)

	if s.Repo == nil {
		return
	}
	if err := s.Repo.Store(ctx, FromDetail(id, text, d)); err != nil {
		s.logger.Warn().Err(err).Str("report_id", id).Msg("storing error report")
	}
}

// Get retrieves a stored report
func (s *Service) Get(ctx context.Context, id string) (Report, error) {
	if s.Repo == nil {
		return Report{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	r, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Report{}, fmt.Errorf("getting report: %w", err)
	}
	return r, nil
}

// List returns the most recent reports first
func (s *Service) List(ctx context.Context, limit int) ([]Report, error) {
	if s.Repo == nil {
		return []Report{}, nil
	}
	reports, err := s.Repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	return reports, nil
}
