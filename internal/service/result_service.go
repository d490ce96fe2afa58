package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/msc-labs/evaluate-backend/internal/model"
	"github.com/msc-labs/evaluate-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ErrResultNotFound is returned for unknown result identifiers.
var ErrResultNotFound = errors.New("result not found")

// ResultService handles stored-result reads and administrative deletes.
type ResultService struct {
	results   *repository.ResultRepository
	templates *repository.TemplateRepository
	log       zerolog.Logger
}

// NewResultService creates a new ResultService.
func NewResultService(results *repository.ResultRepository, templates *repository.TemplateRepository, log zerolog.Logger) *ResultService {
	return &ResultService{
		results:   results,
		templates: templates,
		log:       log.With().Str("component", "result_service").Logger(),
	}
}

// GetByID retrieves one result, enriched at read time with its template's
// questions. A concurrently deleted template leaves the questions empty
// rather than failing the read.
func (s *ResultService) GetByID(ctx context.Context, id uuid.UUID) (*model.Result, error) {
	result, err := s.results.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("get result: %w", err)
	}

	s.enrich(ctx, result)
	return result, nil
}

// ListBySession retrieves a session's history, newest first.
func (s *ResultService) ListBySession(ctx context.Context, sessionID string) ([]model.Result, error) {
	results, err := s.results.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	for i := range results {
		s.enrich(ctx, &results[i])
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CompletedAt.After(results[j].CompletedAt)
	})
	return results, nil
}

// Delete hard-deletes a result. No cascading cleanup.
func (s *ResultService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.results.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete result: %w", err)
	}
	if !deleted {
		return ErrResultNotFound
	}
	return nil
}

// enrich attaches the template's questions to a result. Missing templates are
// tolerated: the result is served without questions.
func (s *ResultService) enrich(ctx context.Context, result *model.Result) {
	template, err := s.templates.GetByID(ctx, result.TemplateID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.log.Warn().Err(err).Str("template_id", result.TemplateID.String()).Msg("Template enrichment failed")
		}
		result.Questions = []model.Question{}
		return
	}
	result.Questions = template.Questions
}
