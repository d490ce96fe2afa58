package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/msc-labs/evaluate-backend/internal/model"
	"github.com/rs/zerolog"
)

// ResultLister yields stored results for reporting.
type ResultLister interface {
	ListAll(ctx context.Context) ([]model.Result, error)
	ListByTemplate(ctx context.Context, templateID uuid.UUID) ([]model.Result, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Result, error)
}

// UserSource yields users for the reporting join.
type UserSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// Placeholders substituted when a reporting join cannot be resolved.
const (
	unknownStudent  = "Unknown"
	unknownTemplate = "Unknown Template"
	unknownField    = "Unknown"
)

// ReportService joins stored results with template and user metadata at read
// time and computes summary statistics.
type ReportService struct {
	results       ResultLister
	templates     TemplateSource
	users         UserSource
	passThreshold float64
	log           zerolog.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(results ResultLister, templates TemplateSource, users UserSource, passThreshold float64, log zerolog.Logger) *ReportService {
	return &ReportService{
		results:       results,
		templates:     templates,
		users:         users,
		passThreshold: passThreshold,
		log:           log.With().Str("component", "report_service").Logger(),
	}
}

// Build produces the flattened reporting view plus its summary. Results are
// scanned (optionally pre-filtered by template or user), date-filtered
// inclusively on completion timestamp, joined with template and user metadata
// ("Unknown" placeholders for missing joins), and sorted newest first.
func (s *ReportService) Build(ctx context.Context, filter model.ReportFilter) ([]model.ReportRow, model.ReportSummary, error) {
	results, err := s.fetch(ctx, filter)
	if err != nil {
		return nil, model.ReportSummary{}, fmt.Errorf("list results: %w", err)
	}

	templateCache := make(map[uuid.UUID]*model.Template)
	userCache := make(map[uuid.UUID]*model.User)

	rows := make([]model.ReportRow, 0, len(results))
	for _, result := range results {
		if filter.StartDate != nil && result.CompletedAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && result.CompletedAt.After(*filter.EndDate) {
			continue
		}

		row := model.ReportRow{
			ResultID:      result.ID,
			StudentName:   unknownStudent,
			TemplateTitle: unknownTemplate,
			Subject:       unknownField,
			Course:        unknownField,
			Score:         result.TotalScore,
			SubmittedAt:   result.CompletedAt,
		}

		if template := s.lookupTemplate(ctx, templateCache, result.TemplateID); template != nil {
			row.TemplateTitle = template.Title
			row.Subject = template.Subject
			row.Course = template.Course
		}
		if result.UserID != nil {
			if user := s.lookupUser(ctx, userCache, *result.UserID); user != nil {
				row.StudentName = user.Name
			}
		}

		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].SubmittedAt.After(rows[j].SubmittedAt)
	})

	return rows, s.summarize(rows), nil
}

func (s *ReportService) fetch(ctx context.Context, filter model.ReportFilter) ([]model.Result, error) {
	switch {
	case filter.TemplateID != nil:
		return s.results.ListByTemplate(ctx, *filter.TemplateID)
	case filter.UserID != nil:
		return s.results.ListByUser(ctx, *filter.UserID)
	default:
		return s.results.ListAll(ctx)
	}
}

func (s *ReportService) summarize(rows []model.ReportRow) model.ReportSummary {
	total := len(rows)
	if total == 0 {
		return model.ReportSummary{}
	}

	var sum float64
	passed := 0
	for _, r := range rows {
		sum += r.Score
		if r.Score >= s.passThreshold {
			passed++
		}
	}

	return model.ReportSummary{
		TotalSubmissions: total,
		AverageScore:     round2(sum / float64(total)),
		PassRate:         round2(100 * float64(passed) / float64(total)),
	}
}

// lookupTemplate resolves a template through the per-report cache. Lookup
// failures are cached as nil so each missing template is fetched once.
func (s *ReportService) lookupTemplate(ctx context.Context, cache map[uuid.UUID]*model.Template, id uuid.UUID) *model.Template {
	if template, ok := cache[id]; ok {
		return template
	}
	template, err := s.templates.GetByID(ctx, id)
	if err != nil {
		template = nil
	}
	cache[id] = template
	return template
}

func (s *ReportService) lookupUser(ctx context.Context, cache map[uuid.UUID]*model.User, id uuid.UUID) *model.User {
	if user, ok := cache[id]; ok {
		return user
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		user = nil
	}
	cache[id] = user
	return user
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
