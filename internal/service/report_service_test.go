package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/msc-labs/evaluate-backend/internal/model"
	"github.com/rs/zerolog"
)

type fakeResultLister struct {
	results []model.Result

	byTemplate map[uuid.UUID][]model.Result
	byUser     map[uuid.UUID][]model.Result
}

func (f *fakeResultLister) ListAll(ctx context.Context) ([]model.Result, error) {
	return f.results, nil
}

func (f *fakeResultLister) ListByTemplate(ctx context.Context, templateID uuid.UUID) ([]model.Result, error) {
	return f.byTemplate[templateID], nil
}

func (f *fakeResultLister) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Result, error) {
	return f.byUser[userID], nil
}

type fakeTemplateGetter struct {
	templates map[uuid.UUID]*model.Template
}

func (f *fakeTemplateGetter) GetByID(ctx context.Context, id uuid.UUID) (*model.Template, error) {
	if t, ok := f.templates[id]; ok {
		return t, nil
	}
	return nil, errors.New("not found")
}

type fakeUserGetter struct {
	users map[uuid.UUID]*model.User
}

func (f *fakeUserGetter) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, errors.New("not found")
}

func day(d int) time.Time {
	return time.Date(2026, 3, d, 12, 0, 0, 0, time.UTC)
}

func newTestReport(results ResultLister, templates TemplateSource, users UserSource) *ReportService {
	return NewReportService(results, templates, users, 60, zerolog.Nop())
}

func TestBuildReportJoinsAndSorts(t *testing.T) {
	templateID := uuid.New()
	userID := uuid.New()

	lister := &fakeResultLister{results: []model.Result{
		{ID: uuid.New(), TemplateID: templateID, UserID: &userID, TotalScore: 80, CompletedAt: day(1)},
		{ID: uuid.New(), TemplateID: templateID, TotalScore: 40, CompletedAt: day(3)},
		{ID: uuid.New(), TemplateID: uuid.New(), TotalScore: 70, CompletedAt: day(2)},
	}}
	templates := &fakeTemplateGetter{templates: map[uuid.UUID]*model.Template{
		templateID: {ID: templateID, Title: "Algebra I", Subject: "Math", Course: "MATH-101"},
	}}
	users := &fakeUserGetter{users: map[uuid.UUID]*model.User{
		userID: {ID: userID, Name: "Ada"},
	}}

	rows, summary, err := newTestReport(lister, templates, users).Build(context.Background(), model.ReportFilter{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	// Newest first.
	if !rows[0].SubmittedAt.Equal(day(3)) || !rows[1].SubmittedAt.Equal(day(2)) || !rows[2].SubmittedAt.Equal(day(1)) {
		t.Errorf("rows not sorted newest first: %v %v %v",
			rows[0].SubmittedAt, rows[1].SubmittedAt, rows[2].SubmittedAt)
	}

	// Resolved joins.
	if rows[2].StudentName != "Ada" || rows[2].TemplateTitle != "Algebra I" {
		t.Errorf("joined row = %+v", rows[2])
	}
	// Anonymous submission and missing template fall back to placeholders.
	if rows[0].StudentName != "Unknown" {
		t.Errorf("anonymous StudentName = %q, want Unknown", rows[0].StudentName)
	}
	if rows[1].TemplateTitle != "Unknown Template" {
		t.Errorf("missing template title = %q, want Unknown Template", rows[1].TemplateTitle)
	}

	if summary.TotalSubmissions != 3 {
		t.Errorf("TotalSubmissions = %d, want 3", summary.TotalSubmissions)
	}
	if summary.AverageScore != 63.33 { // (80+40+70)/3 rounded
		t.Errorf("AverageScore = %v, want 63.33", summary.AverageScore)
	}
	if summary.PassRate != 66.67 { // 2 of 3 at or above 60
		t.Errorf("PassRate = %v, want 66.67", summary.PassRate)
	}
}

func TestBuildReportDateFilterInclusive(t *testing.T) {
	lister := &fakeResultLister{results: []model.Result{
		{ID: uuid.New(), TotalScore: 10, CompletedAt: day(1)},
		{ID: uuid.New(), TotalScore: 20, CompletedAt: day(2)},
		{ID: uuid.New(), TotalScore: 30, CompletedAt: day(3)},
	}}
	svc := newTestReport(lister, &fakeTemplateGetter{}, &fakeUserGetter{})

	start := day(2)
	end := day(2)
	rows, _, err := svc.Build(context.Background(), model.ReportFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(rows) != 1 || rows[0].Score != 20 {
		t.Errorf("inclusive bounds should keep exactly the day-2 result, got %d rows", len(rows))
	}
}

func TestBuildReportTemplateFilter(t *testing.T) {
	templateID := uuid.New()
	lister := &fakeResultLister{
		results: []model.Result{{ID: uuid.New(), TotalScore: 99, CompletedAt: day(1)}},
		byTemplate: map[uuid.UUID][]model.Result{
			templateID: {{ID: uuid.New(), TemplateID: templateID, TotalScore: 50, CompletedAt: day(1)}},
		},
	}
	svc := newTestReport(lister, &fakeTemplateGetter{}, &fakeUserGetter{})

	rows, _, err := svc.Build(context.Background(), model.ReportFilter{TemplateID: &templateID})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(rows) != 1 || rows[0].Score != 50 {
		t.Errorf("template filter should use the per-template listing, got %+v", rows)
	}
}

func TestBuildReportEmpty(t *testing.T) {
	svc := newTestReport(&fakeResultLister{}, &fakeTemplateGetter{}, &fakeUserGetter{})

	rows, summary, err := svc.Build(context.Background(), model.ReportFilter{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("rows = %d, want 0", len(rows))
	}
	if summary.TotalSubmissions != 0 || summary.AverageScore != 0 || summary.PassRate != 0 {
		t.Errorf("empty summary = %+v", summary)
	}
}
