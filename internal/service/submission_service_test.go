package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/msc-labs/evaluate-backend/internal/grading"
	"github.com/msc-labs/evaluate-backend/internal/model"
	"github.com/rs/zerolog"
)

type fakeTemplateSource struct {
	template *model.Template
	err      error
}

func (f *fakeTemplateSource) GetByID(ctx context.Context, id uuid.UUID) (*model.Template, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.template, nil
}

type fakeResultSink struct {
	saved []*model.Result
	err   error
}

func (f *fakeResultSink) Save(ctx context.Context, res *model.Result) error {
	if f.err != nil {
		return f.err
	}
	res.ID = uuid.New()
	f.saved = append(f.saved, res)
	return nil
}

type fakeGrader struct {
	eval  grading.Evaluation
	calls []string
}

func (f *fakeGrader) Grade(ctx context.Context, userAnswer, exampleAnswer string) grading.Evaluation {
	f.calls = append(f.calls, userAnswer)
	return f.eval
}

func intPtr(v int) *int { return &v }

func choiceTemplate() *model.Template {
	return &model.Template{
		ID:    uuid.New(),
		Title: "Math Basics",
		Questions: []model.Question{
			{QuestionText: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: intPtr(1)},
			{QuestionText: "3+3?", Options: []string{"5", "6"}, CorrectAnswer: intPtr(1)},
		},
	}
}

func newTestSubmission(templates TemplateSource, results ResultSink, oracle Grader) *SubmissionService {
	return NewSubmissionService(templates, results, oracle, zerolog.Nop())
}

func TestSubmitScoresMultipleChoice(t *testing.T) {
	sink := &fakeResultSink{}
	svc := newTestSubmission(&fakeTemplateSource{template: choiceTemplate()}, sink, &fakeGrader{})

	answers := []model.Answer{
		{QuestionIndex: 0, SelectedAnswer: intPtr(1)},
		{QuestionIndex: 1, SelectedAnswer: intPtr(0)},
	}

	resp, err := svc.Submit(context.Background(), uuid.New(), "sess-1", answers, nil)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if resp.TotalScore != 50 {
		t.Errorf("TotalScore = %v, want 50", resp.TotalScore)
	}
	if resp.CorrectCount != 1 {
		t.Errorf("CorrectCount = %d, want 1", resp.CorrectCount)
	}
	if resp.TotalQuestions != 2 {
		t.Errorf("TotalQuestions = %d, want 2", resp.TotalQuestions)
	}
	if resp.SessionID != "sess-1" {
		t.Errorf("SessionID = %q, want sess-1", resp.SessionID)
	}
	if len(sink.saved) != 1 {
		t.Fatalf("saved %d results, want 1", len(sink.saved))
	}
	if sink.saved[0].SessionID != "sess-1" {
		t.Errorf("stored SessionID = %q", sink.saved[0].SessionID)
	}
}

func TestSubmitMintsSessionID(t *testing.T) {
	sink := &fakeResultSink{}
	svc := newTestSubmission(&fakeTemplateSource{template: choiceTemplate()}, sink, &fakeGrader{})

	answers := []model.Answer{
		{QuestionIndex: 0, SelectedAnswer: intPtr(1)},
		{QuestionIndex: 1, SelectedAnswer: intPtr(1)},
	}

	resp, err := svc.Submit(context.Background(), uuid.New(), "", answers, nil)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if resp.SessionID == "" {
		t.Error("a session ID should be minted when none is supplied")
	}
	if _, err := uuid.Parse(resp.SessionID); err != nil {
		t.Errorf("minted session ID %q is not a UUID", resp.SessionID)
	}
}

func TestSubmitRejectsIncompleteCoverage(t *testing.T) {
	tests := []struct {
		name    string
		answers []model.Answer
	}{
		{"missing question", []model.Answer{{QuestionIndex: 0, SelectedAnswer: intPtr(1)}}},
		{"duplicate without coverage", []model.Answer{
			{QuestionIndex: 0, SelectedAnswer: intPtr(1)},
			{QuestionIndex: 0, SelectedAnswer: intPtr(0)},
		}},
		{"padded duplicate despite full coverage", []model.Answer{
			{QuestionIndex: 0, SelectedAnswer: intPtr(1)},
			{QuestionIndex: 1, SelectedAnswer: intPtr(1)},
			{QuestionIndex: 1, SelectedAnswer: intPtr(1)},
		}},
		{"out of range", []model.Answer{
			{QuestionIndex: 0, SelectedAnswer: intPtr(1)},
			{QuestionIndex: 5, SelectedAnswer: intPtr(1)},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &fakeResultSink{}
			svc := newTestSubmission(&fakeTemplateSource{template: choiceTemplate()}, sink, &fakeGrader{})

			_, err := svc.Submit(context.Background(), uuid.New(), "s", tt.answers, nil)

			var incomplete *grading.IncompleteError
			if !errors.As(err, &incomplete) {
				t.Fatalf("Submit() error = %v, want *IncompleteError", err)
			}
			if len(sink.saved) != 0 {
				t.Error("a rejected submission must not persist anything")
			}
		})
	}
}

func TestSubmitTemplateNotFound(t *testing.T) {
	svc := newTestSubmission(&fakeTemplateSource{err: ErrTemplateNotFound}, &fakeResultSink{}, &fakeGrader{})

	_, err := svc.Submit(context.Background(), uuid.New(), "s", []model.Answer{{QuestionIndex: 0}}, nil)
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("Submit() error = %v, want ErrTemplateNotFound", err)
	}
}

func TestSubmitDelegatesFreeTextToOracle(t *testing.T) {
	template := &model.Template{
		ID: uuid.New(),
		Questions: []model.Question{
			{QuestionText: "Explain gravity", ExampleAnswer: "Mass attracts mass"},
		},
	}
	grader := &fakeGrader{eval: grading.Evaluation{
		Score:         "80",
		Evaluation:    "Good",
		Justification: "Close to reference",
		Suggestions:   "Mention curvature",
	}}
	sink := &fakeResultSink{}
	svc := newTestSubmission(&fakeTemplateSource{template: template}, sink, grader)

	resp, err := svc.Submit(context.Background(), uuid.New(), "s",
		[]model.Answer{{QuestionIndex: 0, AnswerText: "Things fall down"}}, nil)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if len(grader.calls) != 1 || grader.calls[0] != "Things fall down" {
		t.Errorf("grader calls = %v", grader.calls)
	}
	if resp.TotalScore != 80 {
		t.Errorf("TotalScore = %v, want 80", resp.TotalScore)
	}
	if resp.CorrectCount != 0 {
		t.Errorf("CorrectCount = %d, free-text answers never count as correct", resp.CorrectCount)
	}
	detail := resp.DetailedResults[0]
	if detail.Suggestions != "Mention curvature" {
		t.Errorf("Suggestions = %q", detail.Suggestions)
	}
}

func TestSubmitMixedModeMeanScore(t *testing.T) {
	template := &model.Template{
		ID: uuid.New(),
		Questions: []model.Question{
			{QuestionText: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: intPtr(1)},
			{QuestionText: "Explain", ExampleAnswer: "reference"},
		},
	}
	grader := &fakeGrader{eval: grading.Evaluation{Score: "60"}}
	svc := newTestSubmission(&fakeTemplateSource{template: template}, &fakeResultSink{}, grader)

	resp, err := svc.Submit(context.Background(), uuid.New(), "s", []model.Answer{
		{QuestionIndex: 0, SelectedAnswer: intPtr(1)},
		{QuestionIndex: 1, AnswerText: "attempt"},
	}, nil)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if resp.TotalScore != 80 { // (100 + 60) / 2
		t.Errorf("TotalScore = %v, want 80", resp.TotalScore)
	}
	if resp.CorrectCount != 1 {
		t.Errorf("CorrectCount = %d, want 1", resp.CorrectCount)
	}
}

func TestSubmitBrokenPDFScoresFallback(t *testing.T) {
	template := &model.Template{
		ID: uuid.New(),
		Questions: []model.Question{
			{QuestionText: "Explain", ExampleAnswer: "reference"},
		},
	}
	grader := &fakeGrader{}
	svc := newTestSubmission(&fakeTemplateSource{template: template}, &fakeResultSink{}, grader)

	resp, err := svc.Submit(context.Background(), uuid.New(), "s", []model.Answer{
		{QuestionIndex: 0, PDFData: "not-base64!!!", PDFFilename: "essay.pdf"},
	}, nil)
	if err != nil {
		t.Fatalf("Submit() error = %v, broken PDF must not abort the submission", err)
	}

	if len(grader.calls) != 0 {
		t.Error("oracle must not be called when extraction fails")
	}
	detail := resp.DetailedResults[0]
	if detail.Score != grading.FallbackScore {
		t.Errorf("Score = %v, want fallback", detail.Score)
	}
	if detail.UserAnswer != "PDF: essay.pdf" {
		t.Errorf("UserAnswer = %q", detail.UserAnswer)
	}
}

func TestSubmitSaveFailureIsFatal(t *testing.T) {
	sink := &fakeResultSink{err: errors.New("db down")}
	svc := newTestSubmission(&fakeTemplateSource{template: choiceTemplate()}, sink, &fakeGrader{})

	_, err := svc.Submit(context.Background(), uuid.New(), "s", []model.Answer{
		{QuestionIndex: 0, SelectedAnswer: intPtr(1)},
		{QuestionIndex: 1, SelectedAnswer: intPtr(1)},
	}, nil)
	if err == nil {
		t.Fatal("Submit() should fail when the result cannot be persisted")
	}
}

func TestSubmitAttachesUserID(t *testing.T) {
	sink := &fakeResultSink{}
	svc := newTestSubmission(&fakeTemplateSource{template: choiceTemplate()}, sink, &fakeGrader{})

	userID := uuid.New()
	_, err := svc.Submit(context.Background(), uuid.New(), "s", []model.Answer{
		{QuestionIndex: 0, SelectedAnswer: intPtr(1)},
		{QuestionIndex: 1, SelectedAnswer: intPtr(1)},
	}, &userID)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if sink.saved[0].UserID == nil || *sink.saved[0].UserID != userID {
		t.Error("authenticated submissions should carry the user ID")
	}
}
