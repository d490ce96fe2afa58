package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/msc-labs/evaluate-backend/internal/grading"
	"github.com/msc-labs/evaluate-backend/internal/model"
	"github.com/rs/zerolog"
)

// TemplateSource yields templates for scoring.
type TemplateSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Template, error)
}

// ResultSink persists assembled results.
type ResultSink interface {
	Save(ctx context.Context, res *model.Result) error
}

// Grader scores one free-text answer against a reference answer. It must
// absorb its own failures into a fallback evaluation.
type Grader interface {
	Grade(ctx context.Context, userAnswer, exampleAnswer string) grading.Evaluation
}

// SubmissionService runs the submission pipeline: validate coverage, score
// each answer, assemble the summary, persist the result.
type SubmissionService struct {
	templates TemplateSource
	results   ResultSink
	oracle    Grader
	log       zerolog.Logger
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(templates TemplateSource, results ResultSink, oracle Grader, log zerolog.Logger) *SubmissionService {
	return &SubmissionService{
		templates: templates,
		results:   results,
		oracle:    oracle,
		log:       log.With().Str("component", "submission_service").Logger(),
	}
}

// Submit scores a quiz submission and persists the outcome. A missing session
// identifier is minted here; userID is attached when the caller was
// authenticated. Validation failures leave no partial state behind. Oracle
// failures for individual answers degrade to fallback scores; only the final
// store write is fatal.
func (s *SubmissionService) Submit(ctx context.Context, templateID uuid.UUID, sessionID string, answers []model.Answer, userID *uuid.UUID) (*model.SubmitQuizResponse, error) {
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	template, err := s.templates.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, ErrTemplateNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("get template: %w", err)
	}

	total := len(template.Questions)
	if err := grading.ValidateCoverage(total, answers); err != nil {
		return nil, err
	}

	details := make([]model.QuestionResult, 0, len(answers))
	for _, answer := range answers {
		question := template.Questions[answer.QuestionIndex]
		if question.IsChoice() {
			details = append(details, grading.ChoiceDetail(question, answer))
			continue
		}
		details = append(details, s.gradeFreeText(ctx, question, answer))
	}

	summary := grading.Assemble(details, total)

	result := &model.Result{
		TemplateID:      templateID,
		SessionID:       sessionID,
		UserID:          userID,
		Answers:         answers,
		DetailedResults: summary.Details,
		TotalScore:      summary.TotalScore,
		CorrectCount:    summary.CorrectCount,
		TotalQuestions:  summary.TotalQuestions,
	}
	if err := s.results.Save(ctx, result); err != nil {
		return nil, fmt.Errorf("save result: %w", err)
	}

	return &model.SubmitQuizResponse{
		ResultID:        result.ID,
		SessionID:       sessionID,
		TotalScore:      summary.TotalScore,
		CorrectCount:    summary.CorrectCount,
		TotalQuestions:  summary.TotalQuestions,
		DetailedResults: summary.Details,
	}, nil
}

// gradeFreeText resolves the answer text (extracting it from an uploaded PDF
// if needed) and delegates to the grading oracle. Extraction failures score as
// fallback instead of failing the submission.
func (s *SubmissionService) gradeFreeText(ctx context.Context, question model.Question, answer model.Answer) model.QuestionResult {
	text := answer.AnswerText
	if text == "" && answer.PDFData != "" {
		extracted, err := grading.ExtractPDFText(answer.PDFData)
		if err != nil {
			s.log.Warn().Err(err).Int("question_index", answer.QuestionIndex).Msg("PDF extraction failed")
			return grading.OracleDetail(answer, grading.Evaluation{
				Score:         "0",
				Evaluation:    "Failed to evaluate answer",
				Justification: "PDF processing failed",
			})
		}
		text = extracted
	}

	return grading.OracleDetail(answer, s.oracle.Grade(ctx, text, question.ExampleAnswer))
}
