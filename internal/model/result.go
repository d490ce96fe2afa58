package model

import (
	"time"

	"github.com/google/uuid"
)

// Answer is a single submission unit: a question index plus either a selected
// option index (multiple choice) or free text, optionally backed by an
// uploaded document.
type Answer struct {
	QuestionIndex  int    `json:"question_index"`
	SelectedAnswer *int   `json:"selected_answer,omitempty"`
	AnswerText     string `json:"answer_text,omitempty"`
	PDFData        string `json:"pdf_data,omitempty"`
	PDFFilename    string `json:"pdf_filename,omitempty"`
}

// QuestionResult is the per-question evaluation detail stored on a result.
// Multiple-choice questions carry is_correct plus the canonical correct index;
// free-text questions carry the oracle's evaluation text.
type QuestionResult struct {
	QuestionIndex  int     `json:"question_index"`
	Score          float64 `json:"score"`
	IsCorrect      *bool   `json:"is_correct,omitempty"`
	SelectedAnswer *int    `json:"selected_answer,omitempty"`
	CorrectAnswer  *int    `json:"correct_answer,omitempty"`
	UserAnswer     string  `json:"user_answer,omitempty"`
	Evaluation     string  `json:"evaluation,omitempty"`
	Justification  string  `json:"justification,omitempty"`
	Suggestions    string  `json:"suggestions,omitempty"`
}

// Result is the stored outcome of one quiz submission. Created exactly once at
// submission time and never mutated afterwards, except by administrative delete.
type Result struct {
	ID              uuid.UUID        `json:"result_id"`
	TemplateID      uuid.UUID        `json:"template_id"`
	SessionID       string           `json:"session_id"`
	UserID          *uuid.UUID       `json:"user_id,omitempty"`
	Answers         []Answer         `json:"answers"`
	DetailedResults []QuestionResult `json:"detailed_results"`
	TotalScore      float64          `json:"total_score"`
	CorrectCount    int              `json:"correct_count"`
	TotalQuestions  int              `json:"total_questions"`
	CompletedAt     time.Time        `json:"completed_at"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`

	// Questions is populated at read time when a result is enriched with its
	// template's questions. Never persisted.
	Questions []Question `json:"questions,omitempty"`
}

// SubmitQuizRequest is the payload for submitting a quiz.
type SubmitQuizRequest struct {
	TemplateID string        `json:"template_id" binding:"required,uuid"`
	SessionID  string        `json:"session_id" binding:"omitempty,max=64"`
	Answers    []AnswerInput `json:"answers" binding:"required,min=1,dive"`
}

// AnswerInput is one answer as submitted by a quiz taker. QuestionIndex is a
// pointer so index 0 survives required-field binding.
type AnswerInput struct {
	QuestionIndex  *int   `json:"question_index" binding:"required,min=0"`
	SelectedAnswer *int   `json:"selected_answer" binding:"omitempty"`
	AnswerText     string `json:"answer_text" binding:"omitempty,max=20000"`
	PDFData        string `json:"pdf_data" binding:"omitempty"`
	PDFFilename    string `json:"pdf_filename" binding:"omitempty,max=255"`
}

// ToAnswer converts a bound answer input into its storage form.
func (a AnswerInput) ToAnswer() Answer {
	idx := 0
	if a.QuestionIndex != nil {
		idx = *a.QuestionIndex
	}
	return Answer{
		QuestionIndex:  idx,
		SelectedAnswer: a.SelectedAnswer,
		AnswerText:     a.AnswerText,
		PDFData:        a.PDFData,
		PDFFilename:    a.PDFFilename,
	}
}

// SubmitQuizResponse is returned after a successful submission.
type SubmitQuizResponse struct {
	ResultID        uuid.UUID        `json:"result_id"`
	SessionID       string           `json:"session_id"`
	TotalScore      float64          `json:"total_score"`
	CorrectCount    int              `json:"correct_count"`
	TotalQuestions  int              `json:"total_questions"`
	DetailedResults []QuestionResult `json:"detailed_results"`
}
