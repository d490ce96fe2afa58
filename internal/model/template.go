package model

import (
	"time"

	"github.com/google/uuid"
)

// Template represents a stored quiz definition. Questions are embedded and
// ordered; they are not separately addressable.
type Template struct {
	ID        uuid.UUID  `json:"template_id"`
	Title     string     `json:"title"`
	Subject   string     `json:"subject"`
	Course    string     `json:"course"`
	Questions []Question `json:"questions"`
	IsActive  bool       `json:"is_active"`
	CreatedBy *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Question is a single embedded quiz question. Multiple-choice questions carry
// Options and a zero-based CorrectAnswer index; free-text questions carry an
// ExampleAnswer used as the grading reference.
type Question struct {
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer *int     `json:"correct_answer,omitempty"`
	ExampleAnswer string   `json:"example_answer,omitempty"`
}

// IsChoice reports whether the question is scored by option comparison.
func (q Question) IsChoice() bool {
	return len(q.Options) > 0
}

// CreateTemplateRequest is the payload for creating a new template.
type CreateTemplateRequest struct {
	Title     string          `json:"title" binding:"required,min=1,max=255"`
	Subject   string          `json:"subject" binding:"required,min=1,max=100"`
	Course    string          `json:"course" binding:"required,min=1,max=100"`
	Questions []QuestionInput `json:"questions" binding:"required,min=1,dive"`
}

// QuestionInput is a question as submitted by a template author.
type QuestionInput struct {
	QuestionText  string   `json:"question_text" binding:"required,min=1,max=2000"`
	Options       []string `json:"options" binding:"omitempty,min=2,dive,min=1"`
	CorrectAnswer *int     `json:"correct_answer" binding:"omitempty,min=0"`
	ExampleAnswer string   `json:"example_answer" binding:"omitempty,max=10000"`
}
