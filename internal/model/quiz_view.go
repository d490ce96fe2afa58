package model

import "github.com/google/uuid"

const (
	// DefaultTimeLimit is the quiz time limit in seconds when the template
	// does not specify one.
	DefaultTimeLimit = 3600

	// DefaultInstructions is shown to quiz takers when the template carries
	// no custom instructions.
	DefaultInstructions = "Answer all questions to the best of your ability."
)

// QuizView is the pre-submission read of a template. It must never expose a
// correct-option index or reference answer, regardless of scoring mode.
type QuizView struct {
	TemplateID   uuid.UUID      `json:"template_id"`
	Title        string         `json:"title"`
	Subject      string         `json:"subject"`
	Course       string         `json:"course"`
	Questions    []QuizQuestion `json:"questions"`
	TimeLimit    int            `json:"time_limit"`
	Instructions string         `json:"instructions"`
}

// QuizQuestion is a question stripped for quiz taking: text plus options for
// multiple choice, text only for free-text.
type QuizQuestion struct {
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options,omitempty"`
}

// BuildQuizView produces the concealed quiz payload for a template.
func BuildQuizView(t *Template) QuizView {
	questions := make([]QuizQuestion, 0, len(t.Questions))
	for _, q := range t.Questions {
		questions = append(questions, QuizQuestion{
			QuestionText: q.QuestionText,
			Options:      q.Options,
		})
	}
	return QuizView{
		TemplateID:   t.ID,
		Title:        t.Title,
		Subject:      t.Subject,
		Course:       t.Course,
		Questions:    questions,
		TimeLimit:    DefaultTimeLimit,
		Instructions: DefaultInstructions,
	}
}
