package grading

import (
	"github.com/msc-labs/evaluate-backend/internal/model"
)

// Summary is the merged outcome of one submission: per-question detail plus
// aggregate counters. TotalScore is on a 0-100 scale for both scoring modes.
type Summary struct {
	Details        []model.QuestionResult
	TotalScore     float64
	CorrectCount   int
	TotalQuestions int
}

// ChoiceDetail builds the per-question record for a multiple-choice answer.
// Exposing the correct index here is deliberate: concealment only applies to
// the pre-submission quiz view, not to stored results.
func ChoiceDetail(q model.Question, a model.Answer) model.QuestionResult {
	selected := -1
	if a.SelectedAnswer != nil {
		selected = *a.SelectedAnswer
	}
	correct := -1
	if q.CorrectAnswer != nil {
		correct = *q.CorrectAnswer
	}

	isCorrect := ScoreChoice(correct, selected)
	score := 0.0
	if isCorrect {
		score = 100
	}

	return model.QuestionResult{
		QuestionIndex:  a.QuestionIndex,
		Score:          score,
		IsCorrect:      &isCorrect,
		SelectedAnswer: a.SelectedAnswer,
		CorrectAnswer:  q.CorrectAnswer,
	}
}

// OracleDetail builds the per-question record for a free-text answer. When the
// answer came as an uploaded document with no text, a filename placeholder
// stands in for the answer text.
func OracleDetail(a model.Answer, ev Evaluation) model.QuestionResult {
	userAnswer := a.AnswerText
	if userAnswer == "" {
		name := a.PDFFilename
		if name == "" {
			name = "uploaded"
		}
		userAnswer = "PDF: " + name
	}

	return model.QuestionResult{
		QuestionIndex: a.QuestionIndex,
		Score:         NumericScore(ev.Score),
		UserAnswer:    userAnswer,
		Evaluation:    ev.Evaluation,
		Justification: ev.Justification,
		Suggestions:   ev.Suggestions,
	}
}

// Assemble merges per-question records into a submission summary. The
// aggregate score is the mean of per-question scores, which for pure
// multiple-choice submissions equals 100 * correct / total.
func Assemble(details []model.QuestionResult, totalQuestions int) Summary {
	var sum float64
	correct := 0
	for _, d := range details {
		sum += d.Score
		if d.IsCorrect != nil && *d.IsCorrect {
			correct++
		}
	}

	total := 0.0
	if totalQuestions > 0 {
		total = sum / float64(totalQuestions)
	}

	return Summary{
		Details:        details,
		TotalScore:     total,
		CorrectCount:   correct,
		TotalQuestions: totalQuestions,
	}
}
