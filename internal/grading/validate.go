package grading

import (
	"github.com/msc-labs/evaluate-backend/internal/model"
)

// IncompleteError reports a submission whose distinct question indices do not
// cover the template's question range exactly. Duplicates, omissions and
// out-of-range indices all collapse to this one error.
type IncompleteError struct {
	Expected int
	Answered int
}

func (e *IncompleteError) Error() string {
	return "all questions must be answered"
}

// ValidateCoverage checks that the question indices in answers are exactly
// {0, ..., totalQuestions-1}, each answered once. It runs before any scoring
// so a rejected submission never leaves partial state behind. Duplicates are
// rejected outright: scoring an index twice would inflate the aggregate past
// the 0-100 range.
func ValidateCoverage(totalQuestions int, answers []model.Answer) error {
	distinct := make(map[int]struct{}, len(answers))
	for _, a := range answers {
		distinct[a.QuestionIndex] = struct{}{}
	}

	covered := len(distinct) == totalQuestions && len(answers) == totalQuestions
	if covered {
		for idx := range distinct {
			if idx < 0 || idx >= totalQuestions {
				covered = false
				break
			}
		}
	}

	if !covered {
		return &IncompleteError{Expected: totalQuestions, Answered: len(distinct)}
	}
	return nil
}
