package grading

import (
	"errors"
	"testing"

	"github.com/msc-labs/evaluate-backend/internal/model"
)

func answersFor(indices ...int) []model.Answer {
	answers := make([]model.Answer, 0, len(indices))
	for _, idx := range indices {
		answers = append(answers, model.Answer{QuestionIndex: idx})
	}
	return answers
}

func TestValidateCoverage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		indices  []int
		wantErr  bool
		expected int
		answered int
	}{
		{"exact coverage", 3, []int{0, 1, 2}, false, 0, 0},
		{"out of order", 3, []int{2, 0, 1}, false, 0, 0},
		{"missing one", 3, []int{0, 1}, true, 3, 2},
		{"empty submission", 2, nil, true, 2, 0},
		{"duplicate does not cover", 2, []int{0, 0}, true, 2, 1},
		{"padded duplicate with full coverage", 2, []int{0, 1, 1}, true, 2, 2},
		{"duplicated full set", 2, []int{0, 1, 0, 1}, true, 2, 2},
		{"out of range index", 2, []int{0, 2}, true, 2, 2},
		{"negative index", 2, []int{-1, 0}, true, 2, 2},
		{"extra answer", 2, []int{0, 1, 2}, true, 2, 3},
		{"zero questions zero answers", 0, nil, false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoverage(tt.total, answersFor(tt.indices...))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("ValidateCoverage() = %v, want nil", err)
				}
				return
			}

			var incomplete *IncompleteError
			if !errors.As(err, &incomplete) {
				t.Fatalf("ValidateCoverage() = %v, want *IncompleteError", err)
			}
			if incomplete.Expected != tt.expected {
				t.Errorf("Expected = %d, want %d", incomplete.Expected, tt.expected)
			}
			if incomplete.Answered != tt.answered {
				t.Errorf("Answered = %d, want %d", incomplete.Answered, tt.answered)
			}
		})
	}
}
