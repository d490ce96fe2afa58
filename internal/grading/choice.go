package grading

// ScoreChoice compares a submitted option index against the designated correct
// index. No bounds check beyond equality: an out-of-range selection is simply
// never equal and scores as incorrect, it is not rejected.
func ScoreChoice(correctIndex, selectedIndex int) bool {
	return selectedIndex == correctIndex
}

// AggregateScore computes the multiple-choice percentage score. Zero questions
// yields zero rather than dividing by zero.
func AggregateScore(correctCount, totalQuestions int) float64 {
	if totalQuestions == 0 {
		return 0
	}
	return 100 * float64(correctCount) / float64(totalQuestions)
}
