package attempt

import "time"

// Attempt is one completed run of a test. The id is assigned by the store
// on insert; rows are never mutated afterwards.
type Attempt struct {
	ID          int64     `json:"id"`
	TestID      string    `json:"testId"`
	CompletedAt time.Time `json:"completedAt"`
	Score       int       `json:"score"`
	MaxScore    int       `json:"maxScore"`
}

func (a Attempt) Perfect() bool { return a.Score == a.MaxScore }

// Answer is one selected option of one question (or the single nil-option
// row of an unanswered question). IsCorrect is per option, not per
// question: a question scored wrong overall can still contain rows with
// IsCorrect true.
type Answer struct {
	ID               int64   `json:"id"`
	AttemptID        int64   `json:"attemptId"`
	QuestionID       string  `json:"questionId"`
	SelectedOptionID *string `json:"selectedOptionId"`
	IsCorrect        bool    `json:"isCorrect"`
}
