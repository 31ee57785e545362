package model

import (
	"fmt"
	"strings"
	"time"
)

// Question is one quiz item. Correct holds either the answer text or a
// "선택지 N" reference to the N-th option.
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  string   `json:"correct"`
}

// IsCorrect reports whether answer matches the expected answer.
func (q Question) IsCorrect(answer string) bool {
	answer = strings.TrimSpace(answer)
	if answer == q.Correct {
		return true
	}
	var n int
	if _, err := fmt.Sscanf(q.Correct, "선택지 %d", &n); err == nil && n >= 1 && n <= len(q.Options) {
		return answer == strings.TrimSpace(q.Options[n-1])
	}
	return false
}

// Quiz is a set of questions for a club.
type Quiz struct {
	ID              int64      `json:"id" csv:"id,omitempty"`
	Title           string     `json:"title" csv:"title"`
	Description     string     `json:"description" csv:"description"`
	Club            string     `json:"club" csv:"club"`
	Creator         string     `json:"creator" csv:"creator"`
	Questions       []Question `json:"questions" csv:"questions"`
	TimeLimit       int        `json:"time_limit" csv:"time_limit"`
	AttemptsAllowed int        `json:"attempts_allowed" csv:"attempts_allowed"`
	Status          string     `json:"status" csv:"status"`
	CreatedDate     time.Time  `json:"created_date" csv:"created_date"`
}

// QuizResponse is one attempt at a quiz.
type QuizResponse struct {
	ID             int64     `json:"id" csv:"id,omitempty"`
	QuizID         int64     `json:"quiz_id" csv:"quiz_id"`
	Username       string    `json:"username" csv:"username"`
	Answers        []string  `json:"answers" csv:"answers"`
	Score          int       `json:"score" csv:"score"`
	TotalQuestions int       `json:"total_questions" csv:"total_questions"`
	CompletedDate  time.Time `json:"completed_date" csv:"completed_date"`
	TimeTaken      float64   `json:"time_taken" csv:"time_taken"`
}
