package model

import "time"

// Status values shared by assignments, votes and quizzes.
const (
	StatusActive   = "활성"
	StatusInactive = "비활성"
	StatusClosed   = "종료"
)

// Assignment is homework set for a club.
type Assignment struct {
	ID          int64     `json:"id" csv:"id,omitempty"`
	Title       string    `json:"title" csv:"title"`
	Description string    `json:"description" csv:"description"`
	Club        string    `json:"club" csv:"club"`
	Creator     string    `json:"creator" csv:"creator"`
	DueDate     time.Time `json:"due_date" csv:"due_date"`
	Status      string    `json:"status" csv:"status"`
	CreatedDate time.Time `json:"created_date" csv:"created_date"`
}

// Submission is a user's answer to an assignment.
type Submission struct {
	ID            int64     `json:"id" csv:"id,omitempty"`
	AssignmentID  int64     `json:"assignment_id" csv:"assignment_id"`
	Username      string    `json:"username" csv:"username"`
	Content       string    `json:"content" csv:"content"`
	FilePath      string    `json:"file_path,omitempty" csv:"file_path"`
	SubmittedDate time.Time `json:"submitted_date" csv:"submitted_date"`
	Grade         string    `json:"grade,omitempty" csv:"grade"`
	Feedback      string    `json:"feedback,omitempty" csv:"feedback"`
}
