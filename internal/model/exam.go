package model

import (
	"time"

	"github.com/google/uuid"
)

// Exam is an answer key owned by a grader: an ordered set of questions with
// correct answers and marks. Exams are create-once; no update or delete
// operations are exposed.
type Exam struct {
	ID         uuid.UUID  `json:"id"`
	UserID     int        `json:"user_id"`
	Title      string     `json:"title"`
	Subject    *string    `json:"subject,omitempty"`
	TotalMarks int        `json:"total_marks"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Questions  []Question `json:"questions,omitempty"`
}

// CreateExamRequest is the payload for creating an exam with its questions.
// Question numbers are assigned from array position (1-based), not supplied
// by the client.
type CreateExamRequest struct {
	Title      string         `json:"title" binding:"required,max=255"`
	Subject    string         `json:"subject" binding:"omitempty,max=255"`
	TotalMarks int            `json:"total_marks" binding:"required,min=1"`
	Questions  []QuestionSpec `json:"questions" binding:"required,min=1,dive"`
}

// QuestionSpec is one question in a CreateExamRequest.
type QuestionSpec struct {
	Answer string `json:"answer" binding:"required"`
	Type   string `json:"type" binding:"required"`
	Marks  int    `json:"marks" binding:"required,min=1"`
}
