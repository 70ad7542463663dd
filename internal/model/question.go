package model

import (
	"github.com/google/uuid"
)

// Question belongs to exactly one Exam. question_number is 1-based, unique
// within the exam, and defines document order.
type Question struct {
	ID             uuid.UUID `json:"id"`
	ExamID         uuid.UUID `json:"exam_id"`
	QuestionNumber int       `json:"question_number"`
	QuestionType   string    `json:"question_type"`
	CorrectAnswer  string    `json:"correct_answer"`
	Marks          int       `json:"marks"`
}

// Question type tags as produced by the scan prompt. Free-form at the
// storage layer; nothing beyond string equality is enforced.
const (
	QuestionTypeMCQ   = "MCQ"
	QuestionTypeTF    = "TF"
	QuestionTypeShort = "SHORT"
)
