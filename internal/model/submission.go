package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// UnknownStudent is the sentinel used when no student name could be
// extracted from the first page of a paper.
const UnknownStudent = "Unknown Student"

// ExamSubmission is one student's graded attempt at an exam.
// AIRawGrades is the verbatim AI-produced grade list, kept for audit and
// never validated against schema.
type ExamSubmission struct {
	ID                 uuid.UUID       `json:"id"`
	ExamID             uuid.UUID       `json:"exam_id"`
	UserID             int             `json:"user_id"`
	StudentName        string          `json:"student_name"`
	FinalScore         float64         `json:"final_score"`
	TotalPossibleMarks int             `json:"total_possible_marks"`
	AIRawGrades        json.RawMessage `json:"ai_raw_grades"`
	CreatedAt          time.Time       `json:"created_at"`
}

// StudentAnswer links a submission to one question of its exam with the
// transcribed answer text and the accepted score for that item.
type StudentAnswer struct {
	ID               uuid.UUID `json:"id"`
	ExamSubmissionID uuid.UUID `json:"exam_submission_id"`
	QuestionID       uuid.UUID `json:"question_id"`
	StudentAnswer    string    `json:"student_answer"`
	FinalScore       float64   `json:"final_score"`
}

// Grade is one per-question result in a grading response. In consolidated
// output QuestionNumber is assigned sequentially across pages, regardless
// of anything the AI echoed.
type Grade struct {
	QuestionNumber int     `json:"question_number"`
	StudentAnswer  string  `json:"student_answer"`
	Score          float64 `json:"score"`
}

// AIResults is the consolidated outcome of processing one student paper.
type AIResults struct {
	StudentName string  `json:"student_name"`
	Grades      []Grade `json:"grades"`
}

// ScannedQuestion is one extracted answer-key entry from the scan flow.
type ScannedQuestion struct {
	Answer string `json:"answer"`
	Type   string `json:"type"`
}

// StoreSubmissionRequest is the payload for persisting a reviewed
// submission. Grades arrive pre-numbered from the review step.
type StoreSubmissionRequest struct {
	ExamID             uuid.UUID    `json:"exam_id" binding:"required"`
	StudentName        string       `json:"student_name" binding:"required,max=255"`
	FinalScore         float64      `json:"final_score" binding:"gte=0"`
	TotalPossibleMarks int          `json:"total_possible_marks" binding:"gte=0"`
	Grades             []GradeInput `json:"grades" binding:"required,min=1,dive"`
}

// GradeInput is one reviewed grade in a StoreSubmissionRequest.
type GradeInput struct {
	QuestionNumber int     `json:"question_number" binding:"required,min=1"`
	StudentAnswer  string  `json:"student_answer" binding:"required"`
	Score          float64 `json:"score" binding:"gte=0"`
}
