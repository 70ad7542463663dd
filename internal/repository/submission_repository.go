package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nardos-mesfin/exam-grader-api/internal/model"
)

// SubmissionRepository handles exam submission and student answer data
// access. Both entities are only ever written inside the submission-storage
// transaction, so all creates are Tx variants.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

// CreateTx inserts a new exam submission within the given transaction.
// AIRawGrades is stored verbatim as JSONB for audit.
func (r *SubmissionRepository) CreateTx(ctx context.Context, tx pgx.Tx, s *model.ExamSubmission) error {
	return tx.QueryRow(ctx,
		`INSERT INTO exam_submissions (exam_id, user_id, student_name, final_score, total_possible_marks, ai_raw_grades)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		s.ExamID, s.UserID, s.StudentName, s.FinalScore, s.TotalPossibleMarks, s.AIRawGrades,
	).Scan(&s.ID, &s.CreatedAt)
}

// CreateAnswerTx inserts one student answer within the given transaction.
func (r *SubmissionRepository) CreateAnswerTx(ctx context.Context, tx pgx.Tx, a *model.StudentAnswer) error {
	return tx.QueryRow(ctx,
		`INSERT INTO student_answers (exam_submission_id, question_id, student_answer, final_score)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		a.ExamSubmissionID, a.QuestionID, a.StudentAnswer, a.FinalScore,
	).Scan(&a.ID)
}

// CountAnswers returns the number of stored answers for a submission.
// Used by operational tooling and the e2e suite.
func (r *SubmissionRepository) CountAnswers(ctx context.Context, submissionID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM student_answers WHERE exam_submission_id = $1`, submissionID,
	).Scan(&n)
	return n, err
}
