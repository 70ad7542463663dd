package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nardos-mesfin/exam-grader-api/internal/model"
)

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListByExam retrieves all questions for an exam, ordered by question_number.
func (r *QuestionRepository) ListByExam(ctx context.Context, examID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, exam_id, question_number, question_type, correct_answer, marks
		 FROM questions WHERE exam_id = $1
		 ORDER BY question_number`, examID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.ExamID, &q.QuestionNumber, &q.QuestionType, &q.CorrectAnswer, &q.Marks); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// CreateTx inserts a new question within the given transaction.
func (r *QuestionRepository) CreateTx(ctx context.Context, tx pgx.Tx, q *model.Question) error {
	return tx.QueryRow(ctx,
		`INSERT INTO questions (exam_id, question_number, question_type, correct_answer, marks)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		q.ExamID, q.QuestionNumber, q.QuestionType, q.CorrectAnswer, q.Marks,
	).Scan(&q.ID)
}
