package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nardos-mesfin/exam-grader-api/internal/model"
)

// ExamRepository handles exam data access. Multi-row creates go through the
// Tx variants so the owning service can keep the whole operation
// all-or-nothing.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

// GetByID retrieves an exam by its UUID.
func (r *ExamRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	e := &model.Exam{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, title, subject, total_marks, created_at, updated_at
		 FROM exams WHERE id = $1`, id,
	).Scan(&e.ID, &e.UserID, &e.Title, &e.Subject, &e.TotalMarks, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListByUserPaginated retrieves a grader's exams, newest first.
func (r *ExamRepository) ListByUserPaginated(ctx context.Context, userID, limit, offset int) ([]model.Exam, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM exams WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, title, subject, total_marks, created_at, updated_at
		 FROM exams WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		var e model.Exam
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Subject, &e.TotalMarks, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		exams = append(exams, e)
	}
	return exams, total, rows.Err()
}

// CreateTx inserts a new exam within the given transaction.
func (r *ExamRepository) CreateTx(ctx context.Context, tx pgx.Tx, e *model.Exam) error {
	return tx.QueryRow(ctx,
		`INSERT INTO exams (user_id, title, subject, total_marks)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		e.UserID, e.Title, e.Subject, e.TotalMarks,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}
