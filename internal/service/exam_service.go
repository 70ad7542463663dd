package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nardos-mesfin/exam-grader-api/internal/model"
	"github.com/nardos-mesfin/exam-grader-api/internal/repository"
	"github.com/nardos-mesfin/exam-grader-api/internal/response"
	"github.com/rs/zerolog"
)

// ErrExamNotFound is returned when a referenced exam does not exist.
var ErrExamNotFound = errors.New("exam not found")

// ExamService handles exam creation and lookup. Creation writes the exam
// and all of its questions in one transaction: no partial exam is ever
// visible.
type ExamService struct {
	pool         *pgxpool.Pool
	examRepo     *repository.ExamRepository
	questionRepo *repository.QuestionRepository
	log          zerolog.Logger
}

// NewExamService creates a new ExamService.
func NewExamService(
	pool *pgxpool.Pool,
	examRepo *repository.ExamRepository,
	questionRepo *repository.QuestionRepository,
	log zerolog.Logger,
) *ExamService {
	return &ExamService{
		pool:         pool,
		examRepo:     examRepo,
		questionRepo: questionRepo,
		log:          log.With().Str("component", "exam_service").Logger(),
	}
}

// Create persists an exam and one question per QuestionSpec, with question_number
// assigned from 1-based input position. Any failure rolls back everything.
func (s *ExamService) Create(ctx context.Context, userID int, req *model.CreateExamRequest) (*model.Exam, error) {
	exam := &model.Exam{
		UserID:     userID,
		Title:      req.Title,
		TotalMarks: req.TotalMarks,
	}
	if req.Subject != "" {
		exam.Subject = &req.Subject
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.examRepo.CreateTx(ctx, tx, exam); err != nil {
		return nil, fmt.Errorf("create exam: %w", err)
	}

	exam.Questions = make([]model.Question, 0, len(req.Questions))
	for i, spec := range req.Questions {
		q := model.Question{
			ExamID:         exam.ID,
			QuestionNumber: i + 1,
			QuestionType:   spec.Type,
			CorrectAnswer:  spec.Answer,
			Marks:          spec.Marks,
		}
		if err := s.questionRepo.CreateTx(ctx, tx, &q); err != nil {
			return nil, fmt.Errorf("create question %d: %w", i+1, err)
		}
		exam.Questions = append(exam.Questions, q)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	s.log.Info().
		Str("exam_id", exam.ID.String()).
		Int("questions", len(exam.Questions)).
		Msg("Exam created")

	return exam, nil
}

// GetWithQuestions loads an exam and its questions in document order.
func (s *ExamService) GetWithQuestions(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	exam, err := s.examRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("get exam: %w", err)
	}

	questions, err := s.questionRepo.ListByExam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	exam.Questions = questions
	return exam, nil
}

// ListByUser retrieves a grader's exams with pagination.
func (s *ExamService) ListByUser(ctx context.Context, userID, page, perPage int) ([]model.Exam, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	exams, total, err := s.examRepo.ListByUserPaginated(ctx, userID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if exams == nil {
		exams = []model.Exam{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return exams, pagination, nil
}
