package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nardos-mesfin/exam-grader-api/internal/model"
	"github.com/nardos-mesfin/exam-grader-api/internal/repository"
	"github.com/rs/zerolog"
)

// SubmissionService persists reviewed submissions. The submission record
// and all of its student answers are written in one transaction.
type SubmissionService struct {
	pool           *pgxpool.Pool
	submissionRepo *repository.SubmissionRepository
	examService    *ExamService
	log            zerolog.Logger
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(
	pool *pgxpool.Pool,
	submissionRepo *repository.SubmissionRepository,
	examService *ExamService,
	log zerolog.Logger,
) *SubmissionService {
	return &SubmissionService{
		pool:           pool,
		submissionRepo: submissionRepo,
		examService:    examService,
		log:            log.With().Str("component", "submission_service").Logger(),
	}
}

// Store creates the submission record (with the raw grade list embedded
// verbatim for audit) and one StudentAnswer per grade whose
// question_number matches a question of the exam. Grades with no matching
// question are skipped, not stored and not an error. Any failure rolls
// back the entire operation.
//
// total_possible_marks is caller-supplied and stored as-is, never
// recomputed from the exam.
func (s *SubmissionService) Store(ctx context.Context, userID int, req *model.StoreSubmissionRequest) (uuid.UUID, error) {
	exam, err := s.examService.GetWithQuestions(ctx, req.ExamID)
	if err != nil {
		return uuid.Nil, err
	}

	byNumber := make(map[int]model.Question, len(exam.Questions))
	for _, q := range exam.Questions {
		byNumber[q.QuestionNumber] = q
	}

	rawGrades, err := json.Marshal(req.Grades)
	if err != nil {
		return uuid.Nil, fmt.Errorf("marshal raw grades: %w", err)
	}

	submission := &model.ExamSubmission{
		ExamID:             req.ExamID,
		UserID:             userID,
		StudentName:        req.StudentName,
		FinalScore:         req.FinalScore,
		TotalPossibleMarks: req.TotalPossibleMarks,
		AIRawGrades:        rawGrades,
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.submissionRepo.CreateTx(ctx, tx, submission); err != nil {
		return uuid.Nil, fmt.Errorf("create submission: %w", err)
	}

	for _, grade := range req.Grades {
		question, ok := byNumber[grade.QuestionNumber]
		if !ok {
			// Unmatched grades are dropped, with a trace for operators.
			s.log.Warn().
				Str("exam_id", req.ExamID.String()).
				Int("question_number", grade.QuestionNumber).
				Msg("Grade references unknown question, skipping")
			continue
		}

		answer := &model.StudentAnswer{
			ExamSubmissionID: submission.ID,
			QuestionID:       question.ID,
			StudentAnswer:    grade.StudentAnswer,
			FinalScore:       grade.Score,
		}
		if err := s.submissionRepo.CreateAnswerTx(ctx, tx, answer); err != nil {
			return uuid.Nil, fmt.Errorf("create student answer: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("commit: %w", err)
	}

	s.log.Info().
		Str("submission_id", submission.ID.String()).
		Str("exam_id", req.ExamID.String()).
		Str("student", req.StudentName).
		Msg("Submission stored")

	return submission.ID, nil
}
