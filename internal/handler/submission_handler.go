package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nardos-mesfin/exam-grader-api/internal/config"
	"github.com/nardos-mesfin/exam-grader-api/internal/middleware"
	"github.com/nardos-mesfin/exam-grader-api/internal/model"
	"github.com/nardos-mesfin/exam-grader-api/internal/response"
	"github.com/nardos-mesfin/exam-grader-api/internal/service"
	"github.com/nardos-mesfin/exam-grader-api/internal/validator"
)

// SubmissionHandler handles grading of student papers and persistence of
// reviewed submissions.
type SubmissionHandler struct {
	gradingService    *service.GradingService
	examService       *service.ExamService
	submissionService *service.SubmissionService
	cfg               *config.Config
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(
	gradingService *service.GradingService,
	examService *service.ExamService,
	submissionService *service.SubmissionService,
	cfg *config.Config,
) *SubmissionHandler {
	return &SubmissionHandler{
		gradingService:    gradingService,
		examService:       examService,
		submissionService: submissionService,
		cfg:               cfg,
	}
}

// Process godoc
// POST /api/v1/exam-submissions/process
// Runs the AI grading pipeline over the uploaded pages of one student
// paper. Nothing is persisted; the caller reviews the results before
// storing them.
func (h *SubmissionHandler) Process(c *gin.Context) {
	// A missing credential and a missing exam are both caller-visible as
	// a 400, matching the review flow's contract.
	if h.cfg.GeminiAPIKey == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrExamNotFound)
		return
	}

	examID, err := uuid.Parse(c.PostForm("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	exam, err := h.examService.GetWithQuestions(c.Request.Context(), examID)
	if err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			response.Fail(c, http.StatusBadRequest, response.ErrExamNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	pages, err := readImagePages(form, "pages", h.cfg.MaxPageUploadBytes)
	if err != nil {
		failUpload(c, err)
		return
	}

	results := h.gradingService.Process(c.Request.Context(), exam.Questions, pages)

	response.Success(c, http.StatusOK, gin.H{
		"ai_results": results,
		"answer_key": exam.Questions,
	})
}

// Store godoc
// POST /api/v1/exam-submissions
// Persists a reviewed submission with its per-question scores.
func (h *SubmissionHandler) Store(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.StoreSubmissionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	submissionID, err := h.submissionService.Store(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrExamNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message":       "Final grade saved successfully!",
		"submission_id": submissionID,
	})
}
