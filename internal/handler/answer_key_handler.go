package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nardos-mesfin/exam-grader-api/internal/config"
	"github.com/nardos-mesfin/exam-grader-api/internal/response"
	"github.com/nardos-mesfin/exam-grader-api/internal/service"
)

// AnswerKeyHandler handles answer key scanning.
type AnswerKeyHandler struct {
	scanService *service.AnswerKeyService
	cfg         *config.Config
}

// NewAnswerKeyHandler creates a new AnswerKeyHandler.
func NewAnswerKeyHandler(scanService *service.AnswerKeyService, cfg *config.Config) *AnswerKeyHandler {
	return &AnswerKeyHandler{scanService: scanService, cfg: cfg}
}

// Scan godoc
// POST /api/v1/answer-key/scan
// Scans one or more answer key images and returns the consolidated
// question list.
func (h *AnswerKeyHandler) Scan(c *gin.Context) {
	// The missing-credential case fails before any upload or network work.
	if h.cfg.GeminiAPIKey == "" {
		response.Fail(c, http.StatusInternalServerError, response.ErrAINotConfigured)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	pages, err := readImagePages(form, "images", h.cfg.MaxScanUploadBytes)
	if err != nil {
		failUpload(c, err)
		return
	}

	questions, err := h.scanService.Scan(c.Request.Context(), pages)
	if err != nil {
		if errors.Is(err, service.ErrNoQuestionsExtracted) {
			response.Fail(c, http.StatusInternalServerError, response.ErrAIExtractionFailed)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// failUpload maps image intake errors to response codes.
func failUpload(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNoFiles):
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
	case errors.Is(err, ErrUnsupportedFileType):
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
	case errors.Is(err, ErrFileTooLarge):
		response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
