package service

import (
	"context"

	"github.com/nardos-mesfin/exam-grader-api/internal/config"
	"github.com/nardos-mesfin/exam-grader-api/internal/gemini"
	"github.com/nardos-mesfin/exam-grader-api/internal/model"
	"github.com/rs/zerolog"
)

// GradingService processes the pages of one student paper against an
// exam's answer key. The first page carries the grading+name prompt (the
// only call with answer key context); later pages are transcribed with the
// OCR-only prompt and always score zero.
type GradingService struct {
	client VisionClient
	cfg    *config.Config
	log    zerolog.Logger
}

// NewGradingService creates a new GradingService.
func NewGradingService(client VisionClient, cfg *config.Config, log zerolog.Logger) *GradingService {
	return &GradingService{
		client: client,
		cfg:    cfg,
		log:    log.With().Str("component", "grading_service").Logger(),
	}
}

// Process grades a paper page by page and consolidates the results.
// Every accepted grade is assigned the next sequential question number,
// starting at 1, regardless of page boundaries and regardless of any
// number the AI echoed back. The student's name comes from the first page
// only; the sentinel default stands when extraction fails. A failed page
// contributes nothing; an entirely empty result is still a valid result.
func (s *GradingService) Process(ctx context.Context, questions []model.Question, pages []Page) *model.AIResults {
	opt := gemini.CallOptions{
		Model:   s.cfg.GeminiGradingModel,
		Timeout: s.cfg.GeminiGradingTimeout,
	}

	results := &model.AIResults{
		StudentName: model.UnknownStudent,
		Grades:      []model.Grade{},
	}
	questionCounter := 1

	for i, page := range pages {
		isFirstPage := i == 0

		prompt := ocrOnlyPrompt
		if isFirstPage {
			prompt = gradingPrompt(questions)
		}

		text, err := s.client.Generate(ctx, prompt, page.MimeType, page.Data, opt)
		if err != nil {
			s.log.Warn().Err(err).Int("page", i+1).Msg("Page grading failed, skipping")
			continue
		}

		obj, ok := gemini.DecodeObject(text)
		if !ok {
			s.log.Warn().Int("page", i+1).Msg("Unparsable AI response, skipping page")
			continue
		}

		if isFirstPage {
			results.StudentName = gemini.StringField(obj, "student_name", model.UnknownStudent)
		}

		for _, item := range gemini.ListField(obj, "grades") {
			g, ok := item.(map[string]any)
			if !ok {
				continue
			}
			results.Grades = append(results.Grades, model.Grade{
				QuestionNumber: questionCounter,
				StudentAnswer:  gemini.StringField(g, "student_answer", "N/A"),
				Score:          gemini.NumberField(g, "score"),
			})
			questionCounter++
		}
	}

	return results
}
