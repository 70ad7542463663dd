package service

import (
	"context"
	"errors"

	"github.com/nardos-mesfin/exam-grader-api/internal/config"
	"github.com/nardos-mesfin/exam-grader-api/internal/gemini"
	"github.com/nardos-mesfin/exam-grader-api/internal/model"
	"github.com/rs/zerolog"
)

// ErrNoQuestionsExtracted is returned when no page of an answer key yielded
// a single question.
var ErrNoQuestionsExtracted = errors.New("could not extract any questions from the provided images")

// VisionClient is the slice of the Gemini client the pipeline services
// need. Tests substitute a fake.
type VisionClient interface {
	Generate(ctx context.Context, prompt, mimeType string, image []byte, opt gemini.CallOptions) (string, error)
}

// Page is one uploaded image of a multi-page document.
type Page struct {
	MimeType string
	Data     []byte
}

// AnswerKeyService turns the pages of a scanned answer key into one ordered
// question list. Pages are processed strictly sequentially; a failed page
// contributes nothing and processing continues.
type AnswerKeyService struct {
	client VisionClient
	cfg    *config.Config
	log    zerolog.Logger
}

// NewAnswerKeyService creates a new AnswerKeyService.
func NewAnswerKeyService(client VisionClient, cfg *config.Config, log zerolog.Logger) *AnswerKeyService {
	return &AnswerKeyService{
		client: client,
		cfg:    cfg,
		log:    log.With().Str("component", "answer_key_service").Logger(),
	}
}

// Scan extracts questions from each page and merges them in page order,
// then intra-page order. Only zero questions across ALL pages is an error;
// individual empty or failed pages are not.
func (s *AnswerKeyService) Scan(ctx context.Context, pages []Page) ([]model.ScannedQuestion, error) {
	opt := gemini.CallOptions{
		Model:   s.cfg.GeminiScanModel,
		Timeout: s.cfg.GeminiScanTimeout,
	}

	var consolidated []model.ScannedQuestion

	for i, page := range pages {
		text, err := s.client.Generate(ctx, scanPrompt, page.MimeType, page.Data, opt)
		if err != nil {
			s.log.Warn().Err(err).Int("page", i+1).Msg("Page extraction failed, skipping")
			continue
		}

		obj, ok := gemini.DecodeObject(text)
		if !ok {
			s.log.Warn().Int("page", i+1).Msg("Unparsable AI response, skipping page")
			continue
		}

		for _, item := range gemini.ListField(obj, "questions") {
			q, ok := item.(map[string]any)
			if !ok {
				continue
			}
			consolidated = append(consolidated, model.ScannedQuestion{
				Answer: gemini.StringField(q, "answer", ""),
				Type:   gemini.StringField(q, "type", model.QuestionTypeShort),
			})
		}
	}

	if len(consolidated) == 0 {
		return nil, ErrNoQuestionsExtracted
	}
	return consolidated, nil
}
