package service

import (
	"context"
	"errors"
	"testing"

	"github.com/nardos-mesfin/exam-grader-api/internal/config"
	"github.com/nardos-mesfin/exam-grader-api/internal/gemini"
	"github.com/rs/zerolog"
)

// fakeVisionClient replays a scripted response per page and records what it
// was asked.
type fakeVisionClient struct {
	responses []fakeResponse
	calls     []fakeCall
}

type fakeResponse struct {
	text string
	err  error
}

type fakeCall struct {
	prompt string
	mime   string
}

func (f *fakeVisionClient) Generate(_ context.Context, prompt, mimeType string, _ []byte, _ gemini.CallOptions) (string, error) {
	i := len(f.calls)
	f.calls = append(f.calls, fakeCall{prompt: prompt, mime: mimeType})
	if i >= len(f.responses) {
		return "", errors.New("unexpected extra call")
	}
	r := f.responses[i]
	return r.text, r.err
}

func testConfig() *config.Config {
	return &config.Config{
		GeminiAPIKey:       "test-key",
		GeminiScanModel:    "gemini-2.5-flash",
		GeminiGradingModel: "gemini-2.5-flash",
	}
}

func pagesOf(n int) []Page {
	pages := make([]Page, n)
	for i := range pages {
		pages[i] = Page{MimeType: "image/jpeg", Data: []byte{0xFF, 0xD8, byte(i)}}
	}
	return pages
}

func TestAnswerKeyScan(t *testing.T) {
	t.Run("all pages succeed, merged in page order", func(t *testing.T) {
		client := &fakeVisionClient{responses: []fakeResponse{
			{text: `{"questions":[{"answer":"C","type":"MCQ"},{"answer":"True","type":"TF"}]}`},
			{text: `{"questions":[{"answer":"photosynthesis","type":"SHORT"}]}`},
		}}
		svc := NewAnswerKeyService(client, testConfig(), zerolog.Nop())

		got, err := svc.Scan(context.Background(), pagesOf(2))
		if err != nil {
			t.Fatalf("Scan: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
		answers := []string{got[0].Answer, got[1].Answer, got[2].Answer}
		want := []string{"C", "True", "photosynthesis"}
		for i := range want {
			if answers[i] != want[i] {
				t.Errorf("answers[%d] = %q, want %q", i, answers[i], want[i])
			}
		}
	})

	t.Run("every page uses the same prompt", func(t *testing.T) {
		client := &fakeVisionClient{responses: []fakeResponse{
			{text: `{"questions":[{"answer":"A","type":"MCQ"}]}`},
			{text: `{"questions":[{"answer":"B","type":"MCQ"}]}`},
		}}
		svc := NewAnswerKeyService(client, testConfig(), zerolog.Nop())

		if _, err := svc.Scan(context.Background(), pagesOf(2)); err != nil {
			t.Fatalf("Scan: %v", err)
		}
		if client.calls[0].prompt != client.calls[1].prompt {
			t.Error("scan prompt should not vary by page")
		}
	})

	t.Run("one failed page of three is skipped", func(t *testing.T) {
		client := &fakeVisionClient{responses: []fakeResponse{
			{text: `{"questions":[{"answer":"A","type":"MCQ"}]}`},
			{err: errors.New("gemini status 500")},
			{text: `{"questions":[{"answer":"B","type":"MCQ"}]}`},
		}}
		svc := NewAnswerKeyService(client, testConfig(), zerolog.Nop())

		got, err := svc.Scan(context.Background(), pagesOf(3))
		if err != nil {
			t.Fatalf("Scan: %v", err)
		}
		if len(got) != 2 || got[0].Answer != "A" || got[1].Answer != "B" {
			t.Errorf("got %+v, want pages 1 and 3 in order", got)
		}
	})

	t.Run("unparsable page is skipped", func(t *testing.T) {
		client := &fakeVisionClient{responses: []fakeResponse{
			{text: "no JSON here"},
			{text: "```json\n{\"questions\":[{\"answer\":\"D\",\"type\":\"MCQ\"}]}\n```"},
		}}
		svc := NewAnswerKeyService(client, testConfig(), zerolog.Nop())

		got, err := svc.Scan(context.Background(), pagesOf(2))
		if err != nil {
			t.Fatalf("Scan: %v", err)
		}
		if len(got) != 1 || got[0].Answer != "D" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("page with zero questions is not an error", func(t *testing.T) {
		client := &fakeVisionClient{responses: []fakeResponse{
			{text: `{"questions":[]}`},
			{text: `{"questions":[{"answer":"A","type":"MCQ"}]}`},
		}}
		svc := NewAnswerKeyService(client, testConfig(), zerolog.Nop())

		got, err := svc.Scan(context.Background(), pagesOf(2))
		if err != nil {
			t.Fatalf("Scan: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("len = %d", len(got))
		}
	})

	t.Run("all pages failing is an aggregate error", func(t *testing.T) {
		client := &fakeVisionClient{responses: []fakeResponse{
			{err: errors.New("timeout")},
			{text: "garbage"},
			{text: `{"grades":[]}`}, // parses but has no questions list
		}}
		svc := NewAnswerKeyService(client, testConfig(), zerolog.Nop())

		if _, err := svc.Scan(context.Background(), pagesOf(3)); !errors.Is(err, ErrNoQuestionsExtracted) {
			t.Fatalf("err = %v, want ErrNoQuestionsExtracted", err)
		}
	})
}
