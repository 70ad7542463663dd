package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func candidateBody(text string) string {
	b, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	})
	return string(b)
}

func TestClientGenerate(t *testing.T) {
	image := []byte{0xFF, 0xD8, 0x01, 0x02}
	opt := CallOptions{Model: "gemini-2.5-flash", Timeout: 5 * time.Second}

	t.Run("success", func(t *testing.T) {
		var gotPath, gotKey string
		var gotBody generateRequest

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.URL.Query().Get("key")
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Fatalf("decode request: %v", err)
			}
			w.Write([]byte(candidateBody(`{"questions":[]}`)))
		}))
		defer srv.Close()

		c := NewWithBaseURL("test-key", srv.URL, zerolog.Nop())
		text, err := c.Generate(context.Background(), "read this page", "image/jpeg", image, opt)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if text != `{"questions":[]}` {
			t.Errorf("text = %q", text)
		}

		if !strings.HasSuffix(gotPath, "/models/gemini-2.5-flash:generateContent") {
			t.Errorf("path = %q", gotPath)
		}
		if gotKey != "test-key" {
			t.Errorf("key = %q", gotKey)
		}
		parts := gotBody.Contents[0].Parts
		if len(parts) != 2 || parts[0].Text != "read this page" {
			t.Fatalf("unexpected parts: %+v", parts)
		}
		if parts[1].InlineData.MimeType != "image/jpeg" {
			t.Errorf("mime = %q", parts[1].InlineData.MimeType)
		}
		if parts[1].InlineData.Data != base64.StdEncoding.EncodeToString(image) {
			t.Error("image bytes not base64-encoded verbatim")
		}
		if gotBody.GenerationConfig.ResponseMimeType != "application/json" {
			t.Errorf("response_mime_type = %q", gotBody.GenerationConfig.ResponseMimeType)
		}
	})

	t.Run("non-success status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		c := NewWithBaseURL("test-key", srv.URL, zerolog.Nop())
		if _, err := c.Generate(context.Background(), "p", "image/png", image, opt); err == nil {
			t.Fatal("expected error on 429")
		}
	})

	t.Run("missing candidate path is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates":[]}`))
		}))
		defer srv.Close()

		c := NewWithBaseURL("test-key", srv.URL, zerolog.Nop())
		if _, err := c.Generate(context.Background(), "p", "image/png", image, opt); err == nil {
			t.Fatal("expected error on empty candidates")
		}
	})

	t.Run("undecodable envelope is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>gateway error</html>"))
		}))
		defer srv.Close()

		c := NewWithBaseURL("test-key", srv.URL, zerolog.Nop())
		if _, err := c.Generate(context.Background(), "p", "image/png", image, opt); err == nil {
			t.Fatal("expected error on non-JSON body")
		}
	})

	t.Run("empty key fails before any network call", func(t *testing.T) {
		c := NewWithBaseURL("", "http://127.0.0.1:0", zerolog.Nop())
		if _, err := c.Generate(context.Background(), "p", "image/png", image, opt); err != ErrNoAPIKey {
			t.Fatalf("err = %v, want ErrNoAPIKey", err)
		}
	})
}
