package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/nardos-mesfin/exam-grader-api/internal/service"
)

// Sentinel errors for multipart image intake.
var (
	ErrNoFiles             = errors.New("no image files provided")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

// Allowed page image MIME types.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// readImagePages validates and reads the uploaded images under the given
// form field. Both "field" and "field[]" key spellings are accepted since
// browser clients differ. Files are returned in upload order: page order
// is significant downstream.
func readImagePages(form *multipart.Form, field string, maxBytes int64) ([]service.Page, error) {
	files := form.File[field]
	if len(files) == 0 {
		files = form.File[field+"[]"]
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	pages := make([]service.Page, 0, len(files))
	for _, header := range files {
		contentType := header.Header.Get("Content-Type")
		if !allowedImageTypes[contentType] {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, contentType)
		}
		if header.Size > maxBytes {
			return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, header.Size, maxBytes)
		}

		f, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload: %w", err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read upload: %w", err)
		}

		pages = append(pages, service.Page{MimeType: contentType, Data: data})
	}
	return pages, nil
}
