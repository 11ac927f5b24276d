package document

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/kailas-cloud/lingodesk/internal/domain"
	"github.com/kailas-cloud/lingodesk/internal/domain/language"
)

// MaxFileSize is the largest file accepted for upload.
const MaxFileSize = 10 << 20 // 10MiB

// DefaultPreviewRunes is the content preview length used by listings.
const DefaultPreviewRunes = 150

// ID is an opaque backend-assigned document identifier.
type ID string

// ParseID validates an identifier taken from user input or a URL.
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", domain.NewValidationError("doc_id", "document ID is required")
	}
	if strings.ContainsAny(s, "/?#") {
		return "", domain.NewValidationError("doc_id", fmt.Sprintf("invalid document ID %q", s))
	}
	return ID(s), nil
}

func (id ID) String() string { return string(id) }

// Document is a stored unit of text owned by the backend.
type Document struct {
	ID        ID
	Title     string
	Content   string
	Language  language.Code
	CreatedAt time.Time
}

// Preview returns the first n runes of the content with whitespace collapsed,
// followed by an ellipsis when truncated.
func (d Document) Preview(n int) string {
	text := strings.Join(strings.Fields(d.Content), " ")
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:n])) + "…"
}

// File is an optional upload attached to a draft. Open is only called after
// the size check passes.
type File struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// Draft is the document form input.
type Draft struct {
	Title    string
	Content  string
	Language language.Code
	File     *File
}

// Validate checks the draft against the command it will be submitted with.
// Title and content are required unless a file is uploaded in create mode.
func (d Draft) Validate(cmd Command, maxFileSize int64) error {
	if d.Language == "" {
		return domain.NewValidationError("language", "Please select a language")
	}

	if d.File != nil {
		if _, editing := cmd.(UpdateDocument); editing {
			return domain.NewValidationError("file", "A file cannot replace a document being edited")
		}
		if d.File.Size > maxFileSize {
			return domain.NewValidationError("file",
				fmt.Sprintf("File is too large (max %s)", humanize.IBytes(uint64(maxFileSize))))
		}
		if d.File.Size == 0 {
			return domain.NewValidationError("file", "File is empty")
		}
		return nil
	}

	if strings.TrimSpace(d.Title) == "" || strings.TrimSpace(d.Content) == "" {
		return domain.NewValidationError("title", "Please enter title and content")
	}
	return nil
}

// Normalized returns a copy with title and content trimmed.
func (d Draft) Normalized() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Content = strings.TrimSpace(d.Content)
	return d
}

// Receipt acknowledges a successful create or update.
type Receipt struct {
	ID      ID
	Title   string
	Message string
}
