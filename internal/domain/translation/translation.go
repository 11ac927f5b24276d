package translation

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/lingodesk/internal/domain"
	"github.com/kailas-cloud/lingodesk/internal/domain/language"
)

// DefaultConfidenceLabel is shown when the backend reports no confidence.
const DefaultConfidenceLabel = "Confidence: 99%"

// Request is a validated translation request (immutable value object).
type Request struct {
	text   string
	source language.Code
	target language.Code
}

// NewRequest validates raw form input. Text is trimmed; it must be non-empty and
// the languages must differ.
func NewRequest(text string, source, target language.Code) (Request, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Request{}, domain.NewValidationError("text", "Please enter text to translate")
	}
	if source == "" || target == "" {
		return Request{}, domain.NewValidationError("language", "Please select source and target languages")
	}
	if source == target {
		return Request{}, domain.NewValidationError("language", "Source and target languages must be different")
	}
	return Request{text: text, source: source, target: target}, nil
}

// Text returns the trimmed source text.
func (r Request) Text() string { return r.text }

// Source returns the source language.
func (r Request) Source() language.Code { return r.source }

// Target returns the target language.
func (r Request) Target() language.Code { return r.target }

// Result is a translation returned by the backend.
type Result struct {
	Text       string
	Source     language.Code
	Target     language.Code
	Confidence *float64
}

// ConfidenceLabel formats the confidence for display. A missing or zero confidence
// falls back to DefaultConfidenceLabel.
func (r Result) ConfidenceLabel() string {
	if r.Confidence == nil || *r.Confidence == 0 {
		return DefaultConfidenceLabel
	}
	return fmt.Sprintf("Confidence: %.1f%%", *r.Confidence*100)
}

// Swap exchanges the source and target selections.
func Swap(source, target language.Code) (language.Code, language.Code) {
	return target, source
}
