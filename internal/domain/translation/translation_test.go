package translation

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/lingodesk/internal/domain"
	"github.com/kailas-cloud/lingodesk/internal/domain/language"
)

func TestNewRequest(t *testing.T) {
	r, err := NewRequest("  hello  ", language.English, language.Vietnamese)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Text() != "hello" {
		t.Errorf("Text() = %q, want trimmed", r.Text())
	}
	if r.Source() != language.English || r.Target() != language.Vietnamese {
		t.Errorf("languages = %s -> %s", r.Source(), r.Target())
	}
}

func TestNewRequest_Invalid(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		source, target language.Code
		wantField      string
	}{
		{"empty text", "", language.English, language.Vietnamese, "text"},
		{"blank text", " \t\n", language.English, language.Vietnamese, "text"},
		{"same language", "hello", language.English, language.English, "language"},
		{"missing target", "hello", language.English, "", "language"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRequest(tc.text, tc.source, tc.target)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tc.wantField {
				t.Errorf("field = %q, want %q", ve.Field, tc.wantField)
			}
		})
	}
}

func TestConfidenceLabel(t *testing.T) {
	zero := 0.0
	high := 0.875
	full := 1.0

	tests := []struct {
		name string
		conf *float64
		want string
	}{
		{"absent", nil, "Confidence: 99%"},
		{"zero", &zero, "Confidence: 99%"},
		{"fractional", &high, "Confidence: 87.5%"},
		{"full", &full, "Confidence: 100.0%"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Result{Text: "x", Confidence: tc.conf}.ConfidenceLabel()
			if got != tc.want {
				t.Errorf("ConfidenceLabel() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSwap(t *testing.T) {
	s, tg := Swap(language.English, language.Vietnamese)
	if s != language.Vietnamese || tg != language.English {
		t.Errorf("Swap = %s, %s", s, tg)
	}
}
