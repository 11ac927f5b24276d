package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/lingodesk/internal/domain"
	"github.com/kailas-cloud/lingodesk/internal/domain/language"
)

func TestParseID(t *testing.T) {
	id, err := ParseID(" 42 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "42" {
		t.Errorf("ParseID = %q", id)
	}

	for _, in := range []string{"", "  ", "a/b", "x?y", "#1"} {
		if _, err := ParseID(in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("ParseID(%q): expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestPreview(t *testing.T) {
	d := Document{Content: "hello   world\n\nagain"}
	if got := d.Preview(100); got != "hello world again" {
		t.Errorf("Preview = %q", got)
	}
	if got := d.Preview(5); got != "hello…" {
		t.Errorf("Preview(5) = %q", got)
	}
	if got := d.Preview(0); got != "hello world again" {
		t.Errorf("Preview(0) = %q", got)
	}

	vi := Document{Content: "Xin chào thế giới"}
	if got := vi.Preview(8); got != "Xin chào…" {
		t.Errorf("Preview(8) on multibyte = %q", got)
	}
}

func TestValidate_TextDraft(t *testing.T) {
	valid := Draft{Title: "t", Content: "c", Language: language.English}
	if err := valid.Validate(CreateDocument{}, MaxFileSize); err != nil {
		t.Errorf("valid create: %v", err)
	}
	if err := valid.Validate(UpdateDocument{ID: "1"}, MaxFileSize); err != nil {
		t.Errorf("valid update: %v", err)
	}

	tests := []struct {
		name  string
		draft Draft
		field string
	}{
		{"no title", Draft{Content: "c", Language: language.English}, "title"},
		{"blank content", Draft{Title: "t", Content: "  ", Language: language.English}, "title"},
		{"no language", Draft{Title: "t", Content: "c"}, "language"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.draft.Validate(CreateDocument{}, MaxFileSize)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tc.field {
				t.Errorf("field = %q, want %q", ve.Field, tc.field)
			}
		})
	}
}

func TestValidate_FileDraft(t *testing.T) {
	small := &File{Name: "a.txt", Size: 1024}
	if err := (Draft{Language: language.Vietnamese, File: small}).Validate(CreateDocument{}, MaxFileSize); err != nil {
		t.Errorf("file without title/content should pass in create mode: %v", err)
	}

	big := &File{Name: "big.pdf", Size: MaxFileSize + 1}
	err := Draft{Language: language.English, File: big}.Validate(CreateDocument{}, MaxFileSize)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for oversized file, got %v", err)
	}
	if !strings.Contains(ve.Message, "10 MiB") {
		t.Errorf("message = %q, want size limit", ve.Message)
	}

	exact := &File{Name: "edge.txt", Size: MaxFileSize}
	if err := (Draft{Language: language.English, File: exact}).Validate(CreateDocument{}, MaxFileSize); err != nil {
		t.Errorf("file of exactly the limit should pass: %v", err)
	}

	empty := &File{Name: "empty.txt"}
	if err := (Draft{Language: language.English, File: empty}).Validate(CreateDocument{}, MaxFileSize); err == nil {
		t.Error("expected error for empty file")
	}

	err = Draft{Title: "t", Content: "c", Language: language.English, File: small}.
		Validate(UpdateDocument{ID: "7"}, MaxFileSize)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("file in edit mode: expected ErrInvalidInput, got %v", err)
	}
}

func TestNormalized(t *testing.T) {
	d := Draft{Title: "  t ", Content: "\tc\n"}.Normalized()
	if d.Title != "t" || d.Content != "c" {
		t.Errorf("Normalized = %+v", d)
	}
}
