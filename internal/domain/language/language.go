package language

import (
	"fmt"
	"strings"

	xlang "golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/kailas-cloud/lingodesk/internal/domain"
)

// Code is a canonical base language code ("en", "vi").
type Code string

// Language constants recognized by the backend.
const (
	English    Code = "en"
	Vietnamese Code = "vi"
)

var namer = display.Tags(xlang.English)

// Parse canonicalizes a language identifier ("EN", "en-US", "vi_VN") to its base code.
func Parse(s string) (Code, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", "-"))
	if s == "" {
		return "", domain.NewValidationError("language", "language is required")
	}
	tag, err := xlang.Parse(s)
	if err != nil {
		return "", domain.NewValidationError("language", fmt.Sprintf("unknown language %q", s))
	}
	base, _ := tag.Base()
	return Code(base.String()), nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Code) String() string { return string(c) }

// Name returns the English display name ("Vietnamese"), or the code itself if unknown.
func (c Code) Name() string {
	tag, err := xlang.Parse(string(c))
	if err != nil {
		return string(c)
	}
	if n := namer.Name(tag); n != "" {
		return n
	}
	return string(c)
}

// Speech returns the text-to-speech language for this code.
// Only two voices exist: Vietnamese for vi, English for everything else.
func (c Code) Speech() Code {
	if c == Vietnamese {
		return Vietnamese
	}
	return English
}

// Pair is a supported translation direction.
type Pair struct {
	From Code
	To   Code
	Name string
}

// DefaultPairs returns the pairs used when the backend does not report its own.
func DefaultPairs() []Pair {
	return []Pair{
		{From: English, To: Vietnamese, Name: "English to Vietnamese"},
		{From: Vietnamese, To: English, Name: "Vietnamese to English"},
	}
}

// Options returns the distinct codes appearing in pairs, in first-seen order.
func Options(pairs []Pair) []Code {
	seen := make(map[Code]struct{}, len(pairs)*2)
	var out []Code
	for _, p := range pairs {
		for _, c := range []Code{p.From, p.To} {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}
