package speech

import (
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/lingodesk/internal/domain"
	"github.com/kailas-cloud/lingodesk/internal/domain/language"
)

// MaxTextRunes is the longest text the speech service accepts.
const MaxTextRunes = 5000

// Rate and pitch bounds accepted by the speech service.
const (
	MinRate  = 0.5
	MaxRate  = 2.0
	MinPitch = -50
	MaxPitch = 50
)

// Request is a validated speech synthesis request. An empty Voice leaves the
// choice to the backend.
type Request struct {
	Text     string
	Language language.Code
	Voice    string
	Rate     float64
	Pitch    int
}

// NewRequest builds a request for the translated text. The speech language is
// derived from the active target language.
func NewRequest(text string, target language.Code, voice string, rate float64, pitch int) (Request, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Request{}, domain.NewValidationError("text", "Nothing to speak: translate some text first")
	}
	if utf8.RuneCountInString(text) > MaxTextRunes {
		return Request{}, domain.NewValidationError("text", "Text is too long to speak (max 5000 characters)")
	}
	return Request{
		Text:     text,
		Language: target.Speech(),
		Voice:    strings.TrimSpace(voice),
		Rate:     rate,
		Pitch:    pitch,
	}, nil
}

// Voice is a selectable speech voice.
type Voice struct {
	Key      string
	Name     string
	Language language.Code
}

// VoicesFor returns the voices that read text in the target language.
func VoicesFor(voices []Voice, target language.Code) []Voice {
	lang := target.Speech()
	var out []Voice
	for _, v := range voices {
		if v.Language == lang {
			out = append(out, v)
		}
	}
	return out
}

// Audio is synthesized speech.
type Audio struct {
	ContentType string
	Data        []byte
}
