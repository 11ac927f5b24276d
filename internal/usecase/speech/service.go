package speech

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/lingodesk/internal/domain/language"
	domspeech "github.com/kailas-cloud/lingodesk/internal/domain/speech"
	"github.com/kailas-cloud/lingodesk/pkg/backend"
)

// Service synthesizes speech through the backend.
type Service struct {
	synth Synthesizer
}

// New creates a speech service.
func New(synth Synthesizer) *Service {
	return &Service{synth: synth}
}

// Speak sends one synthesis request and returns the audio clip.
func (s *Service) Speak(ctx context.Context, req domspeech.Request) (domspeech.Audio, error) {
	resp, err := s.synth.Speak(ctx, backend.SpeakRequest{
		Text:     req.Text,
		Language: req.Language.String(),
		Voice:    req.Voice,
		Rate:     req.Rate,
		Pitch:    req.Pitch,
	})
	if err != nil {
		return domspeech.Audio{}, fmt.Errorf("speak: %w", err)
	}
	return domspeech.Audio{ContentType: resp.ContentType, Data: resp.Data}, nil
}

// Voices lists the available voices, Vietnamese first.
func (s *Service) Voices(ctx context.Context) ([]domspeech.Voice, error) {
	resp, err := s.synth.Voices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list voices: %w", err)
	}
	out := make([]domspeech.Voice, 0, len(resp.Vietnamese)+len(resp.English))
	for _, v := range resp.Vietnamese {
		out = append(out, domspeech.Voice{Key: v.Key, Name: v.Name, Language: language.Vietnamese})
	}
	for _, v := range resp.English {
		out = append(out, domspeech.Voice{Key: v.Key, Name: v.Name, Language: language.English})
	}
	return out, nil
}
