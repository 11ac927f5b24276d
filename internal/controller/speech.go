package controller

import (
	"context"

	"github.com/kailas-cloud/lingodesk/internal/domain/language"
	"github.com/kailas-cloud/lingodesk/internal/domain/speech"
)

// Speak reads text aloud in the language of the target. voice picks one of
// Voices; empty uses the backend default.
func (c *Controller) Speak(ctx context.Context, s Surface, text string, target language.Code, voice string) error {
	if err := c.acquire(ctx, s, ControlSpeak); err != nil {
		return err
	}
	defer s.Release(ctx, ControlSpeak)

	req, err := speech.NewRequest(text, target, voice, c.limits.SpeechRate, c.limits.SpeechPitch)
	if err != nil {
		return c.fail(ctx, s, "speak", err, "Speech failed")
	}

	audio, err := c.speaker.Speak(ctx, req)
	if err != nil {
		return c.fail(ctx, s, "speak", err, "Speech failed")
	}
	s.PlayAudio(audio)
	return nil
}

// Voices lists the selectable voices. A failure yields no voices, so the
// backend default is used.
func (c *Controller) Voices(ctx context.Context) []speech.Voice {
	voices, err := c.speaker.Voices(ctx)
	if err != nil {
		c.logFallback(ctx, "voices", err)
		return nil
	}
	return voices
}
