package speech

import (
	"context"

	"github.com/kailas-cloud/lingodesk/pkg/backend"
)

// Synthesizer calls the backend text-to-speech endpoints.
type Synthesizer interface {
	Speak(ctx context.Context, req backend.SpeakRequest) (*backend.Audio, error)
	Voices(ctx context.Context) (*backend.Voices, error)
}
