package translate

import (
	"context"

	"github.com/kailas-cloud/lingodesk/pkg/backend"
)

// Translator calls the backend translation endpoints.
type Translator interface {
	Translate(ctx context.Context, req backend.TranslateRequest) (*backend.TranslateResponse, error)
	Languages(ctx context.Context) (*backend.LanguagePairs, error)
}
