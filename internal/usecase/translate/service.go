package translate

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/lingodesk/internal/domain/language"
	"github.com/kailas-cloud/lingodesk/internal/domain/translation"
	"github.com/kailas-cloud/lingodesk/pkg/backend"
)

// Service translates text through the backend.
type Service struct {
	client Translator
}

// New creates a translation service.
func New(client Translator) *Service {
	return &Service{client: client}
}

// Translate sends one translation request. The request is already validated,
// so the call always reaches the backend.
func (s *Service) Translate(ctx context.Context, req translation.Request) (translation.Result, error) {
	resp, err := s.client.Translate(ctx, backend.TranslateRequest{
		Text:       req.Text(),
		SourceLang: req.Source().String(),
		TargetLang: req.Target().String(),
	})
	if err != nil {
		return translation.Result{}, fmt.Errorf("translate: %w", err)
	}

	return translation.Result{
		Text:       resp.TranslatedText,
		Source:     req.Source(),
		Target:     req.Target(),
		Confidence: resp.Confidence,
	}, nil
}

// Pairs returns the supported translation directions. Pairs with unknown
// codes are skipped; when nothing usable remains the default pairs are
// returned. The error is returned alongside the defaults so callers can log it.
func (s *Service) Pairs(ctx context.Context) ([]language.Pair, error) {
	resp, err := s.client.Languages(ctx)
	if err != nil {
		return language.DefaultPairs(), fmt.Errorf("list languages: %w", err)
	}

	pairs := make([]language.Pair, 0, len(resp.SupportedPairs))
	for _, p := range resp.SupportedPairs {
		from, err := language.Parse(p.From)
		if err != nil {
			continue
		}
		to, err := language.Parse(p.To)
		if err != nil || from == to {
			continue
		}
		pairs = append(pairs, language.Pair{From: from, To: to, Name: p.Name})
	}
	if len(pairs) == 0 {
		return language.DefaultPairs(), nil
	}
	return pairs, nil
}
