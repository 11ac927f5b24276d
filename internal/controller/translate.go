package controller

import (
	"context"

	"github.com/kailas-cloud/lingodesk/internal/domain/language"
	"github.com/kailas-cloud/lingodesk/internal/domain/notice"
	"github.com/kailas-cloud/lingodesk/internal/domain/translation"
)

// Translate translates text from source to target. Empty text and identical
// languages are rejected before any request.
func (c *Controller) Translate(ctx context.Context, s Surface, text string, source, target language.Code) error {
	if err := c.acquire(ctx, s, ControlTranslate); err != nil {
		return err
	}
	defer s.Release(ctx, ControlTranslate)

	req, err := translation.NewRequest(text, source, target)
	if err != nil {
		return c.fail(ctx, s, "translate", err, "Translation failed")
	}

	res, err := c.translator.Translate(ctx, req)
	if err != nil {
		return c.fail(ctx, s, "translate", err, "Translation failed")
	}

	s.ShowTranslation(res)
	notify(s, notice.New(notice.Success, "Translation completed successfully"))
	return nil
}

// SwapLanguages exchanges the source and target selections.
func (c *Controller) SwapLanguages(source, target language.Code) (language.Code, language.Code) {
	return translation.Swap(source, target)
}

// Languages returns the translation directions offered in the language selectors.
func (c *Controller) Languages(ctx context.Context) []language.Pair {
	pairs, err := c.translator.Pairs(ctx)
	if err != nil {
		c.logFallback(ctx, "languages", err)
	}
	return pairs
}
