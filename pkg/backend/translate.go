package backend

import (
	"context"
	"net/http"
)

// Translate translates text between two languages.
func (c *Client) Translate(ctx context.Context, req TranslateRequest) (*TranslateResponse, error) {
	var out TranslateResponse
	if err := c.callJSON(ctx, "translate", http.MethodPost, c.url("translate"), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Languages lists the supported translation directions.
func (c *Client) Languages(ctx context.Context) (*LanguagePairs, error) {
	var out LanguagePairs
	if err := c.callJSON(ctx, "translate.languages", http.MethodGet, c.url("translate", "languages"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
