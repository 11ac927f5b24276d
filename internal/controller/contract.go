package controller

import (
	"context"

	"github.com/kailas-cloud/lingodesk/internal/domain/document"
	"github.com/kailas-cloud/lingodesk/internal/domain/language"
	"github.com/kailas-cloud/lingodesk/internal/domain/search"
	"github.com/kailas-cloud/lingodesk/internal/domain/speech"
	"github.com/kailas-cloud/lingodesk/internal/domain/translation"
)

// Translator translates text.
type Translator interface {
	Translate(ctx context.Context, req translation.Request) (translation.Result, error)
	Pairs(ctx context.Context) ([]language.Pair, error)
}

// Documents manages stored documents.
type Documents interface {
	Submit(ctx context.Context, cmd document.Command, draft document.Draft) (document.Receipt, error)
	List(ctx context.Context) ([]document.Document, error)
	Get(ctx context.Context, id document.ID) (document.Document, error)
	Delete(ctx context.Context, id document.ID) error
}

// Searcher runs document search.
type Searcher interface {
	Search(ctx context.Context, q search.Query) (search.Page, error)
}

// WebSearcher runs web search.
type WebSearcher interface {
	Search(ctx context.Context, q search.Query) (search.WebPage, error)
}

// Speaker synthesizes speech.
type Speaker interface {
	Speak(ctx context.Context, req speech.Request) (speech.Audio, error)
	Voices(ctx context.Context) ([]speech.Voice, error)
}
