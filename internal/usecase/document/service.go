package document

import (
	"context"
	"fmt"

	domdoc "github.com/kailas-cloud/lingodesk/internal/domain/document"
	"github.com/kailas-cloud/lingodesk/internal/domain/language"
	"github.com/kailas-cloud/lingodesk/pkg/backend"
)

// Success message formats, filled with the document title or file name.
const (
	msgCreated  = "Document %q uploaded successfully!"
	msgUploaded = "File %q uploaded successfully!"
	msgUpdated  = "Document %q updated successfully!"
)

// Service handles document create, update, read and delete through the backend.
type Service struct {
	store       Store
	maxFileSize int64
}

// New creates a document service.
func New(store Store) *Service {
	return &Service{store: store, maxFileSize: domdoc.MaxFileSize}
}

// WithMaxFileSize overrides the upload size limit.
func (s *Service) WithMaxFileSize(n int64) *Service {
	if n > 0 {
		s.maxFileSize = n
	}
	return s
}

// MaxFileSize returns the upload size limit.
func (s *Service) MaxFileSize() int64 { return s.maxFileSize }

// Submit validates the draft and issues exactly one create, upload or update
// request chosen by cmd. Validation failures never reach the backend.
func (s *Service) Submit(ctx context.Context, cmd domdoc.Command, draft domdoc.Draft) (domdoc.Receipt, error) {
	draft = draft.Normalized()
	if err := draft.Validate(cmd, s.maxFileSize); err != nil {
		return domdoc.Receipt{}, err
	}

	switch c := cmd.(type) {
	case domdoc.UpdateDocument:
		return s.update(ctx, c.ID, draft)
	case domdoc.CreateDocument:
		if draft.File != nil {
			return s.uploadFile(ctx, draft)
		}
		return s.create(ctx, draft)
	default:
		return domdoc.Receipt{}, fmt.Errorf("submit document: unsupported command %T", cmd)
	}
}

func (s *Service) create(ctx context.Context, d domdoc.Draft) (domdoc.Receipt, error) {
	resp, err := s.store.UploadDocument(ctx, toInput(d))
	if err != nil {
		return domdoc.Receipt{}, fmt.Errorf("upload document: %w", err)
	}
	title := firstNonEmpty(resp.Title, d.Title)
	return domdoc.Receipt{
		ID:      domdoc.ID(resp.DocID),
		Title:   title,
		Message: fmt.Sprintf(msgCreated, title),
	}, nil
}

func (s *Service) uploadFile(ctx context.Context, d domdoc.Draft) (domdoc.Receipt, error) {
	f, err := d.File.Open()
	if err != nil {
		return domdoc.Receipt{}, fmt.Errorf("open upload: %w", err)
	}
	defer func() { _ = f.Close() }()

	resp, err := s.store.UploadFile(ctx, backend.FileInput{
		Filename: d.File.Name,
		Language: d.Language.String(),
		Content:  f,
	})
	if err != nil {
		return domdoc.Receipt{}, fmt.Errorf("upload file: %w", err)
	}
	name := firstNonEmpty(resp.Filename, d.File.Name)
	return domdoc.Receipt{
		ID:      domdoc.ID(resp.DocID),
		Title:   firstNonEmpty(resp.Title, name),
		Message: fmt.Sprintf(msgUploaded, name),
	}, nil
}

func (s *Service) update(ctx context.Context, id domdoc.ID, d domdoc.Draft) (domdoc.Receipt, error) {
	resp, err := s.store.UpdateDocument(ctx, backend.DocumentID(id), toInput(d))
	if err != nil {
		return domdoc.Receipt{}, fmt.Errorf("update document %s: %w", id, err)
	}
	title := firstNonEmpty(resp.Title, d.Title)
	return domdoc.Receipt{
		ID:      firstNonEmptyID(domdoc.ID(resp.DocID), id),
		Title:   title,
		Message: fmt.Sprintf(msgUpdated, title),
	}, nil
}

// List returns every stored document.
func (s *Service) List(ctx context.Context) ([]domdoc.Document, error) {
	resp, err := s.store.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	docs := make([]domdoc.Document, 0, len(resp.Documents))
	for _, d := range resp.Documents {
		docs = append(docs, toDocument(d))
	}
	return docs, nil
}

// Get fetches one document with its full content.
func (s *Service) Get(ctx context.Context, id domdoc.ID) (domdoc.Document, error) {
	resp, err := s.store.GetDocument(ctx, backend.DocumentID(id))
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("get document %s: %w", id, err)
	}
	doc := toDocument(*resp)
	if doc.ID == "" {
		doc.ID = id
	}
	return doc, nil
}

// Delete removes a document.
func (s *Service) Delete(ctx context.Context, id domdoc.ID) error {
	if err := s.store.DeleteDocument(ctx, backend.DocumentID(id)); err != nil {
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	return nil
}

func toInput(d domdoc.Draft) backend.DocumentInput {
	return backend.DocumentInput{
		Title:    d.Title,
		Content:  d.Content,
		Language: d.Language.String(),
	}
}

func toDocument(d backend.Document) domdoc.Document {
	lang, err := language.Parse(d.Language)
	if err != nil {
		lang = language.Code(d.Language)
	}
	return domdoc.Document{
		ID:        domdoc.ID(d.DocID),
		Title:     d.Title,
		Content:   d.Content,
		Language:  lang,
		CreatedAt: d.CreatedAt.Time,
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonEmptyID(a, b domdoc.ID) domdoc.ID {
	if a != "" {
		return a
	}
	return b
}
