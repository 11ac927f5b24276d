package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// UploadDocument stores a new document.
func (c *Client) UploadDocument(ctx context.Context, in DocumentInput) (*DocumentReceipt, error) {
	var out DocumentReceipt
	if err := c.callJSON(ctx, "documents.upload", http.MethodPost, c.url("documents", "upload"), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadFile stores a document read from a file. The part content type is
// sniffed from the file bytes.
func (c *Client) UploadFile(ctx context.Context, in FileInput) (*FileReceipt, error) {
	const op = "documents.upload_file"
	if in.Content == nil {
		return nil, fmt.Errorf("%s: no file content", op)
	}
	data, err := io.ReadAll(in.Content)
	if err != nil {
		return nil, fmt.Errorf("%s: read file: %w", op, err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(in.Filename)))
	h.Set("Content-Type", mimetype.Detect(data).String())
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("%s: create part: %w", op, err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("%s: write part: %w", op, err)
	}
	if err := mw.WriteField("language", in.Language); err != nil {
		return nil, fmt.Errorf("%s: write language: %w", op, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("%s: close multipart: %w", op, err)
	}

	var out FileReceipt
	if err := c.call(ctx, op, http.MethodPost, c.url("documents", "upload-file"),
		&buf, mw.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// UpdateDocument replaces the title, content and language of a document.
// The receipt carries id when the reply does not echo doc_id.
func (c *Client) UpdateDocument(ctx context.Context, id DocumentID, in DocumentInput) (*DocumentReceipt, error) {
	out := DocumentReceipt{DocID: id}
	if err := c.callJSON(ctx, "documents.update", http.MethodPut, c.url("documents", string(id)), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDocument fetches one document.
func (c *Client) GetDocument(ctx context.Context, id DocumentID) (*Document, error) {
	var out Document
	if err := c.callJSON(ctx, "documents.get", http.MethodGet, c.url("documents", string(id)), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteDocument removes a document.
func (c *Client) DeleteDocument(ctx context.Context, id DocumentID) error {
	return c.callJSON(ctx, "documents.delete", http.MethodDelete, c.url("documents", string(id)), nil, nil)
}

// ListDocuments returns every stored document.
func (c *Client) ListDocuments(ctx context.Context) (*DocumentList, error) {
	var out DocumentList
	if err := c.callJSON(ctx, "documents.list", http.MethodGet, c.url("documents", "list"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
