package document

import (
	"context"

	"github.com/kailas-cloud/lingodesk/pkg/backend"
)

// Store calls the backend document endpoints.
type Store interface {
	UploadDocument(ctx context.Context, in backend.DocumentInput) (*backend.DocumentReceipt, error)
	UploadFile(ctx context.Context, in backend.FileInput) (*backend.FileReceipt, error)
	UpdateDocument(ctx context.Context, id backend.DocumentID, in backend.DocumentInput) (*backend.DocumentReceipt, error)
	GetDocument(ctx context.Context, id backend.DocumentID) (*backend.Document, error)
	DeleteDocument(ctx context.Context, id backend.DocumentID) error
	ListDocuments(ctx context.Context) (*backend.DocumentList, error)
}
