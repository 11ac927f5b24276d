package controller

import (
	"context"

	"github.com/kailas-cloud/lingodesk/internal/domain/document"
	"github.com/kailas-cloud/lingodesk/internal/domain/form"
	"github.com/kailas-cloud/lingodesk/internal/domain/notice"
)

// DeletePrompt is the confirmation question shown before a delete.
const DeletePrompt = "Are you sure you want to delete this document?"

// SubmitDocument creates or updates a document depending on state. On success
// the form is cleared, the list is refreshed once and the returned state is
// Create. On failure state is returned unchanged.
func (c *Controller) SubmitDocument(
	ctx context.Context, s Surface, state form.State, draft document.Draft,
) (form.State, error) {
	if err := c.acquire(ctx, s, ControlDocument); err != nil {
		return state, err
	}
	defer s.Release(ctx, ControlDocument)

	fallback := "Upload failed"
	if state.IsEditing() {
		fallback = "Update failed"
	}

	rec, err := c.docs.Submit(ctx, state.Command(), draft)
	if err != nil {
		return state, c.fail(ctx, s, "submit_document", err, fallback)
	}

	notify(s, notice.New(notice.Success, rec.Message))
	s.ResetDocumentForm()
	c.refresh(ctx, s)
	return form.Create(), nil
}

// LoadDocuments fetches and shows every stored document.
func (c *Controller) LoadDocuments(ctx context.Context, s Surface) error {
	docs, err := c.docs.List(ctx)
	if err != nil {
		return c.fail(ctx, s, "list_documents", err, "Failed to load documents")
	}
	s.ShowDocuments(docs)
	return nil
}

// refresh reloads the document list after a change. Its failure is shown but
// does not undo the change.
func (c *Controller) refresh(ctx context.Context, s Surface) {
	_ = c.LoadDocuments(ctx, s)
}

// ViewDocument shows the full content of one document.
func (c *Controller) ViewDocument(ctx context.Context, s Surface, id document.ID) error {
	doc, err := c.docs.Get(ctx, id)
	if err != nil {
		return c.fail(ctx, s, "view_document", err, "Failed to load document")
	}
	s.ShowDocument(doc)
	return nil
}

// EditDocument loads a document into the form and enters edit mode.
func (c *Controller) EditDocument(
	ctx context.Context, s Surface, state form.State, id document.ID,
) (form.State, error) {
	doc, err := c.docs.Get(ctx, id)
	if err != nil {
		return state, c.fail(ctx, s, "edit_document", err, "Failed to load document")
	}
	s.EditDocument(doc)
	notify(s, notice.New(notice.Info, "Editing document: "+doc.Title))
	return form.Edit(id), nil
}

// CancelEdit leaves edit mode and clears the form.
func (c *Controller) CancelEdit(s Surface) form.State {
	s.ResetDocumentForm()
	return form.Create()
}

// DeleteDocument deletes a document after confirmation. A declined
// confirmation sends nothing. Deleting the document being edited resets the
// form. The list is refreshed once after a successful delete.
func (c *Controller) DeleteDocument(
	ctx context.Context, s Surface, state form.State, id document.ID,
) (form.State, error) {
	if !s.Confirm(ctx, DeletePrompt) {
		return state, nil
	}

	if err := c.docs.Delete(ctx, id); err != nil {
		return state, c.fail(ctx, s, "delete_document", err, "Delete failed")
	}

	notify(s, notice.New(notice.Success, "Document deleted successfully"))
	next := state.Forget(id)
	if next != state {
		s.ResetDocumentForm()
	}
	c.refresh(ctx, s)
	return next, nil
}
