package document

// Command selects how a draft is submitted: a create or an update of an existing document.
type Command interface {
	isCommand()
}

// CreateDocument submits the draft as a new document.
type CreateDocument struct{}

// UpdateDocument replaces the document with the given ID.
type UpdateDocument struct {
	ID ID
}

func (CreateDocument) isCommand() {}
func (UpdateDocument) isCommand() {}
