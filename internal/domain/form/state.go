package form

import (
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/lingodesk/internal/domain/document"
)

// Mode is the document form mode.
type Mode string

// Form modes.
const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// State is the document form state: either creating a new document or editing
// exactly one existing document. The zero value is Create.
type State struct {
	editing document.ID
}

// Create returns the create-mode state.
func Create() State { return State{} }

// Edit returns the state for editing the given document.
func Edit(id document.ID) State { return State{editing: id} }

// Mode returns the current mode.
func (s State) Mode() Mode {
	if s.editing != "" {
		return ModeEdit
	}
	return ModeCreate
}

// IsEditing reports whether a document is being edited.
func (s State) IsEditing() bool { return s.editing != "" }

// EditingID returns the edited document ID, empty in create mode.
func (s State) EditingID() document.ID { return s.editing }

// Command maps the state to the submit command.
func (s State) Command() document.Command {
	if s.editing != "" {
		return document.UpdateDocument{ID: s.editing}
	}
	return document.CreateDocument{}
}

// Forget returns Create if id is the document being edited, otherwise s unchanged.
func (s State) Forget(id document.ID) State {
	if s.editing == id {
		return Create()
	}
	return s
}

type stateJSON struct {
	Mode  Mode   `json:"mode"`
	DocID string `json:"doc_id,omitempty"`
}

// MarshalJSON encodes the state for session storage.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(stateJSON{Mode: s.Mode(), DocID: string(s.editing)})
}

// UnmarshalJSON decodes a stored state.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw stateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode form state: %w", err)
	}
	switch raw.Mode {
	case ModeCreate, "":
		*s = Create()
	case ModeEdit:
		if raw.DocID == "" {
			return fmt.Errorf("decode form state: edit mode without doc_id")
		}
		*s = Edit(document.ID(raw.DocID))
	default:
		return fmt.Errorf("decode form state: unknown mode %q", raw.Mode)
	}
	return nil
}
