package editor

// Mode is the top-level editing mode of a session.
type Mode string

const (
	// ModeReadOnly is the default viewing mode.
	ModeReadOnly Mode = "read_only"
	// ModeEdit allows structure modifications.
	ModeEdit Mode = "edit"
)

// Operation is the in-flight operation within edit mode.
type Operation string

const (
	// OpNone means no operation is in progress.
	OpNone Operation = ""
	// OpEdit means the data editor is open.
	OpEdit Operation = "edit"
	// OpAdd means an add form is open.
	OpAdd Operation = "add"
	// OpDelete means a delete selection is in progress.
	OpDelete Operation = "delete"
	// OpInsert means a category is being inserted between levels.
	OpInsert Operation = "insert"
	// OpRemove means a category is being removed from between levels.
	OpRemove Operation = "remove"
)

// State is the single source of truth for one edit session.
type State struct {
	Mode       Mode              `json:"mode"`
	Operation  Operation         `json:"operation,omitempty"`
	HasChanges bool              `json:"has_changes"`
	ActiveTab  string            `json:"active_tab,omitempty"`
	FormData   map[string]string `json:"form_data,omitempty"`
	// InProgress is a human-readable label for the current operation.
	InProgress string `json:"operation_in_progress,omitempty"`
}

// NewState returns the initial read-only state.
func NewState() State {
	return State{Mode: ModeReadOnly}
}

// IsViewing reports read-only viewing mode.
func (s State) IsViewing() bool {
	return s.Mode == ModeReadOnly
}

// IsEditing reports edit mode with no changes and no operation.
func (s State) IsEditing() bool {
	return s.Mode == ModeEdit && !s.HasChanges && s.Operation == OpNone
}

// IsModifying reports edit mode with unsaved changes or an active
// operation.
func (s State) IsModifying() bool {
	return s.Mode == ModeEdit && (s.HasChanges || s.Operation != OpNone)
}

// IsAdding reports an open add form.
func (s State) IsAdding() bool {
	return s.Mode == ModeEdit && s.Operation == OpAdd
}

// IsDeleting reports a delete operation in progress.
func (s State) IsDeleting() bool {
	return s.Mode == ModeEdit && s.Operation == OpDelete
}

// IsInserting reports an insert operation in progress.
func (s State) IsInserting() bool {
	return s.Mode == ModeEdit && s.Operation == OpInsert
}

// IsRemoving reports a remove operation in progress.
func (s State) IsRemoving() bool {
	return s.Mode == ModeEdit && s.Operation == OpRemove
}

// FiltersEnabled reports whether structure filters may be changed.
// Filters lock while an operation is in progress so the visible rows
// cannot shift under a half-finished change.
func (s State) FiltersEnabled() bool {
	return !s.IsModifying()
}
