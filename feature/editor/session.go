package editor

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ErrUnsavedChanges blocks a mode switch while changes or an operation
// are pending.
var ErrUnsavedChanges = errors.New("unsaved changes or an operation in progress, save or discard first")

// Session is one user's edit session. All methods are safe for
// concurrent use.
type Session struct {
	mu    sync.Mutex
	state State
}

// NewSession creates a session in the initial viewing state.
func NewSession() *Session {
	return &Session{state: NewState()}
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SwitchToViewing returns to read-only mode. Without force it refuses
// while changes or an operation are pending.
func (s *Session) SwitchToViewing(force bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !force && (s.state.HasChanges || s.state.Operation != OpNone) {
		return ErrUnsavedChanges
	}
	s.state = NewState()
	return nil
}

// SwitchToEditing enters edit mode with a clean slate.
func (s *Session) SwitchToEditing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toEditing()
}

// StartEditing opens the data editor for a tab. Opening the editor
// immediately counts as having changes.
func (s *Session) StartEditing(tab string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{
		Mode:       ModeEdit,
		Operation:  OpEdit,
		HasChanges: true,
		ActiveTab:  tab,
		InProgress: fmt.Sprintf("Editing %s", tab),
	}
}

// StartAdding opens the add form for a tab. Adding does not count as a
// change until the form is submitted.
func (s *Session) StartAdding(tab string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{
		Mode:       ModeEdit,
		Operation:  OpAdd,
		ActiveTab:  tab,
		FormData:   map[string]string{},
		InProgress: fmt.Sprintf("Adding to %s", tab),
	}
}

// StartDeleting begins a delete selection on a tab.
func (s *Session) StartDeleting(tab string) {
	s.startOperation(OpDelete, tab, "Deleting from %s")
}

// StartInserting begins inserting a category between levels.
func (s *Session) StartInserting(tab string) {
	s.startOperation(OpInsert, tab, "Inserting into %s")
}

// StartRemoving begins removing a category from between levels.
func (s *Session) StartRemoving(tab string) {
	s.startOperation(OpRemove, tab, "Removing from %s")
}

func (s *Session) startOperation(op Operation, tab, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Mode = ModeEdit
	s.state.Operation = op
	s.state.ActiveTab = tab
	s.state.InProgress = fmt.Sprintf(label, tab)
}

// SaveChanges records a successful save and returns to clean edit mode.
func (s *Session) SaveChanges() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toEditing()
}

// DiscardChanges drops pending changes and returns to clean edit mode.
func (s *Session) DiscardChanges() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toEditing()
}

// CancelOperation aborts the in-flight operation.
func (s *Session) CancelOperation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toEditing()
}

// SubmitForm records a successful add-form submission.
func (s *Session) SubmitForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toEditing()
}

// CompleteOperation records a successfully finished operation.
func (s *Session) CompleteOperation() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toEditing()
}

func (s *Session) toEditing() {
	s.state = State{Mode: ModeEdit}
}

// Store holds edit sessions keyed by generated ID.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create registers a new session and returns its ID.
func (st *Store) Create() (string, *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	id := uuid.NewString()
	session := NewSession()
	st.sessions[id] = session
	return id, session
}

// Get looks up a session by ID.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	session, ok := st.sessions[id]
	return session, ok
}

// Delete removes a session.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}
