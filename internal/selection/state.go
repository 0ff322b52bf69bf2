// Package selection holds the user's chosen file and the status line shown to them.
package selection

import (
	"sync"

	"github.com/medilink/reportgen/internal/models"
)

// Snapshot is the state passed to observers after each change.
type Snapshot struct {
	File    *models.SelectedFile
	Message string
}

// State owns the selected file and status message. It performs no I/O.
type State struct {
	mu        sync.RWMutex
	file      *models.SelectedFile
	message   string
	observers []func(Snapshot)
}

// New returns a State with no file selected and an empty message.
func New() *State {
	return &State{}
}

// SelectFile replaces the current file and clears the message.
// A nil candidate clears the selection.
func (s *State) SelectFile(candidate *models.SelectedFile) {
	s.mu.Lock()
	s.file = candidate
	s.message = ""
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

// CurrentFile returns the selected file, or nil when none is selected.
func (s *State) CurrentFile() *models.SelectedFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.file
}

// SetMessage overwrites the status message.
func (s *State) SetMessage(text string) {
	s.mu.Lock()
	s.message = text
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

// Message returns the current status message.
func (s *State) Message() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.message
}

// Observe registers fn to be called after every change.
func (s *State) Observe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

func (s *State) snapshotLocked() Snapshot {
	return Snapshot{File: s.file, Message: s.message}
}

// notify runs outside the lock so observers may read the state back.
func (s *State) notify(snap Snapshot) {
	s.mu.RLock()
	observers := append([]func(Snapshot){}, s.observers...)
	s.mu.RUnlock()

	for _, fn := range observers {
		fn(snap)
	}
}
