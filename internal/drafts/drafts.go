// Package drafts persists in-progress form input locally so an interrupted
// session can pick up where it left off. Slots are a fixed set of named keys;
// a slot is cleared once the action it was drafting completes.
package drafts

import (
	"errors"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

// Slot names the known draft inputs.
const (
	SlotChat       = "chat"
	SlotTaskTitle  = "task_title"
	SlotNewProject = "new_project"
)

// Store keeps draft slots in a small on-disk key-value store.
type Store struct {
	d *diskv.Diskv
}

// Open creates (or reopens) the draft store rooted at basePath.
func Open(basePath string) (*Store, error) {
	if basePath == "" {
		return nil, errors.New("drafts: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("drafts: ensure base path: %w", err)
	}
	return &Store{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 64 * 1024,
	})}, nil
}

// Save stores the draft text for a slot. Saving an empty draft clears the
// slot instead of keeping an empty file around.
func (s *Store) Save(slot, text string) error {
	if text == "" {
		return s.Clear(slot)
	}
	if err := s.d.Write(slot, []byte(text)); err != nil {
		return fmt.Errorf("drafts: save %s: %w", slot, err)
	}
	return nil
}

// Load returns the draft text for a slot, or "" when nothing is saved.
func (s *Store) Load(slot string) string {
	data, err := s.d.Read(slot)
	if err != nil {
		return ""
	}
	return string(data)
}

// Clear removes a slot. Clearing an absent slot is a no-op.
func (s *Store) Clear(slot string) error {
	if !s.d.Has(slot) {
		return nil
	}
	if err := s.d.Erase(slot); err != nil {
		return fmt.Errorf("drafts: clear %s: %w", slot, err)
	}
	return nil
}
