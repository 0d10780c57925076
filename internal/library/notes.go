package library

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// FileNoteStore persists notes and tags as JSON files alongside the library.
// It backs the write-capable tools when no host storage is attached.
type FileNoteStore struct {
	mu  sync.Mutex
	dir string
}

type noteFile struct {
	Notes []Note              `json:"notes"`
	Tags  map[string][]string `json:"tags"` // item key -> tags
}

// NewFileNoteStore creates a note store rooted at dir, creating it if needed.
func NewFileNoteStore(dir string) (*FileNoteStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("cannot create note store directory %s: %w", dir, err)
	}
	return &FileNoteStore{dir: dir}, nil
}

// CreateNote stores a new note attached to itemKey and returns it with a
// generated identifier.
func (s *FileNoteStore) CreateNote(ctx context.Context, itemKey, title, content string) (Note, error) {
	if err := ctx.Err(); err != nil {
		return Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return Note{}, err
	}

	note := Note{
		ID:      uuid.NewString(),
		ItemKey: itemKey,
		Title:   title,
		Content: content,
	}
	state.Notes = append(state.Notes, note)

	if err := s.save(state); err != nil {
		return Note{}, err
	}
	return note, nil
}

// AddTags appends tags to each of the given item keys, skipping duplicates,
// and returns how many items were updated.
func (s *FileNoteStore) AddTags(ctx context.Context, itemKeys []string, tags []string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.load()
	if err != nil {
		return 0, err
	}
	if state.Tags == nil {
		state.Tags = make(map[string][]string)
	}

	updated := 0
	for _, key := range itemKeys {
		existing := state.Tags[key]
		have := make(map[string]bool, len(existing))
		for _, tag := range existing {
			have[tag] = true
		}
		changed := false
		for _, tag := range tags {
			if tag != "" && !have[tag] {
				existing = append(existing, tag)
				have[tag] = true
				changed = true
			}
		}
		if changed {
			state.Tags[key] = existing
			updated++
		}
	}

	if err := s.save(state); err != nil {
		return 0, err
	}
	return updated, nil
}

func (s *FileNoteStore) statePath() string {
	return filepath.Join(s.dir, "notes.json")
}

func (s *FileNoteStore) load() (*noteFile, error) {
	data, err := os.ReadFile(s.statePath())
	if os.IsNotExist(err) {
		return &noteFile{Tags: make(map[string][]string)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read note store: %w", err)
	}

	var state noteFile
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("note store is corrupt: %w", err)
	}
	return &state, nil
}

func (s *FileNoteStore) save(state *noteFile) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode note store: %w", err)
	}
	if err := os.WriteFile(s.statePath(), data, 0o600); err != nil {
		return fmt.Errorf("failed to write note store: %w", err)
	}
	return nil
}
