// ABOUTME: Durable storage for the session token and cached profile
// ABOUTME: File-backed repository under the XDG config directory plus an in-memory fake

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Repository persists the session across application restarts. Load
// returns the zero Session when nothing is stored.
type Repository interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

// FileRepository stores the session as JSON in a config directory.
type FileRepository struct {
	configDir string
}

// NewFileRepository creates a repository rooted at the given directory.
func NewFileRepository(configDir string) *FileRepository {
	return &FileRepository{configDir: configDir}
}

// DefaultConfigDir returns the default config directory following XDG spec.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "biblioteca")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "biblioteca")
}

func (fr *FileRepository) sessionFile() string {
	return filepath.Join(fr.configDir, "session.json")
}

// Load reads the persisted session. A missing or unreadable file yields
// the anonymous session.
func (fr *FileRepository) Load() (Session, error) {
	data, err := os.ReadFile(fr.sessionFile())
	if os.IsNotExist(err) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		// Corrupt file, start anonymous
		return Session{}, nil
	}
	return s, nil
}

// Save writes the session to disk. The file carries the bearer token, so
// it is created user-readable only.
func (fr *FileRepository) Save(s Session) error {
	if err := os.MkdirAll(fr.configDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fr.sessionFile(), data, 0600)
}

// Clear removes the persisted session.
func (fr *FileRepository) Clear() error {
	err := os.Remove(fr.sessionFile())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemoryRepository is an in-memory Repository for tests.
type MemoryRepository struct {
	stored Session
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (mr *MemoryRepository) Load() (Session, error) {
	return mr.stored, nil
}

func (mr *MemoryRepository) Save(s Session) error {
	mr.stored = s
	return nil
}

func (mr *MemoryRepository) Clear() error {
	mr.stored = Session{}
	return nil
}
