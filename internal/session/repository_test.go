// ABOUTME: Tests for the file-backed session repository
// ABOUTME: Validates round-trip, missing file, corrupt file, and clear

package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileRepositoryLoadMissing(t *testing.T) {
	fr := NewFileRepository(t.TempDir())

	s, err := fr.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !s.Anonymous() {
		t.Errorf("expected anonymous session, got %+v", s)
	}
}

func TestFileRepositoryRoundTrip(t *testing.T) {
	fr := NewFileRepository(t.TempDir())

	in := Session{Token: "tok", Role: RoleProfessor, UserID: "11", DisplayName: "Ana"}
	if err := fr.Save(in); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	out, err := fr.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if out != in {
		t.Errorf("expected %+v, got %+v", in, out)
	}
}

func TestFileRepositoryTokenFilePermissions(t *testing.T) {
	dir := t.TempDir()
	fr := NewFileRepository(dir)
	fr.Save(Session{Token: "tok", Role: RoleAluno, UserID: "1"})

	info, err := os.Stat(filepath.Join(dir, "session.json"))
	if err != nil {
		t.Fatalf("stat error: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected 0600 permissions, got %o", perm)
	}
}

func TestFileRepositoryCorruptFileStartsFresh(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0600)

	fr := NewFileRepository(dir)
	s, err := fr.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !s.Anonymous() {
		t.Errorf("expected anonymous for corrupt file, got %+v", s)
	}
}

func TestFileRepositoryClear(t *testing.T) {
	fr := NewFileRepository(t.TempDir())
	fr.Save(Session{Token: "tok", Role: RoleAluno, UserID: "1"})

	if err := fr.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if s, _ := fr.Load(); !s.Anonymous() {
		t.Error("expected anonymous after clear")
	}

	// Clearing again is a no-op.
	if err := fr.Clear(); err != nil {
		t.Fatalf("second Clear() error: %v", err)
	}
}
