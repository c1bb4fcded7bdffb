// ABOUTME: Shared test helpers for command tests
// ABOUTME: Seeds isolated session files and resets global flags

package cmd

import (
	"testing"

	"github.com/ufxlib/biblioteca-cli/internal/session"
)

// seedSession isolates the config directory and persists a session so
// commands under test find an authenticated user.
func seedSession(t *testing.T, sess session.Session) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	repo := session.NewFileRepository(session.DefaultConfigDir())
	if err := repo.Save(sess); err != nil {
		t.Fatalf("seeding session: %v", err)
	}
}

// isolateSession points the config directory at an empty temp dir so no
// developer session leaks into the test.
func isolateSession(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func testSession() session.Session {
	return session.Session{
		Token:       "tok-1",
		Role:        session.RoleAluno,
		UserID:      "u1",
		DisplayName: "Maria Silva",
	}
}
