// ABOUTME: Tests for whoami and logout commands
// ABOUTME: Verifies session validation, output, and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ufxlib/biblioteca-cli/internal/client"
	"github.com/ufxlib/biblioteca-cli/internal/session"
)

func TestRunWhoami_ValidSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/u1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client.User{ID: "u1", Nome: "Maria Silva", Role: "aluno"})
	}))
	defer server.Close()

	seedSession(t, testSession())
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	code := runWhoami(context.Background(), &buf)

	if code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(buf.String(), "Maria Silva") {
		t.Errorf("expected display name, got %q", buf.String())
	}
}

func TestRunWhoami_InvalidToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "token expirado"})
	}))
	defer server.Close()

	seedSession(t, testSession())
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	code := runWhoami(context.Background(), &buf)

	if code != 1 {
		t.Errorf("expected exit code 1 for invalid session, got %d", code)
	}
	if !strings.Contains(buf.String(), "Não autenticado") {
		t.Errorf("expected anonymous output, got %q", buf.String())
	}

	// the invalid session file must be gone
	repo := session.NewFileRepository(session.DefaultConfigDir())
	s, err := repo.Load()
	if err != nil {
		t.Fatalf("loading session after forced clear: %v", err)
	}
	if !s.Anonymous() {
		t.Error("expected session file to be cleared after failed validation")
	}
}

func TestRunWhoami_NoSession(t *testing.T) {
	isolateSession(t)
	apiURL = "http://localhost:1"
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	code := runWhoami(context.Background(), &buf)

	if code != 1 {
		t.Errorf("expected exit code 1 without a session, got %d", code)
	}
}

func TestRunLogout_ClearsSession(t *testing.T) {
	seedSession(t, testSession())
	apiURL = "http://localhost:1"
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	code := runLogout(&buf)

	if code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(buf.String(), "Sessão encerrada") {
		t.Errorf("expected logout confirmation, got %q", buf.String())
	}

	repo := session.NewFileRepository(session.DefaultConfigDir())
	s, _ := repo.Load()
	if !s.Anonymous() {
		t.Error("expected session file to be cleared")
	}
}

func TestRunLogout_NoSession(t *testing.T) {
	isolateSession(t)
	apiURL = "http://localhost:1"
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	code := runLogout(&buf)

	if code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(buf.String(), "Nenhuma sessão ativa") {
		t.Errorf("expected no-session message, got %q", buf.String())
	}
}
