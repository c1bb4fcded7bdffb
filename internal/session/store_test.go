// ABOUTME: Tests for the session store lifecycle
// ABOUTME: Uses an in-memory repository and httptest backends

package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ufxlib/biblioteca-cli/internal/client"
)

func profileServer(t *testing.T, status int, user client.User) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		if status == http.StatusOK {
			json.NewEncoder(w).Encode(user)
		} else {
			json.NewEncoder(w).Encode(client.ErrorResponse{Error: "token inválido"})
		}
	}))
}

func TestRestoreEmptyIsAnonymous(t *testing.T) {
	st := NewStore(NewMemoryRepository(), client.New("http://localhost:1"))

	if s := st.Restore(); !s.Anonymous() {
		t.Errorf("expected anonymous, got %+v", s)
	}
}

func TestRestoreUsesCachedProfile(t *testing.T) {
	repo := NewMemoryRepository()
	repo.Save(Session{Token: "tok", Role: RoleAluno, UserID: "42", DisplayName: "Maria"})

	st := NewStore(repo, client.New("http://localhost:1"))
	s := st.Restore()
	if s.Anonymous() || s.DisplayName != "Maria" {
		t.Errorf("expected cached profile, got %+v", s)
	}
}

func TestRestoreClearsInvariantViolation(t *testing.T) {
	repo := NewMemoryRepository()
	repo.Save(Session{Token: "tok", UserID: "42"}) // token without role

	st := NewStore(repo, client.New("http://localhost:1"))
	if s := st.Restore(); !s.Anonymous() {
		t.Errorf("expected anonymous after invariant violation, got %+v", s)
	}
	if stored, _ := repo.Load(); !stored.Anonymous() {
		t.Error("expected repository cleared")
	}
}

func TestValidateRefreshesProfile(t *testing.T) {
	server := profileServer(t, http.StatusOK, client.User{ID: "42", Nome: "Maria Silva", Role: "professor"})
	defer server.Close()

	repo := NewMemoryRepository()
	repo.Save(Session{Token: "tok", Role: RoleAluno, UserID: "42", DisplayName: "Maria"})

	st := NewStore(repo, client.New(server.URL))
	st.Restore()
	s := st.Validate(context.Background())

	if s.DisplayName != "Maria Silva" {
		t.Errorf("expected refreshed name, got %s", s.DisplayName)
	}
	if s.Role != RoleProfessor {
		t.Errorf("expected refreshed role professor, got %s", s.Role)
	}
	if stored, _ := repo.Load(); stored.DisplayName != "Maria Silva" {
		t.Error("expected refreshed profile persisted")
	}
}

func TestValidateFailureClearsEverything(t *testing.T) {
	server := profileServer(t, http.StatusUnauthorized, client.User{})
	defer server.Close()

	repo := NewMemoryRepository()
	repo.Save(Session{Token: "tok", Role: RoleAluno, UserID: "42"})

	st := NewStore(repo, client.New(server.URL))
	st.Restore()
	s := st.Validate(context.Background())

	if !s.Anonymous() {
		t.Errorf("expected anonymous after 401, got %+v", s)
	}
	if stored, _ := repo.Load(); !stored.Anonymous() {
		t.Error("expected persisted session cleared")
	}
}

func TestValidateNetworkFailureClears(t *testing.T) {
	repo := NewMemoryRepository()
	repo.Save(Session{Token: "tok", Role: RoleAluno, UserID: "42"})

	st := NewStore(repo, client.New("http://localhost:1"))
	st.Restore()
	if s := st.Validate(context.Background()); !s.Anonymous() {
		t.Errorf("expected anonymous after network failure, got %+v", s)
	}
}

func TestLoginPersistsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(client.LoginResponse{
			Token: "tok-novo",
			User:  client.User{ID: "42", Nome: "Maria", Role: "aluno"},
		})
	}))
	defer server.Close()

	repo := NewMemoryRepository()
	st := NewStore(repo, client.New(server.URL))

	s, err := st.Login(context.Background(), "2023123456", "senha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Token != "tok-novo" || s.Role != RoleAluno {
		t.Errorf("unexpected session: %+v", s)
	}
	if stored, _ := repo.Load(); stored.Token != "tok-novo" {
		t.Error("expected session persisted on login")
	}
}

func TestLoginDerivesRoleWhenBackendOmitsIt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(client.LoginResponse{
			Token: "tok",
			User:  client.User{ID: "7", Nome: "Carlos"},
		})
	}))
	defer server.Close()

	st := NewStore(NewMemoryRepository(), client.New(server.URL))

	s, err := st.Login(context.Background(), "carlos.souza@ufx.edu.br", "senha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Role != RoleProfessor {
		t.Errorf("expected derived role professor, got %s", s.Role)
	}
}

func TestLoginFailureLeavesSessionUnchanged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(client.ErrorResponse{Error: "credenciais inválidas"})
	}))
	defer server.Close()

	repo := NewMemoryRepository()
	repo.Save(Session{Token: "antigo", Role: RoleAluno, UserID: "1"})

	st := NewStore(repo, client.New(server.URL))
	st.Restore()

	s, err := st.Login(context.Background(), "2023123456", "errada")
	if err == nil {
		t.Fatal("expected login error")
	}
	if s.Token != "antigo" {
		t.Errorf("expected session unchanged, got %+v", s)
	}
}

type failingSaveRepository struct {
	*MemoryRepository
}

func (r *failingSaveRepository) Save(Session) error {
	return errors.New("disco cheio")
}

func TestValidateKeepsRefreshedProfileWhenSaveFails(t *testing.T) {
	server := profileServer(t, http.StatusOK, client.User{ID: "42", Nome: "Maria Silva", Role: "aluno"})
	defer server.Close()

	inner := NewMemoryRepository()
	inner.Save(Session{Token: "tok", Role: RoleAluno, UserID: "42", DisplayName: "Maria"})

	st := NewStore(&failingSaveRepository{inner}, client.New(server.URL))
	st.Restore()
	s := st.Validate(context.Background())

	if s.Anonymous() {
		t.Fatal("expected session kept when only the save fails")
	}
	if s.DisplayName != "Maria Silva" {
		t.Errorf("expected refreshed name in memory, got %s", s.DisplayName)
	}
}

func TestLoginWhileCurrentIsReadConcurrently(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(client.LoginResponse{
			Token: "tok",
			User:  client.User{ID: "42", Nome: "Maria", Role: "aluno"},
		})
	}))
	defer server.Close()

	st := NewStore(NewMemoryRepository(), client.New(server.URL))

	// Login runs off the event loop in the TUI while Current is read on
	// every frame; the race detector flags any unguarded access here.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			st.Current()
		}
	}()

	if _, err := st.Login(context.Background(), "2023123456", "senha"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	<-done

	if st.Current().Token != "tok" {
		t.Errorf("expected logged-in session, got %+v", st.Current())
	}
}

func TestLogoutClearsWithoutBackendCall(t *testing.T) {
	repo := NewMemoryRepository()
	repo.Save(Session{Token: "tok", Role: RoleAluno, UserID: "42"})

	// Unreachable backend: logout must still succeed.
	st := NewStore(repo, client.New("http://localhost:1"))
	st.Restore()

	if err := st.Logout(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !st.Current().Anonymous() {
		t.Error("expected anonymous after logout")
	}
	if stored, _ := repo.Load(); !stored.Anonymous() {
		t.Error("expected persisted session removed")
	}
}
