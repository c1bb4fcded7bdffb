// ABOUTME: Tests for the search result list component
// ABOUTME: Verifies cursor movement, selection, and state rendering

package results

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ufxlib/biblioteca-cli/internal/client"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sampleBooks() []client.Book {
	return []client.Book{
		{ID: "b1", Titulo: "Redes de Computadores", Autor: "Tanenbaum", Tipo: "Livro", Ano: 2011, Disponivel: true},
		{ID: "b2", Titulo: "Sistemas Operacionais", Autor: "Silberschatz", Tipo: "Livro", Ano: 2015, Disponivel: false},
	}
}

func TestListLoadingState(t *testing.T) {
	l := New("redes")
	if !strings.Contains(l.View(), "Buscando...") {
		t.Error("expected loading indicator before results arrive")
	}
}

func TestListRendersBooks(t *testing.T) {
	l := New("redes")
	l.SetBooks(sampleBooks())

	view := l.View()
	if !strings.Contains(view, "Redes de Computadores") {
		t.Error("expected first title")
	}
	if !strings.Contains(view, "2 materiais") {
		t.Error("expected result count")
	}
}

func TestListEmptyState(t *testing.T) {
	l := New("xyz")
	l.SetBooks(nil)

	if !strings.Contains(l.View(), "Nenhum material encontrado") {
		t.Error("expected empty-state message")
	}
}

func TestListErrorState(t *testing.T) {
	l := New("redes")
	l.SetError("serviço indisponível, tente novamente mais tarde")

	if !strings.Contains(l.View(), "serviço indisponível") {
		t.Error("expected error message")
	}
}

func TestListEnterSelectsBook(t *testing.T) {
	l := New("redes")
	l.SetBooks(sampleBooks())

	l.Update(keyMsg("j"))
	_, cmd := l.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on enter")
	}

	msg, ok := cmd().(BookSelectedMsg)
	if !ok {
		t.Fatalf("expected BookSelectedMsg, got %T", cmd())
	}
	if msg.Book.ID != "b2" {
		t.Errorf("expected second book selected, got %s", msg.Book.ID)
	}
}

func TestListEnterIgnoredWhileLoading(t *testing.T) {
	l := New("redes")

	_, cmd := l.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no selection while loading")
	}
}

func TestListEscGoesBack(t *testing.T) {
	l := New("redes")
	l.SetBooks(sampleBooks())

	_, cmd := l.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a command on esc")
	}
	if _, ok := cmd().(BackMsg); !ok {
		t.Fatalf("expected BackMsg, got %T", cmd())
	}
}

func TestListRetryAfterFailureEmitsMsg(t *testing.T) {
	l := New("redes")
	l.SetError("connection refused")

	if !strings.Contains(l.View(), "u tentar novamente") {
		t.Error("expected retry hint in error view")
	}

	_, cmd := l.Update(keyMsg("u"))
	if cmd == nil {
		t.Fatal("expected a retry command")
	}
	if _, ok := cmd().(RetryMsg); !ok {
		t.Errorf("expected RetryMsg, got %T", cmd())
	}
	if !l.loading {
		t.Error("expected loading state while the retry is in flight")
	}
}

func TestListRetryWithoutErrorIsNoOp(t *testing.T) {
	l := New("redes")
	l.SetBooks(sampleBooks())

	_, cmd := l.Update(keyMsg("u"))
	if cmd != nil {
		t.Error("expected no command without an error state")
	}
}
