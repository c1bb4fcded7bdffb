// ABOUTME: Tests for the loan list component
// ABOUTME: Verifies due badges, action messages, and removal handling

package loanlist

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ufxlib/biblioteca-cli/internal/client"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
}

func sampleLoans() []client.Loan {
	now := fixedNow()
	return []client.Loan{
		{ID: "l1", Titulo: "Redes", DataDevolucao: now.Add(-72 * time.Hour)},
		{ID: "l2", Titulo: "Bancos de Dados", DataDevolucao: now.Add(72 * time.Hour)},
	}
}

func newFixedList() *List {
	l := New()
	l.now = fixedNow
	return l
}

func TestLoanListShowsOverdueFee(t *testing.T) {
	l := newFixedList()
	l.SetLoans(sampleLoans())

	view := l.View()
	if !strings.Contains(view, "ATRASADO") {
		t.Error("expected overdue badge")
	}
	if !strings.Contains(view, "multa R$ 3.00") {
		t.Errorf("expected accumulated fee, got %q", view)
	}
	if !strings.Contains(view, "EM DIA") {
		t.Error("expected on-time badge")
	}
}

func TestReturnEmitsRequest(t *testing.T) {
	l := newFixedList()
	l.SetLoans(sampleLoans())

	_, cmd := l.Update(keyMsg("d"))
	if cmd == nil {
		t.Fatal("expected a command on return key")
	}

	msg, ok := cmd().(ReturnRequestedMsg)
	if !ok {
		t.Fatalf("expected ReturnRequestedMsg, got %T", cmd())
	}
	if msg.LoanID != "l1" {
		t.Errorf("expected l1, got %s", msg.LoanID)
	}
}

func TestRenewEmitsRequest(t *testing.T) {
	l := newFixedList()
	l.SetLoans(sampleLoans())

	l.Update(keyMsg("j"))
	_, cmd := l.Update(keyMsg("r"))
	if cmd == nil {
		t.Fatal("expected a command on renew key")
	}

	msg, ok := cmd().(RenewRequestedMsg)
	if !ok {
		t.Fatalf("expected RenewRequestedMsg, got %T", cmd())
	}
	if msg.LoanID != "l2" {
		t.Errorf("expected l2, got %s", msg.LoanID)
	}
}

func TestActionIgnoredWhilePending(t *testing.T) {
	l := newFixedList()
	l.SetLoans(sampleLoans())

	l.Update(keyMsg("d"))
	_, cmd := l.Update(keyMsg("r"))
	if cmd != nil {
		t.Error("expected second action on the same loan to be a no-op")
	}
}

func TestRemoveDropsReturnedLoan(t *testing.T) {
	l := newFixedList()
	l.SetLoans(sampleLoans())

	l.Update(keyMsg("d"))
	l.Remove("l1")

	view := l.View()
	if strings.Contains(view, "Redes") {
		t.Error("expected returned loan to be removed")
	}
	if !strings.Contains(view, "Bancos de Dados") {
		t.Error("expected remaining loan to stay")
	}
}

func TestEmptyState(t *testing.T) {
	l := newFixedList()
	l.SetLoans(nil)

	if !strings.Contains(l.View(), "Nenhum empréstimo ativo") {
		t.Error("expected empty-state message")
	}
}

func TestRetryAfterFetchFailureEmitsMsg(t *testing.T) {
	l := newFixedList()
	l.SetError("connection refused")

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

func TestRetryWithoutErrorIsNoOp(t *testing.T) {
	l := newFixedList()
	l.SetLoans(sampleLoans())

	_, cmd := l.Update(keyMsg("u"))
	if cmd != nil {
		t.Error("expected no command without an error state")
	}
}
