// ABOUTME: Tests for the check command
// ABOUTME: Verifies account findings and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ufxlib/biblioteca-cli/internal/client"
)

func TestCountResults_AllPassed(t *testing.T) {
	results := []checkResult{
		{name: "Empréstimos em atraso", detail: "0", passed: true},
		{name: "Multas pendentes", detail: "0", passed: true},
	}

	passed, failed := countResults(results)
	if passed != 2 {
		t.Errorf("expected 2 passed, got %d", passed)
	}
	if failed != 0 {
		t.Errorf("expected 0 failed, got %d", failed)
	}
}

func TestFormatCheckHuman(t *testing.T) {
	results := []checkResult{
		{name: "Empréstimos em atraso", detail: "0 (R$ 0.00 acumulado)", passed: true},
		{name: "Multas pendentes", detail: "2 (R$ 7.00)", passed: false},
	}

	output := formatCheckHuman(results)

	if !strings.Contains(output, "✓") {
		t.Error("expected checkmark for passed finding")
	}
	if !strings.Contains(output, "✗") {
		t.Error("expected X for failed finding")
	}
	if !strings.Contains(output, "PENDÊNCIAS") {
		t.Error("expected PENDÊNCIAS summary")
	}
}

func TestFormatCheckJSON(t *testing.T) {
	results := []checkResult{
		{name: "Multas pendentes", detail: "0 (R$ 0.00)", passed: true},
	}

	output := formatCheckJSON(results)

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["status"] != "passed" {
		t.Errorf("expected status passed, got %v", parsed["status"])
	}
}

// checkServer fakes the profile, loan, and fine endpoints.
func checkServer(t *testing.T, loans []client.Loan, fines []client.Fine) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/api/users/u1":
			json.NewEncoder(w).Encode(client.User{ID: "u1", Nome: "Maria Silva", Role: "aluno"})
		case r.URL.Path == "/emprestimos/usuario/u1":
			json.NewEncoder(w).Encode(loans)
		case r.URL.Path == "/api/fines/user/u1":
			json.NewEncoder(w).Encode(fines)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestRunCheck_NothingDue(t *testing.T) {
	future := time.Now().Add(72 * time.Hour)
	server := checkServer(t,
		[]client.Loan{{ID: "l1", Titulo: "Redes", DataDevolucao: future}},
		[]client.Fine{})
	defer server.Close()

	seedSession(t, testSession())
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	code := runCheck(context.Background(), &buf)

	if code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(buf.String(), "EM DIA") {
		t.Errorf("expected EM DIA summary, got %q", buf.String())
	}
}

func TestRunCheck_OverdueLoan(t *testing.T) {
	past := time.Now().Add(-72 * time.Hour)
	server := checkServer(t,
		[]client.Loan{{ID: "l1", Titulo: "Redes", DataDevolucao: past}},
		[]client.Fine{})
	defer server.Close()

	seedSession(t, testSession())
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	code := runCheck(context.Background(), &buf)

	if code != 1 {
		t.Errorf("expected exit code 1 for overdue loan, got %d", code)
	}
}

func TestRunCheck_PendingFine(t *testing.T) {
	future := time.Now().Add(72 * time.Hour)
	server := checkServer(t,
		[]client.Loan{{ID: "l1", Titulo: "Redes", DataDevolucao: future}},
		[]client.Fine{{ID: "f1", Valor: 3.5, Motivo: "atraso"}})
	defer server.Close()

	seedSession(t, testSession())
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	code := runCheck(context.Background(), &buf)

	if code != 1 {
		t.Errorf("expected exit code 1 for pending fine, got %d", code)
	}
}

func TestRunCheck_NoSession(t *testing.T) {
	isolateSession(t)
	apiURL = "http://localhost:1"
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	code := runCheck(context.Background(), &buf)

	if code != 2 {
		t.Errorf("expected exit code 2 without a session, got %d", code)
	}
}
