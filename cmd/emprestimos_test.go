// ABOUTME: Tests for the emprestimos command
// ABOUTME: Verifies due-state rendering and session gating

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ufxlib/biblioteca-cli/internal/client"
)

func TestFormatLoansHuman_Overdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	loans := []client.Loan{
		{ID: "l1", Titulo: "Redes", DataDevolucao: now.Add(-72 * time.Hour)},
		{ID: "l2", Titulo: "Bancos de Dados", DataDevolucao: now.Add(72 * time.Hour)},
	}

	output := formatLoansHuman(loans, now)

	if !strings.Contains(output, "atrasado") {
		t.Error("expected overdue marker")
	}
	if !strings.Contains(output, "multa R$ 3.00") {
		t.Errorf("expected accumulated fee for 3 days, got %q", output)
	}
	if !strings.Contains(output, "em dia") {
		t.Error("expected on-time marker")
	}
}

func TestFormatLoansHuman_Empty(t *testing.T) {
	output := formatLoansHuman(nil, time.Now())
	if output != "Nenhum empréstimo ativo." {
		t.Errorf("unexpected empty-list output: %q", output)
	}
}

func TestFormatLoansJSON_DerivedFields(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	loans := []client.Loan{
		{ID: "l1", Titulo: "Redes", DataDevolucao: now.Add(-24 * time.Hour)},
	}

	output := formatLoansJSON(loans, now)

	var parsed []map[string]interface{}
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed[0]["atrasado"] != true {
		t.Error("expected atrasado to be true")
	}
	if parsed[0]["multa"].(float64) != 1.0 {
		t.Errorf("expected multa 1.0, got %v", parsed[0]["multa"])
	}
}

func TestRunEmprestimos_NoSession(t *testing.T) {
	isolateSession(t)
	apiURL = "http://localhost:1"
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	code := runEmprestimos(context.Background(), &buf)

	if code != 2 {
		t.Errorf("expected exit code 2 without a session, got %d", code)
	}
	if !strings.Contains(buf.String(), "sessão necessária") {
		t.Errorf("expected session hint, got %q", buf.String())
	}
}
