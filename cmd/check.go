// ABOUTME: Check command for the biblioteca CLI
// ABOUTME: Flags overdue loans and pending fines for cron jobs and pipelines

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/ufxlib/biblioteca-cli/internal/loanstatus"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check for overdue loans and pending fines",
	Long: `Check the current session for overdue loans and pending fines and
exit non-zero if any exist. Suitable for cron jobs that alert before
fees accumulate.

Exit codes:
  0 - Nothing due
  1 - Overdue loans or pending fines found
  2 - Error (connectivity, no session)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCheck(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkResult represents one account finding
type checkResult struct {
	name   string
	detail string
	passed bool
}

// runCheck inspects the account and returns exit code
func runCheck(ctx context.Context, w io.Writer) int {
	api := newAPIClient()
	_, sess := initializeSession(ctx, api)
	if sess.Anonymous() {
		fmt.Fprintln(w, "Error: sessão necessária, use biblioteca login")
		return 2
	}

	loans, err := api.Loans(ctx, sess.UserID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fines, err := api.Fines(ctx, sess.UserID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	now := time.Now()
	var results []checkResult

	overdue := 0
	var accumulated float64
	for _, loan := range loans {
		st := loanstatus.Compute(loan.DataDevolucao, now)
		if st.Overdue {
			overdue++
			accumulated += st.LateFee
		}
	}
	results = append(results, checkResult{
		name:   "Empréstimos em atraso",
		detail: fmt.Sprintf("%d (R$ %.2f acumulado)", overdue, accumulated),
		passed: overdue == 0,
	})

	results = append(results, checkResult{
		name:   "Multas pendentes",
		detail: fmt.Sprintf("%d (R$ %.2f)", len(fines), sumFines(fines)),
		passed: len(fines) == 0,
	})

	if IsJSONOutput() {
		fmt.Fprintln(w, formatCheckJSON(results))
	} else {
		fmt.Fprintln(w, formatCheckHuman(results))
	}

	_, failed := countResults(results)
	if failed > 0 {
		return 1
	}
	return 0
}

// countResults returns the count of passed and failed checks
func countResults(results []checkResult) (passed, failed int) {
	for _, r := range results {
		if r.passed {
			passed++
		} else {
			failed++
		}
	}
	return
}

// formatCheckHuman formats check results for human readability
func formatCheckHuman(results []checkResult) string {
	var output string

	for _, r := range results {
		symbol := "✓"
		if !r.passed {
			symbol = "✗"
		}
		output += fmt.Sprintf("%s %s: %s\n", symbol, r.name, r.detail)
	}

	passed, failed := countResults(results)
	if failed > 0 {
		output += fmt.Sprintf("\nPENDÊNCIAS: %d item(ns) exigem atenção", failed)
	} else {
		output += fmt.Sprintf("\nEM DIA: %d verificação(ões) sem pendências", passed)
	}

	return output
}

// formatCheckJSON formats check results as JSON
func formatCheckJSON(results []checkResult) string {
	_, failed := countResults(results)

	checks := make([]map[string]interface{}, len(results))
	for i, r := range results {
		checks[i] = map[string]interface{}{
			"name":   r.name,
			"detail": r.detail,
			"passed": r.passed,
		}
	}

	status := "passed"
	if failed > 0 {
		status = "failed"
	}

	output := map[string]interface{}{
		"status": status,
		"checks": checks,
	}

	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
