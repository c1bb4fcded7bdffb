// ABOUTME: Loan commands for the biblioteca CLI
// ABOUTME: Lists active loans with due state and drives return and renewal

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/ufxlib/biblioteca-cli/internal/client"
	"github.com/ufxlib/biblioteca-cli/internal/loanstatus"
)

var emprestimosCmd = &cobra.Command{
	Use:   "emprestimos",
	Short: "List active loans",
	Long: `List the active loans of the current session with their due state
and accumulated late fees.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runEmprestimos(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var emprestimosDevolverCmd = &cobra.Command{
	Use:   "devolver <id>",
	Short: "Return a loan",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runEmprestimoDevolver(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var emprestimosRenovarCmd = &cobra.Command{
	Use:   "renovar <id>",
	Short: "Renew a loan",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runEmprestimoRenovar(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(emprestimosCmd)
	emprestimosCmd.AddCommand(emprestimosDevolverCmd)
	emprestimosCmd.AddCommand(emprestimosRenovarCmd)
}

// runEmprestimos lists active loans and returns exit code
func runEmprestimos(ctx context.Context, w io.Writer) int {
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

	if IsJSONOutput() {
		fmt.Fprintln(w, formatLoansJSON(loans, time.Now()))
	} else {
		fmt.Fprintln(w, formatLoansHuman(loans, time.Now()))
	}
	return 0
}

// runEmprestimoDevolver returns a loan and returns exit code
func runEmprestimoDevolver(ctx context.Context, w io.Writer, id string) int {
	api := newAPIClient()
	_, sess := initializeSession(ctx, api)
	if sess.Anonymous() {
		fmt.Fprintln(w, "Error: sessão necessária, use biblioteca login")
		return 2
	}

	if err := api.ReturnLoan(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Empréstimo %s devolvido.\n", id)
	return 0
}

// runEmprestimoRenovar renews a loan and returns exit code
func runEmprestimoRenovar(ctx context.Context, w io.Writer, id string) int {
	api := newAPIClient()
	_, sess := initializeSession(ctx, api)
	if sess.Anonymous() {
		fmt.Fprintln(w, "Error: sessão necessária, use biblioteca login")
		return 2
	}

	loan, err := api.RenewLoan(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Empréstimo %s renovado até %s.\n", loan.ID, loan.DataDevolucao.Format("02/01/2006"))
	return 0
}

// formatLoansHuman formats the loan list with the derived due state
func formatLoansHuman(loans []client.Loan, now time.Time) string {
	if len(loans) == 0 {
		return "Nenhum empréstimo ativo."
	}

	var b strings.Builder
	for _, loan := range loans {
		st := loanstatus.Compute(loan.DataDevolucao, now)
		fmt.Fprintf(&b, "%-12s %s\n", loan.ID, loan.Titulo)
		fmt.Fprintf(&b, "             devolução %s · %s", loan.DataDevolucao.Format("02/01/2006"), st.Label())
		if st.Overdue {
			fmt.Fprintf(&b, " · multa R$ %.2f", st.LateFee)
		}
		fmt.Fprintln(&b)
	}
	fmt.Fprintf(&b, "\n%d empréstimos", len(loans))
	return b.String()
}

// formatLoansJSON formats the loan list as JSON with derived fields
func formatLoansJSON(loans []client.Loan, now time.Time) string {
	type loanOutput struct {
		client.Loan
		DiasRestantes int     `json:"diasRestantes"`
		Atrasado      bool    `json:"atrasado"`
		Multa         float64 `json:"multa"`
	}

	output := make([]loanOutput, len(loans))
	for i, loan := range loans {
		st := loanstatus.Compute(loan.DataDevolucao, now)
		output[i] = loanOutput{
			Loan:          loan,
			DiasRestantes: st.DaysRemaining,
			Atrasado:      st.Overdue,
			Multa:         st.LateFee,
		}
	}

	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
