// ABOUTME: Fine commands for the biblioteca CLI
// ABOUTME: Lists pending fines with a running total and registers payments

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

	"github.com/spf13/cobra"
	"github.com/ufxlib/biblioteca-cli/internal/client"
)

var multasHistorico bool

var multasCmd = &cobra.Command{
	Use:   "multas",
	Short: "List fines",
	Long:  `List the pending fines of the current session, or the full history with --historico.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runMultas(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var multasPagarCmd = &cobra.Command{
	Use:   "pagar <id>",
	Short: "Pay a fine",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runMultaPagar(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(multasCmd)
	multasCmd.AddCommand(multasPagarCmd)
	multasCmd.Flags().BoolVar(&multasHistorico, "historico", false, "Show the full fine history")
}

// runMultas lists fines and returns exit code
func runMultas(ctx context.Context, w io.Writer) int {
	api := newAPIClient()
	_, sess := initializeSession(ctx, api)
	if sess.Anonymous() {
		fmt.Fprintln(w, "Error: sessão necessária, use biblioteca login")
		return 2
	}

	var (
		fines []client.Fine
		err   error
	)
	if multasHistorico {
		fines, err = api.FineHistory(ctx, sess.UserID)
	} else {
		fines, err = api.Fines(ctx, sess.UserID)
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatFinesJSON(fines))
	} else {
		fmt.Fprintln(w, formatFinesHuman(fines, multasHistorico))
	}
	return 0
}

// runMultaPagar pays a fine and returns exit code
func runMultaPagar(ctx context.Context, w io.Writer, id string) int {
	api := newAPIClient()
	_, sess := initializeSession(ctx, api)
	if sess.Anonymous() {
		fmt.Fprintln(w, "Error: sessão necessária, use biblioteca login")
		return 2
	}

	if err := api.PayFine(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Multa %s paga.\n", id)
	return 0
}

// sumFines totals the listed fine values
func sumFines(fines []client.Fine) float64 {
	var total float64
	for _, f := range fines {
		total += f.Valor
	}
	return total
}

// formatFinesHuman formats the fine list for human readability
func formatFinesHuman(fines []client.Fine, history bool) string {
	if len(fines) == 0 {
		if history {
			return "Nenhuma multa registrada."
		}
		return "Nenhuma multa pendente."
	}

	var b strings.Builder
	for _, fine := range fines {
		fmt.Fprintf(&b, "%-12s R$ %8.2f  %s\n", fine.ID, fine.Valor, fine.Motivo)
	}
	if !history {
		fmt.Fprintf(&b, "\nTotal pendente: R$ %.2f", sumFines(fines))
	}
	return b.String()
}

// formatFinesJSON formats the fine list as JSON with the total
func formatFinesJSON(fines []client.Fine) string {
	output := map[string]interface{}{
		"multas": fines,
		"total":  sumFines(fines),
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
