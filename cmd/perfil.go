// ABOUTME: Profile command for the biblioteca CLI
// ABOUTME: Shows the account dashboard backed by the local stats cache

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ufxlib/biblioteca-cli/internal/client"
	"github.com/ufxlib/biblioteca-cli/internal/session"
	"github.com/ufxlib/biblioteca-cli/internal/statscache"
)

var perfilAtualizar bool

var perfilCmd = &cobra.Command{
	Use:   "perfil",
	Short: "Show the account dashboard",
	Long: `Show the usage statistics of the current session. Values are cached
locally for a few minutes; --atualizar forces a refetch.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runPerfil(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(perfilCmd)
	perfilCmd.Flags().BoolVar(&perfilAtualizar, "atualizar", false, "Bypass the local stats cache")
}

// runPerfil shows the dashboard and returns exit code
func runPerfil(ctx context.Context, w io.Writer) int {
	api := newAPIClient()
	_, sess := initializeSession(ctx, api)
	if sess.Anonymous() {
		fmt.Fprintln(w, "Error: sessão necessária, use biblioteca login")
		return 2
	}

	cache := statscache.New(session.DefaultConfigDir())
	if perfilAtualizar {
		cache.Invalidate(sess.UserID)
	}

	stats, cached := cache.Get(sess.UserID)
	if !cached {
		fetched, err := api.UserStats(ctx, sess.UserID)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		stats = *fetched
		cache.Put(sess.UserID, stats)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatPerfilJSON(sess, stats, cached))
	} else {
		fmt.Fprintln(w, formatPerfilHuman(sess, stats, cached))
	}
	return 0
}

// formatPerfilHuman formats the dashboard for human readability
func formatPerfilHuman(sess session.Session, stats client.UserStats, cached bool) string {
	out := fmt.Sprintf(`%s (%s)

Empréstimos ativos:  %d
Total de empréstimos: %d
Reservas ativas:     %d
Multas pendentes:    %d (R$ %.2f)`,
		sess.DisplayName, sess.Role,
		stats.EmprestimosAtivos,
		stats.TotalEmprestimos,
		stats.ReservasAtivas,
		stats.MultasPendentes, stats.TotalMultas)

	if cached {
		out += "\n\nValores em cache, use --atualizar para renovar."
	}
	return out
}

// formatPerfilJSON formats the dashboard as JSON
func formatPerfilJSON(sess session.Session, stats client.UserStats, cached bool) string {
	output := map[string]interface{}{
		"userId":      sess.UserID,
		"displayName": sess.DisplayName,
		"role":        string(sess.Role),
		"stats":       stats,
		"cached":      cached,
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
