// ABOUTME: Admin user commands for the biblioteca CLI
// ABOUTME: Lists accounts and changes their active/blocked status

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

var usuariosCmd = &cobra.Command{
	Use:   "usuarios",
	Short: "List registered users (admin)",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runUsuarios(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var usuariosStatusCmd = &cobra.Command{
	Use:   "status <id> <ativo|bloqueado>",
	Short: "Change an account status (admin)",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runUsuarioStatus(ctx, os.Stdout, args[0], args[1])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(usuariosCmd)
	usuariosCmd.AddCommand(usuariosStatusCmd)
}

// runUsuarios lists users and returns exit code
func runUsuarios(ctx context.Context, w io.Writer) int {
	api := newAPIClient()
	_, sess := initializeSession(ctx, api)
	if !sess.IsAdmin() {
		fmt.Fprintln(w, "Error: apenas administradores podem gerenciar usuários")
		return 2
	}

	users, err := api.Users(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(users, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatUsersHuman(users))
	}
	return 0
}

// runUsuarioStatus changes an account status and returns exit code
func runUsuarioStatus(ctx context.Context, w io.Writer, id, status string) int {
	if status != "ativo" && status != "bloqueado" {
		fmt.Fprintln(w, "Error: status deve ser ativo ou bloqueado")
		return 2
	}

	api := newAPIClient()
	_, sess := initializeSession(ctx, api)
	if !sess.IsAdmin() {
		fmt.Fprintln(w, "Error: apenas administradores podem gerenciar usuários")
		return 2
	}

	u, err := api.UpdateUserStatus(ctx, id, status)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "%s agora está %s.\n", u.Nome, u.Status)
	return 0
}

// formatUsersHuman formats the user list for human readability
func formatUsersHuman(users []client.User) string {
	if len(users) == 0 {
		return "Nenhum usuário cadastrado."
	}

	var b strings.Builder
	for _, u := range users {
		status := u.Status
		if status == "" {
			status = "ativo"
		}
		fmt.Fprintf(&b, "%-12s %-10s %-10s %s\n", u.ID, u.Role, status, u.Nome)
		if u.Email != "" {
			fmt.Fprintf(&b, "             %s\n", u.Email)
		}
	}
	fmt.Fprintf(&b, "\n%d usuários", len(users))
	return b.String()
}
