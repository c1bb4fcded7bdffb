// ABOUTME: Login command for the biblioteca CLI
// ABOUTME: Exchanges credentials for a persisted session

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
	"github.com/ufxlib/biblioteca-cli/internal/session"
	"golang.org/x/term"
)

var loginSenha string

var loginCmd = &cobra.Command{
	Use:   "login <identificador>",
	Short: "Authenticate against the library backend",
	Long: `Authenticate with a matrícula or institutional e-mail and persist
the session for subsequent commands.

The password is read from --senha, the BIBLIOTECA_SENHA environment
variable, or an interactive prompt, in that order.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginSenha, "senha", "", "Password (overrides BIBLIOTECA_SENHA)")
}

// resolveSenha returns the password from flag, env, or prompt
func resolveSenha(w io.Writer) (string, error) {
	if loginSenha != "" {
		return loginSenha, nil
	}
	if env := os.Getenv("BIBLIOTECA_SENHA"); env != "" {
		return env, nil
	}

	fmt.Fprint(w, "Senha: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("lendo senha: %w", err)
	}
	return string(raw), nil
}

// runLogin executes the credential exchange and returns exit code
func runLogin(ctx context.Context, w io.Writer, identifier string) int {
	senha, err := resolveSenha(w)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if senha == "" {
		fmt.Fprintln(w, "Error: senha vazia")
		return 2
	}

	api := newAPIClient()
	store := newSessionStore(api)

	sess, err := store.Login(ctx, identifier, senha)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatSessionJSON(sess))
	} else {
		fmt.Fprintf(w, "Autenticado como %s (%s)\n", sess.DisplayName, sess.Role)
	}
	return 0
}

// formatSessionJSON formats a session for machine consumption
func formatSessionJSON(sess session.Session) string {
	output := map[string]interface{}{
		"userId":      sess.UserID,
		"displayName": sess.DisplayName,
		"role":        string(sess.Role),
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
