// ABOUTME: Whoami command for the biblioteca CLI
// ABOUTME: Shows the validated identity behind the persisted session

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Long: `Validate the persisted session against the backend and print the
profile it belongs to.

Exit codes:
  0 - Valid session
  1 - No valid session
  2 - Error`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami validates the session and returns exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	api := newAPIClient()
	_, sess := initializeSession(ctx, api)

	if sess.Anonymous() {
		if IsJSONOutput() {
			fmt.Fprintln(w, `{"authenticated": false}`)
		} else {
			fmt.Fprintln(w, "Não autenticado.")
		}
		return 1
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatSessionJSON(sess))
	} else {
		fmt.Fprintf(w, "%s (%s)\n", sess.DisplayName, sess.Role)
	}
	return 0
}
