// ABOUTME: Logout command for the biblioteca CLI
// ABOUTME: Discards the persisted session without contacting the backend

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	Long:  `Discard the persisted session. The backend is not called; the stored token simply stops being used.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runLogout(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session and returns exit code
func runLogout(w io.Writer) int {
	store := newSessionStore(newAPIClient())
	sess := store.Restore()

	if sess.Anonymous() {
		fmt.Fprintln(w, "Nenhuma sessão ativa.")
		return 0
	}

	if err := store.Logout(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintln(w, "Sessão encerrada.")
	return 0
}
