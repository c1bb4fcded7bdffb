// ABOUTME: TUI command for the biblioteca CLI
// ABOUTME: Starts the interactive terminal interface over a restored session

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ufxlib/biblioteca-cli/internal/debuglog"
	"github.com/ufxlib/biblioteca-cli/internal/session"
	"github.com/ufxlib/biblioteca-cli/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive interface",
	Long: `Open the full-screen terminal interface with the catalog, profile,
loans, reservations, and fines.

Set BIBLIOTECA_DEBUG=1 to write a debug log next to the session file.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if debuglog.Init(session.DefaultConfigDir()) {
			defer debuglog.Close()
		}

		api := newAPIClient()
		store, _ := initializeSession(ctx, api)

		if err := tui.Run(api, store); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
