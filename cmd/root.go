// ABOUTME: Root command for the biblioteca CLI
// ABOUTME: Handles global flags, environment configuration, and session wiring

package cmd

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/ufxlib/biblioteca-cli/internal/client"
	"github.com/ufxlib/biblioteca-cli/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
)

const defaultAPIURL = "http://localhost:8080"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "biblioteca",
	Short: "Terminal client for the university library",
	Long: `biblioteca is a terminal client for the university library service.

It covers the catalog, loans, reservations, and fines without leaving
the terminal, and scripts cleanly for cron jobs and shell pipelines.

Environment Variables:
  BIBLIOTECA_API_URL  Backend API URL (default: http://localhost:8080)`,
}

// Execute runs the root command
func Execute() error {
	// .env is optional, absence is not an error
	godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides BIBLIOTECA_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("BIBLIOTECA_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// newAPIClient builds an API client for the configured backend
func newAPIClient() *client.Client {
	return client.New(GetAPIURL())
}

// newSessionStore builds a session store over the persisted session file
func newSessionStore(api *client.Client) *session.Store {
	repo := session.NewFileRepository(session.DefaultConfigDir())
	return session.NewStore(repo, api)
}

// initializeSession restores and validates the persisted session
func initializeSession(ctx context.Context, api *client.Client) (*session.Store, session.Session) {
	store := newSessionStore(api)
	return store, store.Initialize(ctx)
}
