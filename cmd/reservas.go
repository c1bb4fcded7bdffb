// ABOUTME: Reservation commands for the biblioteca CLI
// ABOUTME: Lists, creates, and cancels reservations for the current session

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

var reservasHistorico bool

var reservasCmd = &cobra.Command{
	Use:   "reservas",
	Short: "List reservations",
	Long:  `List the active reservations of the current session, or the full history with --historico.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runReservas(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var reservasCriarCmd = &cobra.Command{
	Use:   "criar <livro-id>",
	Short: "Reserve a book",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runReservaCriar(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var reservasCancelarCmd = &cobra.Command{
	Use:   "cancelar <id>",
	Short: "Cancel a reservation",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runReservaCancelar(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(reservasCmd)
	reservasCmd.AddCommand(reservasCriarCmd)
	reservasCmd.AddCommand(reservasCancelarCmd)
	reservasCmd.Flags().BoolVar(&reservasHistorico, "historico", false, "Show the full reservation history")
}

// runReservas lists reservations and returns exit code
func runReservas(ctx context.Context, w io.Writer) int {
	api := newAPIClient()
	_, sess := initializeSession(ctx, api)
	if sess.Anonymous() {
		fmt.Fprintln(w, "Error: sessão necessária, use biblioteca login")
		return 2
	}

	var (
		list []client.Reservation
		err  error
	)
	if reservasHistorico {
		list, err = api.ReservationHistory(ctx, sess.UserID)
	} else {
		list, err = api.ActiveReservations(ctx, sess.UserID)
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(list, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatReservationsHuman(list))
	}
	return 0
}

// runReservaCriar creates a reservation and returns exit code
func runReservaCriar(ctx context.Context, w io.Writer, bookID string) int {
	api := newAPIClient()
	_, sess := initializeSession(ctx, api)
	if sess.Anonymous() {
		fmt.Fprintln(w, "Error: sessão necessária, use biblioteca login")
		return 2
	}

	res, err := api.CreateReservation(ctx, bookID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Reserva %s criada (%s).\n", res.ID, res.Status)
	return 0
}

// runReservaCancelar cancels a reservation and returns exit code
func runReservaCancelar(ctx context.Context, w io.Writer, id string) int {
	api := newAPIClient()
	_, sess := initializeSession(ctx, api)
	if sess.Anonymous() {
		fmt.Fprintln(w, "Error: sessão necessária, use biblioteca login")
		return 2
	}

	if err := api.CancelReservation(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Reserva %s cancelada.\n", id)
	return 0
}

// formatReservationsHuman formats the reservation list for human readability
func formatReservationsHuman(list []client.Reservation) string {
	if len(list) == 0 {
		return "Nenhuma reserva encontrada."
	}

	var b strings.Builder
	for _, res := range list {
		fmt.Fprintf(&b, "%-12s %s\n", res.ID, res.Titulo)
		fmt.Fprintf(&b, "             %s · reservado em %s\n", res.Status, res.DataReserva.Format("02/01/2006"))
	}
	fmt.Fprintf(&b, "\n%d reservas", len(list))
	return b.String()
}
