// ABOUTME: Catalog search command for the biblioteca CLI
// ABOUTME: Maps flags onto search criteria with a "todos" sentinel

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
	"github.com/ufxlib/biblioteca-cli/internal/search"
)

var (
	buscaTipo            string
	buscaAno             string
	buscaIdioma          string
	buscaDisponibilidade string
)

var buscaCmd = &cobra.Command{
	Use:   "busca [termo]",
	Short: "Search the catalog",
	Long: `Search the catalog by free text and filters. Filters left at
"todos" do not restrict the result.

Example:
  biblioteca busca redes --tipo Livro --disponibilidade disponivel`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		query := ""
		if len(args) > 0 {
			query = args[0]
		}

		exitCode := runBusca(ctx, os.Stdout, query)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(buscaCmd)
	buscaCmd.Flags().StringVar(&buscaTipo, "tipo", search.All, "Material type filter")
	buscaCmd.Flags().StringVar(&buscaAno, "ano", search.All, "Publication year range filter")
	buscaCmd.Flags().StringVar(&buscaIdioma, "idioma", search.All, "Language filter")
	buscaCmd.Flags().StringVar(&buscaDisponibilidade, "disponibilidade", search.All, "Availability filter")
}

// runBusca executes the catalog search and returns exit code
func runBusca(ctx context.Context, w io.Writer, query string) int {
	criteria := search.Criteria{
		Query:        query,
		MaterialType: buscaTipo,
		YearRange:    buscaAno,
		Language:     buscaIdioma,
		Availability: buscaDisponibilidade,
	}

	api := newAPIClient()
	books, err := api.SearchBooks(ctx, criteria.Build())
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatBooksJSON(books))
	} else {
		fmt.Fprintln(w, formatBooksHuman(books))
	}
	return 0
}

// formatBooksHuman formats a book list for human readability
func formatBooksHuman(books []client.Book) string {
	if len(books) == 0 {
		return "Nenhum material encontrado."
	}

	var b strings.Builder
	for _, book := range books {
		availability := "disponível"
		if !book.Disponivel {
			availability = "emprestado"
		}
		fmt.Fprintf(&b, "%-12s %s\n", book.ID, book.Titulo)
		fmt.Fprintf(&b, "             %s · %s", book.Autor, book.Tipo)
		if book.Ano > 0 {
			fmt.Fprintf(&b, " · %d", book.Ano)
		}
		fmt.Fprintf(&b, " · %s\n", availability)
	}
	fmt.Fprintf(&b, "\n%d materiais", len(books))
	return b.String()
}

// formatBooksJSON formats a book list as JSON
func formatBooksJSON(books []client.Book) string {
	data, _ := json.MarshalIndent(books, "", "  ")
	return string(data)
}
