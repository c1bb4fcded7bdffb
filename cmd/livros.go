// ABOUTME: Catalog commands for the biblioteca CLI
// ABOUTME: Book detail, recent additions, and admin catalog maintenance

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

var (
	livroTitulo     string
	livroAutor      string
	livroTipo       string
	livroAno        int
	livroIdioma     string
	livroEditora    string
	livroISBN       string
	livroSinopse    string
	livroExemplares int
)

var livrosCmd = &cobra.Command{
	Use:   "livros",
	Short: "Catalog operations",
	Long:  `Inspect the catalog and, for admin sessions, maintain it.`,
}

var livrosShowCmd = &cobra.Command{
	Use:   "detalhe <id>",
	Short: "Show a catalog entry with related titles",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLivroDetalhe(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var livrosRecentesCmd = &cobra.Command{
	Use:   "recentes",
	Short: "Show recent catalog additions",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLivrosRecentes(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var livrosAddCmd = &cobra.Command{
	Use:   "adicionar",
	Short: "Add a catalog entry (admin)",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLivroAdicionar(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var livrosUpdateCmd = &cobra.Command{
	Use:   "atualizar <id>",
	Short: "Update a catalog entry (admin)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLivroAtualizar(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var livrosDeleteCmd = &cobra.Command{
	Use:   "remover <id>",
	Short: "Remove a catalog entry (admin)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLivroRemover(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(livrosCmd)
	livrosCmd.AddCommand(livrosShowCmd)
	livrosCmd.AddCommand(livrosRecentesCmd)
	livrosCmd.AddCommand(livrosAddCmd)
	livrosCmd.AddCommand(livrosUpdateCmd)
	livrosCmd.AddCommand(livrosDeleteCmd)

	for _, c := range []*cobra.Command{livrosAddCmd, livrosUpdateCmd} {
		c.Flags().StringVar(&livroTitulo, "titulo", "", "Title")
		c.Flags().StringVar(&livroAutor, "autor", "", "Author")
		c.Flags().StringVar(&livroTipo, "tipo", "Livro", "Material type")
		c.Flags().IntVar(&livroAno, "ano", 0, "Publication year")
		c.Flags().StringVar(&livroIdioma, "idioma", "", "Language")
		c.Flags().StringVar(&livroEditora, "editora", "", "Publisher")
		c.Flags().StringVar(&livroISBN, "isbn", "", "ISBN")
		c.Flags().StringVar(&livroSinopse, "sinopse", "", "Synopsis")
		c.Flags().IntVar(&livroExemplares, "exemplares", 1, "Number of copies")
	}
}

// runLivroDetalhe fetches one catalog entry and its related titles
func runLivroDetalhe(ctx context.Context, w io.Writer, id string) int {
	api := newAPIClient()

	book, err := api.Book(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	// related titles are a best-effort enrichment
	related, _ := api.RelatedBooks(ctx, id)

	if IsJSONOutput() {
		output := map[string]interface{}{
			"livro":        book,
			"relacionados": related,
		}
		data, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatLivroHuman(book, related))
	}
	return 0
}

// runLivrosRecentes lists recent catalog additions
func runLivrosRecentes(ctx context.Context, w io.Writer) int {
	api := newAPIClient()

	books, err := api.RecentBooks(ctx)
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

// livroInputFromFlags assembles the mutation payload
func livroInputFromFlags() *client.BookInput {
	return &client.BookInput{
		Titulo:     livroTitulo,
		Autor:      livroAutor,
		Tipo:       livroTipo,
		Ano:        livroAno,
		Idioma:     livroIdioma,
		Editora:    livroEditora,
		ISBN:       livroISBN,
		Sinopse:    livroSinopse,
		Exemplares: livroExemplares,
	}
}

// runLivroAdicionar creates a catalog entry and returns exit code
func runLivroAdicionar(ctx context.Context, w io.Writer) int {
	if livroTitulo == "" || livroAutor == "" {
		fmt.Fprintln(w, "Error: --titulo e --autor são obrigatórios")
		return 2
	}

	api := newAPIClient()
	_, sess := initializeSession(ctx, api)
	if !sess.IsAdmin() {
		fmt.Fprintln(w, "Error: apenas administradores podem alterar o acervo")
		return 2
	}

	book, err := api.CreateBook(ctx, livroInputFromFlags())
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(book, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Criado %s: %s\n", book.ID, book.Titulo)
	}
	return 0
}

// runLivroAtualizar updates a catalog entry and returns exit code
func runLivroAtualizar(ctx context.Context, w io.Writer, id string) int {
	api := newAPIClient()
	_, sess := initializeSession(ctx, api)
	if !sess.IsAdmin() {
		fmt.Fprintln(w, "Error: apenas administradores podem alterar o acervo")
		return 2
	}

	book, err := api.UpdateBook(ctx, id, livroInputFromFlags())
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(book, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Atualizado %s: %s\n", book.ID, book.Titulo)
	}
	return 0
}

// runLivroRemover deletes a catalog entry and returns exit code
func runLivroRemover(ctx context.Context, w io.Writer, id string) int {
	api := newAPIClient()
	_, sess := initializeSession(ctx, api)
	if !sess.IsAdmin() {
		fmt.Fprintln(w, "Error: apenas administradores podem alterar o acervo")
		return 2
	}

	if err := api.DeleteBook(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Removido %s\n", id)
	return 0
}

// formatLivroHuman formats a single catalog entry for human readability
func formatLivroHuman(book *client.Book, related []client.Book) string {
	var b strings.Builder

	availability := "disponível"
	if !book.Disponivel {
		availability = "emprestado"
	}

	fmt.Fprintf(&b, "%s\n", book.Titulo)
	fmt.Fprintf(&b, "Autor:      %s\n", book.Autor)
	fmt.Fprintf(&b, "Tipo:       %s\n", book.Tipo)
	if book.Ano > 0 {
		fmt.Fprintf(&b, "Ano:        %d\n", book.Ano)
	}
	if book.Idioma != "" {
		fmt.Fprintf(&b, "Idioma:     %s\n", book.Idioma)
	}
	if book.Editora != "" {
		fmt.Fprintf(&b, "Editora:    %s\n", book.Editora)
	}
	if book.ISBN != "" {
		fmt.Fprintf(&b, "ISBN:       %s\n", book.ISBN)
	}
	fmt.Fprintf(&b, "Exemplares: %d (%s)", book.Exemplares, availability)

	if book.Sinopse != "" {
		fmt.Fprintf(&b, "\n\n%s", book.Sinopse)
	}

	if len(related) > 0 {
		fmt.Fprint(&b, "\n\nRelacionados:")
		for _, rel := range related {
			fmt.Fprintf(&b, "\n  %s · %s", rel.Titulo, rel.Autor)
		}
	}

	return b.String()
}
