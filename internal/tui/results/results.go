// ABOUTME: Search result list TUI component
// ABOUTME: Cursor navigation over catalog entries with availability badges

package results

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ufxlib/biblioteca-cli/internal/client"
	"github.com/ufxlib/biblioteca-cli/internal/tui/styles"
	"github.com/ufxlib/biblioteca-cli/internal/tui/widgets"
)

// BookSelectedMsg is sent when a result is opened.
type BookSelectedMsg struct {
	Book client.Book
}

// BackMsg is sent when the user returns to the search form.
type BackMsg struct{}

// RetryMsg asks for the failed search to be run again.
type RetryMsg struct{}

// List is the result list component.
type List struct {
	books   []client.Book
	query   string
	cursor  int
	loading bool
	err     string
	width   int
	height  int
}

var (
	selectedStyle = lipgloss.NewStyle().Foreground(styles.Accent)
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// New creates an empty list in the loading state.
func New(query string) *List {
	return &List{query: query, loading: true}
}

// SetBooks replaces the list contents and resets the cursor.
func (l *List) SetBooks(books []client.Book) {
	l.books = books
	l.cursor = 0
	l.loading = false
	l.err = ""
}

// SetError puts the list into the error state.
func (l *List) SetError(msg string) {
	l.loading = false
	l.err = msg
}

// Init implements tea.Model
func (l *List) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (l *List) Update(msg tea.Msg) (*List, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.width = msg.Width
		l.height = msg.Height
		return l, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if l.cursor > 0 {
				l.cursor--
			}
		case "down", "j":
			if l.cursor < len(l.books)-1 {
				l.cursor++
			}
		case "enter":
			if !l.loading && l.cursor < len(l.books) {
				book := l.books[l.cursor]
				return l, func() tea.Msg { return BookSelectedMsg{Book: book} }
			}
		case "u":
			if l.err != "" {
				l.err = ""
				l.loading = true
				return l, func() tea.Msg { return RetryMsg{} }
			}
		case "esc", "b":
			return l, func() tea.Msg { return BackMsg{} }
		}
	}

	return l, nil
}

// View implements tea.Model
func (l *List) View() string {
	var b strings.Builder

	title := "Resultados"
	if l.query != "" {
		title = fmt.Sprintf("Resultados para %q", l.query)
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n\n")

	if l.loading {
		b.WriteString(metaStyle.Render("Buscando..."))
		return b.String()
	}

	if l.err != "" {
		b.WriteString(styles.ErrorText.Render("Erro: " + l.err))
		b.WriteString("\n" + styles.Help.Render("u tentar novamente"))
		return b.String()
	}

	if len(l.books) == 0 {
		b.WriteString(metaStyle.Render("Nenhum material encontrado."))
		return b.String()
	}

	for i, book := range l.books {
		cursor := "  "
		style := normalStyle
		if i == l.cursor {
			cursor = "> "
			style = selectedStyle
		}

		badge := widgets.AvailabilityBadge(book.Disponivel)
		line := fmt.Sprintf("%s  %s", style.Render(book.Titulo), badge)
		b.WriteString(cursor + line + "\n")
		b.WriteString("    " + metaStyle.Render(fmt.Sprintf("%s · %s · %d", book.Autor, book.Tipo, book.Ano)) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(metaStyle.Render(fmt.Sprintf("%d materiais", len(l.books))))

	return b.String()
}
