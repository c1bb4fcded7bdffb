// ABOUTME: Book detail TUI component with metadata and related titles
// ABOUTME: Lets authenticated users request a reservation from the detail view

package bookdetail

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ufxlib/biblioteca-cli/internal/client"
	"github.com/ufxlib/biblioteca-cli/internal/tui/styles"
	"github.com/ufxlib/biblioteca-cli/internal/tui/widgets"
)

// ReserveRequestedMsg is sent when the user asks to reserve the book.
type ReserveRequestedMsg struct {
	BookID string
}

// BackMsg is sent when the user returns to the result list.
type BackMsg struct{}

// Detail is the book detail component.
type Detail struct {
	book      client.Book
	related   []client.Book
	canReserve bool
	reserving bool
	reserved  bool
	err       string
	notice    string
	width     int
}

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(12)
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// New creates a detail view for a book. canReserve gates the
// reserve shortcut on an authenticated session.
func New(book client.Book, canReserve bool) *Detail {
	return &Detail{book: book, canReserve: canReserve}
}

// SetRelated fills the related titles section once fetched.
func (d *Detail) SetRelated(books []client.Book) {
	d.related = books
}

// ReserveDone marks the pending reservation request as finished.
func (d *Detail) ReserveDone(err error) {
	d.reserving = false
	if err != nil {
		d.err = err.Error()
		return
	}
	d.reserved = true
	d.notice = "Reserva registrada. Acompanhe em Minhas reservas."
}

// Init implements tea.Model
func (d *Detail) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (d *Detail) Update(msg tea.Msg) (*Detail, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		return d, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			if d.canReserve && !d.reserving && !d.reserved {
				d.reserving = true
				d.err = ""
				id := d.book.ID
				return d, func() tea.Msg { return ReserveRequestedMsg{BookID: id} }
			}
		case "esc", "b":
			return d, func() tea.Msg { return BackMsg{} }
		}
	}

	return d, nil
}

// View implements tea.Model
func (d *Detail) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(d.book.Titulo))
	b.WriteString("  " + widgets.AvailabilityBadge(d.book.Disponivel))
	b.WriteString("\n\n")

	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(labelStyle.Render(label) + styles.ValueStyle.Render(value) + "\n")
	}

	row("Autor", d.book.Autor)
	row("Tipo", d.book.Tipo)
	if d.book.Ano > 0 {
		row("Ano", strconv.Itoa(d.book.Ano))
	}
	row("Idioma", d.book.Idioma)
	row("Editora", d.book.Editora)
	row("ISBN", d.book.ISBN)
	row("Exemplares", strconv.Itoa(d.book.Exemplares))

	if d.book.Sinopse != "" {
		b.WriteString("\n")
		b.WriteString(metaStyle.Render(d.book.Sinopse))
		b.WriteString("\n")
	}

	if len(d.related) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.Subtitle.Render("Títulos relacionados"))
		b.WriteString("\n")
		for _, rel := range d.related {
			b.WriteString("  " + rel.Titulo + metaStyle.Render(fmt.Sprintf(" · %s", rel.Autor)) + "\n")
		}
	}

	switch {
	case d.reserving:
		b.WriteString("\n" + metaStyle.Render("Enviando reserva..."))
	case d.err != "":
		b.WriteString("\n" + styles.ErrorText.Render("Erro: "+d.err))
	case d.notice != "":
		b.WriteString("\n" + styles.StatusOK.Render(d.notice))
	}

	if d.canReserve && !d.reserved {
		b.WriteString("\n\n" + styles.Help.Render("r reservar · esc voltar"))
	}

	return b.String()
}
