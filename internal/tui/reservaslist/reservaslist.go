// ABOUTME: Reservation list TUI component with cancel action and history toggle
// ABOUTME: Only pending and active reservations expose the cancel shortcut

package reservaslist

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ufxlib/biblioteca-cli/internal/client"
	"github.com/ufxlib/biblioteca-cli/internal/listops"
	"github.com/ufxlib/biblioteca-cli/internal/tui/styles"
	"github.com/ufxlib/biblioteca-cli/internal/tui/widgets"
)

// CancelRequestedMsg is sent when the user asks to cancel a reservation.
type CancelRequestedMsg struct {
	ReservationID string
}

// HistoryToggledMsg is sent when the user switches between active
// reservations and the full history.
type HistoryToggledMsg struct {
	ShowHistory bool
}

// BackMsg is sent when the user leaves the reservation screen.
type BackMsg struct{}

// RetryMsg asks for the current view to be fetched again after a
// failure.
type RetryMsg struct{}

// List is the reservation list component.
type List struct {
	reservations []client.Reservation
	history      bool
	cursor       int
	loading      bool
	pending      map[string]bool
	err          string
	width        int
}

var (
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedStyle = lipgloss.NewStyle().Foreground(styles.Accent)
)

// New creates an empty reservation list in the loading state.
func New() *List {
	return &List{loading: true, pending: map[string]bool{}}
}

// SetReservations replaces the list contents.
func (l *List) SetReservations(reservations []client.Reservation) {
	l.reservations = reservations
	l.loading = false
	l.err = ""
	if l.cursor >= len(reservations) {
		l.cursor = 0
	}
}

// SetError puts the list into the error state.
func (l *List) SetError(msg string) {
	l.loading = false
	l.err = msg
}

// ShowingHistory reports whether the history view is active.
func (l *List) ShowingHistory() bool {
	return l.history
}

// CancelDone clears the pending flag after the backend answered.
// On success the row is removed, on failure it stays with the error.
func (l *List) CancelDone(reservationID string, err error) {
	delete(l.pending, reservationID)
	if err != nil {
		l.err = err.Error()
		return
	}
	l.reservations = listops.CancelReservation(l.reservations, reservationID)
	if l.cursor >= len(l.reservations) && l.cursor > 0 {
		l.cursor--
	}
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
		return l, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if l.cursor > 0 {
				l.cursor--
			}
		case "down", "j":
			if l.cursor < len(l.reservations)-1 {
				l.cursor++
			}
		case "c":
			return l.requestCancel()
		case "h":
			l.history = !l.history
			l.loading = true
			l.cursor = 0
			show := l.history
			return l, func() tea.Msg { return HistoryToggledMsg{ShowHistory: show} }
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

func (l *List) requestCancel() (*List, tea.Cmd) {
	if l.loading || l.cursor >= len(l.reservations) {
		return l, nil
	}
	res := l.reservations[l.cursor]
	if !res.Cancelable() || l.pending[res.ID] {
		return l, nil
	}
	l.pending[res.ID] = true
	l.err = ""
	id := res.ID
	return l, func() tea.Msg { return CancelRequestedMsg{ReservationID: id} }
}

// View implements tea.Model
func (l *List) View() string {
	var b strings.Builder

	title := "Minhas reservas"
	if l.history {
		title = "Histórico de reservas"
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n\n")

	if l.loading {
		b.WriteString(metaStyle.Render("Carregando..."))
		return b.String()
	}

	if len(l.reservations) == 0 {
		b.WriteString(metaStyle.Render("Nenhuma reserva encontrada."))
		if l.err != "" {
			b.WriteString("\n\n" + styles.ErrorText.Render("Erro: "+l.err))
			b.WriteString("\n" + styles.Help.Render("u tentar novamente"))
		}
		b.WriteString("\n\n" + styles.Help.Render("h histórico · esc voltar"))
		return b.String()
	}

	for i, res := range l.reservations {
		cursor := "  "
		style := normalStyle
		if i == l.cursor {
			cursor = "> "
			style = selectedStyle
		}

		line := fmt.Sprintf("%s %s", widgets.ReservationBadge(res.Status), style.Render(res.Titulo))
		if l.pending[res.ID] {
			line += metaStyle.Render("  (cancelando...)")
		}
		b.WriteString(cursor + line + "\n")
		b.WriteString("    " + metaStyle.Render("reservado em "+res.DataReserva.Format("02/01/2006")) + "\n")
	}

	if l.err != "" {
		b.WriteString("\n" + styles.ErrorText.Render("Erro: "+l.err))
	}

	b.WriteString("\n" + styles.Help.Render("c cancelar · h histórico · esc voltar"))

	return b.String()
}
