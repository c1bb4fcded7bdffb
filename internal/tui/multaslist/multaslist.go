// ABOUTME: Fine list TUI component with pay action and history toggle
// ABOUTME: Shows pending amounts with a running total

package multaslist

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

// PayRequestedMsg is sent when the user asks to pay a fine.
type PayRequestedMsg struct {
	FineID string
}

// HistoryToggledMsg is sent when the user switches between pending
// fines and the payment history.
type HistoryToggledMsg struct {
	ShowHistory bool
}

// BackMsg is sent when the user leaves the fine screen.
type BackMsg struct{}

// RetryMsg asks for the current view to be fetched again after a
// failure.
type RetryMsg struct{}

// List is the fine list component.
type List struct {
	fines   []client.Fine
	history bool
	cursor  int
	loading bool
	pending map[string]bool
	err     string
	width   int
}

var (
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedStyle = lipgloss.NewStyle().Foreground(styles.Accent)
)

// New creates an empty fine list in the loading state.
func New() *List {
	return &List{loading: true, pending: map[string]bool{}}
}

// SetFines replaces the list contents.
func (l *List) SetFines(fines []client.Fine) {
	l.fines = fines
	l.loading = false
	l.err = ""
	if l.cursor >= len(fines) {
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

// PayDone clears the pending flag after the backend answered.
// On success the row is removed, on failure it stays with the error.
func (l *List) PayDone(fineID string, err error) {
	delete(l.pending, fineID)
	if err != nil {
		l.err = err.Error()
		return
	}
	l.fines = listops.PayFine(l.fines, fineID)
	if l.cursor >= len(l.fines) && l.cursor > 0 {
		l.cursor--
	}
}

// Total sums the listed fine values.
func (l *List) Total() float64 {
	var total float64
	for _, f := range l.fines {
		total += f.Valor
	}
	return total
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
			if l.cursor < len(l.fines)-1 {
				l.cursor++
			}
		case "p":
			return l.requestPay()
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

func (l *List) requestPay() (*List, tea.Cmd) {
	if l.loading || l.history || l.cursor >= len(l.fines) {
		return l, nil
	}
	fine := l.fines[l.cursor]
	if l.pending[fine.ID] {
		return l, nil
	}
	l.pending[fine.ID] = true
	l.err = ""
	id := fine.ID
	return l, func() tea.Msg { return PayRequestedMsg{FineID: id} }
}

// View implements tea.Model
func (l *List) View() string {
	var b strings.Builder

	title := "Minhas multas"
	if l.history {
		title = "Histórico de multas"
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n\n")

	if l.loading {
		b.WriteString(metaStyle.Render("Carregando..."))
		return b.String()
	}

	if len(l.fines) == 0 {
		msg := "Nenhuma multa pendente."
		if l.history {
			msg = "Nenhuma multa registrada."
		}
		b.WriteString(styles.StatusOK.Render(msg))
		if l.err != "" {
			b.WriteString("\n\n" + styles.ErrorText.Render("Erro: "+l.err))
			b.WriteString("\n" + styles.Help.Render("u tentar novamente"))
		}
		b.WriteString("\n\n" + styles.Help.Render("h histórico · esc voltar"))
		return b.String()
	}

	for i, fine := range l.fines {
		cursor := "  "
		style := normalStyle
		if i == l.cursor {
			cursor = "> "
			style = selectedStyle
		}

		level := widgets.StatusWarning
		if l.history {
			level = widgets.StatusNeutral
		}
		line := fmt.Sprintf("%s %s",
			widgets.Badge(fmt.Sprintf("R$ %.2f", fine.Valor), level),
			style.Render(fine.Motivo))
		if l.pending[fine.ID] {
			line += metaStyle.Render("  (pagando...)")
		}
		b.WriteString(cursor + line + "\n")
	}

	if !l.history {
		b.WriteString("\n")
		b.WriteString(styles.ValueStyle.Render(fmt.Sprintf("Total pendente: R$ %.2f", l.Total())))
	}

	if l.err != "" {
		b.WriteString("\n" + styles.ErrorText.Render("Erro: "+l.err))
	}

	help := "p pagar · h histórico · esc voltar"
	if l.history {
		help = "h multas pendentes · esc voltar"
	}
	b.WriteString("\n" + styles.Help.Render(help))

	return b.String()
}
