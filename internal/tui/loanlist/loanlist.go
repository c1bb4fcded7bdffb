// ABOUTME: Loan list TUI component with return and renew actions
// ABOUTME: Derives due state per row and disables actions while a request is pending

package loanlist

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ufxlib/biblioteca-cli/internal/client"
	"github.com/ufxlib/biblioteca-cli/internal/listops"
	"github.com/ufxlib/biblioteca-cli/internal/loanstatus"
	"github.com/ufxlib/biblioteca-cli/internal/tui/styles"
	"github.com/ufxlib/biblioteca-cli/internal/tui/widgets"
)

// ReturnRequestedMsg is sent when the user asks to return a loan.
type ReturnRequestedMsg struct {
	LoanID string
}

// RenewRequestedMsg is sent when the user asks to renew a loan.
type RenewRequestedMsg struct {
	LoanID string
}

// BackMsg is sent when the user leaves the loan screen.
type BackMsg struct{}

// RetryMsg asks for the loan list to be fetched again after a failure.
type RetryMsg struct{}

// List is the loan list component.
type List struct {
	loans   []client.Loan
	cursor  int
	loading bool
	pending map[string]bool
	err     string
	now     func() time.Time
	width   int
}

var (
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedStyle = lipgloss.NewStyle().Foreground(styles.Accent)
)

// New creates an empty loan list in the loading state.
func New() *List {
	return &List{loading: true, pending: map[string]bool{}, now: time.Now}
}

// SetLoans replaces the list contents.
func (l *List) SetLoans(loans []client.Loan) {
	l.loans = loans
	l.loading = false
	l.err = ""
	if l.cursor >= len(loans) {
		l.cursor = 0
	}
}

// SetError puts the list into the error state.
func (l *List) SetError(msg string) {
	l.loading = false
	l.err = msg
}

// ActionDone clears the pending flag for a loan after the backend
// answered. A non-nil err keeps the row and shows the message.
func (l *List) ActionDone(loanID string, err error) {
	delete(l.pending, loanID)
	if err != nil {
		l.err = err.Error()
	}
}

// Remove drops a loan from the list after a successful return.
func (l *List) Remove(loanID string) {
	l.loans = listops.ReturnLoan(l.loans, loanID)
	delete(l.pending, loanID)
	if l.cursor >= len(l.loans) && l.cursor > 0 {
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
			if l.cursor < len(l.loans)-1 {
				l.cursor++
			}
		case "d":
			return l.request(func(id string) tea.Msg { return ReturnRequestedMsg{LoanID: id} })
		case "r":
			return l.request(func(id string) tea.Msg { return RenewRequestedMsg{LoanID: id} })
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

func (l *List) request(mk func(id string) tea.Msg) (*List, tea.Cmd) {
	if l.loading || l.cursor >= len(l.loans) {
		return l, nil
	}
	id := l.loans[l.cursor].ID
	if l.pending[id] {
		return l, nil
	}
	l.pending[id] = true
	l.err = ""
	return l, func() tea.Msg { return mk(id) }
}

// View implements tea.Model
func (l *List) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Meus empréstimos"))
	b.WriteString("\n\n")

	if l.loading {
		b.WriteString(metaStyle.Render("Carregando..."))
		return b.String()
	}

	if len(l.loans) == 0 {
		b.WriteString(metaStyle.Render("Nenhum empréstimo ativo."))
		if l.err != "" {
			b.WriteString("\n\n" + styles.ErrorText.Render("Erro: "+l.err))
			b.WriteString("\n" + styles.Help.Render("u tentar novamente"))
		}
		return b.String()
	}

	for i, loan := range l.loans {
		cursor := "  "
		style := normalStyle
		if i == l.cursor {
			cursor = "> "
			style = selectedStyle
		}

		st := loanstatus.Compute(loan.DataDevolucao, l.now())
		line := fmt.Sprintf("%s %s", widgets.LoanBadge(st), style.Render(loan.Titulo))
		if l.pending[loan.ID] {
			line += metaStyle.Render("  (processando...)")
		}
		b.WriteString(cursor + line + "\n")

		detail := fmt.Sprintf("devolução %s · %s", loan.DataDevolucao.Format("02/01/2006"), st.Label())
		if st.Overdue {
			detail += fmt.Sprintf(" · multa R$ %.2f", st.LateFee)
		}
		if loan.Renovacoes > 0 {
			detail += fmt.Sprintf(" · %d renovações", loan.Renovacoes)
		}
		b.WriteString("    " + metaStyle.Render(detail) + "\n")
	}

	if l.err != "" {
		b.WriteString("\n" + styles.ErrorText.Render("Erro: "+l.err))
	}

	b.WriteString("\n" + styles.Help.Render("d devolver · r renovar · esc voltar"))

	return b.String()
}
