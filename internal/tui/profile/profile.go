// ABOUTME: Profile dashboard TUI component
// ABOUTME: Shows identity, usage stat blocks, and upcoming loan due dates

package profile

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ufxlib/biblioteca-cli/internal/client"
	"github.com/ufxlib/biblioteca-cli/internal/loanstatus"
	"github.com/ufxlib/biblioteca-cli/internal/session"
	"github.com/ufxlib/biblioteca-cli/internal/tui/icons"
	"github.com/ufxlib/biblioteca-cli/internal/tui/styles"
	"github.com/ufxlib/biblioteca-cli/internal/tui/widgets"
)

// RefreshMsg is sent when the user forces a stats refetch.
type RefreshMsg struct{}

// BackMsg is sent when the user leaves the profile screen.
type BackMsg struct{}

// Model is the profile dashboard.
type Model struct {
	sess    session.Session
	stats   client.UserStats
	loans   []client.Loan
	loaded  bool
	cached  bool
	loading bool
	err     string
	now     func() time.Time
	width   int
}

var metaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// New creates a profile dashboard for the given session.
func New(sess session.Session) *Model {
	return &Model{sess: sess, loading: true, now: time.Now}
}

// SetStats fills the dashboard once stats arrive. cached marks
// values served from the local stats cache.
func (m *Model) SetStats(stats client.UserStats, cached bool) {
	m.stats = stats
	m.cached = cached
	m.loaded = true
	m.loading = false
	m.err = ""
}

// SetLoans fills the upcoming due date section.
func (m *Model) SetLoans(loans []client.Loan) {
	m.loans = loans
}

// SetError puts the dashboard into the error state.
func (m *Model) SetError(msg string) {
	m.loading = false
	m.err = msg
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "u":
			if !m.loading {
				m.loading = true
				m.err = ""
				return m, func() tea.Msg { return RefreshMsg{} }
			}
		case "esc", "b":
			return m, func() tea.Msg { return BackMsg{} }
		}
	}

	return m, nil
}

func roleBadge(role session.Role) string {
	switch role {
	case session.RoleAdmin:
		return widgets.Badge("ADMIN", widgets.StatusCritical)
	case session.RoleProfessor:
		return widgets.Badge("PROFESSOR", widgets.StatusInfo)
	default:
		return widgets.Badge("ALUNO", widgets.StatusOK)
	}
}

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(icons.User.String() + " " + m.sess.DisplayName))
	b.WriteString("  " + roleBadge(m.sess.Role))
	b.WriteString("\n\n")

	if m.loading && !m.loaded {
		b.WriteString(metaStyle.Render("Carregando perfil..."))
		return b.String()
	}

	if m.err != "" && !m.loaded {
		b.WriteString(styles.ErrorText.Render("Erro: " + m.err))
		return b.String()
	}

	cfg := widgets.DefaultStatBlockConfig()
	blocks := []string{
		widgets.StatBlock(icons.Loan, "Empréstimos", strconv.Itoa(m.stats.EmprestimosAtivos),
			fmt.Sprintf("%d no total", m.stats.TotalEmprestimos), cfg),
		widgets.StatBlock(icons.Reservation, "Reservas", strconv.Itoa(m.stats.ReservasAtivas),
			"ativas", cfg),
		widgets.StatBlock(icons.Fine, "Multas", strconv.Itoa(m.stats.MultasPendentes),
			fmt.Sprintf("R$ %.2f", m.stats.TotalMultas), cfg),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, blocks...))
	b.WriteString("\n")

	if m.cached {
		b.WriteString(metaStyle.Render("valores em cache · u para atualizar"))
		b.WriteString("\n")
	}

	if len(m.loans) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.Subtitle.Render("Próximas devoluções"))
		b.WriteString("\n")
		for _, loan := range m.loans {
			st := loanstatus.Compute(loan.DataDevolucao, m.now())
			b.WriteString(fmt.Sprintf("  %s %s  %s\n",
				widgets.LoanBadge(st), loan.Titulo,
				metaStyle.Render(loan.DataDevolucao.Format("02/01/2006"))))
		}
	}

	if m.err != "" {
		b.WriteString("\n" + styles.ErrorText.Render("Erro: " + m.err))
	}

	b.WriteString("\n" + styles.Help.Render("u atualizar · esc voltar"))

	return b.String()
}
