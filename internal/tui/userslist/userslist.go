// ABOUTME: Admin user management TUI component
// ABOUTME: Lists accounts with a name filter and toggles the active/blocked status

package userslist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ufxlib/biblioteca-cli/internal/client"
	"github.com/ufxlib/biblioteca-cli/internal/tui/styles"
	"github.com/ufxlib/biblioteca-cli/internal/tui/widgets"
)

// StatusToggleRequestedMsg is sent when the admin toggles an account.
type StatusToggleRequestedMsg struct {
	UserID    string
	NewStatus string
}

// BackMsg is sent when the admin leaves the user screen.
type BackMsg struct{}

// RetryMsg asks for the user list to be fetched again after a failure.
type RetryMsg struct{}

// Account statuses as reported by the backend.
const (
	StatusAtivo     = "ativo"
	StatusBloqueado = "bloqueado"
)

type state int

const (
	stateList state = iota
	stateFilter
)

// List is the admin user list component.
type List struct {
	users   []client.User
	cursor  int
	loading bool
	pending map[string]bool
	err     string
	state   state
	filter  textinput.Model
	width   int
}

var (
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedStyle = lipgloss.NewStyle().Foreground(styles.Accent)
)

// New creates an empty user list in the loading state.
func New() *List {
	ti := textinput.New()
	ti.Placeholder = "nome ou e-mail"
	ti.CharLimit = 80
	ti.Width = 40

	return &List{loading: true, pending: map[string]bool{}, filter: ti}
}

// SetUsers replaces the list contents.
func (l *List) SetUsers(users []client.User) {
	l.users = users
	l.loading = false
	l.err = ""
	if l.cursor >= len(users) {
		l.cursor = 0
	}
}

// SetError puts the list into the error state.
func (l *List) SetError(msg string) {
	l.loading = false
	l.err = msg
}

// ToggleDone applies the backend answer for a status toggle.
func (l *List) ToggleDone(userID string, updated *client.User, err error) {
	delete(l.pending, userID)
	if err != nil {
		l.err = err.Error()
		return
	}
	for i := range l.users {
		if l.users[i].ID == userID {
			l.users[i] = *updated
			break
		}
	}
}

// visible applies the name/e-mail filter to the loaded users.
func (l *List) visible() []client.User {
	query := strings.ToLower(strings.TrimSpace(l.filter.Value()))
	if query == "" {
		return l.users
	}
	var out []client.User
	for _, u := range l.users {
		if strings.Contains(strings.ToLower(u.Nome), query) ||
			strings.Contains(strings.ToLower(u.Email), query) {
			out = append(out, u)
		}
	}
	return out
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
		if l.state == stateFilter {
			return l.updateFilter(msg)
		}
		return l.updateList(msg)
	}

	return l, nil
}

func (l *List) updateList(msg tea.KeyMsg) (*List, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
	case "down", "j":
		if l.cursor < len(l.visible())-1 {
			l.cursor++
		}
	case "/":
		l.state = stateFilter
		l.filter.Focus()
		return l, textinput.Blink
	case "t":
		return l.requestToggle()
	case "u":
		if l.err != "" {
			l.err = ""
			l.loading = true
			return l, func() tea.Msg { return RetryMsg{} }
		}
	case "esc", "b":
		if l.filter.Value() != "" {
			l.filter.SetValue("")
			l.cursor = 0
			return l, nil
		}
		return l, func() tea.Msg { return BackMsg{} }
	}

	return l, nil
}

func (l *List) updateFilter(msg tea.KeyMsg) (*List, tea.Cmd) {
	switch msg.String() {
	case "enter":
		l.state = stateList
		l.filter.Blur()
		l.cursor = 0
		return l, nil
	case "esc":
		l.state = stateList
		l.filter.Blur()
		l.filter.SetValue("")
		l.cursor = 0
		return l, nil
	}

	var cmd tea.Cmd
	l.filter, cmd = l.filter.Update(msg)
	return l, cmd
}

func (l *List) requestToggle() (*List, tea.Cmd) {
	visible := l.visible()
	if l.loading || l.cursor >= len(visible) {
		return l, nil
	}
	u := visible[l.cursor]
	if l.pending[u.ID] {
		return l, nil
	}
	next := StatusBloqueado
	if u.Status == StatusBloqueado {
		next = StatusAtivo
	}
	l.pending[u.ID] = true
	l.err = ""
	id := u.ID
	return l, func() tea.Msg {
		return StatusToggleRequestedMsg{UserID: id, NewStatus: next}
	}
}

func statusBadge(status string) string {
	if status == StatusBloqueado {
		return widgets.Badge("BLOQUEADO", widgets.StatusCritical)
	}
	return widgets.Badge("ATIVO", widgets.StatusOK)
}

// View implements tea.Model
func (l *List) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Usuários"))
	b.WriteString("\n\n")

	if l.state == stateFilter || l.filter.Value() != "" {
		b.WriteString("Filtro: " + l.filter.View())
		b.WriteString("\n\n")
	}

	if l.loading {
		b.WriteString(metaStyle.Render("Carregando..."))
		return b.String()
	}

	visible := l.visible()
	if len(visible) == 0 {
		if len(l.users) == 0 {
			b.WriteString(metaStyle.Render("Nenhum usuário cadastrado."))
		} else {
			b.WriteString(metaStyle.Render("Nenhum usuário corresponde ao filtro."))
		}
		return b.String()
	}

	for i, u := range visible {
		cursor := "  "
		style := normalStyle
		if i == l.cursor {
			cursor = "> "
			style = selectedStyle
		}

		line := fmt.Sprintf("%s %s", statusBadge(u.Status), style.Render(u.Nome))
		if l.pending[u.ID] {
			line += metaStyle.Render("  (atualizando...)")
		}
		b.WriteString(cursor + line + "\n")

		detail := u.Email + " · " + u.Role
		if u.Matricula != "" {
			detail += " · " + u.Matricula
		}
		b.WriteString("    " + metaStyle.Render(detail) + "\n")
	}

	if l.err != "" {
		b.WriteString("\n" + styles.ErrorText.Render("Erro: "+l.err))
		b.WriteString("\n" + styles.Help.Render("u tentar novamente"))
	}

	b.WriteString("\n" + styles.Help.Render("t ativar/bloquear · / filtrar · esc voltar"))

	return b.String()
}
