// ABOUTME: Home menu for the TUI
// ABOUTME: Offers navigation entries appropriate to the session role

package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ufxlib/biblioteca-cli/internal/router"
	"github.com/ufxlib/biblioteca-cli/internal/session"
	"github.com/ufxlib/biblioteca-cli/internal/tui/icons"
	"github.com/ufxlib/biblioteca-cli/internal/tui/styles"
)

// NavigateMsg asks the app to navigate to a logical page.
type NavigateMsg struct {
	Page router.Page
}

// LogoutMsg asks the app to end the current session.
type LogoutMsg struct{}

type item struct {
	label  string
	page   router.Page
	logout bool
}

// Menu is the home navigation menu.
type Menu struct {
	session session.Session
	items   []item
	cursor  int
}

// New builds the menu for the given session. The entries only mirror
// what the role router would allow; enforcement stays with the router.
func New(s session.Session) *Menu {
	items := []item{
		{label: icons.Search.String() + " Buscar no acervo", page: router.PageBusca},
	}

	if s.Anonymous() {
		items = append(items, item{label: icons.Login.String() + " Entrar", page: router.PageLogin})
	} else {
		items = append(items,
			item{label: icons.User.String() + " Meu perfil", page: router.PagePerfil},
			item{label: icons.Loan.String() + " Meus empréstimos", page: router.PageEmprestimos},
			item{label: icons.Reservation.String() + " Minhas reservas", page: router.PageReservas},
			item{label: icons.Fine.String() + " Minhas multas", page: router.PageMultas},
		)
		if s.IsAdmin() {
			items = append(items, item{label: icons.Settings.String() + " Usuários", page: router.PageAdminUsuario})
		}
		items = append(items, item{label: icons.Logout.String() + " Sair", logout: true})
	}

	return &Menu{session: s, items: items}
}

// Update handles keyboard input for the menu.
func (m *Menu) Update(msg tea.KeyMsg) (*Menu, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter":
		sel := m.items[m.cursor]
		if sel.logout {
			return m, func() tea.Msg { return LogoutMsg{} }
		}
		return m, func() tea.Msg { return NavigateMsg{Page: sel.page} }
	}
	return m, nil
}

// View renders the menu.
func (m *Menu) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Biblioteca Universitária"))
	b.WriteString("\n")
	if m.session.Anonymous() {
		b.WriteString(styles.Subtitle.Render("visitante"))
	} else {
		b.WriteString(styles.Subtitle.Render(m.session.DisplayName + " · " + string(m.session.Role)))
	}
	b.WriteString("\n\n")

	for i, it := range m.items {
		cursor := "  "
		label := it.label
		if i == m.cursor {
			cursor = "> "
			label = styles.Selected.Render(label)
		}
		b.WriteString(cursor + label + "\n")
	}

	return b.String()
}
