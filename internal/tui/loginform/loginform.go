// ABOUTME: Login form as a bubbletea model
// ABOUTME: Collects identifier and password with a themed huh form

package loginform

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/ufxlib/biblioteca-cli/internal/tui/styles"
	"github.com/ufxlib/biblioteca-cli/internal/tui/theme"
)

// SubmitMsg is sent when the user submits credentials.
type SubmitMsg struct {
	Identifier string
	Senha      string
}

// CancelledMsg is sent when the user abandons the login form.
type CancelledMsg struct{}

// Form is the login screen model.
type Form struct {
	form       *huh.Form
	identifier string
	senha      string
	errMsg     string
	busy       bool
}

// New creates an empty login form.
func New() *Form {
	f := &Form{}
	f.form = f.create()
	return f
}

func (f *Form) create() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Matrícula ou e-mail").
				Placeholder("2023123456 ou nome@ufx.edu.br").
				CharLimit(80).
				Value(&f.identifier).
				Validate(required),
			huh.NewInput().
				Title("Senha").
				EchoMode(huh.EchoModePassword).
				CharLimit(80).
				Value(&f.senha).
				Validate(required),
		).Title("Entrar").
			Description("Use sua matrícula ou e-mail institucional"),
	).WithTheme(theme.Form())
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("campo obrigatório")
	}
	return nil
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.String() == "esc" {
			return f, func() tea.Msg { return CancelledMsg{} }
		}
		// A new keystroke clears the previous failure message
		f.errMsg = ""
	}

	if f.busy {
		return f, nil
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		f.busy = true
		identifier := strings.TrimSpace(f.identifier)
		senha := f.senha
		return f, func() tea.Msg {
			return SubmitMsg{Identifier: identifier, Senha: senha}
		}
	}

	return f, cmd
}

// SetError shows a login failure inline and re-arms the form.
func (f *Form) SetError(msg string) {
	f.errMsg = msg
	f.busy = false
	f.senha = ""
	f.form = f.create()
}

// View implements tea.Model
func (f *Form) View() string {
	var b strings.Builder

	b.WriteString(f.form.View())
	if f.busy {
		b.WriteString("\n")
		b.WriteString(styles.Subtitle.Render("Autenticando..."))
	}
	if f.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorText.Render(f.errMsg))
	}

	return b.String()
}
