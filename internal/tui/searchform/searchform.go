// ABOUTME: Catalog search form as a bubbletea model
// ABOUTME: Free-text query plus filter selects with a "todos" sentinel

package searchform

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/ufxlib/biblioteca-cli/internal/search"
	"github.com/ufxlib/biblioteca-cli/internal/tui/theme"
)

// SubmitMsg is sent when the user triggers the search.
type SubmitMsg struct {
	Criteria search.Criteria
}

// CancelledMsg is sent when the user leaves the search form.
type CancelledMsg struct{}

var materialOptions = []huh.Option[string]{
	huh.NewOption("Todos", search.All),
	huh.NewOption("Livro", "Livro"),
	huh.NewOption("Periódico", "Periodico"),
	huh.NewOption("TCC", "TCC"),
	huh.NewOption("Mídia", "Midia"),
}

var yearOptions = []huh.Option[string]{
	huh.NewOption("Todos", search.All),
	huh.NewOption("Últimos 2 anos", "2anos"),
	huh.NewOption("Últimos 5 anos", "5anos"),
	huh.NewOption("Últimos 10 anos", "10anos"),
	huh.NewOption("Mais antigos", "antigos"),
}

var languageOptions = []huh.Option[string]{
	huh.NewOption("Todos", search.All),
	huh.NewOption("Português", "Português"),
	huh.NewOption("Inglês", "Inglês"),
	huh.NewOption("Espanhol", "Espanhol"),
}

var availabilityOptions = []huh.Option[string]{
	huh.NewOption("Todos", search.All),
	huh.NewOption("Disponível", "disponivel"),
	huh.NewOption("Emprestado", "emprestado"),
}

// Form is the search screen model.
type Form struct {
	form     *huh.Form
	criteria search.Criteria
}

// New creates a search form, optionally pre-filled with the last
// executed criteria.
func New(initial search.Criteria) *Form {
	f := &Form{criteria: initial}
	f.form = f.create()
	return f
}

func (f *Form) create() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Buscar").
				Placeholder("título, autor ou assunto").
				CharLimit(120).
				Value(&f.criteria.Query),
			huh.NewSelect[string]().
				Title("Tipo de material").
				Options(materialOptions...).
				Value(&f.criteria.MaterialType),
			huh.NewSelect[string]().
				Title("Ano de publicação").
				Options(yearOptions...).
				Value(&f.criteria.YearRange),
			huh.NewSelect[string]().
				Title("Idioma").
				Options(languageOptions...).
				Value(&f.criteria.Language),
			huh.NewSelect[string]().
				Title("Disponibilidade").
				Options(availabilityOptions...).
				Value(&f.criteria.Availability),
		).Title("Busca no acervo").
			Description("Filtros em \"Todos\" não restringem o resultado"),
	).WithTheme(theme.Form())
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (*Form, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		return f, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		criteria := f.criteria
		return f, func() tea.Msg {
			return SubmitMsg{Criteria: criteria}
		}
	}

	return f, cmd
}

// View implements tea.Model
func (f *Form) View() string {
	return strings.TrimRight(f.form.View(), "\n")
}
