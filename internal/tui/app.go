// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Routes navigation through the role policy and tags fetches with sequence numbers

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ufxlib/biblioteca-cli/internal/client"
	"github.com/ufxlib/biblioteca-cli/internal/debuglog"
	"github.com/ufxlib/biblioteca-cli/internal/listops"
	"github.com/ufxlib/biblioteca-cli/internal/router"
	"github.com/ufxlib/biblioteca-cli/internal/search"
	"github.com/ufxlib/biblioteca-cli/internal/session"
	"github.com/ufxlib/biblioteca-cli/internal/statscache"
	"github.com/ufxlib/biblioteca-cli/internal/tui/bookdetail"
	"github.com/ufxlib/biblioteca-cli/internal/tui/icons"
	"github.com/ufxlib/biblioteca-cli/internal/tui/loanlist"
	"github.com/ufxlib/biblioteca-cli/internal/tui/loginform"
	"github.com/ufxlib/biblioteca-cli/internal/tui/menu"
	"github.com/ufxlib/biblioteca-cli/internal/tui/multaslist"
	"github.com/ufxlib/biblioteca-cli/internal/tui/profile"
	"github.com/ufxlib/biblioteca-cli/internal/tui/reservaslist"
	"github.com/ufxlib/biblioteca-cli/internal/tui/results"
	"github.com/ufxlib/biblioteca-cli/internal/tui/searchform"
	"github.com/ufxlib/biblioteca-cli/internal/tui/styles"
	"github.com/ufxlib/biblioteca-cli/internal/tui/userslist"
)

// Layout constants
const (
	minTerminalWidth = 80
)

// Result messages carry the sequence number of the fetch that produced
// them. A response whose sequence no longer matches the list's current
// one is discarded; a stale in-flight request can never overwrite a
// newer answer.

type loginDoneMsg struct {
	sess session.Session
	err  error
}

type searchDoneMsg struct {
	seq   uint64
	books []client.Book
	err   error
}

type relatedDoneMsg struct {
	bookID string
	books  []client.Book
}

type reserveDoneMsg struct {
	bookID string
	err    error
}

type statsDoneMsg struct {
	seq    uint64
	stats  client.UserStats
	cached bool
	err    error
}

type profileLoansDoneMsg struct {
	seq   uint64
	loans []client.Loan
}

type loansDoneMsg struct {
	seq   uint64
	loans []client.Loan
	err   error
}

type loanActionDoneMsg struct {
	loanID   string
	returned bool
	err      error
}

type reservationsDoneMsg struct {
	seq  uint64
	list []client.Reservation
	err  error
}

type cancelDoneMsg struct {
	reservationID string
	err           error
}

type finesDoneMsg struct {
	seq   uint64
	fines []client.Fine
	err   error
}

type payDoneMsg struct {
	fineID string
	err    error
}

type usersDoneMsg struct {
	seq   uint64
	users []client.User
	err   error
}

type toggleDoneMsg struct {
	userID string
	user   *client.User
	err    error
}

// App is the root model for the TUI
type App struct {
	api    *client.Client
	store  *session.Store
	stats  *statscache.Cache
	screen router.Page
	width  int
	height int
	notice string

	lastSearch search.Criteria
	hasSearch  bool

	// Pending removals survive refetches so a stale list cannot
	// resurrect an item the user already acted on.
	removed *listops.Removals

	loansSeq        uint64
	reservationsSeq uint64
	finesSeq        uint64
	usersSeq        uint64
	statsSeq        uint64
	searchSeq       uint64

	lastUpdate time.Time

	// Child models
	homeMenu    *menu.Menu
	loginView   *loginform.Form
	searchView  *searchform.Form
	resultsView *results.List
	detailView  *bookdetail.Detail
	profileView *profile.Model
	loanView    *loanlist.List
	reservaView *reservaslist.List
	multaView   *multaslist.List
	usersView   *userslist.List
}

// New creates the TUI application over an initialized session store.
func New(api *client.Client, store *session.Store) *App {
	return &App{
		api:      api,
		store:    store,
		stats:    statscache.New(session.DefaultConfigDir()),
		screen:   router.PageHome,
		removed:  listops.NewRemovals(),
		homeMenu: menu.New(store.Current()),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.forwardResize(msg)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if msg.String() == "q" && a.screen == router.PageHome {
			return a, tea.Quit
		}
		return a.routeKey(msg)

	case menu.NavigateMsg:
		return a, a.navigate(msg.Page, false)

	case menu.LogoutMsg:
		return a.handleLogout("Sessão encerrada.")

	case loginform.SubmitMsg:
		return a, a.doLogin(msg.Identifier, msg.Senha)

	case loginform.CancelledMsg:
		return a, a.navigate(router.PageHome, false)

	case loginDoneMsg:
		return a.handleLoginDone(msg)

	case searchform.SubmitMsg:
		a.lastSearch = msg.Criteria
		a.hasSearch = true
		a.screen = router.PageResultados
		a.resultsView = results.New(msg.Criteria.Query)
		return a, a.doSearch(msg.Criteria)

	case searchform.CancelledMsg:
		return a, a.navigate(router.PageHome, false)

	case searchDoneMsg:
		if msg.seq != a.searchSeq || a.resultsView == nil {
			return a, nil
		}
		if msg.err != nil {
			debuglog.Fetch("busca", msg.seq, msg.err)
			a.resultsView.SetError(msg.err.Error())
			return a, nil
		}
		a.resultsView.SetBooks(msg.books)
		a.lastUpdate = time.Now()
		return a, nil

	case results.BookSelectedMsg:
		a.screen = router.PageLivro
		a.detailView = bookdetail.New(msg.Book, !a.store.Current().Anonymous())
		return a, a.loadRelated(msg.Book.ID)

	case results.BackMsg:
		return a, a.navigate(router.PageBusca, true)

	case results.RetryMsg:
		return a, a.doSearch(a.lastSearch)

	case relatedDoneMsg:
		if a.detailView != nil {
			a.detailView.SetRelated(msg.books)
		}
		return a, nil

	case bookdetail.ReserveRequestedMsg:
		return a, a.doReserve(msg.BookID)

	case bookdetail.BackMsg:
		a.screen = router.PageResultados
		a.detailView = nil
		return a, nil

	case reserveDoneMsg:
		if a.detailView != nil {
			a.detailView.ReserveDone(a.checkSessionKeep(msg.err))
		}
		if msg.err == nil {
			a.stats.Invalidate(a.store.Current().UserID)
		}
		if errors.Is(msg.err, client.ErrUnauthorized) {
			return a.handleLogout("Sessão expirada, entre novamente.")
		}
		return a, nil

	case profile.RefreshMsg:
		a.stats.Invalidate(a.store.Current().UserID)
		return a, a.loadStats()

	case profile.BackMsg, loanlist.BackMsg, reservaslist.BackMsg,
		multaslist.BackMsg, userslist.BackMsg:
		return a, a.navigate(router.PageHome, false)

	case statsDoneMsg:
		return a.handleStatsDone(msg)

	case profileLoansDoneMsg:
		if msg.seq == a.statsSeq && a.profileView != nil {
			a.profileView.SetLoans(msg.loans)
		}
		return a, nil

	case loansDoneMsg:
		if msg.seq != a.loansSeq || a.loanView == nil {
			return a, nil
		}
		if errors.Is(msg.err, client.ErrUnauthorized) {
			return a.handleLogout("Sessão expirada, entre novamente.")
		}
		if msg.err != nil {
			debuglog.Fetch("emprestimos", msg.seq, msg.err)
			a.loanView.SetError(msg.err.Error())
			return a, nil
		}
		a.loanView.SetLoans(a.removed.FilterLoans(msg.loans))
		a.lastUpdate = time.Now()
		return a, nil

	case loanlist.RetryMsg:
		return a, a.loadLoans()

	case loanlist.ReturnRequestedMsg:
		return a, a.doReturnLoan(msg.LoanID)

	case loanlist.RenewRequestedMsg:
		return a, a.doRenewLoan(msg.LoanID)

	case loanActionDoneMsg:
		return a.handleLoanActionDone(msg)

	case reservationsDoneMsg:
		if msg.seq != a.reservationsSeq || a.reservaView == nil {
			return a, nil
		}
		if errors.Is(msg.err, client.ErrUnauthorized) {
			return a.handleLogout("Sessão expirada, entre novamente.")
		}
		if msg.err != nil {
			debuglog.Fetch("reservas", msg.seq, msg.err)
			a.reservaView.SetError(msg.err.Error())
			return a, nil
		}
		list := msg.list
		if !a.reservaView.ShowingHistory() {
			list = a.removed.FilterReservations(list)
		}
		a.reservaView.SetReservations(list)
		a.lastUpdate = time.Now()
		return a, nil

	case reservaslist.CancelRequestedMsg:
		return a, a.doCancelReservation(msg.ReservationID)

	case reservaslist.HistoryToggledMsg:
		return a, a.loadReservations(msg.ShowHistory)

	case reservaslist.RetryMsg:
		return a, a.loadReservations(a.reservaView != nil && a.reservaView.ShowingHistory())

	case cancelDoneMsg:
		if a.reservaView != nil {
			a.reservaView.CancelDone(msg.reservationID, a.checkSessionKeep(msg.err))
		}
		if msg.err == nil {
			a.removed.Mark(msg.reservationID)
			a.stats.Invalidate(a.store.Current().UserID)
		}
		if errors.Is(msg.err, client.ErrUnauthorized) {
			return a.handleLogout("Sessão expirada, entre novamente.")
		}
		return a, nil

	case finesDoneMsg:
		if msg.seq != a.finesSeq || a.multaView == nil {
			return a, nil
		}
		if errors.Is(msg.err, client.ErrUnauthorized) {
			return a.handleLogout("Sessão expirada, entre novamente.")
		}
		if msg.err != nil {
			debuglog.Fetch("multas", msg.seq, msg.err)
			a.multaView.SetError(msg.err.Error())
			return a, nil
		}
		fines := msg.fines
		if !a.multaView.ShowingHistory() {
			fines = a.removed.FilterFines(fines)
		}
		a.multaView.SetFines(fines)
		a.lastUpdate = time.Now()
		return a, nil

	case multaslist.PayRequestedMsg:
		return a, a.doPayFine(msg.FineID)

	case multaslist.HistoryToggledMsg:
		return a, a.loadFines(msg.ShowHistory)

	case multaslist.RetryMsg:
		return a, a.loadFines(a.multaView != nil && a.multaView.ShowingHistory())

	case payDoneMsg:
		if a.multaView != nil {
			a.multaView.PayDone(msg.fineID, a.checkSessionKeep(msg.err))
		}
		if msg.err == nil {
			a.removed.Mark(msg.fineID)
			a.stats.Invalidate(a.store.Current().UserID)
		}
		if errors.Is(msg.err, client.ErrUnauthorized) {
			return a.handleLogout("Sessão expirada, entre novamente.")
		}
		return a, nil

	case usersDoneMsg:
		if msg.seq != a.usersSeq || a.usersView == nil {
			return a, nil
		}
		if errors.Is(msg.err, client.ErrUnauthorized) {
			return a.handleLogout("Sessão expirada, entre novamente.")
		}
		if msg.err != nil {
			debuglog.Fetch("usuarios", msg.seq, msg.err)
			a.usersView.SetError(msg.err.Error())
			return a, nil
		}
		a.usersView.SetUsers(msg.users)
		a.lastUpdate = time.Now()
		return a, nil

	case userslist.RetryMsg:
		return a, a.loadUsers()

	case userslist.StatusToggleRequestedMsg:
		return a, a.doToggleUser(msg.UserID, msg.NewStatus)

	case toggleDoneMsg:
		if a.usersView != nil {
			a.usersView.ToggleDone(msg.userID, msg.user, a.checkSessionKeep(msg.err))
		}
		if errors.Is(msg.err, client.ErrUnauthorized) {
			return a.handleLogout("Sessão expirada, entre novamente.")
		}
		return a, nil

	default:
		// huh needs non-key messages forwarded to the active form
		if a.screen == router.PageLogin && a.loginView != nil {
			var cmd tea.Cmd
			a.loginView, cmd = a.loginView.Update(msg)
			return a, cmd
		}
		if a.screen == router.PageBusca && a.searchView != nil {
			var cmd tea.Cmd
			a.searchView, cmd = a.searchView.Update(msg)
			return a, cmd
		}
	}

	return a, nil
}

func (a *App) forwardResize(msg tea.WindowSizeMsg) {
	if a.resultsView != nil {
		a.resultsView.Update(msg)
	}
	if a.detailView != nil {
		a.detailView.Update(msg)
	}
	if a.profileView != nil {
		a.profileView.Update(msg)
	}
	if a.loanView != nil {
		a.loanView.Update(msg)
	}
	if a.reservaView != nil {
		a.reservaView.Update(msg)
	}
	if a.multaView != nil {
		a.multaView.Update(msg)
	}
	if a.usersView != nil {
		a.usersView.Update(msg)
	}
}

func (a *App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.screen {
	case router.PageHome:
		if a.homeMenu != nil {
			a.homeMenu, cmd = a.homeMenu.Update(msg)
		}
	case router.PageLogin:
		if a.loginView != nil {
			a.loginView, cmd = a.loginView.Update(msg)
		}
	case router.PageBusca:
		if a.searchView != nil {
			a.searchView, cmd = a.searchView.Update(msg)
		}
	case router.PageResultados:
		if a.resultsView != nil {
			a.resultsView, cmd = a.resultsView.Update(msg)
		}
	case router.PageLivro:
		if a.detailView != nil {
			a.detailView, cmd = a.detailView.Update(msg)
		}
	case router.PagePerfil:
		if a.profileView != nil {
			a.profileView, cmd = a.profileView.Update(msg)
		}
	case router.PageEmprestimos:
		if a.loanView != nil {
			a.loanView, cmd = a.loanView.Update(msg)
		}
	case router.PageReservas:
		if a.reservaView != nil {
			a.reservaView, cmd = a.reservaView.Update(msg)
		}
	case router.PageMultas:
		if a.multaView != nil {
			a.multaView, cmd = a.multaView.Update(msg)
		}
	case router.PageAdminUsuario:
		if a.usersView != nil {
			a.usersView, cmd = a.usersView.Update(msg)
		}
	}
	return a, cmd
}

// navigate resolves the requested page through the role policy and
// builds the target screen. Leaving the search flow drops the saved
// criteria and cached results.
func (a *App) navigate(page router.Page, preserveSearch bool) tea.Cmd {
	res := router.Resolve(router.Request{Page: page, PreserveSearch: preserveSearch}, a.store.Current())

	if res.ClearSearch {
		a.lastSearch = search.Criteria{}
		a.hasSearch = false
		a.resultsView = nil
		a.detailView = nil
	}

	a.notice = ""
	a.screen = res.Page

	switch res.Page {
	case router.PageHome:
		a.homeMenu = menu.New(a.store.Current())
		return nil
	case router.PageLogin:
		a.loginView = loginform.New()
		return a.loginView.Init()
	case router.PageBusca:
		initial := search.NewCriteria()
		if a.hasSearch {
			initial = a.lastSearch
		}
		a.searchView = searchform.New(initial)
		return a.searchView.Init()
	case router.PagePerfil:
		a.profileView = profile.New(a.store.Current())
		return a.loadStats()
	case router.PageEmprestimos:
		a.loanView = loanlist.New()
		return a.loadLoans()
	case router.PageReservas:
		a.reservaView = reservaslist.New()
		return a.loadReservations(false)
	case router.PageMultas:
		a.multaView = multaslist.New()
		return a.loadFines(false)
	case router.PageAdminUsuario:
		a.usersView = userslist.New()
		return a.loadUsers()
	}

	return nil
}

func (a *App) handleLogout(notice string) (tea.Model, tea.Cmd) {
	a.store.Logout()
	a.removed = listops.NewRemovals()
	a.profileView = nil
	a.loanView = nil
	a.reservaView = nil
	a.multaView = nil
	a.usersView = nil
	cmd := a.navigate(router.PageHome, false)
	a.notice = notice
	return a, cmd
}

func (a *App) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if a.loginView != nil {
			a.loginView.SetError(msg.err.Error())
			return a, a.loginView.Init()
		}
		return a, nil
	}
	a.loginView = nil
	cmd := a.navigate(router.PageHome, false)
	a.notice = fmt.Sprintf("Bem-vindo, %s.", msg.sess.DisplayName)
	return a, cmd
}

func (a *App) handleStatsDone(msg statsDoneMsg) (tea.Model, tea.Cmd) {
	if msg.seq != a.statsSeq || a.profileView == nil {
		return a, nil
	}
	if errors.Is(msg.err, client.ErrUnauthorized) {
		return a.handleLogout("Sessão expirada, entre novamente.")
	}
	if msg.err != nil {
		debuglog.Fetch("estatisticas", msg.seq, msg.err)
		a.profileView.SetError(msg.err.Error())
		return a, nil
	}
	a.profileView.SetStats(msg.stats, msg.cached)
	a.lastUpdate = time.Now()
	return a, nil
}

func (a *App) handleLoanActionDone(msg loanActionDoneMsg) (tea.Model, tea.Cmd) {
	if a.loanView == nil {
		if errors.Is(msg.err, client.ErrUnauthorized) {
			return a.handleLogout("Sessão expirada, entre novamente.")
		}
		return a, nil
	}
	if msg.err != nil {
		a.loanView.ActionDone(msg.loanID, a.checkSessionKeep(msg.err))
		if errors.Is(msg.err, client.ErrUnauthorized) {
			return a.handleLogout("Sessão expirada, entre novamente.")
		}
		return a, nil
	}
	if msg.returned {
		a.removed.Mark(msg.loanID)
		a.loanView.Remove(msg.loanID)
		a.stats.Invalidate(a.store.Current().UserID)
		return a, nil
	}
	// renewal changed the due date, refetch for the new terms
	a.loanView.ActionDone(msg.loanID, nil)
	return a, a.loadLoans()
}

// checkSessionKeep strips ErrUnauthorized so child components do not
// render it; the app handles the forced logout itself.
func (a *App) checkSessionKeep(err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		return nil
	}
	return err
}

// Commands

func (a *App) doLogin(identifier, senha string) tea.Cmd {
	return func() tea.Msg {
		sess, err := a.store.Login(context.Background(), identifier, senha)
		return loginDoneMsg{sess: sess, err: err}
	}
}

func (a *App) doSearch(criteria search.Criteria) tea.Cmd {
	a.searchSeq++
	seq := a.searchSeq
	return func() tea.Msg {
		books, err := a.api.SearchBooks(context.Background(), criteria.Build())
		return searchDoneMsg{seq: seq, books: books, err: err}
	}
}

func (a *App) loadRelated(bookID string) tea.Cmd {
	return func() tea.Msg {
		// related titles are decorative, errors just leave the section empty
		books, err := a.api.RelatedBooks(context.Background(), bookID)
		if err != nil {
			return relatedDoneMsg{bookID: bookID}
		}
		return relatedDoneMsg{bookID: bookID, books: books}
	}
}

func (a *App) doReserve(bookID string) tea.Cmd {
	return func() tea.Msg {
		_, err := a.api.CreateReservation(context.Background(), bookID)
		return reserveDoneMsg{bookID: bookID, err: err}
	}
}

func (a *App) loadStats() tea.Cmd {
	a.statsSeq++
	seq := a.statsSeq
	userID := a.store.Current().UserID
	return tea.Batch(
		func() tea.Msg {
			if stats, ok := a.stats.Get(userID); ok {
				return statsDoneMsg{seq: seq, stats: stats, cached: true}
			}
			stats, err := a.api.UserStats(context.Background(), userID)
			if err != nil {
				return statsDoneMsg{seq: seq, err: err}
			}
			a.stats.Put(userID, *stats)
			return statsDoneMsg{seq: seq, stats: *stats}
		},
		func() tea.Msg {
			loans, err := a.api.Loans(context.Background(), userID)
			if err != nil {
				return profileLoansDoneMsg{seq: seq}
			}
			return profileLoansDoneMsg{seq: seq, loans: loans}
		},
	)
}

func (a *App) loadLoans() tea.Cmd {
	a.loansSeq++
	seq := a.loansSeq
	userID := a.store.Current().UserID
	return func() tea.Msg {
		loans, err := a.api.Loans(context.Background(), userID)
		return loansDoneMsg{seq: seq, loans: loans, err: err}
	}
}

func (a *App) doReturnLoan(loanID string) tea.Cmd {
	return func() tea.Msg {
		err := a.api.ReturnLoan(context.Background(), loanID)
		return loanActionDoneMsg{loanID: loanID, returned: true, err: err}
	}
}

func (a *App) doRenewLoan(loanID string) tea.Cmd {
	return func() tea.Msg {
		_, err := a.api.RenewLoan(context.Background(), loanID)
		return loanActionDoneMsg{loanID: loanID, err: err}
	}
}

func (a *App) loadReservations(history bool) tea.Cmd {
	a.reservationsSeq++
	seq := a.reservationsSeq
	userID := a.store.Current().UserID
	return func() tea.Msg {
		var (
			list []client.Reservation
			err  error
		)
		if history {
			list, err = a.api.ReservationHistory(context.Background(), userID)
		} else {
			list, err = a.api.ActiveReservations(context.Background(), userID)
		}
		return reservationsDoneMsg{seq: seq, list: list, err: err}
	}
}

func (a *App) doCancelReservation(id string) tea.Cmd {
	return func() tea.Msg {
		err := a.api.CancelReservation(context.Background(), id)
		return cancelDoneMsg{reservationID: id, err: err}
	}
}

func (a *App) loadFines(history bool) tea.Cmd {
	a.finesSeq++
	seq := a.finesSeq
	userID := a.store.Current().UserID
	return func() tea.Msg {
		var (
			fines []client.Fine
			err   error
		)
		if history {
			fines, err = a.api.FineHistory(context.Background(), userID)
		} else {
			fines, err = a.api.Fines(context.Background(), userID)
		}
		return finesDoneMsg{seq: seq, fines: fines, err: err}
	}
}

func (a *App) doPayFine(id string) tea.Cmd {
	return func() tea.Msg {
		err := a.api.PayFine(context.Background(), id)
		return payDoneMsg{fineID: id, err: err}
	}
}

func (a *App) loadUsers() tea.Cmd {
	a.usersSeq++
	seq := a.usersSeq
	return func() tea.Msg {
		users, err := a.api.Users(context.Background())
		return usersDoneMsg{seq: seq, users: users, err: err}
	}
}

func (a *App) doToggleUser(id, status string) tea.Cmd {
	return func() tea.Msg {
		u, err := a.api.UpdateUserStatus(context.Background(), id, status)
		return toggleDoneMsg{userID: id, user: u, err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case router.PageLogin:
		if a.loginView != nil {
			content = a.loginView.View()
		}
	case router.PageBusca:
		if a.searchView != nil {
			content = a.searchView.View()
		}
	case router.PageResultados:
		if a.resultsView != nil {
			content = a.resultsView.View()
		}
	case router.PageLivro:
		if a.detailView != nil {
			content = a.detailView.View()
		}
	case router.PagePerfil:
		if a.profileView != nil {
			content = a.profileView.View()
		}
	case router.PageEmprestimos:
		if a.loanView != nil {
			content = a.loanView.View()
		}
	case router.PageReservas:
		if a.reservaView != nil {
			content = a.reservaView.View()
		}
	case router.PageMultas:
		if a.multaView != nil {
			content = a.multaView.View()
		}
	case router.PageAdminUsuario:
		if a.usersView != nil {
			content = a.usersView.View()
		}
	default:
		content = a.viewHome()
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewHome() string {
	if a.homeMenu == nil {
		return ""
	}
	content := a.homeMenu.View()
	if a.notice != "" {
		content += "\n\n" + styles.Subtitle.Render(a.notice)
	}
	return content
}

// renderHeader creates the header bar with app branding and session context
func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("Biblioteca Universitária"))

	rightText := ""
	if sess := a.store.Current(); !sess.Anonymous() {
		rightText = contextStyle.Render(fmt.Sprintf("%s · %s", sess.DisplayName, sess.Role)) + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"

	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch a.screen {
	case router.PageHome:
		shortcuts = []string{"↑↓ Navegar", "Enter Abrir", "q Sair"}
	case router.PageLogin, router.PageBusca:
		shortcuts = []string{"↑↓ Campos", "Enter Confirmar", "Esc Voltar"}
	case router.PageResultados:
		shortcuts = []string{"↑↓ Navegar", "Enter Detalhes", "Esc Voltar"}
	case router.PageLivro:
		shortcuts = []string{"r Reservar", "Esc Voltar"}
	case router.PagePerfil:
		shortcuts = []string{"u Atualizar", "Esc Voltar"}
	case router.PageEmprestimos:
		shortcuts = []string{"d Devolver", "r Renovar", "Esc Voltar"}
	case router.PageReservas:
		shortcuts = []string{"c Cancelar", "h Histórico", "Esc Voltar"}
	case router.PageMultas:
		shortcuts = []string{"p Pagar", "h Histórico", "Esc Voltar"}
	case router.PageAdminUsuario:
		shortcuts = []string{"t Alternar", "Esc Voltar"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlainText := ""
	if !a.lastUpdate.IsZero() && a.screen != router.PageHome && a.screen != router.PageLogin {
		elapsed := formatTimeSince(a.lastUpdate)
		rightText = statusStyle.Render("Atualizado "+elapsed) + " "
		rightPlainText = "Atualizado " + elapsed + " "
	}

	leftWidth := lipgloss.Width(leftPlainText)
	rightWidth := lipgloss.Width(rightPlainText)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"

	return borderStyle.Render(footer)
}

// formatTimeSince formats a duration since the given time in human-readable form
func formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "agora"
		}
		return fmt.Sprintf("há %ds", secs)
	}

	if d < time.Hour {
		mins := int(d.Minutes())
		return fmt.Sprintf("há %dm", mins)
	}

	return fmt.Sprintf("há %dh", int(d.Hours()))
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI over a restored and validated session.
func Run(api *client.Client, store *session.Store) error {
	app := New(api, store)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
