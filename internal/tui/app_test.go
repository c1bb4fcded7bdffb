// ABOUTME: Integration tests for TUI app
// ABOUTME: Tests navigation policy, fetch sequencing, and state transitions

package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ufxlib/biblioteca-cli/internal/client"
	"github.com/ufxlib/biblioteca-cli/internal/router"
	"github.com/ufxlib/biblioteca-cli/internal/search"
	"github.com/ufxlib/biblioteca-cli/internal/session"
	"github.com/ufxlib/biblioteca-cli/internal/tui/menu"
	"github.com/ufxlib/biblioteca-cli/internal/tui/searchform"
)

func newTestApp(t *testing.T, sess session.Session) *App {
	t.Helper()
	c := client.New("http://localhost:8080")
	repo := session.NewMemoryRepository()
	store := session.NewStore(repo, c)
	if !sess.Anonymous() {
		if err := repo.Save(sess); err != nil {
			t.Fatalf("seeding session: %v", err)
		}
		store.Restore()
	}
	app := New(c, store)
	app.width = 100
	app.height = 40
	return app
}

func alunoSession() session.Session {
	return session.Session{
		Token:       "tok-1",
		Role:        session.RoleAluno,
		UserID:      "u1",
		DisplayName: "Maria Silva",
	}
}

func adminSession() session.Session {
	return session.Session{
		Token:       "tok-2",
		Role:        session.RoleAdmin,
		UserID:      "u2",
		DisplayName: "Equipe Biblioteca",
	}
}

func TestAppInitialState(t *testing.T) {
	app := newTestApp(t, session.Session{})

	if app.screen != router.PageHome {
		t.Errorf("expected initial screen to be home, got %s", app.screen)
	}
	if app.homeMenu == nil {
		t.Error("expected home menu to be initialized")
	}
}

func TestAppAnonymousProfileRedirectsToLogin(t *testing.T) {
	app := newTestApp(t, session.Session{})

	updated, _ := app.Update(menu.NavigateMsg{Page: router.PagePerfil})

	result := updated.(*App)
	if result.screen != router.PageLogin {
		t.Errorf("expected login screen, got %s", result.screen)
	}
	if result.loginView == nil {
		t.Error("expected login form to be created")
	}
}

func TestAppNonAdminBlockedFromAdminPage(t *testing.T) {
	app := newTestApp(t, alunoSession())

	updated, _ := app.Update(menu.NavigateMsg{Page: router.PageAdminUsuario})

	result := updated.(*App)
	if result.screen != router.PageHome {
		t.Errorf("expected silent fallback to home, got %s", result.screen)
	}
	if result.usersView != nil {
		t.Error("expected no user list to be created")
	}
}

func TestAppAdminReachesUserList(t *testing.T) {
	app := newTestApp(t, adminSession())

	updated, _ := app.Update(menu.NavigateMsg{Page: router.PageAdminUsuario})

	result := updated.(*App)
	if result.screen != router.PageAdminUsuario {
		t.Errorf("expected admin user screen, got %s", result.screen)
	}
	if result.usersView == nil {
		t.Error("expected user list to be created")
	}
}

func TestAppSearchSubmitCreatesResults(t *testing.T) {
	app := newTestApp(t, session.Session{})

	criteria := search.NewCriteria()
	criteria.Query = "redes"
	updated, cmd := app.Update(searchform.SubmitMsg{Criteria: criteria})

	result := updated.(*App)
	if result.screen != router.PageResultados {
		t.Errorf("expected results screen, got %s", result.screen)
	}
	if result.resultsView == nil {
		t.Fatal("expected results list to be created")
	}
	if !result.hasSearch || result.lastSearch.Query != "redes" {
		t.Error("expected criteria to be remembered")
	}
	if cmd == nil {
		t.Error("expected a fetch command to be issued")
	}
}

func TestAppSearchResultSetsBooks(t *testing.T) {
	app := newTestApp(t, session.Session{})
	app.Update(searchform.SubmitMsg{Criteria: search.NewCriteria()})

	books := []client.Book{{ID: "b1", Titulo: "Redes de Computadores"}}
	updated, _ := app.Update(searchDoneMsg{seq: app.searchSeq, books: books})

	result := updated.(*App)
	view := result.resultsView.View()
	if !strings.Contains(view, "Redes de Computadores") {
		t.Error("expected result list to show the fetched title")
	}
}

func TestAppStaleSearchResultDiscarded(t *testing.T) {
	app := newTestApp(t, session.Session{})
	app.Update(searchform.SubmitMsg{Criteria: search.NewCriteria()})
	stale := app.searchSeq

	// A newer search supersedes the in-flight one
	criteria := search.NewCriteria()
	criteria.Query = "banco de dados"
	app.Update(searchform.SubmitMsg{Criteria: criteria})

	books := []client.Book{{ID: "b1", Titulo: "Resultado Antigo"}}
	updated, _ := app.Update(searchDoneMsg{seq: stale, books: books})

	result := updated.(*App)
	if strings.Contains(result.resultsView.View(), "Resultado Antigo") {
		t.Error("expected stale search response to be discarded")
	}
}

func TestAppLeavingSearchFlowClearsCriteria(t *testing.T) {
	app := newTestApp(t, alunoSession())

	criteria := search.NewCriteria()
	criteria.Query = "redes"
	app.Update(searchform.SubmitMsg{Criteria: criteria})
	app.Update(menu.NavigateMsg{Page: router.PagePerfil})

	if app.hasSearch {
		t.Error("expected saved criteria to be dropped when leaving the search flow")
	}
	if app.resultsView != nil {
		t.Error("expected cached results to be dropped")
	}
}

func TestAppRemovedReservationNotResurrectedByRefetch(t *testing.T) {
	app := newTestApp(t, alunoSession())
	app.Update(menu.NavigateMsg{Page: router.PageReservas})

	list := []client.Reservation{
		{ID: "r1", Titulo: "Livro A", Status: client.ReservationAtiva},
		{ID: "r2", Titulo: "Livro B", Status: client.ReservationPendente},
	}
	app.Update(reservationsDoneMsg{seq: app.reservationsSeq, list: list})

	// Cancellation succeeds, then a stale snapshot still containing r1 lands
	app.Update(cancelDoneMsg{reservationID: "r1"})
	app.reservationsSeq++
	app.Update(reservationsDoneMsg{seq: app.reservationsSeq, list: list})

	view := app.reservaView.View()
	if strings.Contains(view, "Livro A") {
		t.Error("expected cancelled reservation to stay removed after refetch")
	}
	if !strings.Contains(view, "Livro B") {
		t.Error("expected untouched reservation to remain listed")
	}
}

func TestAppUnauthorizedForcesLogout(t *testing.T) {
	app := newTestApp(t, alunoSession())
	app.Update(menu.NavigateMsg{Page: router.PageEmprestimos})

	updated, _ := app.Update(loansDoneMsg{seq: app.loansSeq, err: client.ErrUnauthorized})

	result := updated.(*App)
	if !result.store.Current().Anonymous() {
		t.Error("expected session to be cleared on 401")
	}
	if result.screen != router.PageHome {
		t.Errorf("expected fallback to home after forced logout, got %s", result.screen)
	}
}

func TestAppForbiddenKeepsSession(t *testing.T) {
	app := newTestApp(t, alunoSession())
	app.Update(menu.NavigateMsg{Page: router.PageEmprestimos})

	updated, _ := app.Update(loansDoneMsg{seq: app.loansSeq, err: client.ErrForbidden})

	result := updated.(*App)
	if result.store.Current().Anonymous() {
		t.Error("expected session to survive a 403")
	}
}

func TestAppLogoutResetsToAnonymousHome(t *testing.T) {
	app := newTestApp(t, alunoSession())

	updated, _ := app.Update(menu.LogoutMsg{})

	result := updated.(*App)
	if !result.store.Current().Anonymous() {
		t.Error("expected anonymous session after logout")
	}
	if result.screen != router.PageHome {
		t.Errorf("expected home screen after logout, got %s", result.screen)
	}
}

func TestAppLoginDoneNavigatesHome(t *testing.T) {
	app := newTestApp(t, session.Session{})
	app.Update(menu.NavigateMsg{Page: router.PageLogin})

	updated, _ := app.Update(loginDoneMsg{sess: alunoSession()})

	result := updated.(*App)
	if result.screen != router.PageHome {
		t.Errorf("expected home screen after login, got %s", result.screen)
	}
	if !strings.Contains(result.View(), "Bem-vindo") {
		t.Error("expected welcome notice after login")
	}
}

func TestAppLoginFailureStaysOnForm(t *testing.T) {
	app := newTestApp(t, session.Session{})
	app.Update(menu.NavigateMsg{Page: router.PageLogin})

	updated, _ := app.Update(loginDoneMsg{err: errors.New("credenciais inválidas")})

	result := updated.(*App)
	if result.screen != router.PageLogin {
		t.Errorf("expected login screen to persist on failure, got %s", result.screen)
	}
	if result.loginView == nil {
		t.Error("expected login form to persist on failure")
	}
}

func TestAppViewContainsFrame(t *testing.T) {
	app := newTestApp(t, alunoSession())

	view := app.View()
	if !strings.Contains(view, "Biblioteca Universitária") {
		t.Error("expected header branding in view")
	}
	if !strings.Contains(view, "Maria Silva") {
		t.Error("expected session context in header")
	}
	if !strings.Contains(view, "Navegar") {
		t.Error("expected footer shortcuts in view")
	}
}

func appKeyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAppFailedLoanFetchRetryRepopulates(t *testing.T) {
	app := newTestApp(t, alunoSession())

	app.Update(menu.NavigateMsg{Page: router.PageEmprestimos})
	app.Update(loansDoneMsg{seq: app.loansSeq, err: errors.New("connection refused")})

	view := app.loanView.View()
	if !strings.Contains(view, "connection refused") || !strings.Contains(view, "u tentar novamente") {
		t.Fatalf("expected error with retry hint, got %q", view)
	}

	updated, cmd := app.Update(appKeyMsg("u"))
	if cmd == nil {
		t.Fatal("expected the list to ask for a retry")
	}
	_, loadCmd := updated.(*App).Update(cmd())
	if loadCmd == nil {
		t.Fatal("expected the retry to start a new fetch")
	}

	app.Update(loansDoneMsg{seq: app.loansSeq, loans: []client.Loan{
		{ID: "l1", Titulo: "Redes de Computadores", DataDevolucao: time.Now().Add(72 * time.Hour)},
	}})

	view = app.loanView.View()
	if !strings.Contains(view, "Redes de Computadores") {
		t.Errorf("expected repopulated list, got %q", view)
	}
	if strings.Contains(view, "connection refused") {
		t.Error("expected error cleared after successful retry")
	}
}

func TestAppFailedReserveKeepsStatsCache(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	app := newTestApp(t, alunoSession())

	if err := app.stats.Put("u1", client.UserStats{EmprestimosAtivos: 2}); err != nil {
		t.Fatalf("seeding cache: %v", err)
	}

	app.Update(reserveDoneMsg{bookID: "b1", err: errors.New("livro indisponível")})
	if _, ok := app.stats.Get("u1"); !ok {
		t.Error("expected cache kept when the reservation failed")
	}

	app.Update(reserveDoneMsg{bookID: "b1"})
	if _, ok := app.stats.Get("u1"); ok {
		t.Error("expected cache invalidated after a successful reservation")
	}
}
