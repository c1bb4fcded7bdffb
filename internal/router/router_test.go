// ABOUTME: Tests for role-based page resolution
// ABOUTME: Covers anonymous redirects, silent admin denial, and search clearing

package router

import (
	"testing"

	"github.com/ufxlib/biblioteca-cli/internal/session"
)

var (
	anonymous = session.Session{}
	student   = session.Session{Token: "t1", Role: session.RoleAluno, UserID: "10"}
	professor = session.Session{Token: "t2", Role: session.RoleProfessor, UserID: "11"}
	admin     = session.Session{Token: "t3", Role: session.RoleAdmin, UserID: "1"}
)

func TestAnonymousRedirectedToLogin(t *testing.T) {
	for _, page := range []Page{PagePerfil, PageEmprestimos, PageReservas, PageMultas} {
		res := Resolve(Request{Page: page}, anonymous)
		if res.Page != PageLogin {
			t.Errorf("%s: expected login, got %s", page, res.Page)
		}
	}
}

func TestAnonymousAdminPageGoesToLogin(t *testing.T) {
	res := Resolve(Request{Page: PageAdminPerfil}, anonymous)
	if res.Page != PageLogin {
		t.Errorf("expected login, got %s", res.Page)
	}
}

func TestNonAdminSilentlyDeniedToHome(t *testing.T) {
	for _, s := range []session.Session{student, professor} {
		res := Resolve(Request{Page: PageAdminPerfil}, s)
		if res.Page != PageHome {
			t.Errorf("%s: expected home, got %s", s.Role, res.Page)
		}
	}
}

func TestAdminReachesAdminPages(t *testing.T) {
	res := Resolve(Request{Page: PageAdminPerfil}, admin)
	if res.Page != PageAdminPerfil {
		t.Errorf("expected admin-perfil, got %s", res.Page)
	}

	res = Resolve(Request{Page: PageAdminUsuario}, admin)
	if res.Page != PageAdminUsuario {
		t.Errorf("expected admin-usuarios, got %s", res.Page)
	}
}

func TestPublicPagesUnchanged(t *testing.T) {
	for _, page := range []Page{PageHome, PageBusca, PageResultados, PageLivro, PageLogin} {
		res := Resolve(Request{Page: page}, anonymous)
		if res.Page != page {
			t.Errorf("%s: expected unchanged, got %s", page, res.Page)
		}
	}
}

func TestAuthenticatedPagePassesThrough(t *testing.T) {
	res := Resolve(Request{Page: PagePerfil}, student)
	if res.Page != PagePerfil {
		t.Errorf("expected perfil, got %s", res.Page)
	}
}

func TestSearchStateClearedOnNonSearchPages(t *testing.T) {
	res := Resolve(Request{Page: PagePerfil}, student)
	if !res.ClearSearch {
		t.Error("expected search state cleared on perfil")
	}

	res = Resolve(Request{Page: PageResultados}, student)
	if res.ClearSearch {
		t.Error("expected search state kept on resultados")
	}
}

func TestPreserveSearchHonored(t *testing.T) {
	res := Resolve(Request{Page: PageHome, PreserveSearch: true}, student)
	if res.ClearSearch {
		t.Error("expected search state preserved when requested")
	}
}

func TestUnknownPageRequiresAuthentication(t *testing.T) {
	res := Resolve(Request{Page: Page("inexistente")}, anonymous)
	if res.Page != PageLogin {
		t.Errorf("expected login for unknown page, got %s", res.Page)
	}

	res = Resolve(Request{Page: Page("inexistente")}, student)
	if res.Page != Page("inexistente") {
		t.Errorf("expected unknown page to pass through when authenticated, got %s", res.Page)
	}
}
