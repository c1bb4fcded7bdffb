// ABOUTME: Maps a requested logical page plus session into the page shown
// ABOUTME: Centralizes role gating in one policy table

package router

import "github.com/ufxlib/biblioteca-cli/internal/session"

// Page identifies a logical page of the application.
type Page string

const (
	PageHome         Page = "home"
	PageLogin        Page = "login"
	PageBusca        Page = "busca"
	PageResultados   Page = "resultados"
	PageLivro        Page = "livro"
	PagePerfil       Page = "perfil"
	PageEmprestimos  Page = "emprestimos"
	PageReservas     Page = "reservas"
	PageMultas       Page = "multas"
	PageAdminPerfil  Page = "admin-perfil"
	PageAdminUsuario Page = "admin-usuarios"
)

// access is the privilege a page demands of the current session.
type access int

const (
	accessPublic access = iota
	accessAuthenticated
	accessAdmin
)

// policy is the single place page access rules live; views never gate
// themselves.
var policy = map[Page]access{
	PageHome:         accessPublic,
	PageLogin:        accessPublic,
	PageBusca:        accessPublic,
	PageResultados:   accessPublic,
	PageLivro:        accessPublic,
	PagePerfil:       accessAuthenticated,
	PageEmprestimos:  accessAuthenticated,
	PageReservas:     accessAuthenticated,
	PageMultas:       accessAuthenticated,
	PageAdminPerfil:  accessAdmin,
	PageAdminUsuario: accessAdmin,
}

// Request is a navigation request for a logical page.
type Request struct {
	Page Page
	// PreserveSearch keeps the last executed search alive across the
	// navigation (used when a category shortcut lands on the results
	// page with a preset filter).
	PreserveSearch bool
}

// Resolution is the outcome of resolving a navigation request.
type Resolution struct {
	Page Page
	// ClearSearch tells the caller to drop the last executed search.
	ClearSearch bool
}

// Resolve decides the page actually shown for a request. Anonymous
// users asking for an authenticated page land on login; authenticated
// non-admins asking for an admin page are silently sent home. The
// function is pure; it performs no I/O.
func Resolve(req Request, s session.Session) Resolution {
	page := req.Page

	switch requiredAccess(page) {
	case accessAuthenticated:
		if s.Anonymous() {
			page = PageLogin
		}
	case accessAdmin:
		if s.Anonymous() {
			page = PageLogin
		} else if !s.IsAdmin() {
			page = PageHome
		}
	}

	return Resolution{
		Page:        page,
		ClearSearch: !req.PreserveSearch && !isSearchPage(page),
	}
}

func requiredAccess(p Page) access {
	if a, ok := policy[p]; ok {
		return a
	}
	// Unknown pages default to requiring authentication.
	return accessAuthenticated
}

func isSearchPage(p Page) bool {
	return p == PageBusca || p == PageResultados
}
