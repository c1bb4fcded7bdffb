// ABOUTME: Session model for the authenticated library user
// ABOUTME: Holds bearer token, role, and profile identity

package session

import "strings"

// Role determines which pages and actions are permitted.
type Role string

const (
	RoleAluno     Role = "aluno"
	RoleProfessor Role = "professor"
	RoleAdmin     Role = "admin"
)

// Institutional identity constants used for role derivation.
const (
	InstitutionalDomain = "@ufx.edu.br"
	AdminAddress        = "biblioteca@ufx.edu.br"
)

// Session is the client's record of the current authenticated identity.
// The zero value is the anonymous session. Role is set if and only if
// Token is set.
type Session struct {
	Token       string `json:"token"`
	Role        Role   `json:"role"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

// Anonymous reports whether no one is logged in.
func (s Session) Anonymous() bool {
	return s.Token == ""
}

// IsAdmin reports whether the session belongs to an administrator.
func (s Session) IsAdmin() bool {
	return !s.Anonymous() && s.Role == RoleAdmin
}

// DeriveRole maps a login identifier to its role. A numeric-only
// registration number is a student; the fixed library address is the
// administrator; any other institutional address is a professor.
// Identifiers that match none of these are treated as students.
func DeriveRole(identifier string) Role {
	id := strings.ToLower(strings.TrimSpace(identifier))

	if id == AdminAddress {
		return RoleAdmin
	}
	if isNumeric(id) {
		return RoleAluno
	}
	if strings.HasSuffix(id, InstitutionalDomain) {
		return RoleProfessor
	}
	return RoleAluno
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
