// ABOUTME: Error taxonomy for API responses
// ABOUTME: Sentinel errors for auth failures plus typed backend errors

package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized marks a 401: the token is invalid or expired. Callers
// must clear the session and send the user back to login.
var ErrUnauthorized = errors.New("sessão inválida ou expirada")

// ErrForbidden marks a 403: the user is authenticated but the role does
// not permit the action. The session is kept.
var ErrForbidden = errors.New("acesso negado para este perfil")

// APIError is any other non-2xx backend response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("erro do servidor (%d): %s", e.StatusCode, e.Message)
}

// fallbackMessage maps a status code to a fixed user-facing message for
// responses whose body carries no usable error text.
func fallbackMessage(status int) string {
	switch {
	case status == http.StatusNotFound:
		return "registro não encontrado"
	case status == http.StatusConflict:
		return "operação conflita com o estado atual"
	case status >= 500:
		return "serviço indisponível, tente novamente mais tarde"
	default:
		return "requisição inválida"
	}
}
