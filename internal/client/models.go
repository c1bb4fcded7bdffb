// ABOUTME: Wire types for the library service API
// ABOUTME: Mirrors the backend JSON contract for users, books, loans, reservations, and fines

package client

import "time"

// User is a library account as returned by the backend.
type User struct {
	ID        string `json:"id"`
	Nome      string `json:"nome"`
	Email     string `json:"email"`
	Matricula string `json:"matricula,omitempty"`
	Role      string `json:"role"`
	Status    string `json:"status,omitempty"`
}

// LoginResponse is the token-plus-profile payload from a credential exchange.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Book is a catalog item.
type Book struct {
	ID         string `json:"id"`
	Titulo     string `json:"titulo"`
	Autor      string `json:"autor"`
	Tipo       string `json:"tipo"`
	Ano        int    `json:"ano,omitempty"`
	Idioma     string `json:"idioma,omitempty"`
	Editora    string `json:"editora,omitempty"`
	ISBN       string `json:"isbn,omitempty"`
	Sinopse    string `json:"sinopse,omitempty"`
	Exemplares int    `json:"exemplares"`
	Disponivel bool   `json:"disponivel"`
}

// BookInput is the payload for catalog mutations (admin only).
type BookInput struct {
	Titulo     string `json:"titulo"`
	Autor      string `json:"autor"`
	Tipo       string `json:"tipo"`
	Ano        int    `json:"ano,omitempty"`
	Idioma     string `json:"idioma,omitempty"`
	Editora    string `json:"editora,omitempty"`
	ISBN       string `json:"isbn,omitempty"`
	Sinopse    string `json:"sinopse,omitempty"`
	Exemplares int    `json:"exemplares"`
}

// Loan is one borrowed-item record.
type Loan struct {
	ID             string    `json:"id"`
	LivroID        string    `json:"livroId"`
	Titulo         string    `json:"titulo"`
	DataEmprestimo time.Time `json:"dataEmprestimo"`
	DataDevolucao  time.Time `json:"dataDevolucao"`
	Renovacoes     int       `json:"renovacoes"`
}

// Reservation statuses as reported by the backend. Only pendente and
// ativa reservations are cancelable by the holder.
const (
	ReservationPendente   = "pendente"
	ReservationAtiva      = "ativa"
	ReservationFinalizada = "finalizada"
	ReservationCancelada  = "cancelada"
	ReservationAtendida   = "atendida"
)

// Reservation is a hold placed on a catalog item.
type Reservation struct {
	ID          string    `json:"id"`
	LivroID     string    `json:"livroId"`
	Titulo      string    `json:"titulo"`
	DataReserva time.Time `json:"dataReserva"`
	Status      string    `json:"status"`
}

// Cancelable reports whether the holder may cancel this reservation.
func (r Reservation) Cancelable() bool {
	return r.Status == ReservationPendente || r.Status == ReservationAtiva
}

// Fine is a monetary penalty owed by a user.
type Fine struct {
	ID     string  `json:"id"`
	Valor  float64 `json:"valor"`
	Motivo string  `json:"motivo"`
}

// UserStats is the dashboard statistics payload for one user.
type UserStats struct {
	EmprestimosAtivos int     `json:"emprestimosAtivos"`
	ReservasAtivas    int     `json:"reservasAtivas"`
	MultasPendentes   int     `json:"multasPendentes"`
	TotalMultas       float64 `json:"totalMultas"`
	TotalEmprestimos  int     `json:"totalEmprestimos"`
}

// ErrorResponse represents an API error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}
