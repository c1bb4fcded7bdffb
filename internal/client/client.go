// ABOUTME: HTTP client for the library service API
// ABOUTME: Wraps all backend endpoints with bearer auth and error mapping

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Client is the API client for the library service backend.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// The token is written by the session store and read by in-flight
	// request goroutines, so access goes through the mutex.
	mu    sync.RWMutex
	token string
}

// New creates a new API client with the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken sets the bearer token attached to every subsequent request.
// An empty token clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login calls POST /api/users/login to exchange credentials for a token
// and profile.
func (c *Client) Login(ctx context.Context, identifier, senha string) (*LoginResponse, error) {
	body := map[string]string{"identificador": identifier, "senha": senha}
	var resp LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/users/login", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// User calls GET /api/users/:id.
func (c *Client) User(ctx context.Context, id string) (*User, error) {
	var u User
	if err := c.doJSON(ctx, http.MethodGet, "/api/users/"+url.PathEscape(id), nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Users calls GET /api/users (admin).
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.doJSON(ctx, http.MethodGet, "/api/users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUserStatus calls PATCH /api/users/:id to change an account status
// (admin).
func (c *Client) UpdateUserStatus(ctx context.Context, id, status string) (*User, error) {
	body := map[string]string{"status": status}
	var u User
	if err := c.doJSON(ctx, http.MethodPatch, "/api/users/"+url.PathEscape(id), nil, body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SearchBooks calls GET /api/books/search with the given parameters.
// Empty params are a valid unfiltered search.
func (c *Client) SearchBooks(ctx context.Context, params url.Values) ([]Book, error) {
	var books []Book
	if err := c.doJSON(ctx, http.MethodGet, "/api/books/search", params, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// Books calls GET /api/books with optional filters.
func (c *Client) Books(ctx context.Context, params url.Values) ([]Book, error) {
	var books []Book
	if err := c.doJSON(ctx, http.MethodGet, "/api/books", params, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// Book calls GET /api/books/:id.
func (c *Client) Book(ctx context.Context, id string) (*Book, error) {
	var b Book
	if err := c.doJSON(ctx, http.MethodGet, "/api/books/"+url.PathEscape(id), nil, nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// RelatedBooks calls GET /api/books/relacionados/:id.
func (c *Client) RelatedBooks(ctx context.Context, id string) ([]Book, error) {
	var books []Book
	if err := c.doJSON(ctx, http.MethodGet, "/api/books/relacionados/"+url.PathEscape(id), nil, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// RecentBooks calls GET /api/books/recentes.
func (c *Client) RecentBooks(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := c.doJSON(ctx, http.MethodGet, "/api/books/recentes", nil, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// CreateBook calls POST /api/books (admin).
func (c *Client) CreateBook(ctx context.Context, input *BookInput) (*Book, error) {
	var b Book
	if err := c.doJSON(ctx, http.MethodPost, "/api/books", nil, input, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateBook calls PUT /api/books/:id (admin).
func (c *Client) UpdateBook(ctx context.Context, id string, input *BookInput) (*Book, error) {
	var b Book
	if err := c.doJSON(ctx, http.MethodPut, "/api/books/"+url.PathEscape(id), nil, input, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// DeleteBook calls DELETE /api/books/:id (admin).
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/books/"+url.PathEscape(id), nil, nil, nil)
}

// CreateReservation calls POST /api/reservations to place a hold.
func (c *Client) CreateReservation(ctx context.Context, bookID string) (*Reservation, error) {
	body := map[string]string{"livroId": bookID}
	var r Reservation
	if err := c.doJSON(ctx, http.MethodPost, "/api/reservations", nil, body, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// CancelReservation calls PATCH /api/reservations/:id with the cancelada
// status. All other status transitions are backend-driven.
func (c *Client) CancelReservation(ctx context.Context, id string) error {
	body := map[string]string{"status": ReservationCancelada}
	return c.doJSON(ctx, http.MethodPatch, "/api/reservations/"+url.PathEscape(id), nil, body, nil)
}

// ActiveReservations calls GET /api/users/:id/reservas-ativas.
func (c *Client) ActiveReservations(ctx context.Context, userID string) ([]Reservation, error) {
	var list []Reservation
	if err := c.doJSON(ctx, http.MethodGet, "/api/users/"+url.PathEscape(userID)+"/reservas-ativas", nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ReservationHistory calls GET /api/users/:id/reservas-historico.
func (c *Client) ReservationHistory(ctx context.Context, userID string) ([]Reservation, error) {
	var list []Reservation
	if err := c.doJSON(ctx, http.MethodGet, "/api/users/"+url.PathEscape(userID)+"/reservas-historico", nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Fines calls GET /api/fines/user/:id for outstanding fines.
func (c *Client) Fines(ctx context.Context, userID string) ([]Fine, error) {
	var list []Fine
	if err := c.doJSON(ctx, http.MethodGet, "/api/fines/user/"+url.PathEscape(userID), nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// FineHistory calls GET /api/fines/history/:id.
func (c *Client) FineHistory(ctx context.Context, userID string) ([]Fine, error) {
	var list []Fine
	if err := c.doJSON(ctx, http.MethodGet, "/api/fines/history/"+url.PathEscape(userID), nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// PayFine calls POST /api/fines/:id/pay.
func (c *Client) PayFine(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPost, "/api/fines/"+url.PathEscape(id)+"/pay", nil, nil, nil)
}

// Loans calls GET /emprestimos/usuario/:id.
func (c *Client) Loans(ctx context.Context, userID string) ([]Loan, error) {
	var list []Loan
	if err := c.doJSON(ctx, http.MethodGet, "/emprestimos/usuario/"+url.PathEscape(userID), nil, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ReturnLoan calls PUT /emprestimos/:id/devolver.
func (c *Client) ReturnLoan(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPut, "/emprestimos/"+url.PathEscape(id)+"/devolver", nil, nil, nil)
}

// RenewLoan calls PUT /emprestimos/:id/renovar and returns the updated
// loan with its new due date.
func (c *Client) RenewLoan(ctx context.Context, id string) (*Loan, error) {
	var l Loan
	if err := c.doJSON(ctx, http.MethodPut, "/emprestimos/"+url.PathEscape(id)+"/renovar", nil, nil, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

// UserStats calls GET /stats/user/:id.
func (c *Client) UserStats(ctx context.Context, userID string) (*UserStats, error) {
	var s UserStats
	if err := c.doJSON(ctx, http.MethodGet, "/stats/user/"+url.PathEscape(userID), nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// doJSON performs one request against the backend. A non-nil body is
// JSON-encoded; a non-nil out receives the decoded response body.
func (c *Client) doJSON(ctx context.Context, method, path string, params url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts transport and context errors to
// user-friendly messages.
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to library service at %s: %w", c.baseURL, err)
}

// handleErrorResponse maps API error responses onto the error taxonomy.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		errResp.Error = ""
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	}

	msg := errResp.Error
	if msg == "" || resp.StatusCode >= 500 {
		msg = fallbackMessage(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
