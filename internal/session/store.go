// ABOUTME: Single source of truth for who is logged in and as what role
// ABOUTME: Keeps durable storage and in-memory state in step on every mutation

package session

import (
	"context"
	"sync"

	"github.com/ufxlib/biblioteca-cli/internal/client"
	"github.com/ufxlib/biblioteca-cli/internal/debuglog"
)

// Store owns the current session. All mutations update the repository
// alongside in-memory state and keep the API client's bearer token in
// sync. Login runs on a background goroutine in the TUI while the event
// loop keeps reading Current, so the session is mutex-guarded.
type Store struct {
	repo Repository
	api  *client.Client

	mu      sync.RWMutex
	current Session
}

// NewStore creates a session store over the given repository and client.
func NewStore(repo Repository, api *client.Client) *Store {
	return &Store{repo: repo, api: api}
}

// Current returns the session as last resolved.
func (st *Store) Current() Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}

// Restore loads the persisted session without contacting the backend.
// The cached profile is treated as current until Validate runs. A stored
// session violating the token/role invariant is discarded.
func (st *Store) Restore() Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, err := st.repo.Load()
	if err != nil {
		st.clearLocked()
		return st.current
	}
	if s.Anonymous() {
		st.current = Session{}
		return st.current
	}
	if s.Role == "" {
		// token without role violates the session invariant
		st.clearLocked()
		return st.current
	}
	st.current = s
	st.api.SetToken(s.Token)
	return st.current
}

// Validate re-checks the restored token against the profile endpoint.
// One attempt only: on success the cached profile is refreshed, on any
// failure (network, 401, anything) the session is cleared entirely and
// the store falls back to anonymous.
func (st *Store) Validate(ctx context.Context) Session {
	cur := st.Current()
	if cur.Anonymous() {
		return cur
	}

	u, err := st.api.User(ctx, cur.UserID)

	st.mu.Lock()
	defer st.mu.Unlock()
	if err != nil {
		st.clearLocked()
		return st.current
	}

	s := st.current
	s.DisplayName = u.Nome
	if u.Role != "" {
		s.Role = Role(u.Role)
	}
	if err := st.repo.Save(s); err != nil {
		// memory moves on with the refreshed profile, the stale file
		// gets re-validated on the next start anyway
		debuglog.Log("session save after validate: %v", err)
	}
	st.current = s
	return st.current
}

// Initialize restores and validates in one step, for non-interactive
// commands that need a settled session before doing anything.
func (st *Store) Initialize(ctx context.Context) Session {
	if st.Restore(); st.Current().Anonymous() {
		return st.Current()
	}
	return st.Validate(ctx)
}

// Login exchanges credentials for a session. On failure the current
// session is left untouched and the error is returned to the caller.
func (st *Store) Login(ctx context.Context, identifier, senha string) (Session, error) {
	resp, err := st.api.Login(ctx, identifier, senha)
	if err != nil {
		return st.Current(), err
	}

	role := Role(resp.User.Role)
	if role == "" {
		role = DeriveRole(identifier)
	}

	s := Session{
		Token:       resp.Token,
		Role:        role,
		UserID:      resp.User.ID,
		DisplayName: resp.User.Nome,
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if err := st.repo.Save(s); err != nil {
		return st.current, err
	}
	st.current = s
	st.api.SetToken(s.Token)
	return s, nil
}

// Logout clears the persisted session and resets to anonymous. The
// backend is not called; the bearer token simply stops being sent.
func (st *Store) Logout() error {
	st.mu.Lock()
	defer st.mu.Unlock()

	err := st.repo.Clear()
	st.current = Session{}
	st.api.SetToken("")
	return err
}

func (st *Store) clearLocked() {
	st.repo.Clear()
	st.current = Session{}
	st.api.SetToken("")
}
