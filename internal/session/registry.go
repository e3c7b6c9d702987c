package session

import (
	"sync"

	"github.com/google/uuid"
)

// Registry maps opaque session tokens to live sessions. One active session
// per user: a new login replaces any previous one.
type Registry struct {
	mu      sync.Mutex
	byToken map[string]*Session
	byUser  map[string]string // username -> current token
}

func NewRegistry() *Registry {
	return &Registry{
		byToken: make(map[string]*Session),
		byUser:  make(map[string]string),
	}
}

func (r *Registry) Login(username string, log Log) (string, *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byUser[username]; ok {
		delete(r.byToken, old)
	}

	token := uuid.NewString()
	sess := New(username, log)
	r.byToken[token] = sess
	r.byUser[username] = token
	return token, sess
}

func (r *Registry) Get(token string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.byToken[token]
	return sess, ok
}

func (r *Registry) Logout(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sess, ok := r.byToken[token]; ok {
		delete(r.byUser, sess.Username)
		delete(r.byToken, token)
	}
}
