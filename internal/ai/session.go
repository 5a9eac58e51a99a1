package ai

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionRegistry hands out the correlation tokens sent as sessionId on
// webhook requests. Tokens live for the process lifetime: one per
// authenticated username, plus a shared anonymous token.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]string
}

// NewSessionRegistry creates an empty registry
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]string)}
}

// SessionFor returns the existing token for a username, creating one on
// first use. An empty username keys the anonymous session.
func (r *SessionRegistry) SessionFor(username string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if token, ok := r.sessions[username]; ok {
		return token
	}
	token := fmt.Sprintf("research_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
	r.sessions[username] = token
	return token
}

// Reset discards a username's token so the next request starts a fresh
// webhook conversation
func (r *SessionRegistry) Reset(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, username)
}
