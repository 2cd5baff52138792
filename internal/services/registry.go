package services

import (
	"sync"

	"github.com/google/uuid"

	"github.com/latestcomment/headline-bias-game/internal/models"
)

// SessionRegistry stores live game sessions by token.
type SessionRegistry struct {
	sessions map[string]*models.GameSession
	newToken func() string
	mu       sync.RWMutex
}

// NewSessionRegistry creates a registry. A nil newToken uses random UUIDs.
func NewSessionRegistry(newToken func() string) *SessionRegistry {
	if newToken == nil {
		newToken = uuid.NewString
	}
	return &SessionRegistry{
		sessions: make(map[string]*models.GameSession),
		newToken: newToken,
	}
}

// Create stores a new session under a token no live session uses.
func (r *SessionRegistry) Create() *models.GameSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		token := r.newToken()
		if _, exists := r.sessions[token]; exists {
			continue
		}
		session := models.NewGameSession(token)
		r.sessions[token] = session
		return session
	}
}

// Get retrieves a session by token
func (r *SessionRegistry) Get(token string) (*models.GameSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, exists := r.sessions[token]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Destroy removes a session and reports whether it was present
func (r *SessionRegistry) Destroy(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.sessions[token]
	delete(r.sessions, token)
	return exists
}

// Len returns the number of live sessions
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
