package sessionStore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Yeabkal66/BOTH-BACKEND/internal/domain"
)

// SessionStore keeps one in-flight conversation per chat. Sessions never
// expire on their own; they are replaced on a new start, or dropped on
// completion or cancellation.
type SessionStore struct {
	states map[int64]*domain.SessionState
	mu     sync.RWMutex
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		states: make(map[int64]*domain.SessionState),
		mu:     sync.RWMutex{},
	}
}

// Get returns the chat's session, or nil when no conversation is active.
func (s *SessionStore) Get(ctx context.Context, chatID int64) *domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.states[chatID]
}

// Put installs the session for a chat, silently discarding any prior one.
func (s *SessionStore) Put(ctx context.Context, chatID int64, state *domain.SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state.CorrelationID == "" {
		state.CorrelationID = uuid.New().String()
	}
	s.states[chatID] = state
}

func (s *SessionStore) Reset(ctx context.Context, chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, chatID)
}

// ActiveChats lists chats that currently hold a session.
func (s *SessionStore) ActiveChats(ctx context.Context) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chats := make([]int64, 0, len(s.states))
	for chatID := range s.states {
		chats = append(chats, chatID)
	}
	return chats
}
