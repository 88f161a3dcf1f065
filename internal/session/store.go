// Package session keeps one independent Bot per client session.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"wikibot/internal/service"
)

var ErrSessionNotFound = errors.New("session not found")

// Factory builds a fresh Bot for a new session.
type Factory func() *service.Bot

type entry struct {
	mu        sync.Mutex
	bot       *service.Bot
	expiresAt time.Time
}

// Store is safe for concurrent use. Actions on one session are serialized;
// different sessions proceed independently.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	ttl      time.Duration
	newBot   Factory
	now      func() time.Time
}

func NewStore(newBot Factory, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		newBot:   newBot,
		now:      time.Now,
	}
}

// Create starts a session and returns its id.
func (s *Store) Create() string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	s.sessions[id] = &entry{bot: s.newBot(), expiresAt: s.now().Add(s.ttl)}
	return id
}

// With runs fn with exclusive access to the session's Bot and extends its lifetime.
func (s *Store) With(id string, fn func(*service.Bot) error) error {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if s.now().After(e.expiresAt) {
		s.Delete(id)
		return ErrSessionNotFound
	}
	e.expiresAt = s.now().Add(s.ttl)
	return fn(e.bot)
}

// Delete removes a session. It reports whether the session existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	return len(s.sessions)
}

func (s *Store) pruneLocked() {
	now := s.now()
	for id, e := range s.sessions {
		if e.mu.TryLock() {
			expired := now.After(e.expiresAt)
			e.mu.Unlock()
			if expired {
				delete(s.sessions, id)
			}
		}
	}
}
