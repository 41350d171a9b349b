package storage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/worksheet-lab/ruiji/internal/models"
)

var ErrNotFound = errors.New("not found")

// SessionStore keeps worksheet sessions in memory; they do not survive a restart
type SessionStore struct {
	sessions map[string]*models.Session
	mu       sync.RWMutex
}

func New() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.Session),
	}
}

func (s *SessionStore) Get(sessionID string) (*models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	if !exists {
		return nil, false
	}
	return clone(session), true
}

func (s *SessionStore) Set(sessionID string, session *models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = clone(session)
}

func (s *SessionStore) GetAll() map[string]*models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*models.Session, len(s.sessions))
	for k, v := range s.sessions {
		result[k] = clone(v)
	}
	return result
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// AddImage appends img to the session's image sequence
func (s *SessionStore) AddImage(sessionID string, img models.Image) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	session.Images = append(session.Images, img)
	return clone(session), nil
}

// DeleteImage removes the image at index, keeping the remaining images in order
func (s *SessionStore) DeleteImage(sessionID string, index int) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	remaining, err := RemoveAt(session.Images, index)
	if err != nil {
		return nil, err
	}
	session.Images = remaining
	return clone(session), nil
}

// SetResult records the latest generation result for the session
func (s *SessionStore) SetResult(sessionID string, result *models.GenerationResult) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	session.Result = result
	session.Provider = result.Provider
	session.Model = result.Model
	return clone(session), nil
}

// RemoveAt returns a new slice without the element at index
func RemoveAt(imgs []models.Image, index int) ([]models.Image, error) {
	if index < 0 || index >= len(imgs) {
		return nil, fmt.Errorf("image index %d out of range [0,%d): %w", index, len(imgs), ErrNotFound)
	}
	out := make([]models.Image, 0, len(imgs)-1)
	out = append(out, imgs[:index]...)
	return append(out, imgs[index+1:]...), nil
}

func clone(session *models.Session) *models.Session {
	c := *session
	c.Images = append([]models.Image(nil), session.Images...)
	return &c
}
