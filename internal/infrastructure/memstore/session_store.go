package memstore

import (
	"github.com/hitbridge/traffic-exchange/internal/domain/entity"
	"github.com/hitbridge/traffic-exchange/internal/domain/repository"
)

type SessionStore struct {
	store *Store
}

func (r *SessionStore) Create(sess *entity.Session) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	sess.ID = s.nextSessionID
	s.nextSessionID++
	sess.Points = 0
	sess.Hits = 0
	sess.Active = true
	sess.Status = entity.StatusReady
	if sess.Proxy == "" {
		sess.Proxy = "System"
	}

	cp := *sess
	s.sessions[sess.ID] = &cp
	return nil
}

func (r *SessionStore) GetByID(id int) (*entity.Session, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *sess
	return &cp, nil
}

func (r *SessionStore) GetByClientID(clientID string) (*entity.Session, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sess := range s.sessions {
		if sess.ClientID == clientID {
			cp := *sess
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *SessionStore) ListByUser(userID int) ([]*entity.Session, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entity.Session, 0)
	for _, sess := range s.sessions {
		if sess.UserID == userID {
			cp := *sess
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *SessionStore) SetStatus(id int, status string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return repository.ErrNotFound
	}
	sess.Status = status
	return nil
}

func (r *SessionStore) SetActive(id int, active bool) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return repository.ErrNotFound
	}
	sess.Active = active
	if active {
		sess.Status = entity.StatusReady
	} else {
		sess.Status = entity.StatusPaused
	}
	return nil
}

func (r *SessionStore) AddHits(id int, delta int) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return repository.ErrNotFound
	}
	sess.Hits += delta
	return nil
}

func (r *SessionStore) AddPoints(id int, delta int) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return repository.ErrNotFound
	}
	sess.Points += delta
	return nil
}

var _ repository.SessionRepository = (*SessionStore)(nil)
