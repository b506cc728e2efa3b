package memstore

import (
	"github.com/hitbridge/traffic-exchange/internal/domain/entity"
	"github.com/hitbridge/traffic-exchange/internal/domain/repository"
	"github.com/hitbridge/traffic-exchange/pkg/helpers"
)

type UserStore struct {
	store *Store
}

func (r *UserStore) Create(u *entity.User) error {
	clientID, err := helpers.NewClientID()
	if err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = s.nextUserID
	s.nextUserID++
	u.ClientID = clientID
	u.Points = 0
	u.Hits = 0

	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (r *UserStore) GetByID(id int) (*entity.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *UserStore) GetByUsername(username string) (*entity.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserStore) AddHits(id int, delta int) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Hits += delta
	return nil
}

func (r *UserStore) AddPoints(id int, delta int) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Points += delta
	return nil
}

var _ repository.UserRepository = (*UserStore)(nil)
