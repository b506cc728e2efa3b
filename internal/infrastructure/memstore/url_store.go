package memstore

import (
	"time"

	"github.com/hitbridge/traffic-exchange/internal/domain/entity"
	"github.com/hitbridge/traffic-exchange/internal/domain/repository"
)

type UrlStore struct {
	store *Store
}

func (r *UrlStore) Create(u *entity.Url) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = s.nextUrlID
	s.nextUrlID++
	if u.MinVisitTime == 0 {
		u.MinVisitTime = entity.DefaultMinVisitTime
	}
	u.Hits = 0
	u.TodayHits = 0
	u.PointsUsed = 0
	u.Active = true
	u.CreatedAt = time.Now()

	cp := *u
	s.urls[u.ID] = &cp
	return nil
}

func (r *UrlStore) GetByID(id int) (*entity.Url, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.urls[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *UrlStore) ListByUser(userID int) ([]*entity.Url, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*entity.Url, 0)
	for _, u := range s.urls {
		if u.UserID == userID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *UrlStore) SetActive(id int, active bool) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.urls[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Active = active
	return nil
}

func (r *UrlStore) AddHits(id int, delta int) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.urls[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Hits += delta
	return nil
}

func (r *UrlStore) AddTodayHits(id int, delta int) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.urls[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.TodayHits += delta
	return nil
}

func (r *UrlStore) AddPointsUsed(id int, delta int) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.urls[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PointsUsed += delta
	return nil
}

func (r *UrlStore) ResetTodayHits() error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.urls {
		u.TodayHits = 0
	}
	return nil
}

func (r *UrlStore) Delete(id int) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.urls[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.urls, id)
	return nil
}

var _ repository.UrlRepository = (*UrlStore)(nil)
