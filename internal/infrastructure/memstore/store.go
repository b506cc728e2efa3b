// Package memstore is the volatile default storage driver. It keeps every
// entity in process-local maps behind a single mutex; identifiers are
// monotonically increasing per entity type and never reused, even after a
// delete. All reads return copies so callers never observe a mutation in
// flight.
package memstore

import (
	"sync"

	"github.com/hitbridge/traffic-exchange/internal/domain/entity"
)

type Store struct {
	mu sync.Mutex

	users    map[int]*entity.User
	sessions map[int]*entity.Session
	urls     map[int]*entity.Url

	nextUserID    int
	nextSessionID int
	nextUrlID     int
}

func New() *Store {
	return &Store{
		users:         make(map[int]*entity.User),
		sessions:      make(map[int]*entity.Session),
		urls:          make(map[int]*entity.Url),
		nextUserID:    1,
		nextSessionID: 1,
		nextUrlID:     1,
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() *UserStore { return &UserStore{store: s} }

// Sessions returns the session repository view of the store.
func (s *Store) Sessions() *SessionStore { return &SessionStore{store: s} }

// Urls returns the URL repository view of the store.
func (s *Store) Urls() *UrlStore { return &UrlStore{store: s} }
